package catalog

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Feature serves the five read-only catalog collections.
type Feature struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Feature {
	return &Feature{db: db}
}

func (f *Feature) ID() string { return "catalog" }

func (f *Feature) Models() []interface{} {
	return []interface{}{
		&Theme{},
		&Decoration{},
		&Food{},
		&Drink{},
		&Activity{},
	}
}

func (f *Feature) RegisterRoutes(router fiber.Router) {
	mount(router, "/themes", NewHandler(NewService[Theme](f.db)))
	mount(router, "/decorations", NewHandler(NewService[Decoration](f.db)))
	mount(router, "/food", NewHandler(NewService[Food](f.db)))
	mount(router, "/drinks", NewHandler(NewService[Drink](f.db)))
	mount(router, "/activities", NewHandler(NewService[Activity](f.db)))
}

// Seed loads the bundled catalog. With reset every collection is emptied
// first; without it only empty collections are filled, so data persists.
func (f *Feature) Seed(ctx context.Context, reset bool) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		themes, err := seedCollection(tx, seedThemes(), reset)
		if err != nil {
			return err
		}
		decorations, err := seedCollection(tx, seedDecorations(), reset)
		if err != nil {
			return err
		}
		food, err := seedCollection(tx, seedFood(), reset)
		if err != nil {
			return err
		}
		drinks, err := seedCollection(tx, seedDrinks(), reset)
		if err != nil {
			return err
		}
		activities, err := seedCollection(tx, seedActivities(), reset)
		if err != nil {
			return err
		}

		slog.Info("catalog seeded",
			"reset", reset,
			"themes", themes,
			"decorations", decorations,
			"food", food,
			"drinks", drinks,
			"activities", activities,
		)
		return nil
	})
}

func seedCollection[T Record](tx *gorm.DB, rows []T, reset bool) (int, error) {
	var zero T
	if reset {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&zero).Error; err != nil {
			return 0, err
		}
	} else {
		var count int64
		if err := tx.Model(&zero).Count(&count).Error; err != nil {
			return 0, err
		}
		if count > 0 {
			return 0, nil
		}
	}

	if len(rows) == 0 {
		return 0, nil
	}
	if err := tx.CreateInBatches(rows, 100).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}
