package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/partyplanner/backend/internal/apperrors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound = apperrors.New(apperrors.ErrNotFound, "item not found")
	ErrTypeRequired = apperrors.New(apperrors.ErrValidation, "type is required")
)

// Service reads one collection. Collections never join each other.
type Service[T Record] struct {
	db *gorm.DB
}

func NewService[T Record](db *gorm.DB) *Service[T] {
	return &Service[T]{db: db}
}

func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, apperrors.Store(err)
	}
	return items, nil
}

func (s *Service[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var item T
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return &item, nil
}

// ListByType returns the items tagged with typeTag. No match is an empty
// list, not an error.
func (s *Service[T]) ListByType(ctx context.Context, typeTag string) ([]T, error) {
	if typeTag == "" {
		return nil, ErrTypeRequired
	}

	items := make([]T, 0)
	err := s.db.WithContext(ctx).
		Where(datatypes.JSONArrayQuery("types").Contains(typeTag)).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return items, nil
}
