package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Item is the shape shared by every catalog collection.
type Item struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string                      `gorm:"not null;size:100;index" json:"name"`
	Image     string                      `gorm:"type:text" json:"image"`
	Types     datatypes.JSONSlice[string] `json:"types"`
	CreatedAt time.Time                   `json:"created_at"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Types == nil {
		i.Types = datatypes.JSONSlice[string]{}
	}
	return nil
}

type Theme struct {
	Item
}

type Decoration struct {
	Item
	Themes datatypes.JSONSlice[string] `json:"themes"`
}

type Food struct {
	Item
	Themes datatypes.JSONSlice[string] `json:"themes"`
}

// TableName keeps the collection name uncountable.
func (Food) TableName() string { return "food" }

type Drink struct {
	Item
	Themes datatypes.JSONSlice[string] `json:"themes"`
}

type Activity struct {
	Item
	Themes datatypes.JSONSlice[string] `json:"themes"`
}

// Record is satisfied by every collection model.
type Record interface {
	Theme | Decoration | Food | Drink | Activity
}
