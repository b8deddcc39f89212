package projects

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultDueDate = "No due date set"

// Project is a user-owned planning board. Catalog selections are stored as
// copies, so later catalog changes never alter an existing project.
type Project struct {
	ID          uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID                      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string                         `gorm:"size:30;not null" json:"name"`
	DueDate     string                         `gorm:"size:100;not null;default:'No due date set'" json:"due_date"`
	Themes      datatypes.JSONSlice[Selection] `json:"themes"`
	Decorations datatypes.JSONSlice[Selection] `json:"decorations"`
	Food        datatypes.JSONSlice[Selection] `json:"food"`
	Drinks      datatypes.JSONSlice[Selection] `json:"drinks"`
	Activities  datatypes.JSONSlice[Selection] `json:"activities"`
	Guests      datatypes.JSONSlice[Guest]     `json:"guests"`
	CreatedAt   time.Time                      `json:"created_at"`
	UpdatedAt   time.Time                      `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Selection is a denormalized copy of a catalog item.
type Selection struct {
	Name  string   `json:"name"`
	Image string   `json:"image,omitempty"`
	Types []string `json:"types,omitempty"`
}

// Guest only exists inside one project's guest list.
type Guest struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// PhoneNumber accepts either a JSON string or a JSON number; the mobile
// client sends numbers.
type PhoneNumber string

func (p *PhoneNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PhoneNumber(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.New("phone must be a string or a number")
	}
	*p = PhoneNumber(n.String())
	return nil
}

// --- DTOs ---

type CreateProjectRequest struct {
	Name        string      `json:"name"`
	DueDate     string      `json:"due_date"`
	Themes      []Selection `json:"themes"`
	Decorations []Selection `json:"decorations"`
	Food        []Selection `json:"food"`
	Drinks      []Selection `json:"drinks"`
	Activities  []Selection `json:"activities"`
}

type UpdateProjectRequest struct {
	Name    *string `json:"name"`
	DueDate *string `json:"due_date"`
}

type AddGuestRequest struct {
	GuestName string      `json:"guestName"`
	Phone     PhoneNumber `json:"phone"`
}
