package projects

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/partyplanner/backend/internal/apperrors"
	"github.com/partyplanner/backend/internal/identity"
	"github.com/partyplanner/backend/internal/metrics"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	minNameLength    = 5
	maxNameLength    = 30
	maxDueDateLength = 100
)

var (
	ErrProjectNotFound = apperrors.New(apperrors.ErrNotFound, "project not found")
	ErrNoFields        = apperrors.New(apperrors.ErrValidation, "nothing to update: provide name or due_date")
)

// ProjectService owns project rows. Every query is scoped to the owner, so a
// project belonging to someone else is indistinguishable from a missing one.
type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) List(ctx context.Context, ownerID uuid.UUID) ([]Project, error) {
	projects := make([]Project, 0)
	err := s.db.WithContext(ctx).
		Scopes(identity.ForOwner(ownerID)).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, ownerID, projectID uuid.UUID) (*Project, error) {
	var project Project
	err := s.db.WithContext(ctx).
		Scopes(identity.ForOwner(ownerID)).
		First(&project, "id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return &project, nil
}

func (s *ProjectService) Create(ctx context.Context, ownerID uuid.UUID, req CreateProjectRequest) (*Project, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	dueDate, err := validateDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	project := Project{
		ID:      uuid.New(),
		UserID:  ownerID,
		Name:    name,
		DueDate: dueDate,
		Guests:  datatypes.JSONSlice[Guest]{},
	}
	for _, sel := range []struct {
		field *datatypes.JSONSlice[Selection]
		in    []Selection
		label string
	}{
		{&project.Themes, req.Themes, "themes"},
		{&project.Decorations, req.Decorations, "decorations"},
		{&project.Food, req.Food, "food"},
		{&project.Drinks, req.Drinks, "drinks"},
		{&project.Activities, req.Activities, "activities"},
	} {
		selections, err := validateSelections(sel.label, sel.in)
		if err != nil {
			return nil, err
		}
		*sel.field = selections
	}

	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, apperrors.Store(err)
	}

	metrics.ProjectsCreated.Inc()
	return &project, nil
}

// Update overwrites only the fields present in req.
func (s *ProjectService) Update(ctx context.Context, ownerID, projectID uuid.UUID, req UpdateProjectRequest) (*Project, error) {
	if req.Name == nil && req.DueDate == nil {
		return nil, ErrNoFields
	}

	changes := make(map[string]interface{}, 2)
	if req.Name != nil {
		name, err := validateName(*req.Name)
		if err != nil {
			return nil, err
		}
		changes["name"] = name
	}
	if req.DueDate != nil {
		dueDate, err := validateDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		changes["due_date"] = dueDate
	}

	project, err := s.Get(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Model(project).
		Scopes(identity.ForOwner(ownerID)).
		Updates(changes).Error
	if err != nil {
		return nil, apperrors.Store(err)
	}

	return s.Get(ctx, ownerID, projectID)
}

// Delete removes the project only when ownerID owns it.
func (s *ProjectService) Delete(ctx context.Context, ownerID, projectID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Scopes(identity.ForOwner(ownerID)).
		Where("id = ?", projectID).
		Delete(&Project{})
	if result.Error != nil {
		return apperrors.Store(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// DeleteAllForOwner is used by account deletion inside its transaction.
func DeleteAllForOwner(tx *gorm.DB, ownerID uuid.UUID) error {
	return tx.Scopes(identity.ForOwner(ownerID)).Delete(&Project{}).Error
}

func validateName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperrors.Validation("name is required")
	}
	if n := utf8.RuneCountInString(name); n < minNameLength || n > maxNameLength {
		return "", apperrors.Validation("name must be between %d and %d characters", minNameLength, maxNameLength)
	}
	return name, nil
}

func validateDueDate(raw string) (string, error) {
	dueDate := strings.TrimSpace(raw)
	if dueDate == "" {
		return "", apperrors.Validation("due_date is required")
	}
	if utf8.RuneCountInString(dueDate) > maxDueDateLength {
		return "", apperrors.Validation("due_date must be at most %d characters", maxDueDateLength)
	}
	return dueDate, nil
}

func validateSelections(label string, in []Selection) (datatypes.JSONSlice[Selection], error) {
	out := make(datatypes.JSONSlice[Selection], 0, len(in))
	for _, sel := range in {
		sel.Name = strings.TrimSpace(sel.Name)
		if sel.Name == "" {
			return nil, apperrors.Validation("%s: every selection needs a name", label)
		}
		out = append(out, sel)
	}
	return out, nil
}
