package projects

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/partyplanner/backend/internal/apperrors"
	"github.com/partyplanner/backend/internal/identity"
	"github.com/partyplanner/backend/internal/metrics"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrGuestNotFound = apperrors.New(apperrors.ErrNotFound, "guest not found")

// GuestService edits the guest list embedded in a project. Each call is a
// read-modify-write of one row; concurrent edits to the same project resolve
// last-write-wins.
type GuestService struct {
	db       *gorm.DB
	projects *ProjectService
}

func NewGuestService(db *gorm.DB, projects *ProjectService) *GuestService {
	return &GuestService{db: db, projects: projects}
}

func (s *GuestService) AddGuest(ctx context.Context, ownerID, projectID uuid.UUID, req AddGuestRequest) (*Project, error) {
	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return nil, apperrors.Validation("guestName is required")
	}
	phone := strings.TrimSpace(string(req.Phone))
	if phone == "" {
		return nil, apperrors.Validation("phone is required")
	}

	project, err := s.projects.Get(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	guests := make(datatypes.JSONSlice[Guest], 0, len(project.Guests)+1)
	guests = append(guests, project.Guests...)
	guests = append(guests, Guest{ID: uuid.New(), Name: name, Phone: phone})

	if err := s.saveGuests(ctx, ownerID, project, guests); err != nil {
		return nil, err
	}

	metrics.GuestsAdded.Inc()
	return project, nil
}

// RemoveGuest reports ErrProjectNotFound and ErrGuestNotFound separately.
func (s *GuestService) RemoveGuest(ctx context.Context, ownerID, projectID, guestID uuid.UUID) (*Project, error) {
	project, err := s.projects.Get(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, g := range project.Guests {
		if g.ID == guestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrGuestNotFound
	}

	guests := make(datatypes.JSONSlice[Guest], 0, len(project.Guests)-1)
	guests = append(guests, project.Guests[:idx]...)
	guests = append(guests, project.Guests[idx+1:]...)

	if err := s.saveGuests(ctx, ownerID, project, guests); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *GuestService) saveGuests(ctx context.Context, ownerID uuid.UUID, project *Project, guests datatypes.JSONSlice[Guest]) error {
	result := s.db.WithContext(ctx).
		Model(project).
		Scopes(identity.ForOwner(ownerID)).
		Update("guests", guests)
	if result.Error != nil {
		return apperrors.Store(result.Error)
	}
	if result.RowsAffected == 0 {
		// Deleted between the read and the write.
		return ErrProjectNotFound
	}
	project.Guests = guests
	return nil
}
