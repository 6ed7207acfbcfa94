package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

// ErrNotFound is returned by mutations whose target record does not exist
var ErrNotFound = errors.New("record not found")

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create stores a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID retrieves a meeting by its ID. An absent meeting, or an ID the
	// backend cannot store, yields (nil, nil) rather than an error.
	FindByID(ctx context.Context, id string) (*entities.Meeting, error)

	// UpdateAgenda overwrites the agenda wholesale
	UpdateAgenda(ctx context.Context, id string, agenda []entities.AgendaItem) error

	// SetInterventionRequest stores a new intervention request on the meeting
	SetInterventionRequest(ctx context.Context, id string, req *entities.InterventionRequest) error

	// CompleteInterventionRequest marks the request completed at the given time.
	// A meeting without a request gets a completed one so the cool-down applies.
	CompleteInterventionRequest(ctx context.Context, id string, at time.Time) error
}
