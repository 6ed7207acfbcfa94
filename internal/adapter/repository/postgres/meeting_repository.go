package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(newMeetingRow(meeting)).Error
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id string) (*entities.Meeting, error) {
	if !isUUID(id) {
		return nil, nil
	}

	var row meetingRow
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

// UpdateAgenda overwrites the agenda
func (r *meetingRepository) UpdateAgenda(ctx context.Context, id string, agenda []entities.AgendaItem) error {
	return r.update(ctx, id, map[string]interface{}{
		"agenda": datatypes.JSONSlice[entities.AgendaItem](nonNil(agenda)),
	})
}

// SetInterventionRequest stores a new intervention request
func (r *meetingRepository) SetInterventionRequest(ctx context.Context, id string, req *entities.InterventionRequest) error {
	return r.update(ctx, id, map[string]interface{}{
		"intervention_status":     string(req.Status),
		"intervention_reason":     req.Reason,
		"intervention_created_at": req.CreatedAt,
		"intervention_updated_at": req.UpdatedAt,
	})
}

// CompleteInterventionRequest marks the request completed
func (r *meetingRepository) CompleteInterventionRequest(ctx context.Context, id string, at time.Time) error {
	at = at.UTC()
	return r.update(ctx, id, map[string]interface{}{
		"intervention_status":     string(entities.InterventionStatusCompleted),
		"intervention_reason":     gorm.Expr("COALESCE(intervention_reason, '')"),
		"intervention_created_at": gorm.Expr("COALESCE(intervention_created_at, ?)", at),
		"intervention_updated_at": at,
	})
}

func (r *meetingRepository) update(ctx context.Context, id string, fields map[string]interface{}) error {
	if !isUUID(id) {
		return repositories.ErrNotFound
	}
	fields["updated_at"] = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&meetingRow{}).
		Where("id = ?", id).
		Updates(fields)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
