package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
)

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *gorm.DB) repositories.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Append(ctx context.Context, feedback *entities.Feedback) error {
	return r.db.WithContext(ctx).Create(newFeedbackRow(feedback)).Error
}

func (r *feedbackRepository) ListByMeeting(ctx context.Context, meetingID string) ([]*entities.Feedback, error) {
	if !isUUID(meetingID) {
		return []*entities.Feedback{}, nil
	}
	var rows []feedbackRow
	err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	feedbacks := make([]*entities.Feedback, 0, len(rows))
	for i := range rows {
		feedbacks = append(feedbacks, rows[i].toEntity())
	}
	return feedbacks, nil
}
