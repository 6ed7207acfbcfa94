package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

// FeedbackRepository archives facilitator outputs
type FeedbackRepository interface {
	Append(ctx context.Context, feedback *entities.Feedback) error
	ListByMeeting(ctx context.Context, meetingID string) ([]*entities.Feedback, error)
}
