package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

// MessageRepository is the append-only comment log of meetings
type MessageRepository interface {
	// Append adds a message to the log
	Append(ctx context.Context, message *entities.Message) error

	// ListByMeeting returns the log ordered by speak_at ascending.
	// AI-originated messages are left out unless includeAI is set.
	ListByMeeting(ctx context.Context, meetingID string, includeAI bool) ([]*entities.Message, error)
}
