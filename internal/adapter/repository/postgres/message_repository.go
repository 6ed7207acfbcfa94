package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository over the comments table
func NewMessageRepository(db *gorm.DB) repositories.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Append(ctx context.Context, message *entities.Message) error {
	return r.db.WithContext(ctx).Create(newMessageRow(message)).Error
}

func (r *messageRepository) ListByMeeting(ctx context.Context, meetingID string, includeAI bool) ([]*entities.Message, error) {
	if !isUUID(meetingID) {
		return []*entities.Message{}, nil
	}
	query := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID)
	if !includeAI {
		query = query.Where("meta_role IS NULL OR meta_role <> ?", entities.RoleAI)
	}

	var rows []messageRow
	if err := query.Order("speak_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	messages := make([]*entities.Message, 0, len(rows))
	for i := range rows {
		messages = append(messages, rows[i].toEntity())
	}
	return messages, nil
}
