package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
)

// MessageRepository keeps comment logs in process memory
type MessageRepository struct {
	mu       sync.RWMutex
	messages map[string][]*entities.Message
}

// NewMessageRepository creates an empty in-memory message repository
func NewMessageRepository() *MessageRepository {
	return &MessageRepository{messages: make(map[string][]*entities.Message)}
}

var _ repositories.MessageRepository = (*MessageRepository)(nil)

func (r *MessageRepository) Append(_ context.Context, message *entities.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages[message.MeetingID] = append(r.messages[message.MeetingID], cloneMessage(message))
	return nil
}

func (r *MessageRepository) ListByMeeting(_ context.Context, meetingID string, includeAI bool) ([]*entities.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Message, 0, len(r.messages[meetingID]))
	for _, m := range r.messages[meetingID] {
		if !includeAI && m.IsAI() {
			continue
		}
		out = append(out, cloneMessage(m))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SpeakAt.Before(out[j].SpeakAt)
	})
	return out, nil
}

func cloneMessage(m *entities.Message) *entities.Message {
	c := *m
	if m.Meta != nil {
		meta := *m.Meta
		c.Meta = &meta
	}
	return &c
}
