package memory

import (
	"context"
	"sync"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
)

// FeedbackRepository keeps feedback archives in process memory
type FeedbackRepository struct {
	mu        sync.RWMutex
	feedbacks map[string][]*entities.Feedback
}

// NewFeedbackRepository creates an empty in-memory feedback repository
func NewFeedbackRepository() *FeedbackRepository {
	return &FeedbackRepository{feedbacks: make(map[string][]*entities.Feedback)}
}

var _ repositories.FeedbackRepository = (*FeedbackRepository)(nil)

func (r *FeedbackRepository) Append(_ context.Context, feedback *entities.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *feedback
	r.feedbacks[feedback.MeetingID] = append(r.feedbacks[feedback.MeetingID], &c)
	return nil
}

func (r *FeedbackRepository) ListByMeeting(_ context.Context, meetingID string) ([]*entities.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Feedback, 0, len(r.feedbacks[meetingID]))
	for _, f := range r.feedbacks[meetingID] {
		c := *f
		out = append(out, &c)
	}
	return out, nil
}
