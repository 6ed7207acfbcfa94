package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
)

// MeetingRepository keeps meetings in process memory
type MeetingRepository struct {
	mu       sync.RWMutex
	meetings map[string]*entities.Meeting
}

// NewMeetingRepository creates an empty in-memory meeting repository
func NewMeetingRepository() *MeetingRepository {
	return &MeetingRepository{meetings: make(map[string]*entities.Meeting)}
}

var _ repositories.MeetingRepository = (*MeetingRepository)(nil)

func (r *MeetingRepository) Create(_ context.Context, meeting *entities.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.meetings[meeting.ID]; exists {
		return fmt.Errorf("meeting %s already exists", meeting.ID)
	}
	r.meetings[meeting.ID] = cloneMeeting(meeting)
	return nil
}

func (r *MeetingRepository) FindByID(_ context.Context, id string) (*entities.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.meetings[id]
	if !ok {
		return nil, nil
	}
	return cloneMeeting(m), nil
}

func (r *MeetingRepository) UpdateAgenda(_ context.Context, id string, agenda []entities.AgendaItem) error {
	return r.update(id, func(m *entities.Meeting) {
		m.Agenda = append([]entities.AgendaItem{}, agenda...)
	})
}

func (r *MeetingRepository) SetInterventionRequest(_ context.Context, id string, req *entities.InterventionRequest) error {
	return r.update(id, func(m *entities.Meeting) {
		copied := *req
		m.InterventionRequest = &copied
	})
}

func (r *MeetingRepository) CompleteInterventionRequest(_ context.Context, id string, at time.Time) error {
	return r.update(id, func(m *entities.Meeting) {
		if m.InterventionRequest == nil {
			m.InterventionRequest = &entities.InterventionRequest{CreatedAt: at.UTC()}
		}
		m.InterventionRequest.Status = entities.InterventionStatusCompleted
		m.InterventionRequest.UpdatedAt = at.UTC()
	})
}

func (r *MeetingRepository) update(id string, fn func(*entities.Meeting)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.meetings[id]
	if !ok {
		return repositories.ErrNotFound
	}
	fn(m)
	m.UpdatedAt = time.Now().UTC()
	return nil
}

func cloneMeeting(m *entities.Meeting) *entities.Meeting {
	c := *m
	c.Participants = append([]string{}, m.Participants...)
	c.Agenda = append([]entities.AgendaItem{}, m.Agenda...)
	if m.InterventionRequest != nil {
		req := *m.InterventionRequest
		c.InterventionRequest = &req
	}
	return &c
}
