package memory

import (
	"context"
	"sync"
	"time"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
)

// MinutesRepository keeps minutes in process memory
type MinutesRepository struct {
	mu      sync.RWMutex
	minutes map[string]*entities.Minutes
}

// NewMinutesRepository creates an empty in-memory minutes repository
func NewMinutesRepository() *MinutesRepository {
	return &MinutesRepository{minutes: make(map[string]*entities.Minutes)}
}

var _ repositories.MinutesRepository = (*MinutesRepository)(nil)

func (r *MinutesRepository) Get(_ context.Context, meetingID string) (*entities.Minutes, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.minutes[meetingID]
	if !ok {
		return nil, nil
	}
	return cloneMinutes(m), nil
}

func (r *MinutesRepository) Ensure(_ context.Context, minutes *entities.Minutes) (*entities.Minutes, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.minutes[minutes.MeetingID]; ok {
		return cloneMinutes(existing), nil
	}
	r.minutes[minutes.MeetingID] = cloneMinutes(minutes)
	return cloneMinutes(minutes), nil
}

func (r *MinutesRepository) ReplaceAgenda(_ context.Context, meetingID string, agenda []entities.MinutesAgendaItem) error {
	return r.mutate(meetingID, func(m *entities.Minutes) {
		m.Agenda = append([]entities.MinutesAgendaItem{}, agenda...)
	})
}

func (r *MinutesRepository) ReplaceDecisions(_ context.Context, meetingID string, decisions []entities.Decision) error {
	return r.mutate(meetingID, func(m *entities.Minutes) {
		m.Decisions = append([]entities.Decision{}, decisions...)
	})
}

func (r *MinutesRepository) AppendDecision(_ context.Context, meetingID string, decision entities.Decision) error {
	return r.mutate(meetingID, func(m *entities.Minutes) {
		m.Decisions = append(m.Decisions, decision)
	})
}

func (r *MinutesRepository) ReplaceActionPlan(_ context.Context, meetingID string, items []entities.ActionItem) error {
	return r.mutate(meetingID, func(m *entities.Minutes) {
		m.ActionPlan = append([]entities.ActionItem{}, items...)
	})
}

func (r *MinutesRepository) AppendActionItem(_ context.Context, meetingID string, item entities.ActionItem) error {
	return r.mutate(meetingID, func(m *entities.Minutes) {
		m.ActionPlan = append(m.ActionPlan, item)
	})
}

// mutate creates the document on first write, like an upsert
func (r *MinutesRepository) mutate(meetingID string, fn func(*entities.Minutes)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.minutes[meetingID]
	if !ok {
		m = entities.NewMinutes(meetingID, nil)
		r.minutes[meetingID] = m
	}
	fn(m)
	m.UpdatedAt = time.Now().UTC()
	return nil
}

func cloneMinutes(m *entities.Minutes) *entities.Minutes {
	c := *m
	c.Agenda = append([]entities.MinutesAgendaItem{}, m.Agenda...)
	c.Decisions = append([]entities.Decision{}, m.Decisions...)
	c.ActionPlan = append([]entities.ActionItem{}, m.ActionPlan...)
	return &c
}
