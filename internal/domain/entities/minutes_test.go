package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAgenda_PreservesCompletionByTopic(t *testing.T) {
	previous := []MinutesAgendaItem{
		{ID: "aaaa1111", Topic: "Budget", Duration: 10, Completed: true},
		{ID: "bbbb2222", Topic: "Hiring", Duration: 5},
	}
	seeded := SeedAgenda([]AgendaItem{{Topic: "Budget", Duration: 15}, {Topic: "Roadmap", Duration: 20}}, previous)

	require.Len(t, seeded, 2)
	assert.Equal(t, "aaaa1111", seeded[0].ID)
	assert.True(t, seeded[0].Completed)
	assert.Equal(t, 15, seeded[0].Duration)
	assert.Equal(t, "Roadmap", seeded[1].Topic)
	assert.False(t, seeded[1].Completed)
	assert.Len(t, seeded[1].ID, 8)
}

func TestMinutes_CompleteAgenda(t *testing.T) {
	m := NewMinutes("m-1", []AgendaItem{{Topic: "A", Duration: 5}, {Topic: "B", Duration: 5}})
	first := m.Agenda[0].ID

	assert.Equal(t, 1, m.CompleteAgenda([]string{first, "unknown"}))
	assert.Equal(t, 0, m.CompleteAgenda([]string{first}))
	assert.True(t, m.Agenda[0].Completed)
	assert.False(t, m.Agenda[1].Completed)
}

func TestMinutes_Decisions(t *testing.T) {
	m := NewMinutes("m-1", nil)

	_, err := m.AddDecision("   ")
	assert.ErrorIs(t, err, ErrEmptyText)

	d, err := m.AddDecision("Ship v2 in March")
	require.NoError(t, err)

	assert.True(t, m.UpdateDecision(d.ID, "Ship v2 in April"))
	assert.False(t, m.UpdateDecision(d.ID, "Ship v2 in April"))
	assert.False(t, m.UpdateDecision("missing", "x"))
	assert.Equal(t, "Ship v2 in April", m.Decisions[0].Text)

	assert.True(t, m.DeleteDecision(d.ID))
	assert.False(t, m.DeleteDecision(d.ID))
	assert.Empty(t, m.Decisions)
}

func TestMinutes_ActionItems(t *testing.T) {
	m := NewMinutes("m-1", nil)

	item, err := m.AddActionItem("Draft the proposal", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultAssignee, item.AssignedTo)
	assert.Equal(t, DefaultDueDate, item.DueDate)

	assert.True(t, m.UpdateActionItem(item.ID, "", "Tanaka", "2024-06-01"))
	assert.Equal(t, "Draft the proposal", m.ActionPlan[0].Task)
	assert.Equal(t, "Tanaka", m.ActionPlan[0].AssignedTo)
	assert.False(t, m.UpdateActionItem(item.ID, "", "", ""))

	assert.True(t, m.DeleteActionItem(item.ID))
	assert.Empty(t, m.ActionPlan)
}

func TestInterventionRequest_BlocksNewRequest(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	span := 10 * time.Second

	var none *InterventionRequest
	assert.False(t, none.BlocksNewRequest(now, span))

	pending := NewInterventionRequest("silence", now.Add(-time.Hour))
	assert.True(t, pending.BlocksNewRequest(now, span))

	recent := &InterventionRequest{Status: InterventionStatusCompleted, UpdatedAt: now.Add(-5 * time.Second)}
	assert.True(t, recent.BlocksNewRequest(now, span))

	old := &InterventionRequest{Status: InterventionStatusCompleted, UpdatedAt: now.Add(-11 * time.Second)}
	assert.False(t, old.BlocksNewRequest(now, span))
}

func TestMeeting_Schedule(t *testing.T) {
	m := NewMeeting("Weekly", "Sync", "2024-05-01", "23:30", "00:30", []string{"Sato"}, nil)

	assert.Equal(t, "2024-05-01 23:30:00", m.StartAt())
	assert.Equal(t, "2024-05-01 00:30:00", m.EndAt())
	assert.False(t, m.HasAgenda())

	start, end, err := m.ScheduledWindow(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))

	m.StartDate = "May 1st"
	_, _, err = m.ScheduledWindow(time.UTC)
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestMessage_IsAI(t *testing.T) {
	now := time.Now()
	assert.False(t, NewMessage("m", "Sato", "hi", now).IsAI())
	assert.True(t, NewAIMessage("m", "AI Facilitator", "hello", MessageTypeFeedback, now).IsAI())
}
