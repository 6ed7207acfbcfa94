package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
)

func TestMeetingRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMeetingRepository()

	missing, err := repo.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.ErrorIs(t, repo.UpdateAgenda(ctx, "nope", nil), repositories.ErrNotFound)

	m := entities.NewMeeting("Weekly", "Sync", "2024-05-01", "10:00", "11:00", []string{"Sato"}, nil)
	require.NoError(t, repo.Create(ctx, m))

	require.NoError(t, repo.UpdateAgenda(ctx, m.ID, []entities.AgendaItem{{Topic: "Budget", Duration: 10}}))
	now := time.Now()
	require.NoError(t, repo.SetInterventionRequest(ctx, m.ID, entities.NewInterventionRequest("stalled", now)))

	got, err := repo.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budget", got.Agenda[0].Topic)
	assert.True(t, got.InterventionRequest.IsPending())

	// returned values must not alias the stored record
	got.Agenda[0].Topic = "changed"
	again, _ := repo.FindByID(ctx, m.ID)
	assert.Equal(t, "Budget", again.Agenda[0].Topic)

	require.NoError(t, repo.CompleteInterventionRequest(ctx, m.ID, now))
	again, _ = repo.FindByID(ctx, m.ID)
	assert.Equal(t, entities.InterventionStatusCompleted, again.InterventionRequest.Status)
	assert.Equal(t, "stalled", again.InterventionRequest.Reason)
}

func TestMessageRepository_OrderAndAIFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewMessageRepository()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, entities.NewMessage("m", "B", "second", base.Add(time.Minute))))
	require.NoError(t, repo.Append(ctx, entities.NewMessage("m", "A", "first", base)))
	require.NoError(t, repo.Append(ctx, entities.NewAIMessage("m", "AI", "note", entities.MessageTypeFeedback, base.Add(2*time.Minute))))
	require.NoError(t, repo.Append(ctx, entities.NewMessage("other", "C", "elsewhere", base)))

	human, err := repo.ListByMeeting(ctx, "m", false)
	require.NoError(t, err)
	require.Len(t, human, 2)
	assert.Equal(t, "first", human[0].Message)
	assert.Equal(t, "second", human[1].Message)

	all, err := repo.ListByMeeting(ctx, "m", true)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.True(t, all[2].IsAI())
}

func TestMinutesRepository_EnsureAndMutate(t *testing.T) {
	ctx := context.Background()
	repo := NewMinutesRepository()

	none, err := repo.Get(ctx, "m")
	require.NoError(t, err)
	assert.Nil(t, none)

	seeded := entities.NewMinutes("m", []entities.AgendaItem{{Topic: "Budget", Duration: 10}})
	stored, err := repo.Ensure(ctx, seeded)
	require.NoError(t, err)
	assert.Len(t, stored.Agenda, 1)

	// a second Ensure keeps the first document
	stored, err = repo.Ensure(ctx, entities.NewMinutes("m", nil))
	require.NoError(t, err)
	assert.Len(t, stored.Agenda, 1)

	require.NoError(t, repo.AppendDecision(ctx, "m", entities.Decision{ID: "d1", Text: "Go"}))
	require.NoError(t, repo.AppendActionItem(ctx, "m", entities.NewActionItem("Write doc", "", "")))
	require.NoError(t, repo.ReplaceDecisions(ctx, "m", []entities.Decision{{ID: "d2", Text: "Stop"}}))

	got, err := repo.Get(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, []entities.Decision{{ID: "d2", Text: "Stop"}}, got.Decisions)
	assert.Len(t, got.ActionPlan, 1)
}
