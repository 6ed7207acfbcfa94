package facilitation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/meeting-facilitator/internal/usecase/errors"
)

func TestRequest_StoresPendingRequest(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, defaultAgenda)
	e.say(t, m.ID, "Alice", "We keep going around in circles.")
	e.llm.OnJSON(TaskIntervention, `{"intervention_needed":true,"reason":"discussion is stuck"}`)

	requested, err := e.intervention.Request(context.Background(), m.ID)
	require.NoError(t, err)
	assert.True(t, requested)

	stored, err := e.meetings.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.InterventionRequest)
	assert.Equal(t, entities.InterventionStatusPending, stored.InterventionRequest.Status)
	assert.Equal(t, "discussion is stuck", stored.InterventionRequest.Reason)

	_, ok, err := e.locker.TryLock(context.Background(), cache.InterventionLockKey(m.ID), time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "lock must be released after the check")
}

func TestRequest_NotNeeded(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, defaultAgenda)
	e.say(t, m.ID, "Alice", "Let's begin.")
	e.llm.OnJSON(TaskIntervention, `{"intervention_needed":false,"reason":"fine"}`)

	requested, err := e.intervention.Request(context.Background(), m.ID)
	require.NoError(t, err)
	assert.False(t, requested)

	stored, err := e.meetings.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.InterventionRequest)
}

func TestRequest_CheckerFailureMeansNo(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, defaultAgenda)
	e.say(t, m.ID, "Alice", "Let's begin.")
	e.llm.FailJSON(TaskIntervention, errors.New("503 service unavailable"))

	requested, err := e.intervention.Request(context.Background(), m.ID)
	require.NoError(t, err)
	assert.False(t, requested)
}

func TestRequest_Debounce(t *testing.T) {
	tests := []struct {
		name string
		req  func(now time.Time) *entities.InterventionRequest
	}{
		{
			name: "pending",
			req: func(now time.Time) *entities.InterventionRequest {
				return entities.NewInterventionRequest("stuck", now.Add(-time.Hour))
			},
		},
		{
			name: "completed within span",
			req: func(now time.Time) *entities.InterventionRequest {
				r := entities.NewInterventionRequest("stuck", now.Add(-time.Minute))
				r.Status = entities.InterventionStatusCompleted
				r.UpdatedAt = now.Add(-5 * time.Second)
				return r
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			m := e.meeting(t, defaultAgenda)
			e.say(t, m.ID, "Alice", "Hi")
			require.NoError(t, e.meetings.SetInterventionRequest(context.Background(), m.ID, tt.req(e.now)))
			e.llm.OnJSON(TaskIntervention, `{"intervention_needed":true,"reason":"x"}`)

			requested, err := e.intervention.Request(context.Background(), m.ID)
			require.NoError(t, err)
			assert.False(t, requested)
			assert.Zero(t, e.llm.Count(TaskIntervention))
		})
	}
}

func TestRequest_CompletedAfterSpanChecksAgain(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, defaultAgenda)
	e.say(t, m.ID, "Alice", "Hi")
	require.NoError(t, e.meetings.CompleteInterventionRequest(context.Background(), m.ID, e.now.Add(-time.Minute)))
	e.llm.OnJSON(TaskIntervention, `{"intervention_needed":true,"reason":"time is running out"}`)

	requested, err := e.intervention.Request(context.Background(), m.ID)
	require.NoError(t, err)
	assert.True(t, requested)
}

func TestRequest_NoHistory(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, defaultAgenda)
	require.NoError(t, e.messages.Append(context.Background(),
		entities.NewAIMessage(m.ID, facilitatorName, "Welcome", entities.MessageTypeFeedback, e.now)))

	requested, err := e.intervention.Request(context.Background(), m.ID)
	require.NoError(t, err)
	assert.False(t, requested)
	assert.Zero(t, e.llm.Total())
}

func TestRequest_HeldLockSkips(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, defaultAgenda)
	e.say(t, m.ID, "Alice", "Hi")

	_, ok, err := e.locker.TryLock(context.Background(), cache.InterventionLockKey(m.ID), time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	requested, err := e.intervention.Request(context.Background(), m.ID)
	require.NoError(t, err)
	assert.False(t, requested)
	assert.Zero(t, e.llm.Total())
}

func TestRequest_UnknownMeeting(t *testing.T) {
	e := newEnv(t)
	_, err := e.intervention.Request(context.Background(), "missing")
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingNotFound)
}

func TestAllow_PostsInterventionAndCompletes(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, defaultAgenda)
	e.say(t, m.ID, "Alice", "We keep going around in circles.")
	require.NoError(t, e.meetings.SetInterventionRequest(context.Background(), m.ID,
		entities.NewInterventionRequest("stuck", e.now)))

	e.llm.OnJSON(TaskSummary, `{"summary":"stuck on planning"}`)
	e.llm.OnJSON(TaskEvaluation, `{"engagement":"ok","concreteness":"ok","direction":"drifting"}`)
	e.llm.OnJSON(TaskFacilitator, `{"next_utterance":"Let's timebox this. Bob, your view?"}`)

	result, err := e.intervention.Allow(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Let's timebox this. Bob, your view?", result.Message)

	stored, err := e.meetings.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.InterventionStatusCompleted, stored.InterventionRequest.Status)
	assert.Equal(t, e.now, stored.InterventionRequest.UpdatedAt)

	msgs, err := e.messages.ListByMeeting(context.Background(), m.ID, true)
	require.NoError(t, err)
	last := msgs[len(msgs)-1]
	assert.True(t, last.IsAI())
	assert.Equal(t, entities.MessageTypeIntervention, last.Meta.Type)
}

func TestAllow_CompletesEvenWhenGenerationFails(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, defaultAgenda)
	require.NoError(t, e.meetings.SetInterventionRequest(context.Background(), m.ID,
		entities.NewInterventionRequest("stuck", e.now)))
	e.llm.FailJSON(TaskSummary, errors.New("down"))
	e.llm.FailJSON(TaskEvaluation, errors.New("down"))
	e.llm.FailJSON(TaskFacilitator, errors.New("down"))

	_, err := e.intervention.Allow(context.Background(), m.ID)
	assert.ErrorIs(t, err, usecaseErrors.ErrAIAnalysisFailed)

	stored, err := e.meetings.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.InterventionStatusCompleted, stored.InterventionRequest.Status)
}

func TestAllow_UnknownMeeting(t *testing.T) {
	e := newEnv(t)
	_, err := e.intervention.Allow(context.Background(), "missing")
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingNotFound)
}
