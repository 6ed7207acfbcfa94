package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
)

func TestMeetingRow_InterventionColumns(t *testing.T) {
	meeting := entities.NewMeeting("Sprint review", "demo", "2025-01-10", "10:00", "11:00", nil, nil)

	row := newMeetingRow(meeting)
	assert.Nil(t, row.InterventionStatus)
	assert.Nil(t, row.toEntity().InterventionRequest)
	assert.NotNil(t, row.Participants)

	at := time.Date(2025, 1, 10, 1, 5, 0, 0, time.UTC)
	meeting.InterventionRequest = entities.NewInterventionRequest("silence", at)

	got := newMeetingRow(meeting).toEntity()
	require.NotNil(t, got.InterventionRequest)
	assert.True(t, got.InterventionRequest.IsPending())
	assert.Equal(t, "silence", got.InterventionRequest.Reason)
	assert.Equal(t, at, got.InterventionRequest.UpdatedAt)
}

func TestMessageRow_MetaIsOptional(t *testing.T) {
	at := time.Now()
	human := entities.NewMessage("m-1", "Sato", "hello", at)
	assert.Nil(t, newMessageRow(human).MetaRole)
	assert.False(t, newMessageRow(human).toEntity().IsAI())

	ai := entities.NewAIMessage("m-1", "AI Facilitator", "summary", entities.MessageTypeFeedback, at)
	row := newMessageRow(ai)
	require.NotNil(t, row.MetaRole)
	assert.Equal(t, entities.RoleAI, *row.MetaRole)
	assert.True(t, row.toEntity().IsAI())
	assert.Equal(t, entities.MessageTypeFeedback, row.toEntity().Meta.Type)
}

func TestMinutesRow_AlwaysUsesSingletonName(t *testing.T) {
	minutes := &entities.Minutes{MeetingID: "m-1", Name: "other"}

	row := newMinutesRow(minutes)
	assert.Equal(t, entities.MinutesDocumentName, row.Name)

	got := row.toEntity()
	assert.NotNil(t, got.Agenda)
	assert.NotNil(t, got.Decisions)
	assert.NotNil(t, got.ActionPlan)
}

func TestRepositories_NonUUIDMeetingIDMatchesNothing(t *testing.T) {
	// a malformed id must never reach the uuid columns, so no connection is needed
	ctx := context.Background()

	meeting, err := NewMeetingRepository(nil).FindByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, meeting)

	err = NewMeetingRepository(nil).UpdateAgenda(ctx, "abc", nil)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	messages, err := NewMessageRepository(nil).ListByMeeting(ctx, "abc", true)
	require.NoError(t, err)
	assert.Empty(t, messages)

	feedbacks, err := NewFeedbackRepository(nil).ListByMeeting(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, feedbacks)

	minutes, err := NewMinutesRepository(nil).Get(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, minutes)
}
