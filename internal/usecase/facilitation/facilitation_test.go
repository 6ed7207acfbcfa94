package facilitation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-facilitator/internal/adapter/repository/memory"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/meeting-facilitator/internal/usecase/errors"
	"github.com/johnquangdev/meeting-facilitator/pkg/ai"
	"github.com/johnquangdev/meeting-facilitator/pkg/ai/aitest"
)

const facilitatorName = "AI Facilitator"

type recordingSyncer struct {
	calls [][]entities.AgendaItem
}

func (r *recordingSyncer) SyncAgenda(_ context.Context, _ string, agenda []entities.AgendaItem) error {
	r.calls = append(r.calls, agenda)
	return nil
}

type env struct {
	meetings     *memory.MeetingRepository
	messages     *memory.MessageRepository
	feedbacks    *memory.FeedbackRepository
	llm          *aitest.Client
	syncer       *recordingSyncer
	locker       *cache.MemoryStore
	feedback     *FeedbackService
	intervention *InterventionService
	now          time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		meetings:  memory.NewMeetingRepository(),
		messages:  memory.NewMessageRepository(),
		feedbacks: memory.NewFeedbackRepository(),
		llm:       aitest.New(),
		syncer:    &recordingSyncer{},
		locker:    cache.NewMemoryStore(),
		now:       time.Date(2025, 1, 10, 1, 30, 0, 0, time.UTC),
	}
	t.Cleanup(func() { _ = e.locker.Close() })

	loader := NewInputLoader(e.meetings, e.messages, time.UTC)
	e.feedback = NewFeedbackService(loader, e.meetings, e.messages, e.feedbacks,
		NewPipeline(e.llm, "English", nil), e.syncer, facilitatorName, nil)
	e.feedback.now = func() time.Time { return e.now }

	e.intervention = NewInterventionService(loader, e.meetings, NewInterventionChecker(e.llm, "English", nil),
		e.feedback, e.locker, 10*time.Second, nil)
	e.intervention.now = func() time.Time { return e.now }
	return e
}

func (e *env) meeting(t *testing.T, agenda []entities.AgendaItem) *entities.Meeting {
	t.Helper()
	m := entities.NewMeeting("Sprint review", "Agree on the next sprint", "2025-01-10", "10:00", "11:00",
		[]string{"Alice", "Bob"}, agenda)
	require.NoError(t, e.meetings.Create(context.Background(), m))
	return m
}

func (e *env) say(t *testing.T, meetingID, speaker, text string) {
	t.Helper()
	e.now = e.now.Add(time.Second)
	require.NoError(t, e.messages.Append(context.Background(), entities.NewMessage(meetingID, speaker, text, e.now)))
}

var defaultAgenda = []entities.AgendaItem{{Topic: "Demo", Duration: 20}, {Topic: "Planning", Duration: 30}}

func TestGenerate_CreatesAgendaWhenMissing(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, nil)
	e.llm.OnJSON(TaskAgenda, "```json\n{\"agenda\":[{\"topic\":\"Goals\",\"duration\":15},{\"topic\":\" \",\"duration\":5},{\"topic\":\"Next steps\",\"duration\":10}]}\n```")

	result, err := e.feedback.Generate(context.Background(), m.ID)
	require.NoError(t, err)

	assert.Equal(t, "Agenda created.", result.Message)
	want := []entities.AgendaItem{{Topic: "Goals", Duration: 15}, {Topic: "Next steps", Duration: 10}}
	assert.Equal(t, want, result.Detail.Agenda)
	assert.Zero(t, e.llm.Count(TaskSummary))

	stored, err := e.meetings.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, want, stored.Agenda)
	require.Len(t, e.syncer.calls, 1)
	assert.Equal(t, want, e.syncer.calls[0])

	msgs, err := e.messages.ListByMeeting(context.Background(), m.ID, true)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, facilitatorName, msgs[0].Speaker)
	assert.Equal(t, entities.MessageTypeFeedback, msgs[0].Meta.Type)
}

func TestGenerate_AgendaNodeFailureKeepsMeetingUntouched(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, nil)
	e.llm.FailJSON(TaskAgenda, errors.New("quota exceeded"))

	result, err := e.feedback.Generate(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Agenda created.", result.Message)
	assert.Empty(t, result.Detail.Agenda)
	assert.NotNil(t, result.Detail.Agenda)

	stored, err := e.meetings.FindByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Agenda)
	assert.Empty(t, e.syncer.calls)
}

func TestGenerate_FeedbackBranch(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, defaultAgenda)
	e.say(t, m.ID, "Alice", "The demo went well.")
	require.NoError(t, e.messages.Append(context.Background(),
		entities.NewAIMessage(m.ID, facilitatorName, "earlier advice", entities.MessageTypeFeedback, e.now)))
	e.say(t, m.ID, "Bob", "I think planning will take long.")

	e.llm.OnJSON(TaskSummary, `{"summary":"Demo done, planning next."}`)
	e.llm.OnJSON(TaskEvaluation, `{"engagement":"balanced","concreteness":"low","direction":"on track"}`)
	e.llm.OnJSON(TaskFacilitator, `{"next_utterance":"Bob, which items worry you? Alice, what do you think?"}`)

	result, err := e.feedback.Generate(context.Background(), m.ID)
	require.NoError(t, err)

	assert.Equal(t, "Bob, which items worry you? Alice, what do you think?", result.Message)
	assert.Equal(t, "Demo done, planning next.", result.Detail.Summary)
	require.NotNil(t, result.Detail.Evaluation)
	assert.Equal(t, "low", result.Detail.Evaluation.Concreteness)
	assert.Zero(t, e.llm.Count(TaskAgenda))

	assert.NotContains(t, e.llm.Prompt(TaskSummary), "earlier advice")
	assert.Contains(t, e.llm.Prompt(TaskFacilitator), `"concreteness": "low"`)

	archived, err := e.feedback.List(context.Background(), m.ID)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, result.Message, archived[0].Message)
	assert.Equal(t, "Demo done, planning next.", archived[0].Detail.Summary)
}

func TestGenerate_DegradedNodesStillPost(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, defaultAgenda)
	e.say(t, m.ID, "Alice", "Hello")

	e.llm.FailJSON(TaskSummary, errors.New("timeout"))
	e.llm.OnJSON(TaskEvaluation, "not json at all")
	e.llm.OnJSON(TaskFacilitator, `{"next_utterance":"Shall we start with the demo?"}`)

	result, err := e.feedback.Generate(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shall we start with the demo?", result.Message)
	assert.Empty(t, result.Detail.Summary)
	assert.Nil(t, result.Detail.Evaluation)
}

func TestGenerate_EmptyMessageIsAnError(t *testing.T) {
	e := newEnv(t)
	m := e.meeting(t, defaultAgenda)
	e.llm.OnJSON(TaskSummary, `{"summary":""}`)
	e.llm.OnJSON(TaskEvaluation, `{"engagement":"","concreteness":"","direction":""}`)
	e.llm.OnJSON(TaskFacilitator, `{"next_utterance":"  "}`)

	_, err := e.feedback.Generate(context.Background(), m.ID)
	assert.ErrorIs(t, err, usecaseErrors.ErrEmptyFeedback)

	msgs, err := e.messages.ListByMeeting(context.Background(), m.ID, true)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestGenerate_FacilitatorFailureIsClassified(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"rejected request", errors.New("invalid api key"), usecaseErrors.ErrAIAnalysisFailed},
		{"provider down", errors.New("status 503: service unavailable"), usecaseErrors.ErrAIUnavailable},
		{"no content", ai.ErrEmptyResponse, usecaseErrors.ErrEmptyFeedback},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			m := e.meeting(t, defaultAgenda)
			e.llm.OnJSON(TaskSummary, `{"summary":"x"}`)
			e.llm.OnJSON(TaskEvaluation, `{"engagement":"a","concreteness":"b","direction":"c"}`)
			e.llm.FailJSON(TaskFacilitator, tc.err)

			_, err := e.feedback.Generate(context.Background(), m.ID)
			assert.ErrorIs(t, err, tc.want)

			msgs, err := e.messages.ListByMeeting(context.Background(), m.ID, true)
			require.NoError(t, err)
			assert.Empty(t, msgs)
		})
	}
}

func TestGenerate_UnknownMeeting(t *testing.T) {
	e := newEnv(t)

	_, err := e.feedback.Generate(context.Background(), "missing")
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingNotFound)

	_, err = e.feedback.List(context.Background(), "missing")
	assert.ErrorIs(t, err, usecaseErrors.ErrMeetingNotFound)
	assert.Zero(t, e.llm.Total())
}

func TestAgendaCreatedMessage(t *testing.T) {
	assert.Equal(t, "アジェンダを作成しました。", agendaCreatedMessage("Japanese"))
	assert.Equal(t, "アジェンダを作成しました。", agendaCreatedMessage("ja"))
	assert.Equal(t, "Agenda created.", agendaCreatedMessage("English"))
}
