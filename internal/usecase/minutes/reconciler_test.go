package minutes

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-facilitator/internal/adapter/repository/memory"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-facilitator/pkg/ai"
	"github.com/johnquangdev/meeting-facilitator/pkg/ai/aitest"
	"github.com/johnquangdev/meeting-facilitator/pkg/jobcontext"
)

type fixture struct {
	meetings *memory.MeetingRepository
	messages *memory.MessageRepository
	minutes  *memory.MinutesRepository
	llm      *aitest.Client
	service  *Service
	rec      *Reconciler
	meeting  *entities.Meeting
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		meetings: memory.NewMeetingRepository(),
		messages: memory.NewMessageRepository(),
		minutes:  memory.NewMinutesRepository(),
		llm:      aitest.New(),
	}
	f.service = NewService(f.meetings, f.minutes, nil, time.UTC, nil)
	locker := cache.NewMemoryStore()
	t.Cleanup(func() { _ = locker.Close() })
	f.rec = NewReconciler(f.service, f.messages, f.minutes, f.llm, locker, 30, nil)

	f.meeting = entities.NewMeeting("Weekly sync", "Plan the release", "2025-01-10", "10:00", "11:00",
		[]string{"Alice", "Bob"},
		[]entities.AgendaItem{{Topic: "Release date", Duration: 20}, {Topic: "Staffing", Duration: 10}},
	)
	require.NoError(t, f.meetings.Create(context.Background(), f.meeting))
	return f
}

func (f *fixture) say(t *testing.T, speaker, text string, at time.Time) *entities.Message {
	t.Helper()
	msg := entities.NewMessage(f.meeting.ID, speaker, text, at)
	require.NoError(t, f.messages.Append(context.Background(), msg))
	return msg
}

func TestReconcile_AppliesAllThreeFunctions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.service.Get(ctx, f.meeting.ID)
	require.NoError(t, err)
	require.Len(t, doc.Agenda, 2)

	base := time.Date(2025, 1, 10, 1, 0, 0, 0, time.UTC)
	f.say(t, "Alice", "Let's ship on the 20th.", base)
	latest := f.say(t, "Bob", "Agreed, and I will write the release notes by the 17th.", base.Add(time.Minute))

	f.llm.OnCall(FuncAgendaCompletion, map[string]any{"completed_agenda_ids": []any{doc.Agenda[0].ID, "unknown"}})
	f.llm.OnCall(FuncDecision, map[string]any{"add_decision": true, "add_decision_text": "Release on Jan 20"})
	f.llm.OnCall(FuncActionPlan, map[string]any{
		"add_action_plan":      true,
		"add_action_plan_text": "Write release notes",
		"add_assigned_to":      "Bob",
		"add_due_date":         "2025-01-17",
	})

	report, err := f.rec.Reconcile(ctx, f.meeting.ID, latest)
	require.NoError(t, err)
	assert.Equal(t, ReconcileReport{AgendaCompleted: 1, DecisionsAdded: 1, ActionsAdded: 1}, report)

	stored, err := f.minutes.Get(ctx, f.meeting.ID)
	require.NoError(t, err)
	assert.True(t, stored.Agenda[0].Completed)
	assert.False(t, stored.Agenda[1].Completed)
	require.Len(t, stored.Decisions, 1)
	assert.Equal(t, "Release on Jan 20", stored.Decisions[0].Text)
	require.Len(t, stored.ActionPlan, 1)
	assert.Equal(t, "Bob", stored.ActionPlan[0].AssignedTo)
	assert.Equal(t, "2025-01-17", stored.ActionPlan[0].DueDate)

	prompt := f.llm.Prompt(FuncDecision)
	assert.Contains(t, prompt, "I will write the release notes")
	assert.Contains(t, prompt, "Let's ship on the 20th.")
}

func TestReconcile_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Get(ctx, f.meeting.ID)
	require.NoError(t, err)
	keep := entities.Decision{ID: "d1", Text: "Use Go"}
	drop := entities.Decision{ID: "d2", Text: "Use Rust"}
	require.NoError(t, f.minutes.ReplaceDecisions(ctx, f.meeting.ID, []entities.Decision{keep, drop}))
	require.NoError(t, f.minutes.ReplaceActionPlan(ctx, f.meeting.ID, []entities.ActionItem{
		{ID: "a1", Task: "Draft plan", AssignedTo: "Alice", DueDate: entities.DefaultDueDate},
		{ID: "a2", Task: "Old task", AssignedTo: "Bob", DueDate: entities.DefaultDueDate},
	}))

	latest := f.say(t, "Alice", "Actually Go 1.24, forget Rust. Bob's task is gone, mine is due Friday.", time.Now())

	f.llm.OnCall(FuncDecision, map[string]any{
		"update_decision":       true,
		"decision_id":           "d1",
		"new_decision_text":     "Use Go 1.24",
		"delete_decision":       true,
		"decision_id_to_delete": "d2",
	})
	f.llm.OnCall(FuncActionPlan, map[string]any{
		"update_action_plan":  true,
		"action_id":           "a1",
		"new_due_date":        "2025-01-17",
		"delete_action_plan":  true,
		"action_id_to_delete": "a2",
	})

	report, err := f.rec.Reconcile(ctx, f.meeting.ID, latest)
	require.NoError(t, err)
	assert.Equal(t, 1, report.DecisionsUpdated)
	assert.Equal(t, 1, report.DecisionsDeleted)
	assert.Equal(t, 1, report.ActionsUpdated)
	assert.Equal(t, 1, report.ActionsDeleted)
	assert.Zero(t, report.AgendaCompleted)

	stored, err := f.minutes.Get(ctx, f.meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, []entities.Decision{{ID: "d1", Text: "Use Go 1.24"}}, stored.Decisions)
	require.Len(t, stored.ActionPlan, 1)
	assert.Equal(t, "Draft plan", stored.ActionPlan[0].Task)
	assert.Equal(t, "2025-01-17", stored.ActionPlan[0].DueDate)
}

func TestReconcile_FailedCallLeavesOthersApplied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	latest := f.say(t, "Alice", "We decided to hire one more engineer.", time.Now())

	f.llm.FailCall(FuncAgendaCompletion, errors.New("quota"))
	f.llm.OnCall(FuncDecision, map[string]any{"add_decision": true, "add_decision_text": "Hire one engineer"})
	f.llm.FailCall(FuncActionPlan, errors.New("timeout"))

	report, err := f.rec.Reconcile(ctx, f.meeting.ID, latest)
	require.NoError(t, err)
	assert.Equal(t, ReconcileReport{DecisionsAdded: 1}, report)
}

func TestReconcile_BlankTextIsIgnored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	latest := f.say(t, "Alice", "Hmm.", time.Now())

	f.llm.OnCall(FuncDecision, map[string]any{"add_decision": true, "add_decision_text": "   "})
	f.llm.OnCall(FuncActionPlan, map[string]any{"add_action_plan": true})

	report, err := f.rec.Reconcile(ctx, f.meeting.ID, latest)
	require.NoError(t, err)
	assert.False(t, report.Changed())

	stored, err := f.minutes.Get(ctx, f.meeting.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Decisions)
	assert.Empty(t, stored.ActionPlan)
}

func TestReconcile_SkipsAIMessages(t *testing.T) {
	f := newFixture(t)
	msg := entities.NewAIMessage(f.meeting.ID, "AI Facilitator", "Let's move on.", entities.MessageTypeFeedback, time.Now())

	report, err := f.rec.Reconcile(context.Background(), f.meeting.ID, msg)
	require.NoError(t, err)
	assert.False(t, report.Changed())
	assert.Zero(t, f.llm.Total())

	_, err = f.rec.Reconcile(context.Background(), f.meeting.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, f.llm.Total())
}

func TestReconcile_UnknownMeeting(t *testing.T) {
	f := newFixture(t)
	msg := entities.NewMessage("missing", "Alice", "hello", time.Now())

	_, err := f.rec.Reconcile(context.Background(), "missing", msg)
	require.Error(t, err)
	assert.Zero(t, f.llm.Total())
}

func TestReconcile_SameMeetingRunsOneAtATime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Get(ctx, f.meeting.ID)
	require.NoError(t, err)
	require.NoError(t, f.minutes.ReplaceDecisions(ctx, f.meeting.ID, []entities.Decision{{ID: "d1", Text: "Ship Monday"}}))

	base := time.Now()
	alice := f.say(t, "Alice", "Let's ship Friday instead.", base)
	bob := f.say(t, "Bob", "Monday is off the table.", base.Add(time.Second))

	var inFlight, overlapped int32
	f.llm.HandleCall(FuncDecision, func(req ai.FunctionRequest) (map[string]any, error) {
		if atomic.AddInt32(&inFlight, 1) > 1 {
			atomic.StoreInt32(&overlapped, 1)
		}
		defer atomic.AddInt32(&inFlight, -1)
		time.Sleep(30 * time.Millisecond)

		var prompt reconcilePrompt
		if err := json.Unmarshal([]byte(req.Prompt), &prompt); err != nil {
			return nil, err
		}
		if prompt.LatestStatement.Speaker == "Alice" {
			return map[string]any{"add_decision": true, "add_decision_text": "Ship Friday"}, nil
		}
		return map[string]any{"delete_decision": true, "decision_id_to_delete": "d1"}, nil
	})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, msg := range []*entities.Message{alice, bob} {
		wg.Add(1)
		go func(i int, msg *entities.Message) {
			defer wg.Done()
			_, errs[i] = f.rec.Reconcile(ctx, f.meeting.ID, msg)
		}(i, msg)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	stored, err := f.minutes.Get(ctx, f.meeting.ID)
	require.NoError(t, err)
	require.Len(t, stored.Decisions, 1)
	assert.Equal(t, "Ship Friday", stored.Decisions[0].Text)
	assert.Zero(t, atomic.LoadInt32(&overlapped), "reconciles of one meeting must not overlap")
	assert.Equal(t, 2, f.llm.Count(FuncDecision))
}

// flakyMinutes fails AppendDecision a fixed number of times
type flakyMinutes struct {
	*memory.MinutesRepository
	mu       sync.Mutex
	failures int
}

func (r *flakyMinutes) AppendDecision(ctx context.Context, meetingID string, decision entities.Decision) error {
	r.mu.Lock()
	if r.failures > 0 {
		r.failures--
		r.mu.Unlock()
		return errors.New("connection reset by peer")
	}
	r.mu.Unlock()
	return r.MinutesRepository.AppendDecision(ctx, meetingID, decision)
}

func runAsJob(t *testing.T, rec *Reconciler, meetingID string, latest *entities.Message) error {
	t.Helper()
	ctx, cancel := jobcontext.JobBegin(context.Background(), "analysis", meetingID, 0, jobcontext.Options{
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})
	defer cancel()
	return jobcontext.JobEnd(ctx, func(ctx context.Context) error {
		_, err := rec.Reconcile(ctx, meetingID, latest)
		return err
	})
}

func TestReconcile_PartialWriteIsNotRetried(t *testing.T) {
	f := newFixture(t)
	flaky := &flakyMinutes{MinutesRepository: f.minutes, failures: 1}
	rec := NewReconciler(f.service, f.messages, flaky, f.llm, nil, 30, nil)
	latest := f.say(t, "Bob", "We ship Friday and I will write the notes.", time.Now())

	f.llm.OnCall(FuncDecision, map[string]any{"add_decision": true, "add_decision_text": "Ship Friday"})
	f.llm.OnCall(FuncActionPlan, map[string]any{
		"add_action_plan":      true,
		"add_action_plan_text": "Bob writes notes",
		"add_assigned_to":      "Bob",
	})

	err := runAsJob(t, rec, f.meeting.ID, latest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.False(t, jobcontext.IsRetryableError(err))
	assert.Equal(t, 1, f.llm.Count(FuncActionPlan), "a stored action item must not be proposed twice")

	stored, err := f.minutes.Get(context.Background(), f.meeting.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Decisions)
	require.Len(t, stored.ActionPlan, 1)
	assert.Equal(t, "Bob writes notes", stored.ActionPlan[0].Task)
}

func TestReconcile_FailureBeforeAnyWriteIsRetried(t *testing.T) {
	f := newFixture(t)
	flaky := &flakyMinutes{MinutesRepository: f.minutes, failures: 1}
	rec := NewReconciler(f.service, f.messages, flaky, f.llm, nil, 30, nil)
	latest := f.say(t, "Alice", "We ship Friday.", time.Now())

	f.llm.OnCall(FuncDecision, map[string]any{"add_decision": true, "add_decision_text": "Ship Friday"})

	require.NoError(t, runAsJob(t, rec, f.meeting.ID, latest))
	assert.Equal(t, 2, f.llm.Count(FuncDecision))

	stored, err := f.minutes.Get(context.Background(), f.meeting.ID)
	require.NoError(t, err)
	require.Len(t, stored.Decisions, 1)
	assert.Equal(t, "Ship Friday", stored.Decisions[0].Text)
}

func TestBuildPrompt_WindowAndExclusions(t *testing.T) {
	base := time.Date(2025, 1, 10, 1, 0, 0, 0, time.UTC)
	var history []*entities.Message
	for i, text := range []string{"one", "two", "three", "four"} {
		history = append(history, entities.NewMessage("m", "Alice", text, base.Add(time.Duration(i)*time.Minute)))
	}
	history = append(history, entities.NewAIMessage("m", "AI", "ai says hi", entities.MessageTypeFeedback, base.Add(5*time.Minute)))
	latest := history[3]

	prompt, err := buildPrompt(latest, history, entities.NewMinutes("m", nil), 3, time.UTC)
	require.NoError(t, err)

	assert.NotContains(t, prompt, `"one"`)
	assert.NotContains(t, prompt, `"two"`)
	assert.Contains(t, prompt, `"three"`)
	assert.Equal(t, 1, strings.Count(prompt, `"four"`))
	assert.NotContains(t, prompt, "ai says hi")
	assert.Contains(t, prompt, `"latest_statement"`)
	assert.Contains(t, prompt, "2025-01-10 01:03:00")
}
