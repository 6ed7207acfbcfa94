package minutes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/meeting-facilitator/internal/usecase/errors"
	"github.com/johnquangdev/meeting-facilitator/pkg/ai"
	"github.com/johnquangdev/meeting-facilitator/pkg/jobcontext"
)

// reconcileLockTTL outlives a job so a slow reconcile keeps its meeting to itself
const reconcileLockTTL = 3 * time.Minute

// ReconcileReport counts the changes applied to the minutes
type ReconcileReport struct {
	AgendaCompleted  int `json:"agenda_completed"`
	DecisionsAdded   int `json:"decisions_added"`
	DecisionsUpdated int `json:"decisions_updated"`
	DecisionsDeleted int `json:"decisions_deleted"`
	ActionsAdded     int `json:"actions_added"`
	ActionsUpdated   int `json:"actions_updated"`
	ActionsDeleted   int `json:"actions_deleted"`
}

// Changed reports whether anything was written
func (r ReconcileReport) Changed() bool {
	return r != ReconcileReport{}
}

// Reconciler keeps the minutes in line with the conversation
type Reconciler struct {
	minutes       *Service
	messageRepo   repositories.MessageRepository
	minutesRepo   repositories.MinutesRepository
	llm           ai.Client
	locker        cache.Locker
	historyWindow int
	logger        *zap.Logger
}

// NewReconciler creates a reconciler. historyWindow bounds the statements sent to the model.
// locker serialises reconciliation per meeting; nil falls back to a process-local lock.
func NewReconciler(
	minutes *Service,
	messageRepo repositories.MessageRepository,
	minutesRepo repositories.MinutesRepository,
	llm ai.Client,
	locker cache.Locker,
	historyWindow int,
	logger *zap.Logger,
) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locker == nil {
		locker = cache.NewMemoryStore()
	}
	return &Reconciler{
		minutes:       minutes,
		messageRepo:   messageRepo,
		minutesRepo:   minutesRepo,
		llm:           llm,
		locker:        locker,
		historyWindow: historyWindow,
		logger:        logger,
	}
}

// Reconcile asks the model how latest changes the minutes and applies the answer.
// Each of the three function calls is independent: a failed call leaves its part untouched.
// Reconciliations of one meeting run one at a time, since updates rewrite whole lists.
// Once part of the answer is stored the returned error is not retryable.
func (r *Reconciler) Reconcile(ctx context.Context, meetingID string, latest *entities.Message) (ReconcileReport, error) {
	var report ReconcileReport
	start := time.Now()
	if latest == nil || latest.IsAI() {
		return report, nil
	}

	key := cache.MinutesLockKey(meetingID)
	token, err := cache.Acquire(ctx, r.locker, key, reconcileLockTTL)
	if err != nil {
		return report, fmt.Errorf("failed to lock minutes: %w", err)
	}
	defer func() {
		if err := r.locker.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
			r.logger.Warn("Failed to release minutes lock", zap.String("meeting_id", meetingID), zap.Error(err))
		}
	}()

	doc, err := r.minutes.Get(ctx, meetingID)
	if err != nil {
		return report, err
	}

	history, err := r.messageRepo.ListByMeeting(ctx, meetingID, false)
	if err != nil {
		return report, usecaseErrors.Query("load history", err)
	}

	prompt, err := buildPrompt(latest, history, doc, r.historyWindow, r.minutes.loc)
	if err != nil {
		return report, err
	}

	calls := r.callAll(ctx, meetingID, prompt)

	var errs []error
	if call := calls[FuncAgendaCompletion]; call != nil {
		if n := doc.CompleteAgenda(call.Strings("completed_agenda_ids")); n > 0 {
			if err := r.minutesRepo.ReplaceAgenda(ctx, meetingID, doc.Agenda); err != nil {
				errs = append(errs, fmt.Errorf("replace agenda: %w", err))
			} else {
				report.AgendaCompleted = n
			}
		}
	}
	if call := calls[FuncDecision]; call != nil {
		errs = append(errs, r.applyDecision(ctx, meetingID, doc, call, &report))
	}
	if call := calls[FuncActionPlan]; call != nil {
		errs = append(errs, r.applyActionPlan(ctx, meetingID, doc, call, &report))
	}

	if report.Changed() {
		r.logger.Info("Minutes updated",
			zap.String("meeting_id", meetingID),
			zap.Any("report", report),
			zap.Duration("took", time.Since(start)),
		)
	}

	err = errors.Join(errs...)
	if err != nil && report.Changed() {
		err = jobcontext.Permanent(err)
	}
	return report, err
}

// callAll runs the three forced function calls concurrently
func (r *Reconciler) callAll(ctx context.Context, meetingID, prompt string) map[string]*ai.FunctionCall {
	funcs := []ai.FunctionDeclaration{agendaCompletionFunc, decisionFunc, actionPlanFunc}
	results := make([]*ai.FunctionCall, len(funcs))

	var wg sync.WaitGroup
	for i, fn := range funcs {
		wg.Add(1)
		go func(i int, fn ai.FunctionDeclaration) {
			defer wg.Done()
			call, err := r.llm.CallFunction(ctx, ai.FunctionRequest{
				Task:        fn.Name,
				System:      reconcileSystemPrompt,
				Prompt:      prompt,
				Function:    fn,
				Temperature: 0.1,
			})
			if err != nil {
				r.logger.Warn("Minutes function call failed",
					zap.String("meeting_id", meetingID),
					zap.String("function", fn.Name),
					zap.Error(err),
				)
				return
			}
			results[i] = call
		}(i, fn)
	}
	wg.Wait()

	out := make(map[string]*ai.FunctionCall, len(funcs))
	for i, fn := range funcs {
		if results[i] != nil {
			out[fn.Name] = results[i]
		}
	}
	return out
}

func (r *Reconciler) applyDecision(ctx context.Context, meetingID string, doc *entities.Minutes, call *ai.FunctionCall, report *ReconcileReport) error {
	changed := false
	if call.Bool("update_decision") && doc.UpdateDecision(call.String("decision_id"), call.String("new_decision_text")) {
		report.DecisionsUpdated++
		changed = true
	}
	if call.Bool("delete_decision") && doc.DeleteDecision(call.String("decision_id_to_delete")) {
		report.DecisionsDeleted++
		changed = true
	}
	if changed {
		if err := r.minutesRepo.ReplaceDecisions(ctx, meetingID, doc.Decisions); err != nil {
			return fmt.Errorf("replace decisions: %w", err)
		}
	}

	if call.Bool("add_decision") {
		decision, err := doc.AddDecision(call.String("add_decision_text"))
		if errors.Is(err, entities.ErrEmptyText) {
			return nil
		}
		if err := r.minutesRepo.AppendDecision(ctx, meetingID, decision); err != nil {
			return fmt.Errorf("append decision: %w", err)
		}
		report.DecisionsAdded++
	}
	return nil
}

func (r *Reconciler) applyActionPlan(ctx context.Context, meetingID string, doc *entities.Minutes, call *ai.FunctionCall, report *ReconcileReport) error {
	changed := false
	if call.Bool("update_action_plan") && doc.UpdateActionItem(
		call.String("action_id"),
		call.String("new_action_text"),
		call.String("new_assigned_to"),
		call.String("new_due_date"),
	) {
		report.ActionsUpdated++
		changed = true
	}
	if call.Bool("delete_action_plan") && doc.DeleteActionItem(call.String("action_id_to_delete")) {
		report.ActionsDeleted++
		changed = true
	}
	if changed {
		if err := r.minutesRepo.ReplaceActionPlan(ctx, meetingID, doc.ActionPlan); err != nil {
			return fmt.Errorf("replace action plan: %w", err)
		}
	}

	if call.Bool("add_action_plan") {
		item, err := doc.AddActionItem(
			call.String("add_action_plan_text"),
			call.String("add_assigned_to"),
			call.String("add_due_date"),
		)
		if errors.Is(err, entities.ErrEmptyText) {
			return nil
		}
		if err := r.minutesRepo.AppendActionItem(ctx, meetingID, item); err != nil {
			return fmt.Errorf("append action item: %w", err)
		}
		report.ActionsAdded++
	}
	return nil
}
