package facilitation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/pkg/ai"
)

// FeedbackResult is the outcome of one pipeline run
type FeedbackResult struct {
	Message       string                  `json:"message"`
	Detail        entities.FeedbackDetail `json:"detail"`
	AgendaCreated bool                    `json:"-"`

	// failure is why the facilitator node produced nothing, if it errored
	failure error
}

// Pipeline sequences the facilitation calls: a meeting without agenda gets one,
// otherwise the discussion is summarized, evaluated and answered.
type Pipeline struct {
	llm      ai.Client
	language string
	logger   *zap.Logger
}

func NewPipeline(llm ai.Client, language string, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{llm: llm, language: language, logger: logger}
}

// Run never fails: a node that errors is logged and contributes its empty default
func (p *Pipeline) Run(ctx context.Context, in *MeetingInput) FeedbackResult {
	if len(in.Agenda) == 0 {
		agenda := p.createAgenda(ctx, in)
		return FeedbackResult{
			Message:       agendaCreatedMessage(p.language),
			Detail:        entities.FeedbackDetail{Agenda: agenda},
			AgendaCreated: len(agenda) > 0,
		}
	}

	summary := p.summarize(ctx, in)
	evaluation := p.evaluate(ctx, in)
	message, err := p.facilitate(ctx, in, evaluation)

	return FeedbackResult{
		Message: message,
		Detail: entities.FeedbackDetail{
			Summary:    summary,
			Evaluation: evaluation,
		},
		failure: err,
	}
}

func (p *Pipeline) createAgenda(ctx context.Context, in *MeetingInput) []entities.AgendaItem {
	var out agendaOutput
	err := p.generate(ctx, TaskAgenda, agendaSystemPrompt, 0.7, agendaSchema, agendaPayload{
		Purpose:      in.Purpose,
		Participants: in.Participants,
		StartAt:      in.StartAt,
		EndAt:        in.EndAt,
	}, &out)
	if err != nil {
		p.nodeFailed(in.MeetingID, TaskAgenda, err)
		return []entities.AgendaItem{}
	}

	agenda := make([]entities.AgendaItem, 0, len(out.Agenda))
	for _, item := range out.Agenda {
		item.Topic = strings.TrimSpace(item.Topic)
		if item.Topic == "" {
			continue
		}
		if item.Duration < 0 {
			item.Duration = 0
		}
		agenda = append(agenda, item)
	}
	return agenda
}

func (p *Pipeline) summarize(ctx context.Context, in *MeetingInput) string {
	var out summaryOutput
	if err := p.generate(ctx, TaskSummary, summarySystemPrompt, 0.3, summarySchema, newDiscussionPayload(in), &out); err != nil {
		p.nodeFailed(in.MeetingID, TaskSummary, err)
		return ""
	}
	return strings.TrimSpace(out.Summary)
}

func (p *Pipeline) evaluate(ctx context.Context, in *MeetingInput) *entities.Evaluation {
	var out entities.Evaluation
	if err := p.generate(ctx, TaskEvaluation, evaluationSystemPrompt, 0.3, evaluationSchema, newDiscussionPayload(in), &out); err != nil {
		p.nodeFailed(in.MeetingID, TaskEvaluation, err)
		return nil
	}
	if out.IsZero() {
		return nil
	}
	return &out
}

func (p *Pipeline) facilitate(ctx context.Context, in *MeetingInput, evaluation *entities.Evaluation) (string, error) {
	var out facilitatorOutput
	payload := facilitatorPayload{discussionPayload: newDiscussionPayload(in), Evaluation: evaluation}
	if err := p.generate(ctx, TaskFacilitator, facilitatorSystemPrompt, 0.7, facilitatorSchema, payload, &out); err != nil {
		p.nodeFailed(in.MeetingID, TaskFacilitator, err)
		return "", err
	}
	return strings.TrimSpace(out.NextUtterance), nil
}

// generate renders payload as JSON, asks for a schema-constrained answer and decodes it into out
func (p *Pipeline) generate(ctx context.Context, task, system string, temperature float32, schema *ai.Schema, payload, out any) error {
	return generateJSON(ctx, p.llm, ai.JSONRequest{
		Task:        task,
		System:      withLanguage(system, p.language),
		Schema:      schema,
		Temperature: temperature,
	}, payload, out)
}

func (p *Pipeline) nodeFailed(meetingID, task string, err error) {
	p.logger.Warn("Facilitation step failed, using default",
		zap.String("meeting_id", meetingID),
		zap.String("task", task),
		zap.Error(err),
	)
}

func generateJSON(ctx context.Context, llm ai.Client, req ai.JSONRequest, payload, out any) error {
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render prompt: %w", err)
	}
	req.Prompt = string(body)

	text, err := llm.GenerateJSON(ctx, req)
	if err != nil {
		return err
	}
	return ai.DecodeJSON(text, out)
}
