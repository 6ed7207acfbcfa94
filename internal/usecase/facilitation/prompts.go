package facilitation

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/pkg/ai"
)

// Task labels reported to metrics and logs
const (
	TaskAgenda       = "feedback_agenda"
	TaskSummary      = "feedback_summary"
	TaskEvaluation   = "feedback_evaluation"
	TaskFacilitator  = "feedback_facilitator"
	TaskIntervention = "intervention_check"
)

const agendaSystemPrompt = `You draft meeting agendas.
From the purpose, participants and time slot, list the steps needed to reach the purpose.
Keep the number of items and their durations realistic for the slot, let every participant
take part, and make the expected outcome of each item clear.
Each item has a topic and a duration in minutes.`

const summarySystemPrompt = `You summarize a meeting that is still in progress.
Cover the main topics discussed, important opinions, decisions or agreements and open issues.
The meeting is not over, so not every agenda item has to be covered.
Ignore anything the AI facilitator said.`

const evaluationSystemPrompt = `You evaluate how a meeting is going on three axes.
engagement: is speaking time balanced, is everyone taking part, is the exchange constructive.
concreteness: are statements abstract, are there concrete proposals or examples, do participants share an understanding.
direction: is the discussion on track, is the mood constructive, are next steps clear.`

const facilitatorSystemPrompt = `You are the facilitator of the meeting.
Using the evaluation, address the issue with the highest priority:
low engagement (ask quiet participants, acknowledge contributions),
low concreteness (make abstract points concrete, give examples),
or drifting direction (steer back to the purpose, suggest the next step).
Call participants by name, confirm your understanding, give an example tied to the agenda
and always end by asking the others for their opinion. Speak naturally and politely,
without explanations about yourself.`

const interventionSystemPrompt = `You watch a meeting and decide whether the facilitator should step in.
Intervene as little as possible and never while the participants' positions are still unclear.
Intervene only when the participants cannot fix the situation themselves
(attempts to get back on track failed, no sign of trying, a conflict keeps growing)
or when time management is failing (more than half the planned time on one item,
too many items left for the remaining time).`

// withLanguage appends the reply language to a system prompt
func withLanguage(prompt, language string) string {
	if language == "" {
		return prompt
	}
	return fmt.Sprintf("%s\nWrite every text value in %s.", prompt, language)
}

// agendaCreatedMessage is posted after the agenda node ran
func agendaCreatedMessage(language string) string {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "japanese", "ja", "日本語":
		return "アジェンダを作成しました。"
	default:
		return "Agenda created."
	}
}

var agendaSchema = ai.Object(map[string]*ai.Schema{
	"agenda": ai.Array(ai.Object(map[string]*ai.Schema{
		"topic":    ai.String("What the item is about."),
		"duration": ai.Integer("Planned length in minutes."),
	}, "topic", "duration"), "Agenda items of the meeting."),
}, "agenda")

var summarySchema = ai.Object(map[string]*ai.Schema{
	"summary": ai.String("Summary of the meeting so far."),
}, "summary")

var evaluationSchema = ai.Object(map[string]*ai.Schema{
	"engagement":   ai.String("Evaluation of participant engagement."),
	"concreteness": ai.String("Evaluation of how concrete the discussion is."),
	"direction":    ai.String("Evaluation of the direction of the discussion."),
}, "engagement", "concreteness", "direction")

var facilitatorSchema = ai.Object(map[string]*ai.Schema{
	"next_utterance": ai.String("What the facilitator says next."),
}, "next_utterance")

var interventionSchema = ai.Object(map[string]*ai.Schema{
	"intervention_needed": ai.Boolean("Whether the facilitator should intervene."),
	"reason":              ai.String("Reason for the decision."),
}, "intervention_needed", "reason")

type agendaPayload struct {
	Purpose      string   `json:"purpose"`
	Participants []string `json:"participants"`
	StartAt      string   `json:"start_at"`
	EndAt        string   `json:"end_at"`
}

type discussionPayload struct {
	Purpose      string                `json:"purpose"`
	Agenda       []entities.AgendaItem `json:"agenda"`
	Participants []string              `json:"participants"`
	History      []HistoryEntry        `json:"history"`
	StartAt      string                `json:"start_at,omitempty"`
	EndAt        string                `json:"end_at,omitempty"`
}

type facilitatorPayload struct {
	discussionPayload
	Evaluation *entities.Evaluation `json:"evaluation"`
}

func newDiscussionPayload(in *MeetingInput) discussionPayload {
	return discussionPayload{
		Purpose:      in.Purpose,
		Agenda:       in.Agenda,
		Participants: in.Participants,
		History:      in.History,
		StartAt:      in.StartAt,
		EndAt:        in.EndAt,
	}
}

type agendaOutput struct {
	Agenda []entities.AgendaItem `json:"agenda"`
}

type summaryOutput struct {
	Summary string `json:"summary"`
}

type facilitatorOutput struct {
	NextUtterance string `json:"next_utterance"`
}

type interventionOutput struct {
	InterventionNeeded bool   `json:"intervention_needed"`
	Reason             string `json:"reason"`
}
