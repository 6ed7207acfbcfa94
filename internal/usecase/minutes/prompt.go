package minutes

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

const reconcileSystemPrompt = `You keep the minutes of a meeting that is in progress.
You receive the latest statement, the recent conversation and the current minutes.
Only record what the participants actually agreed on or assigned. Refer to existing
entries by their id. When nothing needs to change, call the function with every flag false.`

type historyLine struct {
	Speaker string `json:"speaker"`
	Message string `json:"message"`
	SpeakAt string `json:"speak_at"`
}

type reconcilePrompt struct {
	LatestStatement historyLine                  `json:"latest_statement"`
	History         []historyLine                `json:"history"`
	Agenda          []entities.MinutesAgendaItem `json:"agenda"`
	Decisions       []entities.Decision          `json:"decisions"`
	ActionPlan      []entities.ActionItem        `json:"action_plan"`
}

func toLine(m *entities.Message, loc *time.Location) historyLine {
	return historyLine{
		Speaker: m.Speaker,
		Message: m.Message,
		SpeakAt: m.SpeakAt.In(loc).Format(entities.DateTimeLayout),
	}
}

// buildPrompt renders the latest statement, the last window statements and the minutes
func buildPrompt(latest *entities.Message, history []*entities.Message, minutes *entities.Minutes, window int, loc *time.Location) (string, error) {
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}

	payload := reconcilePrompt{
		LatestStatement: toLine(latest, loc),
		History:         make([]historyLine, 0, len(history)),
		Agenda:          minutes.Agenda,
		Decisions:       minutes.Decisions,
		ActionPlan:      minutes.ActionPlan,
	}
	for _, m := range history {
		if m.IsAI() || m.ID == latest.ID {
			continue
		}
		payload.History = append(payload.History, toLine(m, loc))
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render minutes prompt: %w", err)
	}
	return string(body), nil
}
