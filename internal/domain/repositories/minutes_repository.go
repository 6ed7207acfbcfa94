package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
)

// MinutesRepository stores the per-meeting minutes singleton
type MinutesRepository interface {
	// Get returns the minutes, nil when none were written yet
	Get(ctx context.Context, meetingID string) (*entities.Minutes, error)

	// Ensure creates the given minutes if none exist and returns the stored ones
	Ensure(ctx context.Context, minutes *entities.Minutes) (*entities.Minutes, error)

	// ReplaceAgenda overwrites the agenda list
	ReplaceAgenda(ctx context.Context, meetingID string, agenda []entities.MinutesAgendaItem) error

	// ReplaceDecisions overwrites the decision list
	ReplaceDecisions(ctx context.Context, meetingID string, decisions []entities.Decision) error

	// AppendDecision adds one decision
	AppendDecision(ctx context.Context, meetingID string, decision entities.Decision) error

	// ReplaceActionPlan overwrites the action plan
	ReplaceActionPlan(ctx context.Context, meetingID string, items []entities.ActionItem) error

	// AppendActionItem adds one action item
	AppendActionItem(ctx context.Context, meetingID string, item entities.ActionItem) error
}
