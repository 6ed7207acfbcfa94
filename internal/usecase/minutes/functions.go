package minutes

import "github.com/johnquangdev/meeting-facilitator/pkg/ai"

// Function names the model is forced to call
const (
	FuncAgendaCompletion = "determine_update_agenda_completion"
	FuncDecision         = "determine_update_decision"
	FuncActionPlan       = "determine_update_action_plan"
)

var agendaCompletionFunc = ai.FunctionDeclaration{
	Name: FuncAgendaCompletion,
	Description: "Determine whether agenda items have been completed based on the latest statement. " +
		"Consider past discussions and existing records to ensure accuracy.",
	Parameters: ai.Object(map[string]*ai.Schema{
		"completed_agenda_ids": ai.Array(ai.String(""), "List of agenda IDs that have been completed."),
	}),
}

var decisionFunc = ai.FunctionDeclaration{
	Name: FuncDecision,
	Description: "Determine whether to add, update, or delete decisions based on the latest statement. " +
		"Ensure that the decision is expressed in a single line while considering past discussions and records.",
	Parameters: ai.Object(map[string]*ai.Schema{
		"add_decision":          ai.Boolean("Whether to add a new decision."),
		"add_decision_text":     ai.String("Content of the new decision."),
		"update_decision":       ai.Boolean("Whether to update an existing decision."),
		"decision_id":           ai.String("ID of the decision to update."),
		"new_decision_text":     ai.String("New text for the updated decision."),
		"delete_decision":       ai.Boolean("Whether to delete an existing decision."),
		"decision_id_to_delete": ai.String("ID of the decision to delete."),
	}),
}

var actionPlanFunc = ai.FunctionDeclaration{
	Name: FuncActionPlan,
	Description: "Determine whether to add, update, or delete action plans based on the latest statement. " +
		"Ensure that the action plan is expressed in a single line while considering past discussions and records.",
	Parameters: ai.Object(map[string]*ai.Schema{
		"add_action_plan":      ai.Boolean("Whether to add a new action plan."),
		"add_action_plan_text": ai.String("Text of the new action plan."),
		"add_assigned_to":      ai.String("Person responsible for the action plan (leave empty if unknown)."),
		"add_due_date":         ai.String("Use YYYY-MM-DD format for confirmed deadlines; leave empty if uncertain."),
		"update_action_plan":   ai.Boolean("Whether to update an existing action plan."),
		"action_id":            ai.String("ID of the action plan to update."),
		"new_action_text":      ai.String("New text for the updated action plan."),
		"new_assigned_to":      ai.String("New person assigned (leave empty if unknown)."),
		"new_due_date":         ai.String("Use YYYY-MM-DD format for confirmed deadlines; leave empty if uncertain."),
		"delete_action_plan":   ai.Boolean("Whether to delete an existing action plan."),
		"action_id_to_delete":  ai.String("ID of the action plan to delete."),
	}),
}
