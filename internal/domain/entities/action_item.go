package entities

import "strings"

// Placeholders used when the model leaves an action item field blank
const (
	DefaultAssignee = "unassigned"
	DefaultDueDate  = "unset"
)

// ActionItem is a task agreed during the meeting
type ActionItem struct {
	ID         string `json:"id" bson:"id"`
	Task       string `json:"task" bson:"task"`
	AssignedTo string `json:"assigned_to" bson:"assigned_to"`
	DueDate    string `json:"due_date" bson:"due_date"`
}

// NewActionItem creates an action item, filling blank fields with placeholders
func NewActionItem(task, assignedTo, dueDate string) ActionItem {
	assignedTo = strings.TrimSpace(assignedTo)
	if assignedTo == "" {
		assignedTo = DefaultAssignee
	}
	dueDate = strings.TrimSpace(dueDate)
	if dueDate == "" {
		dueDate = DefaultDueDate
	}
	return ActionItem{
		ID:         NewItemID(),
		Task:       strings.TrimSpace(task),
		AssignedTo: assignedTo,
		DueDate:    dueDate,
	}
}
