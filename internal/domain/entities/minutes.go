package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MinutesDocumentName is the name of the per-meeting minutes singleton
const MinutesDocumentName = "all_minutes"

// MinutesAgendaItem tracks completion of one agenda topic
type MinutesAgendaItem struct {
	ID        string `json:"id" bson:"id"`
	Topic     string `json:"topic" bson:"topic"`
	Duration  int    `json:"duration" bson:"duration"`
	Completed bool   `json:"completed" bson:"completed"`
}

// Decision is something the meeting agreed on
type Decision struct {
	ID   string `json:"id" bson:"id"`
	Text string `json:"text" bson:"text"`
}

// Minutes is the running record of a meeting
type Minutes struct {
	MeetingID  string              `json:"meeting_id" bson:"meeting_id"`
	Name       string              `json:"name" bson:"name"`
	Agenda     []MinutesAgendaItem `json:"agenda" bson:"agenda"`
	Decisions  []Decision          `json:"decisions" bson:"decisions"`
	ActionPlan []ActionItem        `json:"action_plan" bson:"action_plan"`
	UpdatedAt  time.Time           `json:"updated_at" bson:"updated_at"`
}

// NewItemID returns a short random identifier for minutes entries
func NewItemID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// NewMinutes creates empty minutes seeded from the meeting agenda
func NewMinutes(meetingID string, agenda []AgendaItem) *Minutes {
	return &Minutes{
		MeetingID:  meetingID,
		Name:       MinutesDocumentName,
		Agenda:     SeedAgenda(agenda, nil),
		Decisions:  []Decision{},
		ActionPlan: []ActionItem{},
		UpdatedAt:  time.Now().UTC(),
	}
}

// SeedAgenda builds minutes agenda entries from a meeting agenda. Entries of
// previous with the same topic keep their ID and completion flag.
func SeedAgenda(agenda []AgendaItem, previous []MinutesAgendaItem) []MinutesAgendaItem {
	byTopic := make(map[string]MinutesAgendaItem, len(previous))
	for _, p := range previous {
		byTopic[p.Topic] = p
	}

	out := make([]MinutesAgendaItem, 0, len(agenda))
	for _, item := range agenda {
		entry := MinutesAgendaItem{ID: NewItemID(), Topic: item.Topic, Duration: item.Duration}
		if p, ok := byTopic[item.Topic]; ok {
			entry.ID = p.ID
			entry.Completed = p.Completed
		}
		out = append(out, entry)
	}
	return out
}

// CompleteAgenda marks the given agenda IDs completed and returns how many
// entries changed. Unknown IDs are ignored and nothing is ever un-completed.
func (m *Minutes) CompleteAgenda(ids []string) int {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[strings.TrimSpace(id)] = struct{}{}
	}

	changed := 0
	for i := range m.Agenda {
		if _, ok := want[m.Agenda[i].ID]; ok && !m.Agenda[i].Completed {
			m.Agenda[i].Completed = true
			changed++
		}
	}
	return changed
}

// AddDecision appends a decision; blank text is rejected
func (m *Minutes) AddDecision(text string) (Decision, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Decision{}, ErrEmptyText
	}
	d := Decision{ID: NewItemID(), Text: text}
	m.Decisions = append(m.Decisions, d)
	return d, nil
}

// UpdateDecision replaces the text of decision id
func (m *Minutes) UpdateDecision(id, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	for i := range m.Decisions {
		if m.Decisions[i].ID == id {
			if m.Decisions[i].Text == text {
				return false
			}
			m.Decisions[i].Text = text
			return true
		}
	}
	return false
}

// DeleteDecision removes decision id
func (m *Minutes) DeleteDecision(id string) bool {
	for i := range m.Decisions {
		if m.Decisions[i].ID == id {
			m.Decisions = append(m.Decisions[:i], m.Decisions[i+1:]...)
			return true
		}
	}
	return false
}

// AddActionItem appends an action item; a blank task is rejected
func (m *Minutes) AddActionItem(task, assignedTo, dueDate string) (ActionItem, error) {
	if strings.TrimSpace(task) == "" {
		return ActionItem{}, ErrEmptyText
	}
	item := NewActionItem(task, assignedTo, dueDate)
	m.ActionPlan = append(m.ActionPlan, item)
	return item, nil
}

// UpdateActionItem overwrites the non-empty fields of action item id
func (m *Minutes) UpdateActionItem(id, task, assignedTo, dueDate string) bool {
	for i := range m.ActionPlan {
		if m.ActionPlan[i].ID != id {
			continue
		}
		before := m.ActionPlan[i]
		if v := strings.TrimSpace(task); v != "" {
			m.ActionPlan[i].Task = v
		}
		if v := strings.TrimSpace(assignedTo); v != "" {
			m.ActionPlan[i].AssignedTo = v
		}
		if v := strings.TrimSpace(dueDate); v != "" {
			m.ActionPlan[i].DueDate = v
		}
		return m.ActionPlan[i] != before
	}
	return false
}

// DeleteActionItem removes action item id
func (m *Minutes) DeleteActionItem(id string) bool {
	for i := range m.ActionPlan {
		if m.ActionPlan[i].ID == id {
			m.ActionPlan = append(m.ActionPlan[:i], m.ActionPlan[i+1:]...)
			return true
		}
	}
	return false
}
