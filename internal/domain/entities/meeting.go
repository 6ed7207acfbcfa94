package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Layouts of the schedule fields as submitted by clients
const (
	DateLayout     = "2006-01-02"
	ClockLayout    = "15:04"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// AgendaItem is one topic of a meeting with its planned length
type AgendaItem struct {
	Topic    string `json:"topic" bson:"topic"`
	Duration int    `json:"duration" bson:"duration"` // minutes
}

// Meeting is the metadata of a facilitated meeting
type Meeting struct {
	ID                  string               `json:"id" bson:"_id"`
	Name                string               `json:"meeting_name" bson:"meeting_name"`
	Purpose             string               `json:"meeting_purpose" bson:"meeting_purpose"`
	StartDate           string               `json:"start_date" bson:"start_date"`
	StartTime           string               `json:"start_time" bson:"start_time"`
	EndTime             string               `json:"end_time" bson:"end_time"`
	Participants        []string             `json:"participants" bson:"participants"`
	Agenda              []AgendaItem         `json:"agenda" bson:"agenda"`
	InterventionRequest *InterventionRequest `json:"intervention_request,omitempty" bson:"intervention_request,omitempty"`
	CreatedAt           time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at" bson:"updated_at"`
}

// NewMeeting creates a meeting with a fresh UUID
func NewMeeting(name, purpose, startDate, startTime, endTime string, participants []string, agenda []AgendaItem) *Meeting {
	now := time.Now().UTC()
	if participants == nil {
		participants = []string{}
	}
	if agenda == nil {
		agenda = []AgendaItem{}
	}
	return &Meeting{
		ID:           uuid.NewString(),
		Name:         name,
		Purpose:      purpose,
		StartDate:    startDate,
		StartTime:    startTime,
		EndTime:      endTime,
		Participants: participants,
		Agenda:       agenda,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasAgenda reports whether the meeting has at least one agenda item
func (m *Meeting) HasAgenda() bool {
	return len(m.Agenda) > 0
}

// StartAt returns the scheduled start as "YYYY-MM-DD HH:MM:00"
func (m *Meeting) StartAt() string {
	return fmt.Sprintf("%s %s:00", m.StartDate, m.StartTime)
}

// EndAt returns the scheduled end as "YYYY-MM-DD HH:MM:00"
func (m *Meeting) EndAt() string {
	return fmt.Sprintf("%s %s:00", m.StartDate, m.EndTime)
}

// ScheduledWindow parses the start and end in loc. An end clock earlier
// than the start clock is taken to be on the following day.
func (m *Meeting) ScheduledWindow(loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(DateTimeLayout, m.StartAt(), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	end, err := time.ParseInLocation(DateTimeLayout, m.EndAt(), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, nil
}

// PlannedMinutes sums the durations of the agenda
func (m *Meeting) PlannedMinutes() int {
	total := 0
	for _, item := range m.Agenda {
		total += item.Duration
	}
	return total
}
