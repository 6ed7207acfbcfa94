package entities

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation grades the discussion on three axes
type Evaluation struct {
	Engagement   string `json:"engagement" bson:"engagement"`
	Concreteness string `json:"concreteness" bson:"concreteness"`
	Direction    string `json:"direction" bson:"direction"`
}

// IsZero reports whether no axis was filled in
func (e *Evaluation) IsZero() bool {
	return e == nil || (e.Engagement == "" && e.Concreteness == "" && e.Direction == "")
}

// FeedbackDetail is the structured output behind a feedback message
type FeedbackDetail struct {
	Summary    string       `json:"summary,omitempty" bson:"summary,omitempty"`
	Evaluation *Evaluation  `json:"evaluation,omitempty" bson:"evaluation,omitempty"`
	Agenda     []AgendaItem `json:"agenda,omitempty" bson:"agenda,omitempty"`
}

// Feedback archives one facilitator output
type Feedback struct {
	ID        string         `json:"id" bson:"_id"`
	MeetingID string         `json:"meeting_id" bson:"meeting_id"`
	Message   string         `json:"message" bson:"message"`
	Detail    FeedbackDetail `json:"detail" bson:"detail"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// NewFeedback creates an archive record
func NewFeedback(meetingID, message string, detail FeedbackDetail, at time.Time) *Feedback {
	return &Feedback{
		ID:        uuid.NewString(),
		MeetingID: meetingID,
		Message:   message,
		Detail:    detail,
		CreatedAt: at.UTC(),
	}
}
