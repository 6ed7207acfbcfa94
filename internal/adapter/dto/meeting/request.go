package meeting

import "time"

// AgendaItemRequest is one agenda topic
type AgendaItemRequest struct {
	Topic    string `json:"topic" validate:"required"`
	Duration int    `json:"duration" validate:"gt=0"`
}

// CreateMeetingRequest represents the request body for creating a meeting
type CreateMeetingRequest struct {
	Name         string              `json:"meeting_name" validate:"required,max=200"`
	Purpose      string              `json:"meeting_purpose" validate:"required"`
	StartDate    string              `json:"start_date" validate:"required,datetime=2006-01-02"`
	StartTime    string              `json:"start_time" validate:"required,datetime=15:04"`
	EndTime      string              `json:"end_time" validate:"required,datetime=15:04"`
	Participants []string            `json:"participants" validate:"required,min=1,dive,required"`
	Agenda       []AgendaItemRequest `json:"agenda" validate:"omitempty,dive"`
}

// PostMessageRequest represents one statement posted to the comment log
type PostMessageRequest struct {
	MeetingID string     `json:"meeting_id" validate:"required"`
	Speaker   string     `json:"speaker" validate:"required"`
	Message   string     `json:"message" validate:"required"`
	SpeakAt   *time.Time `json:"speak_at,omitempty"`
}
