package meeting

import "time"

// AgendaItemResponse is one agenda topic
type AgendaItemResponse struct {
	Topic    string `json:"topic"`
	Duration int    `json:"duration"`
}

// InterventionRequestResponse is the state of the intervention request
type InterventionRequestResponse struct {
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID                  string                       `json:"id"`
	Name                string                       `json:"meeting_name"`
	Purpose             string                       `json:"meeting_purpose"`
	StartDate           string                       `json:"start_date"`
	StartTime           string                       `json:"start_time"`
	EndTime             string                       `json:"end_time"`
	Participants        []string                     `json:"participants"`
	Agenda              []AgendaItemResponse         `json:"agenda"`
	InterventionRequest *InterventionRequestResponse `json:"intervention_request,omitempty"`
	CreatedAt           time.Time                    `json:"created_at"`
	UpdatedAt           time.Time                    `json:"updated_at"`
}

// CreateMeetingResponse is returned after a meeting was stored
type CreateMeetingResponse struct {
	MeetingID string `json:"meeting_id"`
}

// MessageMetaResponse marks AI-originated messages
type MessageMetaResponse struct {
	Role string `json:"role"`
	Type string `json:"type"`
}

// MessageResponse represents one statement
type MessageResponse struct {
	ID        string               `json:"id"`
	MeetingID string               `json:"meeting_id"`
	Speaker   string               `json:"speaker"`
	Message   string               `json:"message"`
	SpeakAt   time.Time            `json:"speak_at"`
	Meta      *MessageMetaResponse `json:"meta,omitempty"`
}

// PostMessageResponse is returned after a statement was stored
type PostMessageResponse struct {
	MeetingID string `json:"meeting_id"`
	MessageID string `json:"message_id"`
}

// MessageListResponse is the comment log of a meeting
type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
}

// EvaluationResponse grades the discussion
type EvaluationResponse struct {
	Engagement   string `json:"engagement"`
	Concreteness string `json:"concreteness"`
	Direction    string `json:"direction"`
}

// FeedbackDetailResponse carries the structured pipeline output
type FeedbackDetailResponse struct {
	Summary    string               `json:"summary,omitempty"`
	Evaluation *EvaluationResponse  `json:"evaluation,omitempty"`
	Agenda     []AgendaItemResponse `json:"agenda,omitempty"`
}

// FeedbackResponse is the facilitator's answer
type FeedbackResponse struct {
	Message string                 `json:"message"`
	Detail  FeedbackDetailResponse `json:"detail"`
}

// FeedbackRecordResponse is one archived feedback
type FeedbackRecordResponse struct {
	ID        string                 `json:"id"`
	Message   string                 `json:"message"`
	Detail    FeedbackDetailResponse `json:"detail"`
	CreatedAt time.Time              `json:"created_at"`
}

// FeedbackListResponse lists archived feedback, oldest first
type FeedbackListResponse struct {
	Feedbacks []*FeedbackRecordResponse `json:"feedbacks"`
}

// InterventionResponse is the message posted when an intervention was allowed
type InterventionResponse struct {
	Message string `json:"message"`
}

// InterventionCheckResponse reports the outcome of an intervention check
type InterventionCheckResponse struct {
	InterventionRequested bool `json:"intervention_requested"`
}

// MinutesAgendaItemResponse tracks agenda completion
type MinutesAgendaItemResponse struct {
	ID        string `json:"id"`
	Topic     string `json:"topic"`
	Duration  int    `json:"duration"`
	Completed bool   `json:"completed"`
}

// DecisionResponse is one recorded decision
type DecisionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// ActionItemResponse is one recorded action item
type ActionItemResponse struct {
	ID         string `json:"id"`
	Task       string `json:"task"`
	AssignedTo string `json:"assigned_to"`
	DueDate    string `json:"due_date"`
}

// MinutesResponse is the running record of a meeting
type MinutesResponse struct {
	MeetingID  string                      `json:"meeting_id"`
	Agenda     []MinutesAgendaItemResponse `json:"agenda"`
	Decisions  []DecisionResponse          `json:"decisions"`
	ActionPlan []ActionItemResponse        `json:"action_plan"`
	UpdatedAt  time.Time                   `json:"updated_at"`
}

// ExportMinutesResponse locates an exported minutes file
type ExportMinutesResponse struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
}

// TranscriptionResponse lists the statements created from an audio upload
type TranscriptionResponse struct {
	Messages    []*MessageResponse `json:"messages"`
	AudioObject string             `json:"audio_object,omitempty"`
}
