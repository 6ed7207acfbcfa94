package entities

import (
	"time"

	"github.com/google/uuid"
)

// RoleAI marks messages written by the facilitator
const RoleAI = "ai"

// Message types of AI-originated messages
const (
	MessageTypeFeedback     = "feedback"
	MessageTypeIntervention = "intervention"
)

// MessageMeta describes who produced a message and why
type MessageMeta struct {
	Role string `json:"role" bson:"role"`
	Type string `json:"type" bson:"type"`
}

// Message is one statement in a meeting's comment log
type Message struct {
	ID        string       `json:"id" bson:"_id"`
	MeetingID string       `json:"meeting_id" bson:"meeting_id"`
	Speaker   string       `json:"speaker" bson:"speaker"`
	Message   string       `json:"message" bson:"message"`
	SpeakAt   time.Time    `json:"speak_at" bson:"speak_at"`
	Meta      *MessageMeta `json:"meta,omitempty" bson:"meta,omitempty"`
}

// NewMessage creates a participant statement
func NewMessage(meetingID, speaker, text string, at time.Time) *Message {
	return &Message{
		ID:        uuid.NewString(),
		MeetingID: meetingID,
		Speaker:   speaker,
		Message:   text,
		SpeakAt:   at.UTC(),
	}
}

// NewAIMessage creates a facilitator statement of the given type
func NewAIMessage(meetingID, speaker, text, messageType string, at time.Time) *Message {
	msg := NewMessage(meetingID, speaker, text, at)
	msg.Meta = &MessageMeta{Role: RoleAI, Type: messageType}
	return msg
}

// IsAI reports whether the facilitator wrote the message
func (m *Message) IsAI() bool {
	return m.Meta != nil && m.Meta.Role == RoleAI
}
