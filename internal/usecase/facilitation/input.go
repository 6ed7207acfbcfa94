package facilitation

import (
	"context"
	"time"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-facilitator/internal/usecase/errors"
)

// HistoryEntry is one human statement as shown to the model
type HistoryEntry struct {
	Speaker string `json:"speaker"`
	Message string `json:"message"`
	SpeakAt string `json:"speak_at"`
}

// MeetingInput is the read-only state every facilitation call starts from
type MeetingInput struct {
	MeetingID           string
	Purpose             string
	Agenda              []entities.AgendaItem
	Participants        []string
	History             []HistoryEntry
	StartAt             string
	EndAt               string
	InterventionRequest *entities.InterventionRequest
}

// InputLoader assembles MeetingInput from the stored meeting and its comment log
type InputLoader struct {
	meetingRepo repositories.MeetingRepository
	messageRepo repositories.MessageRepository
	loc         *time.Location
}

func NewInputLoader(meetingRepo repositories.MeetingRepository, messageRepo repositories.MessageRepository, loc *time.Location) *InputLoader {
	if loc == nil {
		loc = time.UTC
	}
	return &InputLoader{meetingRepo: meetingRepo, messageRepo: messageRepo, loc: loc}
}

// Load returns the meeting and its input. AI statements are left out of the history.
func (l *InputLoader) Load(ctx context.Context, meetingID string) (*entities.Meeting, *MeetingInput, error) {
	meeting, err := l.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, nil, usecaseErrors.Query("get meeting", err)
	}
	if meeting == nil {
		return nil, nil, usecaseErrors.ErrMeetingNotFound
	}

	messages, err := l.messageRepo.ListByMeeting(ctx, meetingID, false)
	if err != nil {
		return nil, nil, usecaseErrors.Query("list messages", err)
	}

	history := make([]HistoryEntry, 0, len(messages))
	for _, m := range messages {
		history = append(history, HistoryEntry{
			Speaker: m.Speaker,
			Message: m.Message,
			SpeakAt: m.SpeakAt.In(l.loc).Format(entities.DateTimeLayout),
		})
	}

	return meeting, &MeetingInput{
		MeetingID:           meeting.ID,
		Purpose:             meeting.Purpose,
		Agenda:              meeting.Agenda,
		Participants:        meeting.Participants,
		History:             history,
		StartAt:             meeting.StartAt(),
		EndAt:               meeting.EndAt(),
		InterventionRequest: meeting.InterventionRequest,
	}, nil
}
