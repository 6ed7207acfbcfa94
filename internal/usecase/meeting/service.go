package meeting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-facilitator/internal/usecase/errors"
)

// AnalysisSubmitter receives every stored participant statement
type AnalysisSubmitter interface {
	Submit(ctx context.Context, meetingID string, message *entities.Message)
}

// Service handles meeting and comment log business logic
type Service struct {
	meetingRepo repositories.MeetingRepository
	messageRepo repositories.MessageRepository
	analyzer    AnalysisSubmitter
	loc         *time.Location
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a new meeting service. analyzer may be nil.
func NewService(
	meetingRepo repositories.MeetingRepository,
	messageRepo repositories.MessageRepository,
	analyzer AnalysisSubmitter,
	loc *time.Location,
	logger *zap.Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		meetingRepo: meetingRepo,
		messageRepo: messageRepo,
		analyzer:    analyzer,
		loc:         loc,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateMeetingInput represents input for creating a meeting
type CreateMeetingInput struct {
	Name         string
	Purpose      string
	StartDate    string
	StartTime    string
	EndTime      string
	Participants []string
	Agenda       []entities.AgendaItem
}

// CreateMeeting stores a new meeting
func (s *Service) CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error) {
	participants := make([]string, 0, len(input.Participants))
	for _, p := range input.Participants {
		if p = strings.TrimSpace(p); p != "" {
			participants = append(participants, p)
		}
	}
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", usecaseErrors.ErrInvalidInput)
	}

	meeting := entities.NewMeeting(
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Purpose),
		input.StartDate,
		input.StartTime,
		input.EndTime,
		participants,
		input.Agenda,
	)
	if _, _, err := meeting.ScheduledWindow(s.loc); err != nil {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidSchedule, err)
	}

	if err := s.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, usecaseErrors.Query("create meeting", err)
	}

	s.logger.Info("Meeting created",
		zap.String("meeting_id", meeting.ID),
		zap.Int("participants", len(meeting.Participants)),
		zap.Int("agenda_items", len(meeting.Agenda)),
	)
	return meeting, nil
}

// GetMeeting retrieves a meeting by ID
func (s *Service) GetMeeting(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, usecaseErrors.Query("get meeting", err)
	}
	if meeting == nil {
		return nil, usecaseErrors.ErrMeetingNotFound
	}
	return meeting, nil
}

// PostMessageInput represents one participant statement
type PostMessageInput struct {
	MeetingID string
	Speaker   string
	Message   string
	SpeakAt   *time.Time
}

// PostMessage appends a statement to the comment log and hands it to analysis
func (s *Service) PostMessage(ctx context.Context, input PostMessageInput) (*entities.Message, error) {
	if _, err := s.GetMeeting(ctx, input.MeetingID); err != nil {
		return nil, err
	}

	at := s.now()
	if input.SpeakAt != nil && !input.SpeakAt.IsZero() {
		at = *input.SpeakAt
	}

	message := entities.NewMessage(input.MeetingID, strings.TrimSpace(input.Speaker), strings.TrimSpace(input.Message), at)
	if err := s.messageRepo.Append(ctx, message); err != nil {
		return nil, usecaseErrors.Query("post message", err)
	}

	if s.analyzer != nil {
		s.analyzer.Submit(ctx, input.MeetingID, message)
	}
	return message, nil
}

// ListMessages returns the comment log of a meeting, oldest first
func (s *Service) ListMessages(ctx context.Context, meetingID string, includeAI bool) ([]*entities.Message, error) {
	if _, err := s.GetMeeting(ctx, meetingID); err != nil {
		return nil, err
	}

	messages, err := s.messageRepo.ListByMeeting(ctx, meetingID, includeAI)
	if err != nil {
		return nil, usecaseErrors.Query("list messages", err)
	}
	return messages, nil
}
