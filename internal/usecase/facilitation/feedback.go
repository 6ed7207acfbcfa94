package facilitation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/metrics"
	usecaseErrors "github.com/johnquangdev/meeting-facilitator/internal/usecase/errors"
	"github.com/johnquangdev/meeting-facilitator/pkg/ai"
	"github.com/johnquangdev/meeting-facilitator/pkg/jobcontext"
)

// AgendaSyncer re-seeds derived agenda state after the meeting agenda changed
type AgendaSyncer interface {
	SyncAgenda(ctx context.Context, meetingID string, agenda []entities.AgendaItem) error
}

// FeedbackService runs the pipeline for a meeting and records its output
type FeedbackService struct {
	loader       *InputLoader
	meetingRepo  repositories.MeetingRepository
	messageRepo  repositories.MessageRepository
	feedbackRepo repositories.FeedbackRepository
	pipeline     *Pipeline
	agendaSyncer AgendaSyncer
	speaker      string
	logger       *zap.Logger
	now          func() time.Time
}

// NewFeedbackService creates a feedback service. agendaSyncer may be nil.
func NewFeedbackService(
	loader *InputLoader,
	meetingRepo repositories.MeetingRepository,
	messageRepo repositories.MessageRepository,
	feedbackRepo repositories.FeedbackRepository,
	pipeline *Pipeline,
	agendaSyncer AgendaSyncer,
	speaker string,
	logger *zap.Logger,
) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		loader:       loader,
		meetingRepo:  meetingRepo,
		messageRepo:  messageRepo,
		feedbackRepo: feedbackRepo,
		pipeline:     pipeline,
		agendaSyncer: agendaSyncer,
		speaker:      speaker,
		logger:       logger,
		now:          time.Now,
	}
}

// Generate produces facilitator feedback and posts it into the comment log
func (s *FeedbackService) Generate(ctx context.Context, meetingID string) (*FeedbackResult, error) {
	return s.generate(ctx, meetingID, entities.MessageTypeFeedback)
}

// List returns the archived feedback of a meeting
func (s *FeedbackService) List(ctx context.Context, meetingID string) ([]*entities.Feedback, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, usecaseErrors.Query("get meeting", err)
	}
	if meeting == nil {
		return nil, usecaseErrors.ErrMeetingNotFound
	}

	feedbacks, err := s.feedbackRepo.ListByMeeting(ctx, meetingID)
	if err != nil {
		return nil, usecaseErrors.Query("list feedbacks", err)
	}
	return feedbacks, nil
}

func (s *FeedbackService) generate(ctx context.Context, meetingID, messageType string) (*FeedbackResult, error) {
	start := s.now()
	_, input, err := s.loader.Load(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	result := s.pipeline.Run(ctx, input)
	if result.Message == "" {
		metrics.RecordFeedback(false)
		return nil, feedbackFailure(result.failure)
	}

	if result.AgendaCreated {
		if err := s.meetingRepo.UpdateAgenda(ctx, meetingID, result.Detail.Agenda); err != nil {
			metrics.RecordFeedback(false)
			return nil, usecaseErrors.Query("store agenda", err)
		}
		if s.agendaSyncer != nil {
			if err := s.agendaSyncer.SyncAgenda(ctx, meetingID, result.Detail.Agenda); err != nil {
				s.logger.Warn("Failed to sync minutes agenda",
					zap.String("meeting_id", meetingID),
					zap.Error(err),
				)
			}
		}
	}

	now := s.now()
	msg := entities.NewAIMessage(meetingID, s.speaker, result.Message, messageType, now)
	if err := s.messageRepo.Append(ctx, msg); err != nil {
		metrics.RecordFeedback(false)
		return nil, usecaseErrors.Query("post feedback message", err)
	}

	if err := s.feedbackRepo.Append(ctx, entities.NewFeedback(meetingID, result.Message, result.Detail, now)); err != nil {
		s.logger.Warn("Failed to archive feedback",
			zap.String("meeting_id", meetingID),
			zap.Error(err),
		)
	}

	metrics.RecordFeedback(true)
	s.logger.Info("Feedback posted",
		zap.String("meeting_id", meetingID),
		zap.String("type", messageType),
		zap.Bool("agenda_created", result.AgendaCreated),
		zap.Duration("took", s.now().Sub(start)),
	)
	return &result, nil
}

// feedbackFailure tells an empty answer apart from a model that could not be reached
func feedbackFailure(err error) error {
	switch {
	case err == nil, errors.Is(err, ai.ErrEmptyResponse):
		return usecaseErrors.ErrEmptyFeedback
	case jobcontext.IsRetryableError(err):
		return fmt.Errorf("%w: %w", usecaseErrors.ErrAIUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", usecaseErrors.ErrAIAnalysisFailed, err)
	}
}
