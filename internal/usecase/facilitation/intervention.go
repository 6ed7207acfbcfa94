package facilitation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/metrics"
	usecaseErrors "github.com/johnquangdev/meeting-facilitator/internal/usecase/errors"
	"github.com/johnquangdev/meeting-facilitator/pkg/ai"
)

// Intervention metric events
const (
	eventRequested = "requested"
	eventSkipped   = "skipped"
	eventAllowed   = "allowed"
)

// checkLockTTL bounds how long a crashed check can block the next one
const checkLockTTL = 2 * time.Minute

// InterventionChecker asks the model whether the facilitator should step in
type InterventionChecker struct {
	llm      ai.Client
	language string
	logger   *zap.Logger
}

func NewInterventionChecker(llm ai.Client, language string, logger *zap.Logger) *InterventionChecker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterventionChecker{llm: llm, language: language, logger: logger}
}

// ShouldIntervene returns the decision and its reason. Any failure counts as "no".
func (c *InterventionChecker) ShouldIntervene(ctx context.Context, in *MeetingInput) (bool, string) {
	var out interventionOutput
	err := generateJSON(ctx, c.llm, ai.JSONRequest{
		Task:        TaskIntervention,
		System:      withLanguage(interventionSystemPrompt, c.language),
		Schema:      interventionSchema,
		Temperature: 0.1,
	}, newDiscussionPayload(in), &out)
	if err != nil {
		c.logger.Warn("Intervention check failed",
			zap.String("meeting_id", in.MeetingID),
			zap.Error(err),
		)
		return false, ""
	}
	return out.InterventionNeeded, out.Reason
}

// InterventionService manages the per-meeting intervention request
type InterventionService struct {
	loader      *InputLoader
	meetingRepo repositories.MeetingRepository
	checker     *InterventionChecker
	feedback    *FeedbackService
	locker      cache.Locker
	span        time.Duration
	logger      *zap.Logger
	now         func() time.Time
}

// NewInterventionService creates the service. span is the quiet period after a
// completed intervention; locker may be nil for single-process use.
func NewInterventionService(
	loader *InputLoader,
	meetingRepo repositories.MeetingRepository,
	checker *InterventionChecker,
	feedback *FeedbackService,
	locker cache.Locker,
	span time.Duration,
	logger *zap.Logger,
) *InterventionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterventionService{
		loader:      loader,
		meetingRepo: meetingRepo,
		checker:     checker,
		feedback:    feedback,
		locker:      locker,
		span:        span,
		logger:      logger,
		now:         time.Now,
	}
}

// Request runs the intervention check and stores a pending request when the
// model asks for one. It reports whether a request was created.
func (s *InterventionService) Request(ctx context.Context, meetingID string) (bool, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return false, usecaseErrors.Query("get meeting", err)
	}
	if meeting == nil {
		return false, usecaseErrors.ErrMeetingNotFound
	}
	if meeting.InterventionRequest.BlocksNewRequest(s.now(), s.span) {
		metrics.RecordIntervention(eventSkipped)
		return false, nil
	}

	if s.locker != nil {
		key := cache.InterventionLockKey(meetingID)
		token, acquired, err := s.locker.TryLock(ctx, key, checkLockTTL)
		if err != nil {
			return false, fmt.Errorf("failed to lock intervention check: %w", err)
		}
		if !acquired {
			metrics.RecordIntervention(eventSkipped)
			return false, nil
		}
		defer func() {
			if err := s.locker.Unlock(context.WithoutCancel(ctx), key, token); err != nil {
				s.logger.Warn("Failed to release intervention lock", zap.String("meeting_id", meetingID), zap.Error(err))
			}
		}()
	}

	// reload under the lock, a concurrent check may have stored a request
	_, input, err := s.loader.Load(ctx, meetingID)
	if err != nil {
		return false, err
	}
	if input.InterventionRequest.BlocksNewRequest(s.now(), s.span) || len(input.History) == 0 {
		metrics.RecordIntervention(eventSkipped)
		return false, nil
	}

	needed, reason := s.checker.ShouldIntervene(ctx, input)
	if !needed {
		metrics.RecordIntervention(eventSkipped)
		return false, nil
	}

	if err := s.meetingRepo.SetInterventionRequest(ctx, meetingID, entities.NewInterventionRequest(reason, s.now())); err != nil {
		return false, usecaseErrors.Query("store intervention request", err)
	}

	metrics.RecordIntervention(eventRequested)
	s.logger.Info("Intervention requested",
		zap.String("meeting_id", meetingID),
		zap.String("reason", reason),
	)
	return true, nil
}

// Allow lets the facilitator speak: feedback is posted as an intervention and the
// request is completed, which starts the quiet period even if generation failed.
func (s *InterventionService) Allow(ctx context.Context, meetingID string) (*FeedbackResult, error) {
	result, genErr := s.feedback.generate(ctx, meetingID, entities.MessageTypeIntervention)
	if errors.Is(genErr, usecaseErrors.ErrMeetingNotFound) {
		return nil, genErr
	}

	if err := s.meetingRepo.CompleteInterventionRequest(ctx, meetingID, s.now()); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, usecaseErrors.ErrMeetingNotFound
		}
		return nil, usecaseErrors.Query("complete intervention request", err)
	}
	metrics.RecordIntervention(eventAllowed)

	if genErr != nil {
		return nil, genErr
	}
	return result, nil
}
