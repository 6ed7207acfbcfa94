package minutes

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/storage"
	usecaseErrors "github.com/johnquangdev/meeting-facilitator/internal/usecase/errors"
)

// ObjectStore is where exported minutes are written
type ObjectStore interface {
	UploadText(ctx context.Context, objectName, content, contentType string) error
	GetFileURL(ctx context.Context, objectName string) (string, error)
}

// Service owns the minutes document of each meeting
type Service struct {
	meetingRepo repositories.MeetingRepository
	minutesRepo repositories.MinutesRepository
	store       ObjectStore
	loc         *time.Location
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a minutes service. store may be nil when exports are disabled.
func NewService(
	meetingRepo repositories.MeetingRepository,
	minutesRepo repositories.MinutesRepository,
	store ObjectStore,
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
		minutesRepo: minutesRepo,
		store:       store,
		loc:         loc,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *Service) meeting(ctx context.Context, meetingID string) (*entities.Meeting, error) {
	meeting, err := s.meetingRepo.FindByID(ctx, meetingID)
	if err != nil {
		return nil, usecaseErrors.Query("get meeting", err)
	}
	if meeting == nil {
		return nil, usecaseErrors.ErrMeetingNotFound
	}
	return meeting, nil
}

// Get returns the minutes of a meeting, creating them from the agenda on first access
func (s *Service) Get(ctx context.Context, meetingID string) (*entities.Minutes, error) {
	meeting, err := s.meeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return s.ensure(ctx, meeting)
}

func (s *Service) ensure(ctx context.Context, meeting *entities.Meeting) (*entities.Minutes, error) {
	minutes, err := s.minutesRepo.Ensure(ctx, entities.NewMinutes(meeting.ID, meeting.Agenda))
	if err != nil {
		return nil, usecaseErrors.Query("ensure minutes", err)
	}
	return minutes, nil
}

// SyncAgenda re-seeds the minutes agenda after the meeting agenda was replaced.
// Topics that survive keep their ID and completion flag.
func (s *Service) SyncAgenda(ctx context.Context, meetingID string, agenda []entities.AgendaItem) error {
	current, err := s.minutesRepo.Get(ctx, meetingID)
	if err != nil {
		return usecaseErrors.Query("get minutes", err)
	}

	var previous []entities.MinutesAgendaItem
	if current != nil {
		previous = current.Agenda
	}
	if err := s.minutesRepo.ReplaceAgenda(ctx, meetingID, entities.SeedAgenda(agenda, previous)); err != nil {
		return usecaseErrors.Query("replace minutes agenda", err)
	}
	return nil
}

// ExportResult locates an exported minutes file
type ExportResult struct {
	ObjectName string
	URL        string
}

// Export renders the minutes as Markdown and uploads them to object storage
func (s *Service) Export(ctx context.Context, meetingID string) (*ExportResult, error) {
	if s.store == nil {
		return nil, usecaseErrors.ErrStorageDisabled
	}

	meeting, err := s.meeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	minutes, err := s.ensure(ctx, meeting)
	if err != nil {
		return nil, err
	}

	now := s.now()
	objectName := storage.MinutesObjectName(meetingID, now)
	content := RenderMarkdown(meeting, minutes, now.In(s.loc))

	if err := s.store.UploadText(ctx, objectName, content, "text/markdown; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("%w: upload minutes: %w", usecaseErrors.ErrStorageFailed, err)
	}
	url, err := s.store.GetFileURL(ctx, objectName)
	if err != nil {
		return nil, fmt.Errorf("%w: sign minutes URL: %w", usecaseErrors.ErrStorageFailed, err)
	}

	s.logger.Info("Minutes exported",
		zap.String("meeting_id", meetingID),
		zap.String("object", objectName),
	)
	return &ExportResult{ObjectName: objectName, URL: url}, nil
}
