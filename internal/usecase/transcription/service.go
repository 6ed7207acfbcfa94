package transcription

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/domain/repositories"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/storage"
	usecaseErrors "github.com/johnquangdev/meeting-facilitator/internal/usecase/errors"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-facilitator/pkg/ai"
)

// AudioStore archives uploaded recordings
type AudioStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
}

// Service turns recorded audio into comment log entries
type Service struct {
	meetingRepo repositories.MeetingRepository
	messageRepo repositories.MessageRepository
	transcriber ai.Transcriber
	store       AudioStore
	analyzer    meeting.AnalysisSubmitter
	logger      *zap.Logger
	now         func() time.Time
}

// NewService creates a transcription service. transcriber nil disables it,
// store nil skips archiving and analyzer nil skips analysis.
func NewService(
	meetingRepo repositories.MeetingRepository,
	messageRepo repositories.MessageRepository,
	transcriber ai.Transcriber,
	store AudioStore,
	analyzer meeting.AnalysisSubmitter,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		meetingRepo: meetingRepo,
		messageRepo: messageRepo,
		transcriber: transcriber,
		store:       store,
		analyzer:    analyzer,
		logger:      logger,
		now:         time.Now,
	}
}

// Enabled reports whether a speech-to-text backend is configured
func (s *Service) Enabled() bool {
	return s.transcriber != nil
}

// Input is one uploaded recording
type Input struct {
	MeetingID   string
	Filename    string
	ContentType string
	Size        int64
	Audio       io.ReadSeeker
	// SpeakerMap maps diarization labels ("A", "B", ...) to participant names
	SpeakerMap map[string]string
}

// Result lists the posted statements
type Result struct {
	Messages    []*entities.Message
	AudioObject string
}

// Transcribe posts every utterance of the recording as a statement, in order.
// Only the last statement is handed to analysis.
func (s *Service) Transcribe(ctx context.Context, in Input) (*Result, error) {
	if s.transcriber == nil {
		return nil, usecaseErrors.ErrTranscriptionDisabled
	}

	m, err := s.meetingRepo.FindByID(ctx, in.MeetingID)
	if err != nil {
		return nil, usecaseErrors.Query("get meeting", err)
	}
	if m == nil {
		return nil, usecaseErrors.ErrMeetingNotFound
	}

	started := s.now()
	result := &Result{}
	if s.store != nil {
		result.AudioObject = s.archive(ctx, in, started)
	}

	utterances, err := s.transcriber.Transcribe(ctx, in.Audio)
	if err != nil {
		metrics.RecordTranscription(false)
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrTranscriptionFailed, err)
	}

	for _, u := range utterances {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}
		msg := entities.NewMessage(in.MeetingID, speakerName(u.Speaker, in.SpeakerMap), text, started.Add(u.Start))
		if err := s.messageRepo.Append(ctx, msg); err != nil {
			metrics.RecordTranscription(false)
			return nil, usecaseErrors.Query("post transcribed message", err)
		}
		result.Messages = append(result.Messages, msg)
	}
	if len(result.Messages) == 0 {
		metrics.RecordTranscription(false)
		return nil, usecaseErrors.ErrNoSpeech
	}

	if s.analyzer != nil {
		s.analyzer.Submit(ctx, in.MeetingID, result.Messages[len(result.Messages)-1])
	}

	metrics.RecordTranscription(true)
	s.logger.Info("Audio transcribed",
		zap.String("meeting_id", in.MeetingID),
		zap.Int("utterances", len(result.Messages)),
		zap.String("audio_object", result.AudioObject),
		zap.Duration("took", s.now().Sub(started)),
	)
	return result, nil
}

// archive uploads the recording and rewinds it; failures only cost the archive copy
func (s *Service) archive(ctx context.Context, in Input, at time.Time) string {
	objectName := storage.AudioObjectName(in.MeetingID, in.Filename, at)
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.store.UploadFile(ctx, objectName, in.Audio, in.Size, contentType); err != nil {
		s.logger.Warn("Failed to archive audio", zap.String("meeting_id", in.MeetingID), zap.Error(err))
		objectName = ""
	}
	if _, err := in.Audio.Seek(0, io.SeekStart); err != nil {
		s.logger.Warn("Failed to rewind audio", zap.String("meeting_id", in.MeetingID), zap.Error(err))
	}
	return objectName
}

func speakerName(label string, speakerMap map[string]string) string {
	label = strings.TrimSpace(label)
	if name := strings.TrimSpace(speakerMap[label]); name != "" {
		return name
	}
	if label == "" {
		return "Speaker"
	}
	return "Speaker " + label
}
