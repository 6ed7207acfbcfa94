package handler

import (
	"encoding/json"
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/errors"
	"github.com/johnquangdev/meeting-facilitator/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-facilitator/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/transcription"
)

// Transcription handles audio uploads
type Transcription struct {
	transcriptionService *transcription.Service
	maxUploadBytes       int64
	logger               *zap.Logger
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(transcriptionService *transcription.Service, maxUploadBytes int64, logger *zap.Logger) *Transcription {
	return &Transcription{
		transcriptionService: transcriptionService,
		maxUploadBytes:       maxUploadBytes,
		logger:               logger,
	}
}

// Transcribe handles POST /meeting/:id/transcriptions
// @Summary      Transcribe a recording
// @Description  Transcribes the uploaded audio with speaker labels and posts every utterance as a statement.
// @Tags         Messages
// @Accept       multipart/form-data
// @Produce      json
// @Param        id           path      string  true   "Meeting ID"
// @Param        audio        formData  file    true   "Audio file"
// @Param        speaker_map  formData  string  false  "JSON object mapping speaker labels to participant names, e.g. {\"A\":\"Alice\"}"
// @Success      200          {object}  meeting.TranscriptionResponse
// @Failure      400          {object}  map[string]interface{}  "Missing or invalid upload"
// @Failure      404          {object}  map[string]interface{}  "Meeting not found"
// @Failure      503          {object}  map[string]interface{}  "Transcription not configured"
// @Router       /meeting/{id}/transcriptions [post]
func (h *Transcription) Transcribe(c echo.Context) error {
	if !h.transcriptionService.Enabled() {
		return HandleError(h.logger, c, errors.ErrServiceDisabled("transcription"))
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("audio file is required"))
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(fmt.Sprintf("audio file exceeds %d bytes", h.maxUploadBytes)))
	}

	var speakerMap map[string]string
	if raw := c.FormValue("speaker_map"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &speakerMap); err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("speaker_map must be a JSON object of strings"))
		}
	}

	file, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer file.Close()

	result, err := h.transcriptionService.Transcribe(c.Request().Context(), transcription.Input{
		MeetingID:   c.Param("id"),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Audio:       file,
		SpeakerMap:  speakerMap,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &meeting.TranscriptionResponse{
		Messages:    presenter.ToMessageList(result.Messages),
		AudioObject: result.AudioObject,
	})
}
