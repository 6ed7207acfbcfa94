package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/errors"
	"github.com/johnquangdev/meeting-facilitator/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-facilitator/internal/adapter/presenter"
	meetingUsecase "github.com/johnquangdev/meeting-facilitator/internal/usecase/meeting"
)

// Meeting handles meeting and comment log HTTP requests
type Meeting struct {
	meetingService *meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService *meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// CreateMeeting handles POST /meeting
// @Summary      Create a meeting
// @Description  Stores meeting metadata. The agenda is optional and generated by the facilitator when missing.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting"
// @Success      200      {object}  meeting.CreateMeetingResponse
// @Failure      400      {object}  map[string]interface{}  "Invalid request or validation failed"
// @Router       /meeting [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meeting.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.CreateMeeting(c.Request().Context(), meetingUsecase.CreateMeetingInput{
		Name:         req.Name,
		Purpose:      req.Purpose,
		StartDate:    req.StartDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Participants: req.Participants,
		Agenda:       presenter.ToAgendaItems(req.Agenda),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, &meeting.CreateMeetingResponse{MeetingID: m.ID})
}

// GetMeeting handles GET /meeting/:id
// @Summary      Get a meeting
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meeting/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	m, err := h.meetingService.GetMeeting(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// PostMessage handles POST /message
// @Summary      Post a statement
// @Description  Appends a statement to the comment log and schedules minutes and intervention analysis.
// @Tags         Messages
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.PostMessageRequest  true  "Statement"
// @Success      200      {object}  meeting.PostMessageResponse
// @Failure      400      {object}  map[string]interface{}  "Validation failed"
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Router       /message [post]
func (h *Meeting) PostMessage(c echo.Context) error {
	var req meeting.PostMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	msg, err := h.meetingService.PostMessage(c.Request().Context(), meetingUsecase.PostMessageInput{
		MeetingID: req.MeetingID,
		Speaker:   req.Speaker,
		Message:   req.Message,
		SpeakAt:   req.SpeakAt,
	})
	if err != nil {
		appErr := toAppError(c, err)
		if appErr.Code == errors.ErrorCode_MEETING_NOT_FOUND {
			appErr = appErr.WithDetail("meeting_id", req.MeetingID)
		}
		return HandleError(h.logger, c, appErr)
	}

	return HandleSuccess(h.logger, c, &meeting.PostMessageResponse{MeetingID: msg.MeetingID, MessageID: msg.ID})
}

// ListMessages handles GET /meeting/:id/messages
// @Summary      List statements
// @Tags         Messages
// @Produce      json
// @Param        id          path      string  true   "Meeting ID"
// @Param        include_ai  query     bool    false  "Include facilitator messages (default true)"
// @Success      200         {object}  meeting.MessageListResponse
// @Failure      400         {object}  map[string]interface{}  "Invalid query"
// @Failure      404         {object}  map[string]interface{}  "Meeting not found"
// @Router       /meeting/{id}/messages [get]
func (h *Meeting) ListMessages(c echo.Context) error {
	includeAI := true
	if raw := c.QueryParam("include_ai"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("include_ai must be a boolean"))
		}
		includeAI = v
	}

	messages, err := h.meetingService.ListMessages(c.Request().Context(), c.Param("id"), includeAI)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, &meeting.MessageListResponse{Messages: presenter.ToMessageList(messages)})
}
