package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-facilitator/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/facilitation"
)

// Facilitation handles the AI facilitator endpoints
type Facilitation struct {
	feedbackService     *facilitation.FeedbackService
	interventionService *facilitation.InterventionService
	logger              *zap.Logger
}

// NewFacilitationHandler creates a new facilitation handler
func NewFacilitationHandler(
	feedbackService *facilitation.FeedbackService,
	interventionService *facilitation.InterventionService,
	logger *zap.Logger,
) *Facilitation {
	return &Facilitation{
		feedbackService:     feedbackService,
		interventionService: interventionService,
		logger:              logger,
	}
}

// AgentFeedback handles GET /meeting/:id/agent-feedback
// @Summary      Get facilitator feedback
// @Description  Creates an agenda when the meeting has none, otherwise summarizes and evaluates the discussion and answers as facilitator. The answer is posted to the comment log.
// @Tags         Facilitation
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  meeting.FeedbackResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Failure      502  {object}  map[string]interface{}  "Facilitator produced no message"
// @Router       /meeting/{id}/agent-feedback [get]
func (h *Facilitation) AgentFeedback(c echo.Context) error {
	result, err := h.feedbackService.Generate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, &meeting.FeedbackResponse{
		Message: result.Message,
		Detail:  presenter.ToFeedbackDetailResponse(result.Detail),
	})
}

// AllowIntervention handles GET /meeting/:id/intervention
// @Summary      Allow the pending intervention
// @Description  Posts a facilitator message as an intervention and completes the intervention request.
// @Tags         Facilitation
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  meeting.InterventionResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meeting/{id}/intervention [get]
func (h *Facilitation) AllowIntervention(c echo.Context) error {
	result, err := h.interventionService.Allow(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, &meeting.InterventionResponse{Message: result.Message})
}

// CheckIntervention handles POST /meeting/:id/intervention/check
// @Summary      Run the intervention check
// @Tags         Facilitation
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  meeting.InterventionCheckResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meeting/{id}/intervention/check [post]
func (h *Facilitation) CheckIntervention(c echo.Context) error {
	requested, err := h.interventionService.Request(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, &meeting.InterventionCheckResponse{InterventionRequested: requested})
}

// ListFeedbacks handles GET /meeting/:id/feedbacks
// @Summary      List archived feedback
// @Tags         Facilitation
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  meeting.FeedbackListResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meeting/{id}/feedbacks [get]
func (h *Facilitation) ListFeedbacks(c echo.Context) error {
	feedbacks, err := h.feedbackService.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToFeedbackList(feedbacks))
}
