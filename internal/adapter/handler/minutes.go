package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-facilitator/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/minutes"
)

// Minutes handles meeting minutes requests
type Minutes struct {
	minutesService *minutes.Service
	logger         *zap.Logger
}

// NewMinutesHandler creates a new minutes handler
func NewMinutesHandler(minutesService *minutes.Service, logger *zap.Logger) *Minutes {
	return &Minutes{minutesService: minutesService, logger: logger}
}

// GetMinutes handles GET /meeting/:id/minutes
// @Summary      Get the minutes
// @Description  Agenda completion, decisions and action plan kept up to date from the discussion.
// @Tags         Minutes
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  meeting.MinutesResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meeting/{id}/minutes [get]
func (h *Minutes) GetMinutes(c echo.Context) error {
	doc, err := h.minutesService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMinutesResponse(doc))
}

// ExportMinutes handles POST /meeting/:id/minutes/export
// @Summary      Export the minutes
// @Description  Renders the minutes as Markdown, stores them in object storage and returns a signed URL.
// @Tags         Minutes
// @Produce      json
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  meeting.ExportMinutesResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Failure      503  {object}  map[string]interface{}  "Object storage not configured"
// @Router       /meeting/{id}/minutes/export [post]
func (h *Minutes) ExportMinutes(c echo.Context) error {
	result, err := h.minutesService.Export(c.Request().Context(), c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, &meeting.ExportMinutesResponse{ObjectName: result.ObjectName, URL: result.URL})
}
