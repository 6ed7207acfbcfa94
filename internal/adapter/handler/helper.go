package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/errors"
	usecaseErrors "github.com/johnquangdev/meeting-facilitator/internal/usecase/errors"
	pkgvalidator "github.com/johnquangdev/meeting-facilitator/pkg/validator"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Info    interface{} `json:"info,omitempty"`
}

// getRequestID reads the request ID set by the RequestID middleware or the client
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// bindAndValidate binds the request body into req and validates it
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		if fields := pkgvalidator.Messages(err); fields != nil {
			return errors.ErrValidationFailed(fields)
		}
		return errors.ErrInvalidArgument(err.Error())
	}
	return nil
}

// toAppError maps use case sentinels onto the HTTP error taxonomy
func toAppError(c echo.Context, err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	var queryErr *usecaseErrors.QueryError
	switch {
	case stdErrors.Is(err, usecaseErrors.ErrMeetingNotFound):
		return errors.ErrMeetingNotFound(c.Param("id"))
	case stdErrors.Is(err, usecaseErrors.ErrInvalidSchedule),
		stdErrors.Is(err, usecaseErrors.ErrInvalidInput),
		stdErrors.Is(err, usecaseErrors.ErrNoSpeech):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrEmptyFeedback):
		return errors.ErrAIEmptyResponse("feedback")
	case stdErrors.Is(err, usecaseErrors.ErrAIUnavailable):
		return errors.ErrAIServiceUnavailable("llm")
	case stdErrors.Is(err, usecaseErrors.ErrAIAnalysisFailed):
		return errors.ErrAIAnalysisFailed(err)
	case stdErrors.Is(err, usecaseErrors.ErrStorageDisabled):
		return errors.ErrServiceDisabled("object storage")
	case stdErrors.Is(err, usecaseErrors.ErrStorageFailed):
		return errors.ErrStorageFailed("minutes export", err)
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptionDisabled):
		return errors.ErrServiceDisabled("transcription")
	case stdErrors.Is(err, usecaseErrors.ErrTranscriptionFailed):
		return errors.ErrAITranscriptionFailed(err)
	case stdErrors.As(err, &queryErr):
		return errors.ErrDBQueryFailed(queryErr.Op, queryErr.Err)
	default:
		return errors.ErrInternal(err)
	}
}

// fromHTTPError maps errors raised by echo before a handler ran
func fromHTTPError(he *echo.HTTPError) errors.AppError {
	switch he.Code {
	case http.StatusNotFound:
		return errors.ErrNotFound("route")
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		appErr := errors.ErrInvalidPayload()
		appErr.HTTPCode = he.Code
		return appErr
	}
	if he.Code < http.StatusInternalServerError {
		appErr := errors.ErrInvalidArgument(http.StatusText(he.Code))
		appErr.HTTPCode = he.Code
		return appErr
	}
	return errors.ErrInternal(he)
}

// HTTPErrorHandler renders errors that never reached a handler, such as
// unknown routes, in the API error envelope
func HTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if hErr := HandleError(logger, c, err); hErr != nil && logger != nil {
			logger.Error("http.error_handler.failed", zap.Error(hErr))
		}
	}
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(c, err)

	if logger != nil {
		log := logger.Warn
		if appErr.HTTPCode >= http.StatusInternalServerError {
			log = logger.Error
		}
		log("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("app_code", appErr.Code.String()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
	}
	switch {
	case len(appErr.Details) > 0:
		body.Info = appErr.Details
	case appErr.Raw != nil:
		body.Info = appErr.Raw.Error()
	}

	return c.JSON(appErr.HTTPCode, body)
}
