package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/meeting-facilitator/errors"
	usecaseErrors "github.com/johnquangdev/meeting-facilitator/internal/usecase/errors"
)

func TestToAppError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   errors.ErrorCode
		detail map[string]string
	}{
		{
			name:   "repository failure",
			err:    fmt.Errorf("wrap: %w", usecaseErrors.Query("get meeting", stdErrors.New("conn closed"))),
			status: http.StatusInternalServerError,
			code:   errors.ErrorCode_DB_QUERY_FAILED,
			detail: map[string]string{"query": "get meeting"},
		},
		{
			name:   "export upload",
			err:    fmt.Errorf("%w: upload minutes: %w", usecaseErrors.ErrStorageFailed, stdErrors.New("bucket gone")),
			status: http.StatusInternalServerError,
			code:   errors.ErrorCode_INTEGRATION_STORAGE_FAILED,
		},
		{
			name:   "model rejected the call",
			err:    fmt.Errorf("%w: %w", usecaseErrors.ErrAIAnalysisFailed, stdErrors.New("invalid api key")),
			status: http.StatusBadGateway,
			code:   errors.ErrorCode_AI_ANALYSIS_FAILED,
		},
		{
			name:   "model unreachable",
			err:    fmt.Errorf("%w: %w", usecaseErrors.ErrAIUnavailable, stdErrors.New("503")),
			status: http.StatusServiceUnavailable,
			code:   errors.ErrorCode_AI_SERVICE_UNAVAILABLE,
			detail: map[string]string{"service": "llm"},
		},
		{
			name:   "unknown route",
			err:    echo.ErrNotFound,
			status: http.StatusNotFound,
			code:   errors.ErrorCode_NOT_FOUND,
		},
		{
			name:   "body too large",
			err:    echo.ErrStatusRequestEntityTooLarge,
			status: http.StatusRequestEntityTooLarge,
			code:   errors.ErrorCode_INVALID_PAYLOAD,
		},
		{
			name:   "wrong method",
			err:    echo.ErrMethodNotAllowed,
			status: http.StatusMethodNotAllowed,
			code:   errors.ErrorCode_INVALID_ARGUMENT,
		},
		{
			name:   "anything else",
			err:    stdErrors.New("boom"),
			status: http.StatusInternalServerError,
			code:   errors.ErrorCode_INTERNAL,
		},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			got := toAppError(c, tc.err)
			assert.Equal(t, tc.status, got.HTTPCode)
			assert.Equal(t, tc.code, got.Code)
			if tc.detail != nil {
				assert.Equal(t, tc.detail, got.Details)
			}
		})
	}
}
