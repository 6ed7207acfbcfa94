package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/metrics"
)

func TestMetrics_RecordsRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.GET("/v1/meeting/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Param("id"))
	})
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/v1/meeting/:id", "200")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/meeting/"+id, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, before+2, testutil.ToFloat64(counter))

	health := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/health", "200")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Zero(t, testutil.ToFloat64(health))
}

func TestMetrics_RecordsHTTPErrors(t *testing.T) {
	e := echo.New()
	e.Use(Metrics())
	e.POST("/v1/message", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "bad")
	})

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/v1/message", "400")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/message", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
