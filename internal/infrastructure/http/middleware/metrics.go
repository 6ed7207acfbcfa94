package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/metrics"
)

// skipped paths are not recorded
var skipped = map[string]bool{
	"/metrics":   true,
	"/health":    true,
	"/swagger/*": true,
}

// Metrics records request count and latency per route template.
// Unmatched routes are grouped under "unmatched" to keep label cardinality bounded.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			route := c.Path()
			if skipped[route] {
				return next(c)
			}
			if route == "" {
				route = "unmatched"
			}

			start := time.Now()
			err := next(c)

			code := c.Response().Status
			var he *echo.HTTPError
			if err != nil && errors.As(err, &he) {
				code = he.Code
			} else if err != nil && !c.Response().Committed {
				code = http.StatusInternalServerError
			}

			metrics.RecordHTTPRequest(c.Request().Method, route, code, time.Since(start))
			return err
		}
	}
}
