package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ougirez/fieldecon/internal/pkg/logger"
)

// RequestContextMiddleware attaches the request id and route to the logger
// fields of the request context.
func (svc *APIService) RequestContextMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		ctx := logger.WithFields(req.Context(),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"route", c.Path(),
		)
		c.SetRequest(req.WithContext(ctx))
		return next(c)
	}
}

// MetricsMiddleware records every request by its route template. Errors are
// rendered here so the recorded status is the one sent to the client.
func (svc *APIService) MetricsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		started := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		svc.metrics.ObserveHTTPRequest(c.Request().Method, route, c.Response().Status, started)
		return nil
	}
}
