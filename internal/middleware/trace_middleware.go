package middleware

import (
	"context"

	"modshop/business/nudge"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const TraceIDHeader = "X-Trace-ID"

// TraceMiddleware assigns each request a trace id, carried through the
// request context to service debug logs and echoed back in the response.
func TraceMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get(TraceIDHeader)
			if tid == "" {
				tid = uuid.NewString()
			}

			ctx := context.WithValue(c.Request().Context(), nudge.TraceIDKey, tid)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(TraceIDHeader, tid)

			return next(c)
		}
	}
}
