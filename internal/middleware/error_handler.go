package middleware

import (
	"errors"
	"modshop/pkg/logger"
	"net/http"

	jsonres "modshop/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo-level fallback for errors no handler converted
// into a response.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	if writeErr := c.JSON(code, jsonres.Error(http.StatusText(code), message, nil)); writeErr != nil {
		logger.Error("failed to write error response", "error", writeErr)
	}
}
