package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dormhub_app_echo/internal/services"
)

// JSONErrorHandler renders every unhandled error as the {"error": ...}
// envelope the clients expect. Store error kinds map onto status codes;
// anything unrecognized is a 500 with a generic message.
func JSONErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Something went wrong. Please try again later."

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		if msg, ok := he.Message.(string); ok && msg != "" {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	case errors.Is(err, services.ErrNotFound):
		code = http.StatusNotFound
		message = "Resource not found"
	case errors.Is(err, services.ErrValidation):
		code = http.StatusBadRequest
		message = "The request could not be processed"
	}

	c.Logger().Error(err)

	if err := c.JSON(code, map[string]string{"error": message}); err != nil {
		c.Logger().Error(err)
	}
}
