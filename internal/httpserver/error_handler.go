package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/primestore/backend/internal/apperr"
	"github.com/primestore/backend/internal/logging"
)

// ErrorEnvelope is the shape of every error response.
type ErrorEnvelope struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// NewErrorHandler translates every error that escapes a handler into the
// JSON envelope. Storage-layer constraint violations are mapped here so no
// raw driver error ever reaches a client; anything unclassified becomes a
// logged 500. A request-scoped error never crashes the process.
func NewErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		env := ErrorEnvelope{
			Error:   "Internal Server Error",
			Message: "An unexpected error occurred",
		}

		var ae *apperr.Error
		var he *echo.HTTPError
		switch {
		case errors.As(err, &ae):
			status = ae.Status
			env = ErrorEnvelope{Error: ae.Kind, Message: ae.Message, Errors: ae.Fields}

		case errors.Is(err, gorm.ErrDuplicatedKey):
			status = http.StatusBadRequest
			env = ErrorEnvelope{Error: "Validation error", Message: "Duplicate entry"}

		case errors.Is(err, gorm.ErrForeignKeyViolated):
			status = http.StatusBadRequest
			env = ErrorEnvelope{Error: "Validation error", Message: "Invalid reference"}

		case errors.Is(err, gorm.ErrRecordNotFound):
			status = http.StatusNotFound
			env = ErrorEnvelope{Error: "Not found", Message: "The requested record does not exist"}

		case errors.Is(err, echo.ErrNotFound):
			status = http.StatusNotFound
			env = ErrorEnvelope{
				Error:   "Not Found",
				Message: fmt.Sprintf("Route %s %s not found", c.Request().Method, c.Request().URL.Path),
			}

		case errors.As(err, &he):
			status = he.Code
			env = ErrorEnvelope{Error: http.StatusText(he.Code), Message: fmt.Sprint(he.Message)}

		default:
			logging.FromContext(c.Request().Context()).Error("unhandled error", "error", err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, env)
		}
		if writeErr != nil {
			logging.FromContext(c.Request().Context()).Error("error response write failed", "error", writeErr)
		}
	}
}
