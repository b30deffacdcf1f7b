package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bazar/internal/service"
)

// fail logs err under event and returns the HTTP error for its kind.
// Internal error text never reaches the client.
func fail(l *slog.Logger, event string, err error) error {
	status, msg := classify(err)
	if status >= http.StatusInternalServerError {
		l.Error(event, "status", status, "reason", msg, "error", err)
	} else {
		l.Warn(event, "status", status, "reason", msg, "error", err)
	}
	return echo.NewHTTPError(status, msg)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, validationMessage(err)
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "forbidden access"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict, "order already paid"
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway, "upstream service failed"
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, "service unavailable"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// validationMessage returns the text after the sentinel prefix.
func validationMessage(err error) string {
	if _, msg, ok := strings.Cut(err.Error(), service.ErrValidation.Error()+": "); ok {
		return msg
	}
	return "invalid request"
}

func badRequest(l *slog.Logger, event, reason string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "reason", reason, "error", err)
	return echo.NewHTTPError(http.StatusBadRequest, reason)
}
