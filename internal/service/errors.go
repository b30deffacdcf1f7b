package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/bazar/internal/events"
	"github.com/Skotchmaster/bazar/internal/logging"
	"github.com/Skotchmaster/bazar/internal/store"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUpstream    = errors.New("upstream failure")
	ErrUnavailable = errors.New("service unavailable")
)

// storeErr turns store sentinels into service sentinels and wraps the rest.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	case errors.Is(err, store.ErrAlreadyPaid):
		return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// publish sends ev after a committed write. Failures are logged only.
func publish(ctx context.Context, pub events.Publisher, topic, key string, ev events.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Warn("event_publish_error", "topic", topic, "type", ev.Type, "error", err)
	}
}
