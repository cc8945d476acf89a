package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/hr-directory/internal/logging"
)

// storeLogger returns the logger for one Store operation. A request scoped
// logger carried by ctx wins over the logger the store was built with.
func storeLogger(ctx context.Context, base *slog.Logger, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		logger = base
	}
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(append([]any{"service", serviceName, "operation", operation}, attrs...)...)
}

// logFailure records a failed operation. Caller mistakes such as rejected
// input or unknown ids are warnings; anything else is an error.
func logFailure(ctx context.Context, logger *slog.Logger, msg string, err error) {
	kind := ErrorKind(err)
	attrs := []any{"error", err, "error_kind", kind}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		attrs = append(attrs, "fields", vErr.Fields())
	}

	level := slog.LevelError
	switch kind {
	case "validation", "not_found", "already_exists", "canceled":
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, msg, attrs...)
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	var vErr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &vErr):
		return "validation"
	default:
		return "unexpected"
	}
}
