package http

import (
	"context"
	"log/slog"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

// handlerLogger prefers the request scoped logger and tags it with the handler,
// the operation and any resource id the router resolved from the path.
func handlerLogger(ctx context.Context, fallback *slog.Logger, handlerName, operation string, attrs ...any) *slog.Logger {
	logger := LoggerFromContext(ctx)
	if logger == nil {
		logger = defaultLogger(fallback)
	}

	pairs := []any{"handler", handlerName}
	if operation != "" {
		pairs = append(pairs, "operation", operation)
	}
	pairs = append(pairs, pathIDs(ctx, attrs)...)
	pairs = append(pairs, attrs...)
	return logger.With(pairs...)
}

// pathIDs returns the resource ids carried by ctx that attrs does not already name.
func pathIDs(ctx context.Context, attrs []any) []any {
	named := make(map[string]bool, len(attrs)/2)
	for i := 0; i+1 < len(attrs); i += 2 {
		if key, ok := attrs[i].(string); ok {
			named[key] = true
		}
	}

	var pairs []any
	add := func(key string, value string, ok bool) {
		if ok && value != "" && !named[key] {
			pairs = append(pairs, key, value)
		}
	}
	id, ok := EmployeeIDFromContext(ctx)
	add("employee_id", id, ok)
	id, ok = DepartmentIDFromContext(ctx)
	add("department_id", id, ok)
	id, ok = AvailabilityIDFromContext(ctx)
	add("availability_id", id, ok)
	return pairs
}
