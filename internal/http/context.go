package http

import (
	"context"
	"log/slog"

	"github.com/example/hr-directory/internal/logging"
)

type contextKey string

const (
	employeeIDContextKey     contextKey = "employee_id"
	departmentIDContextKey   contextKey = "department_id"
	availabilityIDContextKey contextKey = "availability_id"
)

// ContextWithLogger attaches a request scoped logger to ctx.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext returns the request scoped logger, or nil when none is attached.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}

// ContextWithEmployeeID injects the employee identifier resolved from the request path.
func ContextWithEmployeeID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, employeeIDContextKey, id)
}

// EmployeeIDFromContext extracts an employee identifier previously associated with the context.
func EmployeeIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(employeeIDContextKey).(string)
	return id, ok
}

// ContextWithDepartmentID injects the department identifier resolved from the request path.
func ContextWithDepartmentID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, departmentIDContextKey, id)
}

// DepartmentIDFromContext extracts a department identifier previously associated with the context.
func DepartmentIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(departmentIDContextKey).(string)
	return id, ok
}

// ContextWithAvailabilityID injects the availability entry identifier resolved from the request path.
func ContextWithAvailabilityID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, availabilityIDContextKey, id)
}

// AvailabilityIDFromContext extracts an availability entry identifier previously associated with the context.
func AvailabilityIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(availabilityIDContextKey).(string)
	return id, ok
}
