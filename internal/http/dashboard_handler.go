package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/hr-directory/internal/application"
)

type dashboardService interface {
	Stats(ctx context.Context) (application.DashboardStats, error)
}

// DashboardHandler serves the aggregate figures shown at the root path.
type DashboardHandler struct {
	service   dashboardService
	responder responder
	logger    *slog.Logger
}

// NewDashboardHandler panics when service is nil.
func NewDashboardHandler(service dashboardService, logger *slog.Logger) *DashboardHandler {
	if service == nil {
		panic("http: dashboard handler requires a service")
	}
	base := defaultLogger(logger)
	return &DashboardHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handlerLogger(r.Context(), h.logger, "DashboardHandler", "Get").ErrorContext(r.Context(), "failed to compute dashboard", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	departments := make([]departmentHeadcountDTO, 0, len(stats.Departments))
	for _, row := range stats.Departments {
		departments = append(departments, departmentHeadcountDTO{
			DepartmentID: row.DepartmentID,
			Name:         row.Name,
			Employees:    row.Employees,
			Percentage:   row.Percentage,
		})
	}

	h.responder.writeCacheable(w, r, dashboardResponse{
		TotalEmployees:      stats.TotalEmployees,
		TotalDepartments:    stats.TotalDepartments,
		AvailableToday:      stats.AvailableToday,
		UnavailableToday:    stats.UnavailableToday,
		UnassignedEmployees: stats.UnassignedEmployees,
		Departments:         departments,
	})
}

type departmentHeadcountDTO struct {
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
	Employees    int    `json:"employees"`
	Percentage   int    `json:"percentage"`
}

type dashboardResponse struct {
	TotalEmployees      int                      `json:"total_employees"`
	TotalDepartments    int                      `json:"total_departments"`
	AvailableToday      int                      `json:"available_today"`
	UnavailableToday    int                      `json:"unavailable_today"`
	UnassignedEmployees int                      `json:"unassigned_employees"`
	Departments         []departmentHeadcountDTO `json:"departments"`
}
