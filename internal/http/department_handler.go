package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/hr-directory/internal/application"
)

type departmentService interface {
	AddDepartment(ctx context.Context, input application.DepartmentInput) (application.Department, error)
	UpdateDepartment(ctx context.Context, id string, patch application.DepartmentPatch) (bool, error)
	RemoveDepartment(ctx context.Context, id string) (bool, error)
	GetDepartmentByID(ctx context.Context, id string) (*application.Department, error)
	SearchDepartments(ctx context.Context, term string) ([]application.Department, error)
	DepartmentRoster(ctx context.Context, id string) (application.Roster, error)
	Employees(ctx context.Context) ([]application.Employee, error)
}

// DepartmentHandler serves the department list and roster resources.
type DepartmentHandler struct {
	service   departmentService
	responder responder
	logger    *slog.Logger
}

// NewDepartmentHandler panics when service is nil.
func NewDepartmentHandler(service departmentService, logger *slog.Logger) *DepartmentHandler {
	if service == nil {
		panic("http: department handler requires a service")
	}
	base := defaultLogger(logger)
	return &DepartmentHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *DepartmentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "DepartmentHandler", operation, attrs...)
}

// List returns departments, optionally filtered by q, each with its headcount.
func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	logger := h.log(r.Context(), "List")

	departments, err := h.service.SearchDepartments(r.Context(), query)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list departments", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	employees, err := h.service.Employees(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to count employees", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	headcount := make(map[string]int, len(departments))
	for _, employee := range employees {
		if employee.DepartmentID != nil {
			headcount[*employee.DepartmentID]++
		}
	}

	items := make([]departmentListItem, 0, len(departments))
	for _, department := range departments {
		items = append(items, departmentListItem{
			departmentDTO: toDepartmentDTO(department),
			EmployeeCount: headcount[department.ID],
		})
	}

	h.responder.writeCacheable(w, r, departmentListResponse{Query: query, Departments: items})
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode department request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.log(r.Context(), "Create").WarnContext(r.Context(), "department request rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	department, err := h.service.AddDepartment(r.Context(), input)
	if err != nil {
		h.log(r.Context(), "Create").ErrorContext(r.Context(), "department creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.log(r.Context(), "Create", "department_id", department.ID).InfoContext(r.Context(), "department created")
	w.Header().Set("Location", "/departments/"+department.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, departmentResponse{Department: toDepartmentDTO(department)})
}

// Get returns the department roster: the department, its manager and its members.
func (h *DepartmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := h.departmentID(w, r, "Get")
	if !ok {
		return
	}

	roster, err := h.service.DepartmentRoster(r.Context(), departmentID)
	if errors.Is(err, application.ErrNotFound) {
		h.responder.writeNotFound(r.Context(), w, "department not found", "/departments")
		return
	}
	if err != nil {
		h.log(r.Context(), "Get", "department_id", departmentID).ErrorContext(r.Context(), "failed to load department roster", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	response := departmentDetailResponse{
		Department: toDepartmentDTO(roster.Department),
		Members:    toEmployeeDTOs(roster.Members),
	}
	if roster.Manager != nil {
		manager := toEmployeeDTO(*roster.Manager)
		response.Manager = &manager
	}

	h.responder.writeCacheable(w, r, response)
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := h.departmentID(w, r, "Update")
	if !ok {
		return
	}

	var req departmentPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "department_id", departmentID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode department patch", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "department_id", departmentID)

	patch, err := req.toPatch()
	if err != nil {
		logger.WarnContext(r.Context(), "department patch rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	updated, err := h.service.UpdateDepartment(r.Context(), departmentID, patch)
	if err != nil {
		logger.ErrorContext(r.Context(), "department update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !updated {
		h.responder.writeNotFound(r.Context(), w, "department not found", "/departments")
		return
	}

	department, err := h.service.GetDepartmentByID(r.Context(), departmentID)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to read back department", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if department == nil {
		h.responder.writeNotFound(r.Context(), w, "department not found", "/departments")
		return
	}

	logger.InfoContext(r.Context(), "department updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, departmentResponse{Department: toDepartmentDTO(*department)})
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := h.departmentID(w, r, "Delete")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "Delete", "department_id", departmentID)

	removed, err := h.service.RemoveDepartment(r.Context(), departmentID)
	if err != nil {
		logger.ErrorContext(r.Context(), "department deletion failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !removed {
		h.responder.writeNotFound(r.Context(), w, "department not found", "/departments")
		return
	}

	logger.InfoContext(r.Context(), "department deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *DepartmentHandler) departmentID(w http.ResponseWriter, r *http.Request, operation string) (string, bool) {
	departmentID, ok := DepartmentIDFromContext(r.Context())
	if !ok || strings.TrimSpace(departmentID) == "" {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "missing department id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDepartmentID)
		return "", false
	}
	return departmentID, true
}

type departmentRequest struct {
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	ManagerEmployeeID *string `json:"manager_employee_id"`
}

func (r departmentRequest) toInput() (application.DepartmentInput, error) {
	var f form
	input := application.DepartmentInput{
		Name:              f.text(r.Name),
		Description:       f.text(r.Description),
		ManagerEmployeeID: f.optional(r.ManagerEmployeeID),
	}
	f.minLength("name", "name", input.Name, minDepartmentNameLength)
	f.minLength("description", "description", input.Description, minDescriptionLength)
	return input, f.err()
}

type departmentPatchRequest struct {
	Name              *string        `json:"name"`
	Description       *string        `json:"description"`
	ManagerEmployeeID nullableString `json:"manager_employee_id"`
}

func (r departmentPatchRequest) toPatch() (application.DepartmentPatch, error) {
	var f form
	patch := application.DepartmentPatch{
		Name:              f.textPtr(r.Name),
		Description:       f.textPtr(r.Description),
		ManagerEmployeeID: f.nullable(r.ManagerEmployeeID),
	}
	if patch.Name != nil {
		f.minLength("name", "name", *patch.Name, minDepartmentNameLength)
	}
	if patch.Description != nil {
		f.minLength("description", "description", *patch.Description, minDescriptionLength)
	}
	return patch, f.err()
}

type departmentDTO struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	ManagerEmployeeID *string `json:"manager_employee_id"`
}

type departmentListItem struct {
	departmentDTO
	EmployeeCount int `json:"employee_count"`
}

type departmentResponse struct {
	Department departmentDTO `json:"department"`
}

type departmentListResponse struct {
	Query       string               `json:"query,omitempty"`
	Departments []departmentListItem `json:"departments"`
}

type departmentDetailResponse struct {
	Department departmentDTO `json:"department"`
	Manager    *employeeDTO  `json:"manager"`
	Members    []employeeDTO `json:"members"`
}

func toDepartmentDTO(department application.Department) departmentDTO {
	return departmentDTO{
		ID:                department.ID,
		Name:              department.Name,
		Description:       department.Description,
		ManagerEmployeeID: department.ManagerEmployeeID,
	}
}
