package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/hr-directory/internal/application"
	"github.com/example/hr-directory/internal/calendar"
)

type employeeService interface {
	AddEmployee(ctx context.Context, input application.EmployeeInput) (application.Employee, error)
	UpdateEmployee(ctx context.Context, id string, patch application.EmployeePatch) (bool, error)
	RemoveEmployee(ctx context.Context, id string) (bool, error)
	GetEmployeeByID(ctx context.Context, id string) (*application.Employee, error)
	GetDepartmentByID(ctx context.Context, id string) (*application.Department, error)
	SearchEmployees(ctx context.Context, term string) ([]application.Employee, error)
	GetAvailabilityForEmployee(ctx context.Context, employeeID string) ([]application.AvailabilityEntry, error)
	Calendar() *calendar.Calendar
}

// EmployeeHandler serves the employee list, detail and availability resources.
type EmployeeHandler struct {
	service   employeeService
	responder responder
	logger    *slog.Logger
}

// NewEmployeeHandler panics when service is nil.
func NewEmployeeHandler(service employeeService, logger *slog.Logger) *EmployeeHandler {
	if service == nil {
		panic("http: employee handler requires a service")
	}
	base := defaultLogger(logger)
	return &EmployeeHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *EmployeeHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "EmployeeHandler", operation, attrs...)
}

// List returns every employee, or those matching the q query parameter.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	employees, err := h.service.SearchEmployees(r.Context(), query)
	if err != nil {
		h.log(r.Context(), "List").ErrorContext(r.Context(), "failed to list employees", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeCacheable(w, r, employeeListResponse{Query: query, Employees: toEmployeeDTOs(employees)})
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode employee request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.log(r.Context(), "Create").WarnContext(r.Context(), "employee request rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	employee, err := h.service.AddEmployee(r.Context(), input)
	if err != nil {
		h.log(r.Context(), "Create").ErrorContext(r.Context(), "employee creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.log(r.Context(), "Create", "employee_id", employee.ID).InfoContext(r.Context(), "employee created")
	w.Header().Set("Location", "/employees/"+employee.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, employeeResponse{Employee: toEmployeeDTO(employee)})
}

// Get returns the employee with its resolved department.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r, "Get")
	if !ok {
		return
	}

	employee, err := h.service.GetEmployeeByID(r.Context(), employeeID)
	if err != nil {
		h.log(r.Context(), "Get", "employee_id", employeeID).ErrorContext(r.Context(), "failed to load employee", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if employee == nil {
		h.responder.writeNotFound(r.Context(), w, "employee not found", "/employees")
		return
	}

	response := employeeDetailResponse{Employee: toEmployeeDTO(*employee)}
	if employee.DepartmentID != nil {
		department, err := h.service.GetDepartmentByID(r.Context(), *employee.DepartmentID)
		if err != nil {
			h.log(r.Context(), "Get", "employee_id", employeeID).ErrorContext(r.Context(), "failed to load department", "error", err, "error_kind", application.ErrorKind(err))
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
		if department != nil {
			dto := toDepartmentDTO(*department)
			response.Department = &dto
		}
	}

	h.responder.writeCacheable(w, r, response)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r, "Update")
	if !ok {
		return
	}

	var req employeePatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "employee_id", employeeID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode employee patch", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "employee_id", employeeID)

	patch, err := req.toPatch()
	if err != nil {
		logger.WarnContext(r.Context(), "employee patch rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	updated, err := h.service.UpdateEmployee(r.Context(), employeeID, patch)
	if err != nil {
		logger.ErrorContext(r.Context(), "employee update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !updated {
		h.responder.writeNotFound(r.Context(), w, "employee not found", "/employees")
		return
	}

	employee, err := h.service.GetEmployeeByID(r.Context(), employeeID)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to read back employee", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if employee == nil {
		// Removed concurrently between the update and the read back.
		h.responder.writeNotFound(r.Context(), w, "employee not found", "/employees")
		return
	}

	logger.InfoContext(r.Context(), "employee updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, employeeResponse{Employee: toEmployeeDTO(*employee)})
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r, "Delete")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "Delete", "employee_id", employeeID)

	removed, err := h.service.RemoveEmployee(r.Context(), employeeID)
	if err != nil {
		logger.ErrorContext(r.Context(), "employee deletion failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !removed {
		h.responder.writeNotFound(r.Context(), w, "employee not found", "/employees")
		return
	}

	logger.InfoContext(r.Context(), "employee deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// Availability returns the employee together with its availability entries.
func (h *EmployeeHandler) Availability(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.employeeID(w, r, "Availability")
	if !ok {
		return
	}

	employee, err := h.service.GetEmployeeByID(r.Context(), employeeID)
	if err != nil {
		h.log(r.Context(), "Availability", "employee_id", employeeID).ErrorContext(r.Context(), "failed to load employee", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if employee == nil {
		h.responder.writeNotFound(r.Context(), w, "employee not found", "/employees")
		return
	}

	entries, err := h.service.GetAvailabilityForEmployee(r.Context(), employeeID)
	if err != nil {
		h.log(r.Context(), "Availability", "employee_id", employeeID).ErrorContext(r.Context(), "failed to load availability", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	names := map[string]string{employee.ID: employee.Name}
	h.responder.writeCacheable(w, r, employeeAvailabilityResponse{
		Employee:     toEmployeeDTO(*employee),
		Availability: toAvailabilityDTOs(h.service.Calendar(), entries, names),
	})
}

func (h *EmployeeHandler) employeeID(w http.ResponseWriter, r *http.Request, operation string) (string, bool) {
	employeeID, ok := EmployeeIDFromContext(r.Context())
	if !ok || strings.TrimSpace(employeeID) == "" {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "missing employee id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEmployeeID)
		return "", false
	}
	return employeeID, true
}

type employeeRequest struct {
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Position     string  `json:"position"`
	DepartmentID *string `json:"department_id"`
	Phone        *string `json:"phone"`
	HireDate     string  `json:"hire_date"`
}

// toInput trims the submitted fields, turns blank optional fields into nil
// and applies the employee form rules.
func (r employeeRequest) toInput() (application.EmployeeInput, error) {
	var f form
	input := application.EmployeeInput{
		Name:         f.text(r.Name),
		Email:        f.text(r.Email),
		Position:     f.text(r.Position),
		DepartmentID: f.optional(r.DepartmentID),
		Phone:        f.optional(r.Phone),
		HireDate:     f.text(r.HireDate),
	}
	f.minLength("name", "name", input.Name, minEmployeeNameLength)
	f.email(input.Email)
	f.required("position", "position", input.Position)
	f.hireDate(input.HireDate)
	return input, f.err()
}

type employeePatchRequest struct {
	Name         *string        `json:"name"`
	Email        *string        `json:"email"`
	Position     *string        `json:"position"`
	DepartmentID nullableString `json:"department_id"`
	Phone        nullableString `json:"phone"`
	HireDate     *string        `json:"hire_date"`
}

// toPatch applies the employee form rules to the fields present in the body.
func (r employeePatchRequest) toPatch() (application.EmployeePatch, error) {
	var f form
	patch := application.EmployeePatch{
		Name:         f.textPtr(r.Name),
		Email:        f.textPtr(r.Email),
		Position:     f.textPtr(r.Position),
		DepartmentID: f.nullable(r.DepartmentID),
		Phone:        f.nullable(r.Phone),
		HireDate:     f.textPtr(r.HireDate),
	}
	if patch.Name != nil {
		f.minLength("name", "name", *patch.Name, minEmployeeNameLength)
	}
	if patch.Email != nil {
		f.email(*patch.Email)
	}
	if patch.Position != nil {
		f.required("position", "position", *patch.Position)
	}
	if patch.HireDate != nil {
		f.hireDate(*patch.HireDate)
	}
	return patch, f.err()
}

type employeeDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Position     string  `json:"position"`
	DepartmentID *string `json:"department_id"`
	Phone        *string `json:"phone"`
	HireDate     string  `json:"hire_date"`
}

type employeeResponse struct {
	Employee employeeDTO `json:"employee"`
}

type employeeListResponse struct {
	Query     string        `json:"query,omitempty"`
	Employees []employeeDTO `json:"employees"`
}

type employeeDetailResponse struct {
	Employee   employeeDTO    `json:"employee"`
	Department *departmentDTO `json:"department"`
}

type employeeAvailabilityResponse struct {
	Employee     employeeDTO       `json:"employee"`
	Availability []availabilityDTO `json:"availability"`
}

func toEmployeeDTO(employee application.Employee) employeeDTO {
	return employeeDTO{
		ID:           employee.ID,
		Name:         employee.Name,
		Email:        employee.Email,
		Position:     employee.Position,
		DepartmentID: employee.DepartmentID,
		Phone:        employee.Phone,
		HireDate:     employee.HireDate,
	}
}

func toEmployeeDTOs(employees []application.Employee) []employeeDTO {
	dtos := make([]employeeDTO, 0, len(employees))
	for _, employee := range employees {
		dtos = append(dtos, toEmployeeDTO(employee))
	}
	return dtos
}
