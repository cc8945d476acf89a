package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/hr-directory/internal/application"
	"github.com/example/hr-directory/internal/calendar"
)

type availabilityService interface {
	AddAvailability(ctx context.Context, input application.AvailabilityInput) (application.AvailabilityEntry, error)
	UpdateAvailability(ctx context.Context, id string, patch application.AvailabilityPatch) (bool, error)
	RemoveAvailability(ctx context.Context, id string) (bool, error)
	GetAvailabilityByID(ctx context.Context, id string) (*application.AvailabilityEntry, error)
	GetAvailabilityForDate(ctx context.Context, date time.Time) ([]application.AvailabilityEntry, error)
	GetAvailabilityForWeek(ctx context.Context, reference time.Time) (application.WeekView, error)
	Employees(ctx context.Context) ([]application.Employee, error)
	Calendar() *calendar.Calendar
	Now() time.Time
}

// AvailabilityHandler serves the weekly calendar and availability entry resources.
type AvailabilityHandler struct {
	service   availabilityService
	responder responder
	logger    *slog.Logger
}

// NewAvailabilityHandler panics when service is nil.
func NewAvailabilityHandler(service availabilityService, logger *slog.Logger) *AvailabilityHandler {
	if service == nil {
		panic("http: availability handler requires a service")
	}
	base := defaultLogger(logger)
	return &AvailabilityHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AvailabilityHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AvailabilityHandler", operation, attrs...)
}

// List returns the entries of one day when date is given, otherwise the
// Monday-start week containing week (default today).
func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	cal := h.service.Calendar()
	query := r.URL.Query()
	logger := h.log(r.Context(), "List")

	names, err := h.employeeNames(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load employees", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	if raw := strings.TrimSpace(query.Get("date")); raw != "" {
		var f form
		date := f.date(cal, "date", raw)
		if err := f.err(); err != nil {
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
		entries, err := h.service.GetAvailabilityForDate(r.Context(), date)
		if err != nil {
			logger.ErrorContext(r.Context(), "failed to filter availability by date", "error", err, "error_kind", application.ErrorKind(err))
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
		h.responder.writeCacheable(w, r, dayResponse{
			Date:    cal.FormatDate(date),
			Entries: toAvailabilityDTOs(cal, entries, names),
		})
		return
	}

	reference := h.service.Now()
	if raw := strings.TrimSpace(query.Get("week")); raw != "" {
		var f form
		reference = f.date(cal, "week", raw)
		if err := f.err(); err != nil {
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
	}

	week, err := h.service.GetAvailabilityForWeek(r.Context(), reference)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load week", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	days := make([]string, 0, len(week.Days))
	for _, day := range week.Days {
		days = append(days, cal.FormatDate(day))
	}
	start := week.Start()
	h.responder.writeCacheable(w, r, weekResponse{
		WeekStart:    cal.FormatDate(start),
		PreviousWeek: cal.FormatDate(start.AddDate(0, 0, -calendar.DaysPerWeek)),
		NextWeek:     cal.FormatDate(start.AddDate(0, 0, calendar.DaysPerWeek)),
		Days:         days,
		Entries:      toAvailabilityDTOs(cal, week.Entries, names),
	})
}

func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode availability request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	cal := h.service.Calendar()
	input, err := req.toInput(cal)
	if err != nil {
		h.log(r.Context(), "Create").WarnContext(r.Context(), "availability request rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	entry, err := h.service.AddAvailability(r.Context(), input)
	if err != nil {
		h.log(r.Context(), "Create").ErrorContext(r.Context(), "availability creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.log(r.Context(), "Create", "availability_id", entry.ID).InfoContext(r.Context(), "availability created")
	w.Header().Set("Location", "/availability/"+entry.ID)
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, availabilityResponse{Entry: toAvailabilityDTO(cal, entry, "")})
}

func (h *AvailabilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	entryID, ok := h.availabilityID(w, r, "Update")
	if !ok {
		return
	}

	var req availabilityPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "availability_id", entryID, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode availability patch", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "availability_id", entryID)

	cal := h.service.Calendar()
	patch, err := req.toPatch(cal)
	if err != nil {
		logger.WarnContext(r.Context(), "availability patch rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	updated, err := h.service.UpdateAvailability(r.Context(), entryID, patch)
	if err != nil {
		logger.ErrorContext(r.Context(), "availability update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !updated {
		h.responder.writeNotFound(r.Context(), w, "availability entry not found", "/availability")
		return
	}

	entry, err := h.service.GetAvailabilityByID(r.Context(), entryID)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to read back availability", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if entry == nil {
		h.responder.writeNotFound(r.Context(), w, "availability entry not found", "/availability")
		return
	}

	logger.InfoContext(r.Context(), "availability updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityResponse{Entry: toAvailabilityDTO(cal, *entry, "")})
}

func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entryID, ok := h.availabilityID(w, r, "Delete")
	if !ok {
		return
	}

	logger := h.log(r.Context(), "Delete", "availability_id", entryID)

	removed, err := h.service.RemoveAvailability(r.Context(), entryID)
	if err != nil {
		logger.ErrorContext(r.Context(), "availability deletion failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !removed {
		h.responder.writeNotFound(r.Context(), w, "availability entry not found", "/availability")
		return
	}

	logger.InfoContext(r.Context(), "availability deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *AvailabilityHandler) availabilityID(w http.ResponseWriter, r *http.Request, operation string) (string, bool) {
	entryID, ok := AvailabilityIDFromContext(r.Context())
	if !ok || strings.TrimSpace(entryID) == "" {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "missing availability id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidAvailabilityID)
		return "", false
	}
	return entryID, true
}

func (h *AvailabilityHandler) employeeNames(ctx context.Context) (map[string]string, error) {
	employees, err := h.service.Employees(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(employees))
	for _, employee := range employees {
		names[employee.ID] = employee.Name
	}
	return names, nil
}

type availabilityRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Status     string  `json:"status"`
	Note       *string `json:"note"`
}

func (r availabilityRequest) toInput(cal *calendar.Calendar) (application.AvailabilityInput, error) {
	var f form
	input := application.AvailabilityInput{
		EmployeeID: f.text(r.EmployeeID),
		Date:       f.date(cal, "date", r.Date),
		StartTime:  f.text(r.StartTime),
		EndTime:    f.text(r.EndTime),
		Status:     f.status(r.Status),
		Note:       f.optional(r.Note),
	}
	f.required("employee_id", "employee", input.EmployeeID)
	f.clock("start_time", "start time", input.StartTime)
	f.clock("end_time", "end time", input.EndTime)
	return input, f.err()
}

type availabilityPatchRequest struct {
	EmployeeID *string        `json:"employee_id"`
	Date       *string        `json:"date"`
	StartTime  *string        `json:"start_time"`
	EndTime    *string        `json:"end_time"`
	Status     *string        `json:"status"`
	Note       nullableString `json:"note"`
}

func (r availabilityPatchRequest) toPatch(cal *calendar.Calendar) (application.AvailabilityPatch, error) {
	var f form
	patch := application.AvailabilityPatch{
		EmployeeID: f.textPtr(r.EmployeeID),
		StartTime:  f.textPtr(r.StartTime),
		EndTime:    f.textPtr(r.EndTime),
		Note:       f.nullable(r.Note),
	}
	if patch.EmployeeID != nil {
		f.required("employee_id", "employee", *patch.EmployeeID)
	}
	if r.Date != nil {
		date := f.date(cal, "date", *r.Date)
		patch.Date = &date
	}
	if patch.StartTime != nil {
		f.clock("start_time", "start time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		f.clock("end_time", "end time", *patch.EndTime)
	}
	if r.Status != nil {
		status := f.status(*r.Status)
		patch.Status = &status
	}
	return patch, f.err()
}

type availabilityDTO struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Status       string  `json:"status"`
	Note         *string `json:"note"`
}

type availabilityResponse struct {
	Entry availabilityDTO `json:"entry"`
}

type dayResponse struct {
	Date    string            `json:"date"`
	Entries []availabilityDTO `json:"entries"`
}

type weekResponse struct {
	WeekStart    string            `json:"week_start"`
	PreviousWeek string            `json:"previous_week"`
	NextWeek     string            `json:"next_week"`
	Days         []string          `json:"days"`
	Entries      []availabilityDTO `json:"entries"`
}

func toAvailabilityDTO(cal *calendar.Calendar, entry application.AvailabilityEntry, employeeName string) availabilityDTO {
	return availabilityDTO{
		ID:           entry.ID,
		EmployeeID:   entry.EmployeeID,
		EmployeeName: employeeName,
		Date:         cal.FormatDate(entry.Date),
		StartTime:    entry.StartTime,
		EndTime:      entry.EndTime,
		Status:       string(entry.Status),
		Note:         entry.Note,
	}
}

func toAvailabilityDTOs(cal *calendar.Calendar, entries []application.AvailabilityEntry, names map[string]string) []availabilityDTO {
	dtos := make([]availabilityDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, toAvailabilityDTO(cal, entry, names[entry.EmployeeID]))
	}
	return dtos
}
