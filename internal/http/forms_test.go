package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/hr-directory/internal/application"
	"github.com/example/hr-directory/internal/calendar"
	"github.com/example/hr-directory/internal/testfixtures"
)

func strPtr(value string) *string {
	return &value
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()

	var vErr *application.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return vErr.FieldErrors
}

func TestEmployeeRequestNormalisesFields(t *testing.T) {
	t.Parallel()

	input, err := employeeRequest{
		Name:         "  Linus  ",
		Email:        " linus@example.com ",
		Position:     "Maintainer ",
		DepartmentID: strPtr(""),
		Phone:        strPtr("   "),
		HireDate:     " 1991-08-25",
	}.toInput()
	if err != nil {
		t.Fatalf("toInput returned error: %v", err)
	}
	if input.Name != "Linus" || input.Email != "linus@example.com" || input.Position != "Maintainer" || input.HireDate != "1991-08-25" {
		t.Fatalf("expected trimmed fields, got %#v", input)
	}
	if input.DepartmentID != nil || input.Phone != nil {
		t.Fatalf("expected blank optionals to become nil, got %#v", input)
	}
}

func TestEmployeeRequestRejectsInvalidFields(t *testing.T) {
	t.Parallel()

	_, err := employeeRequest{Name: "J ", Email: "not-an-email", HireDate: "15/01/2020"}.toInput()
	errs := fieldErrors(t, err)
	want := map[string]string{
		"name":      "name must be at least 2 characters",
		"email":     "email is invalid",
		"position":  "position is required",
		"hire_date": "hire date must be formatted as YYYY-MM-DD",
	}
	for field, message := range want {
		if errs[field] != message {
			t.Fatalf("expected %s error %q, got %q", field, message, errs[field])
		}
	}
}

func TestEmployeePatchRequestChecksPresentFieldsOnly(t *testing.T) {
	t.Parallel()

	patch, err := employeePatchRequest{
		Name:  strPtr(" Grace "),
		Phone: nullableString{set: true, value: strPtr("  ")},
	}.toPatch()
	if err != nil {
		t.Fatalf("toPatch returned error: %v", err)
	}
	if patch.Name == nil || *patch.Name != "Grace" || patch.Email != nil {
		t.Fatalf("unexpected patch %#v", patch)
	}
	if !patch.Phone.Set || patch.Phone.Value != nil || patch.DepartmentID.Set {
		t.Fatalf("expected a blank phone to clear it and department to stay, got %#v", patch)
	}

	_, err = employeePatchRequest{Email: strPtr("broken")}.toPatch()
	if errs := fieldErrors(t, err); len(errs) != 1 || errs["email"] == "" {
		t.Fatalf("expected only an email error, got %v", errs)
	}
}

func TestDepartmentRequestRules(t *testing.T) {
	t.Parallel()

	input, err := departmentRequest{Name: " Ops ", Description: " Keeps the lights on ", ManagerEmployeeID: strPtr(" ")}.toInput()
	if err != nil {
		t.Fatalf("toInput returned error: %v", err)
	}
	if input.Name != "Ops" || input.Description != "Keeps the lights on" || input.ManagerEmployeeID != nil {
		t.Fatalf("unexpected department input %#v", input)
	}

	_, err = departmentRequest{Name: "X", Description: "tiny"}.toInput()
	errs := fieldErrors(t, err)
	if errs["name"] != "name must be at least 2 characters" || errs["description"] != "description must be at least 5 characters" {
		t.Fatalf("unexpected department errors %v", errs)
	}

	if _, err := (departmentPatchRequest{Description: strPtr("  tiny  ")}).toPatch(); err == nil {
		t.Fatalf("expected a short description to be rejected after trimming")
	}
}

func TestAvailabilityRequestRules(t *testing.T) {
	t.Parallel()

	cal := calendar.New(time.UTC)

	input, err := availabilityRequest{
		EmployeeID: " 2 ",
		Date:       "2024-03-07",
		StartTime:  "09:30 ",
		EndTime:    "12:00",
		Status:     " unavailable",
		Note:       strPtr(""),
	}.toInput(cal)
	if err != nil {
		t.Fatalf("toInput returned error: %v", err)
	}
	if input.EmployeeID != "2" || input.StartTime != "09:30" || input.Status != application.StatusUnavailable || input.Note != nil {
		t.Fatalf("unexpected availability input %#v", input)
	}
	if !input.Date.Equal(time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", input.Date)
	}

	_, err = availabilityRequest{StartTime: "9", Status: "maybe", Date: "07/03/2024"}.toInput(cal)
	errs := fieldErrors(t, err)
	for _, field := range []string{"employee_id", "date", "start_time", "end_time", "status"} {
		if errs[field] == "" {
			t.Fatalf("expected %s error, got %v", field, errs)
		}
	}

	_, err = availabilityPatchRequest{Date: strPtr(" "), Status: strPtr("busy")}.toPatch(cal)
	errs = fieldErrors(t, err)
	if errs["date"] != "date is required" || errs["status"] == "" || len(errs) != 2 {
		t.Fatalf("unexpected patch errors %v", errs)
	}
}

// failingReads serves every store call except the read back after an update.
type failingReads struct {
	*application.Store
	err error
}

func (f failingReads) GetEmployeeByID(context.Context, string) (*application.Employee, error) {
	return nil, f.err
}

func (f failingReads) GetDepartmentByID(context.Context, string) (*application.Department, error) {
	return nil, f.err
}

func (f failingReads) GetAvailabilityByID(context.Context, string) (*application.AvailabilityEntry, error) {
	return nil, f.err
}

func TestUpdateReportsReadBackFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk on fire")
	logger := testfixtures.DiscardLogger()

	tests := []struct {
		name   string
		body   string
		ctx    func(context.Context) context.Context
		handle func(service failingReads) http.HandlerFunc
	}{
		{
			name: "employee",
			body: `{"position":"Staff Engineer"}`,
			ctx:  func(ctx context.Context) context.Context { return ContextWithEmployeeID(ctx, "1") },
			handle: func(service failingReads) http.HandlerFunc {
				return NewEmployeeHandler(service, logger).Update
			},
		},
		{
			name: "department",
			body: `{"name":"Platform"}`,
			ctx:  func(ctx context.Context) context.Context { return ContextWithDepartmentID(ctx, "1") },
			handle: func(service failingReads) http.HandlerFunc {
				return NewDepartmentHandler(service, logger).Update
			},
		},
		{
			name: "availability",
			body: `{"status":"unavailable"}`,
			ctx:  func(ctx context.Context) context.Context { return ContextWithAvailabilityID(ctx, "1") },
			handle: func(service failingReads) http.HandlerFunc {
				return NewAvailabilityHandler(service, logger).Update
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := testfixtures.NewStoreFactory().NewSeededStore(t, nil)
			req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(tt.body))
			req = req.WithContext(tt.ctx(req.Context()))
			recorder := httptest.NewRecorder()

			tt.handle(failingReads{Store: store, err: boom})(recorder, req)

			if recorder.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500 when the read back fails, got %d: %s", recorder.Code, recorder.Body.String())
			}
		})
	}
}
