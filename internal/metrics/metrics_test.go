package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/example/hr-directory/internal/application"
	"github.com/example/hr-directory/internal/persistence"
	"github.com/example/hr-directory/internal/persistence/memory"
)

type statsStub struct {
	stats application.DashboardStats
	err   error
}

func (s statsStub) Stats(context.Context) (application.DashboardStats, error) {
	return s.stats, s.err
}

func TestRoute(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"/":                          "/",
		"/employees":                 "/employees",
		"/employees/":                "/employees",
		"/employees/42":              "/employees/{id}",
		"/employees/42/availability": "/employees/{id}/availability",
		"/employees/42/other":        "other",
		"/departments/7":             "/departments/{id}",
		"/availability":              "/availability",
		"/availability/a-1":          "/availability/{id}",
		"/healthz":                   "/healthz",
		"/metrics":                   "/metrics",
		"/favicon.ico":               "other",
		"/departments/7/members":     "other",
	}
	for path, want := range tests {
		if got := Route(path); got != want {
			t.Fatalf("Route(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestMiddlewareRecordsRequests(t *testing.T) {
	t.Parallel()

	registry := New()
	handler := registry.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/employees/missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))

	for _, path := range []string{"/employees/1", "/employees/2", "/employees/missing"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := testutil.ToFloat64(registry.requests.WithLabelValues(http.MethodGet, "/employees/{id}", "200")); got != 2 {
		t.Fatalf("expected 2 successful requests, got %v", got)
	}
	if got := testutil.ToFloat64(registry.requests.WithLabelValues(http.MethodGet, "/employees/{id}", "404")); got != 1 {
		t.Fatalf("expected 1 not found request, got %v", got)
	}
	if got := testutil.CollectAndCount(registry.duration); got != 1 {
		t.Fatalf("expected a single latency series, got %d", got)
	}
}

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	t.Parallel()

	registry := New()
	if err := registry.RegisterStore(statsStub{stats: application.DashboardStats{TotalEmployees: 3}}); err != nil {
		t.Fatalf("RegisterStore failed: %v", err)
	}
	registry.Middleware()(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	recorder := httptest.NewRecorder()
	registry.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics handler, got %d", recorder.Code)
	}

	body := recorder.Body.String()
	for _, want := range []string{
		`hrdirectory_http_requests_total{code="404",method="GET",route="other"} 1`,
		"hrdirectory_store_employees 3",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected exposition to contain %q", want)
		}
	}
}

func TestStoreCollector(t *testing.T) {
	t.Parallel()

	t.Run("reports dashboard aggregates", func(t *testing.T) {
		t.Parallel()

		collector := NewStoreCollector(statsStub{stats: application.DashboardStats{
			TotalEmployees:      3,
			TotalDepartments:    2,
			AvailableToday:      2,
			UnavailableToday:    1,
			UnassignedEmployees: 1,
			Departments: []application.DepartmentHeadcount{
				{DepartmentID: "1", Name: "Engineering", Employees: 2, Percentage: 67},
				{DepartmentID: "2", Name: "Marketing", Employees: 0},
			},
		}})

		expected := `
# HELP hrdirectory_store_availability_today Availability entries dated today, by status.
# TYPE hrdirectory_store_availability_today gauge
hrdirectory_store_availability_today{status="available"} 2
hrdirectory_store_availability_today{status="unavailable"} 1
# HELP hrdirectory_store_department_employees Employees assigned to each department.
# TYPE hrdirectory_store_department_employees gauge
hrdirectory_store_department_employees{department="Engineering",department_id="1"} 2
hrdirectory_store_department_employees{department="Marketing",department_id="2"} 0
# HELP hrdirectory_store_employees Employees currently stored.
# TYPE hrdirectory_store_employees gauge
hrdirectory_store_employees 3
# HELP hrdirectory_store_unassigned_employees Employees without a department.
# TYPE hrdirectory_store_unassigned_employees gauge
hrdirectory_store_unassigned_employees 1
`
		if err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
			"hrdirectory_store_availability_today",
			"hrdirectory_store_department_employees",
			"hrdirectory_store_employees",
			"hrdirectory_store_unassigned_employees",
		); err != nil {
			t.Fatalf("unexpected collector output: %v", err)
		}
	})

	t.Run("surfaces store failures as gather errors", func(t *testing.T) {
		t.Parallel()

		registry := prometheus.NewPedanticRegistry()
		registry.MustRegister(NewStoreCollector(statsStub{err: errors.New("backend unavailable")}))

		if _, err := registry.Gather(); err == nil || !strings.Contains(err.Error(), "backend unavailable") {
			t.Fatalf("expected gather error carrying the store failure, got %v", err)
		}
	})

	t.Run("panics without a source", func(t *testing.T) {
		t.Parallel()

		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic for nil source")
			}
		}()
		NewStoreCollector(nil)
	})
}

func TestMutationCollector(t *testing.T) {
	t.Parallel()

	t.Run("counts backend mutations per collection", func(t *testing.T) {
		t.Parallel()

		backend := memory.New()
		ctx := context.Background()
		for _, id := range []string{"1", "2"} {
			if err := backend.CreateEmployee(ctx, persistence.Employee{ID: id, Name: "E" + id}); err != nil {
				t.Fatalf("CreateEmployee failed: %v", err)
			}
		}
		if err := backend.CreateDepartment(ctx, persistence.Department{ID: "d1", Name: "Ops"}); err != nil {
			t.Fatalf("CreateDepartment failed: %v", err)
		}
		if _, err := backend.DeleteDepartment(ctx, "d1"); err != nil {
			t.Fatalf("DeleteDepartment failed: %v", err)
		}

		expected := `
# HELP hrdirectory_store_mutations_total Mutations applied to each collection since startup, seeding included.
# TYPE hrdirectory_store_mutations_total counter
hrdirectory_store_mutations_total{collection="availability"} 0
hrdirectory_store_mutations_total{collection="departments"} 2
hrdirectory_store_mutations_total{collection="employees"} 2
`
		if err := testutil.CollectAndCompare(NewMutationCollector(backend), strings.NewReader(expected)); err != nil {
			t.Fatalf("unexpected collector output: %v", err)
		}
	})

	t.Run("panics without a source", func(t *testing.T) {
		t.Parallel()

		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic for nil source")
			}
		}()
		NewMutationCollector(nil)
	})
}
