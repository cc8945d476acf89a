package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/hr-directory/internal/application"
	apihttp "github.com/example/hr-directory/internal/http"
	"github.com/example/hr-directory/internal/persistence"
	"github.com/example/hr-directory/internal/testfixtures"
)

type employeeBody struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Position     string  `json:"position"`
	DepartmentID *string `json:"department_id"`
	Phone        *string `json:"phone"`
	HireDate     string  `json:"hire_date"`
}

type departmentBody struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	ManagerEmployeeID *string `json:"manager_employee_id"`
	EmployeeCount     int     `json:"employee_count"`
}

type availabilityBody struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Status       string  `json:"status"`
	Note         *string `json:"note"`
}

type errorBody struct {
	ErrorCode string            `json:"error_code"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors"`
	Link      string            `json:"link"`
}

func newRouter(t *testing.T, repo persistence.Repository) (http.Handler, *application.Store) {
	t.Helper()

	store := testfixtures.NewStoreFactory().NewSeededStore(t, repo)
	return apihttp.NewRouter(apihttp.ConfigForStore(store, testfixtures.DiscardLogger())), store
}

func serve(t *testing.T, handler http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(recorder.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, recorder *httptest.ResponseRecorder, want int) {
	t.Helper()

	if recorder.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, recorder.Code, recorder.Body.String())
	}
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	router, _ := newRouter(t, nil)
	recorder := serve(t, router, http.MethodGet, "/", "")
	expectStatus(t, recorder, http.StatusOK)

	stats := decode[struct {
		TotalEmployees      int `json:"total_employees"`
		TotalDepartments    int `json:"total_departments"`
		AvailableToday      int `json:"available_today"`
		UnavailableToday    int `json:"unavailable_today"`
		UnassignedEmployees int `json:"unassigned_employees"`
		Departments         []struct {
			Name       string `json:"name"`
			Employees  int    `json:"employees"`
			Percentage int    `json:"percentage"`
		} `json:"departments"`
	}](t, recorder)

	if stats.TotalEmployees != 3 || stats.TotalDepartments != 3 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.AvailableToday != 2 || stats.UnavailableToday != 1 || stats.UnassignedEmployees != 0 {
		t.Fatalf("unexpected availability figures: %+v", stats)
	}
	if len(stats.Departments) != 3 || stats.Departments[0].Name != "Engineering" || stats.Departments[0].Percentage != 33 {
		t.Fatalf("unexpected headcount rows: %+v", stats.Departments)
	}
}

func TestEmployeeResources(t *testing.T) {
	t.Parallel()

	t.Run("searches by query", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		recorder := serve(t, router, http.MethodGet, "/employees?q=MANAGER", "")
		expectStatus(t, recorder, http.StatusOK)

		body := decode[struct {
			Query     string         `json:"query"`
			Employees []employeeBody `json:"employees"`
		}](t, recorder)
		if body.Query != "MANAGER" || len(body.Employees) != 1 || body.Employees[0].Name != "Jane Smith" {
			t.Fatalf("unexpected search result: %+v", body)
		}
	})

	t.Run("returns detail with department", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		recorder := serve(t, router, http.MethodGet, "/employees/1", "")
		expectStatus(t, recorder, http.StatusOK)

		body := decode[struct {
			Employee   employeeBody    `json:"employee"`
			Department *departmentBody `json:"department"`
		}](t, recorder)
		if body.Employee.Name != "John Doe" || body.Department == nil || body.Department.Name != "Engineering" {
			t.Fatalf("unexpected detail: %+v", body)
		}
	})

	t.Run("unknown employee links back to the list", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		for _, target := range []string{"/employees/999", "/employees/999/availability"} {
			recorder := serve(t, router, http.MethodGet, target, "")
			expectStatus(t, recorder, http.StatusNotFound)
			if body := decode[errorBody](t, recorder); body.Link != "/employees" {
				t.Fatalf("expected link to /employees for %s, got %+v", target, body)
			}
		}
	})

	t.Run("creates employees", func(t *testing.T) {
		t.Parallel()

		router, store := newRouter(t, nil)
		recorder := serve(t, router, http.MethodPost, "/employees", `{
			"name": "Ada Lovelace",
			"email": "ada@company.com",
			"position": "Analyst",
			"department_id": "2",
			"hire_date": "2024-02-01"
		}`)
		expectStatus(t, recorder, http.StatusCreated)

		body := decode[struct {
			Employee employeeBody `json:"employee"`
		}](t, recorder)
		if body.Employee.ID != "id-1" || recorder.Header().Get("Location") != "/employees/id-1" {
			t.Fatalf("unexpected created employee: %+v, location %q", body, recorder.Header().Get("Location"))
		}
		if body.Employee.Phone != nil {
			t.Fatalf("expected no phone, got %q", *body.Employee.Phone)
		}

		members, err := store.GetEmployeesByDepartment(t.Context(), "2")
		if err != nil || len(members) != 2 {
			t.Fatalf("expected two members in department 2, got %v, %v", members, err)
		}
	})

	t.Run("reports field errors", func(t *testing.T) {
		t.Parallel()

		router, store := newRouter(t, nil)
		recorder := serve(t, router, http.MethodPost, "/employees", `{"name":"A","email":"nope","position":"","hire_date":"01/02/2024"}`)
		expectStatus(t, recorder, http.StatusUnprocessableEntity)

		body := decode[errorBody](t, recorder)
		for _, field := range []string{"name", "email", "position", "hire_date"} {
			if body.Errors[field] == "" {
				t.Fatalf("expected an error for %s, got %+v", field, body.Errors)
			}
		}
		if body.ErrorCode != "VALIDATION_FAILED" {
			t.Fatalf("unexpected error code %q", body.ErrorCode)
		}

		employees, _ := store.Employees(t.Context())
		if len(employees) != 3 {
			t.Fatalf("expected store to stay unchanged, got %d employees", len(employees))
		}
	})

	t.Run("trims fields and drops blank optionals before storing", func(t *testing.T) {
		t.Parallel()

		router, store := newRouter(t, nil)
		recorder := serve(t, router, http.MethodPost, "/employees", `{
			"name": "  Linus  ",
			"email": " linus@company.com ",
			"position": "Maintainer",
			"department_id": "",
			"phone": "   ",
			"hire_date": "1991-08-25"
		}`)
		expectStatus(t, recorder, http.StatusCreated)

		id := decode[struct {
			Employee employeeBody `json:"employee"`
		}](t, recorder).Employee.ID
		stored, err := store.GetEmployeeByID(t.Context(), id)
		if err != nil || stored == nil {
			t.Fatalf("expected stored employee, got %v, %v", stored, err)
		}
		if stored.Name != "Linus" || stored.Email != "linus@company.com" || stored.DepartmentID != nil || stored.Phone != nil {
			t.Fatalf("unexpected stored employee %#v", stored)
		}
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		expectStatus(t, serve(t, router, http.MethodPost, "/employees", `{"name":`), http.StatusBadRequest)
		expectStatus(t, serve(t, router, http.MethodPatch, "/employees/1", `[]`), http.StatusBadRequest)
	})

	t.Run("patch distinguishes null from absent", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		recorder := serve(t, router, http.MethodPatch, "/employees/1", `{"department_id": null, "position": "Staff Engineer"}`)
		expectStatus(t, recorder, http.StatusOK)

		body := decode[struct {
			Employee employeeBody `json:"employee"`
		}](t, recorder)
		if body.Employee.DepartmentID != nil {
			t.Fatalf("expected department to be cleared, got %q", *body.Employee.DepartmentID)
		}
		if body.Employee.Phone == nil || *body.Employee.Phone != "555-123-4567" {
			t.Fatalf("expected absent phone to stay, got %v", body.Employee.Phone)
		}
		if body.Employee.Position != "Staff Engineer" {
			t.Fatalf("expected position update, got %q", body.Employee.Position)
		}
	})

	t.Run("patch and delete of missing employees answer 404", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		expectStatus(t, serve(t, router, http.MethodPatch, "/employees/999", `{"name":"Nobody"}`), http.StatusNotFound)
		expectStatus(t, serve(t, router, http.MethodDelete, "/employees/999", ""), http.StatusNotFound)
	})
}

func TestDeleteCascadesThroughEveryBackend(t *testing.T) {
	t.Parallel()

	for _, backend := range testfixtures.Backends() {
		backend := backend
		t.Run(backend.Name, func(t *testing.T) {
			t.Parallel()

			router, _ := newRouter(t, backend.New(t))

			expectStatus(t, serve(t, router, http.MethodDelete, "/employees/1", ""), http.StatusNoContent)
			expectStatus(t, serve(t, router, http.MethodGet, "/employees/1", ""), http.StatusNotFound)

			roster := serve(t, router, http.MethodGet, "/departments/1", "")
			expectStatus(t, roster, http.StatusOK)
			detail := decode[struct {
				Department departmentBody `json:"department"`
				Manager    *employeeBody  `json:"manager"`
				Members    []employeeBody `json:"members"`
			}](t, roster)
			if detail.Department.ManagerEmployeeID != nil || detail.Manager != nil || len(detail.Members) != 0 {
				t.Fatalf("expected department 1 to lose its manager and members, got %+v", detail)
			}

			day := serve(t, router, http.MethodGet, "/availability?date=2024-03-06", "")
			expectStatus(t, day, http.StatusOK)
			entries := decode[struct {
				Entries []availabilityBody `json:"entries"`
			}](t, day)
			if len(entries.Entries) != 2 {
				t.Fatalf("expected two remaining entries, got %+v", entries.Entries)
			}

			expectStatus(t, serve(t, router, http.MethodDelete, "/departments/2", ""), http.StatusNoContent)
			employee := decode[struct {
				Employee employeeBody `json:"employee"`
			}](t, serve(t, router, http.MethodGet, "/employees/2", ""))
			if employee.Employee.DepartmentID != nil {
				t.Fatalf("expected employee 2 to be unassigned, got %q", *employee.Employee.DepartmentID)
			}
		})
	}
}

func TestDepartmentResources(t *testing.T) {
	t.Parallel()

	t.Run("lists with headcount", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		recorder := serve(t, router, http.MethodGet, "/departments?q=design", "")
		expectStatus(t, recorder, http.StatusOK)

		body := decode[struct {
			Departments []departmentBody `json:"departments"`
		}](t, recorder)
		if len(body.Departments) != 1 || body.Departments[0].ID != "3" || body.Departments[0].EmployeeCount != 1 {
			t.Fatalf("unexpected department list: %+v", body.Departments)
		}
	})

	t.Run("creates and updates", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		created := serve(t, router, http.MethodPost, "/departments", `{"name":"Finance","description":"Money matters"}`)
		expectStatus(t, created, http.StatusCreated)
		id := decode[struct {
			Department departmentBody `json:"department"`
		}](t, created).Department.ID

		updated := serve(t, router, http.MethodPatch, "/departments/"+id, `{"manager_employee_id":"2"}`)
		expectStatus(t, updated, http.StatusOK)
		department := decode[struct {
			Department departmentBody `json:"department"`
		}](t, updated).Department
		if department.ManagerEmployeeID == nil || *department.ManagerEmployeeID != "2" || department.Name != "Finance" {
			t.Fatalf("unexpected updated department: %+v", department)
		}

		invalid := serve(t, router, http.MethodPatch, "/departments/"+id, `{"description":"tiny"}`)
		expectStatus(t, invalid, http.StatusUnprocessableEntity)
	})

	t.Run("roster tolerates a dangling manager", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		expectStatus(t, serve(t, router, http.MethodPatch, "/departments/2", `{"manager_employee_id":"999"}`), http.StatusOK)

		recorder := serve(t, router, http.MethodGet, "/departments/2", "")
		expectStatus(t, recorder, http.StatusOK)
		body := decode[struct {
			Manager *employeeBody  `json:"manager"`
			Members []employeeBody `json:"members"`
		}](t, recorder)
		if body.Manager != nil || len(body.Members) != 1 {
			t.Fatalf("unexpected roster: %+v", body)
		}
	})

	t.Run("unknown department links back to the list", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		recorder := serve(t, router, http.MethodGet, "/departments/999", "")
		expectStatus(t, recorder, http.StatusNotFound)
		if body := decode[errorBody](t, recorder); body.Link != "/departments" {
			t.Fatalf("unexpected not found body: %+v", body)
		}
	})
}

func TestAvailabilityResources(t *testing.T) {
	t.Parallel()

	t.Run("week view starts on monday", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		recorder := serve(t, router, http.MethodGet, "/availability?week=2024-03-10", "")
		expectStatus(t, recorder, http.StatusOK)

		body := decode[struct {
			WeekStart    string             `json:"week_start"`
			PreviousWeek string             `json:"previous_week"`
			NextWeek     string             `json:"next_week"`
			Days         []string           `json:"days"`
			Entries      []availabilityBody `json:"entries"`
		}](t, recorder)
		if body.WeekStart != "2024-03-04" || body.PreviousWeek != "2024-02-26" || body.NextWeek != "2024-03-11" {
			t.Fatalf("unexpected week bounds: %+v", body)
		}
		if len(body.Days) != 7 || body.Days[6] != "2024-03-10" {
			t.Fatalf("unexpected days: %v", body.Days)
		}
		if len(body.Entries) != 3 || body.Entries[2].EmployeeName != "Robert Johnson" || body.Entries[2].Note == nil {
			t.Fatalf("unexpected entries: %+v", body.Entries)
		}
	})

	t.Run("defaults to the current week", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		recorder := serve(t, router, http.MethodGet, "/availability", "")
		expectStatus(t, recorder, http.StatusOK)
		body := decode[struct {
			WeekStart string `json:"week_start"`
		}](t, recorder)
		if body.WeekStart != "2024-03-04" {
			t.Fatalf("expected current week, got %q", body.WeekStart)
		}
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		for _, target := range []string{"/availability?week=next", "/availability?date=2024-13-01"} {
			expectStatus(t, serve(t, router, http.MethodGet, target, ""), http.StatusUnprocessableEntity)
		}
	})

	t.Run("adds, edits and removes entries", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		created := serve(t, router, http.MethodPost, "/availability", `{
			"employee_id": "2",
			"date": "2024-03-07",
			"start_time": "09:30",
			"end_time": "12:00",
			"status": "unavailable",
			"note": "Dentist"
		}`)
		expectStatus(t, created, http.StatusCreated)
		entry := decode[struct {
			Entry availabilityBody `json:"entry"`
		}](t, created).Entry
		if entry.Date != "2024-03-07" || entry.Note == nil || *entry.Note != "Dentist" {
			t.Fatalf("unexpected created entry: %+v", entry)
		}

		updated := serve(t, router, http.MethodPatch, "/availability/"+entry.ID, `{"note": null, "status": "available"}`)
		expectStatus(t, updated, http.StatusOK)
		changed := decode[struct {
			Entry availabilityBody `json:"entry"`
		}](t, updated).Entry
		if changed.Note != nil || changed.Status != "available" || changed.StartTime != "09:30" {
			t.Fatalf("unexpected updated entry: %+v", changed)
		}

		day := decode[struct {
			Entries []availabilityBody `json:"entries"`
		}](t, serve(t, router, http.MethodGet, "/availability?date=2024-03-07", ""))
		if len(day.Entries) != 1 || day.Entries[0].EmployeeName != "Jane Smith" {
			t.Fatalf("unexpected entries for 7 March: %+v", day.Entries)
		}

		expectStatus(t, serve(t, router, http.MethodDelete, "/availability/"+entry.ID, ""), http.StatusNoContent)
		expectStatus(t, serve(t, router, http.MethodDelete, "/availability/"+entry.ID, ""), http.StatusNotFound)
	})

	t.Run("validates entries", func(t *testing.T) {
		t.Parallel()

		router, _ := newRouter(t, nil)
		recorder := serve(t, router, http.MethodPost, "/availability", `{"employee_id":"","start_time":"9am","end_time":"17:00","status":"busy"}`)
		expectStatus(t, recorder, http.StatusUnprocessableEntity)

		body := decode[errorBody](t, recorder)
		for _, field := range []string{"employee_id", "date", "start_time", "status"} {
			if body.Errors[field] == "" {
				t.Fatalf("expected an error for %s, got %+v", field, body.Errors)
			}
		}

		bad := serve(t, router, http.MethodPatch, "/availability/1", `{"date":"tomorrow"}`)
		expectStatus(t, bad, http.StatusUnprocessableEntity)
	})
}

func TestConditionalGet(t *testing.T) {
	t.Parallel()

	router, _ := newRouter(t, nil)

	first := serve(t, router, http.MethodGet, "/employees", "")
	expectStatus(t, first, http.StatusOK)
	tag := first.Header().Get("ETag")
	if !strings.HasPrefix(tag, `W/"`) {
		t.Fatalf("expected weak ETag, got %q", tag)
	}

	cached := serve(t, router, http.MethodGet, "/employees", "", "If-None-Match", tag)
	expectStatus(t, cached, http.StatusNotModified)
	if cached.Body.Len() != 0 {
		t.Fatalf("expected empty body for 304, got %q", cached.Body.String())
	}

	expectStatus(t, serve(t, router, http.MethodPatch, "/employees/3", `{"phone": null}`), http.StatusOK)

	fresh := serve(t, router, http.MethodGet, "/employees", "", "If-None-Match", tag)
	expectStatus(t, fresh, http.StatusOK)
	if fresh.Header().Get("ETag") == tag {
		t.Fatalf("expected a new ETag after mutation")
	}
}

func TestRouterFallbacks(t *testing.T) {
	t.Parallel()

	router, _ := newRouter(t, nil)

	t.Run("method not allowed lists allowed methods", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			method string
			target string
			allow  string
		}{
			{http.MethodPut, "/employees", "GET, POST"},
			{http.MethodPost, "/employees/1", "GET, PATCH, DELETE"},
			{http.MethodPost, "/employees/1/availability", "GET"},
			{http.MethodGet, "/availability/1", "PATCH, DELETE"},
			{http.MethodDelete, "/", "GET"},
		}
		for _, tc := range tests {
			recorder := serve(t, router, tc.method, tc.target, "")
			expectStatus(t, recorder, http.StatusMethodNotAllowed)
			if got := recorder.Header().Get("Allow"); got != tc.allow {
				t.Fatalf("%s %s: expected Allow %q, got %q", tc.method, tc.target, tc.allow, got)
			}
		}
	})

	t.Run("unknown paths link to the nearest listing", func(t *testing.T) {
		t.Parallel()

		tests := map[string]string{
			"/reports":                 "/",
			"/employees/1/history":     "/employees",
			"/departments/1/members":   "/departments",
			"/availability/1/comments": "/availability",
		}
		for target, link := range tests {
			recorder := serve(t, router, http.MethodGet, target, "")
			expectStatus(t, recorder, http.StatusNotFound)
			if body := decode[errorBody](t, recorder); body.Link != link {
				t.Fatalf("%s: expected link %q, got %+v", target, link, body)
			}
		}
	})

	t.Run("health check", func(t *testing.T) {
		t.Parallel()

		recorder := serve(t, router, http.MethodGet, "/healthz", "")
		expectStatus(t, recorder, http.StatusOK)
		if body := decode[map[string]string](t, recorder); body["status"] != "ok" {
			t.Fatalf("unexpected health body: %v", body)
		}
	})
}

func TestRouterMountsMetricsAndMiddleware(t *testing.T) {
	t.Parallel()

	store := testfixtures.NewStoreFactory().NewSeededStore(t, nil)
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	cfg := apihttp.ConfigForStore(store, testfixtures.DiscardLogger())
	cfg.Metrics = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "metrics")
	})
	cfg.Middleware = []func(http.Handler) http.Handler{tag("outer"), nil, tag("inner")}
	router := apihttp.NewRouter(cfg)

	recorder := serve(t, router, http.MethodGet, "/metrics", "")
	expectStatus(t, recorder, http.StatusOK)
	if recorder.Body.String() != "metrics" {
		t.Fatalf("expected metrics handler to be mounted, got %q", recorder.Body.String())
	}
	if strings.Join(order, ",") != "outer,inner" {
		t.Fatalf("expected middleware in declaration order, got %v", order)
	}
}

func TestConfigForStorePanicsWithoutStore(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for nil store")
		}
	}()
	apihttp.ConfigForStore(nil, nil)
}

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var sawLogger bool
	handler := apihttp.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = apihttp.LoggerFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/employees", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/departments", nil))

	if !sawLogger {
		t.Fatalf("expected request logger in context")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 log lines, got %d: %s", len(lines), buf.String())
	}
	var completed struct {
		Msg       string `json:"msg"`
		RequestID int    `json:"request_id"`
		Path      string `json:"path"`
		Status    int    `json:"status"`
	}
	if err := json.Unmarshal([]byte(lines[3]), &completed); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}
	if completed.Msg != "request completed" || completed.RequestID != 2 || completed.Path != "/departments" || completed.Status != http.StatusTeapot {
		t.Fatalf("unexpected completion log: %+v", completed)
	}
}
