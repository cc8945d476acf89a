package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/hr-directory/internal/application"
)

// RouterConfig lists the handlers mounted by NewRouter. Nil handlers leave
// their paths unmounted.
type RouterConfig struct {
	Dashboard    *DashboardHandler
	Employees    *EmployeeHandler
	Departments  *DepartmentHandler
	Availability *AvailabilityHandler
	Metrics      http.Handler
	Logger       *slog.Logger
	Middleware   []func(http.Handler) http.Handler
}

// ConfigForStore builds every resource handler over store. It panics when
// store is nil.
func ConfigForStore(store *application.Store, logger *slog.Logger) RouterConfig {
	if store == nil {
		panic("http: router requires a store")
	}
	return RouterConfig{
		Dashboard:    NewDashboardHandler(store, logger),
		Employees:    NewEmployeeHandler(store, logger),
		Departments:  NewDepartmentHandler(store, logger),
		Availability: NewAvailabilityHandler(store, logger),
		Logger:       logger,
	}
}

// NewRouter maps the HR resources onto a ServeMux. Nil handlers in cfg answer
// 404, unsupported methods answer 405 with Allow, and cfg.Middleware wraps the
// result with the first entry outermost.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	responder := newResponder(defaultLogger(cfg.Logger))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" || cfg.Dashboard == nil {
			responder.writeNotFound(r.Context(), w, "page not found", nearestListing(r.URL.Path))
			return
		}
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		cfg.Dashboard.Get(w, r)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
		responder.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if cfg.Metrics != nil {
		mux.Handle("/metrics", cfg.Metrics)
	}

	if cfg.Employees != nil {
		mux.HandleFunc("/employees", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Employees.List(w, r)
			case http.MethodPost:
				cfg.Employees.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/employees/", func(w http.ResponseWriter, r *http.Request) {
			id, sub, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/employees/"), "/")
			if id == "" || (sub != "" && sub != "availability") {
				responder.writeNotFound(r.Context(), w, "page not found", "/employees")
				return
			}
			ctx := ContextWithEmployeeID(r.Context(), id)
			r = r.WithContext(ctx)
			if sub == "availability" {
				if r.Method != http.MethodGet {
					methodNotAllowed(w, http.MethodGet)
					return
				}
				cfg.Employees.Availability(w, r)
				return
			}
			switch r.Method {
			case http.MethodGet:
				cfg.Employees.Get(w, r)
			case http.MethodPatch:
				cfg.Employees.Update(w, r)
			case http.MethodDelete:
				cfg.Employees.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPatch, http.MethodDelete)
			}
		})
	}

	if cfg.Departments != nil {
		mux.HandleFunc("/departments", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Departments.List(w, r)
			case http.MethodPost:
				cfg.Departments.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/departments/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/departments/")
			if id == "" || strings.Contains(id, "/") {
				responder.writeNotFound(r.Context(), w, "page not found", "/departments")
				return
			}
			ctx := ContextWithDepartmentID(r.Context(), id)
			r = r.WithContext(ctx)
			switch r.Method {
			case http.MethodGet:
				cfg.Departments.Get(w, r)
			case http.MethodPatch:
				cfg.Departments.Update(w, r)
			case http.MethodDelete:
				cfg.Departments.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPatch, http.MethodDelete)
			}
		})
	}

	if cfg.Availability != nil {
		mux.HandleFunc("/availability", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Availability.List(w, r)
			case http.MethodPost:
				cfg.Availability.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/availability/", func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimPrefix(r.URL.Path, "/availability/")
			if id == "" || strings.Contains(id, "/") {
				responder.writeNotFound(r.Context(), w, "page not found", "/availability")
				return
			}
			ctx := ContextWithAvailabilityID(r.Context(), id)
			r = r.WithContext(ctx)
			switch r.Method {
			case http.MethodPatch:
				cfg.Availability.Update(w, r)
			case http.MethodDelete:
				cfg.Availability.Delete(w, r)
			default:
				methodNotAllowed(w, http.MethodPatch, http.MethodDelete)
			}
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

// nearestListing maps an unknown path to the listing a client most likely wanted.
func nearestListing(path string) string {
	first, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	switch first {
	case "employees", "departments", "availability":
		return "/" + first
	default:
		return "/"
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
