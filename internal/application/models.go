package application

import (
	"time"

	"github.com/example/hr-directory/internal/persistence"
)

// Employee is a staff member record.
type Employee = persistence.Employee

// Department groups employees and optionally names a manager.
type Department = persistence.Department

// AvailabilityEntry records an employee's availability for one calendar day.
type AvailabilityEntry = persistence.AvailabilityEntry

// AvailabilityStatus tags an availability entry.
type AvailabilityStatus = persistence.AvailabilityStatus

// Partial updates share the persistence representation so that the backend
// can merge them under its own lock or transaction.
type (
	EmployeePatch     = persistence.EmployeePatch
	DepartmentPatch   = persistence.DepartmentPatch
	AvailabilityPatch = persistence.AvailabilityPatch
	NullableString    = persistence.NullableString
)

// Availability statuses.
const (
	StatusAvailable   = persistence.StatusAvailable
	StatusUnavailable = persistence.StatusUnavailable
)

// EmployeeInput captures caller provided employee fields.
type EmployeeInput struct {
	Name         string
	Email        string
	Position     string
	DepartmentID *string
	Phone        *string
	HireDate     string
}

// DepartmentInput captures caller provided department fields.
type DepartmentInput struct {
	Name              string
	Description       string
	ManagerEmployeeID *string
}

// AvailabilityInput captures caller provided availability fields.
type AvailabilityInput struct {
	EmployeeID string
	Date       time.Time
	StartTime  string
	EndTime    string
	Status     AvailabilityStatus
	Note       *string
}

// DepartmentHeadcount is one row of the dashboard's department breakdown.
type DepartmentHeadcount struct {
	DepartmentID string
	Name         string
	Employees    int
	// Percentage of all employees, rounded half up. Zero when there are no employees.
	Percentage int
}

// DashboardStats aggregates the figures shown on the dashboard.
type DashboardStats struct {
	TotalEmployees      int
	TotalDepartments    int
	AvailableToday      int
	UnavailableToday    int
	UnassignedEmployees int
	Departments         []DepartmentHeadcount
}

// WeekView is the Monday-start week containing a reference day together with
// the availability entries dated within it.
type WeekView struct {
	Days    []time.Time
	Entries []AvailabilityEntry
}

// Start returns the Monday of the week.
func (w WeekView) Start() time.Time {
	if len(w.Days) == 0 {
		return time.Time{}
	}
	return w.Days[0]
}

// Roster describes a department with its resolved manager and members.
type Roster struct {
	Department Department
	// Manager is nil when the department has no manager or the manager id no
	// longer resolves to an employee.
	Manager *Employee
	Members []Employee
}
