package persistence

import "context"

// EmployeeFilter narrows employee listings.
type EmployeeFilter struct {
	// DepartmentID restricts results to members of the department when non-nil.
	DepartmentID *string
}

// EmployeeRepository stores employees.
//
// DeleteEmployee also clears the manager reference of every department the
// employee manages and deletes the employee's availability entries. All three
// effects become visible together.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee Employee) error
	UpdateEmployee(ctx context.Context, id string, patch EmployeePatch) (bool, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	DeleteEmployee(ctx context.Context, id string) (bool, error)
}

// DepartmentRepository stores departments.
//
// DeleteDepartment also unassigns every employee of the department.
type DepartmentRepository interface {
	CreateDepartment(ctx context.Context, department Department) error
	UpdateDepartment(ctx context.Context, id string, patch DepartmentPatch) (bool, error)
	GetDepartment(ctx context.Context, id string) (Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)
	DeleteDepartment(ctx context.Context, id string) (bool, error)
}

// AvailabilityFilter narrows availability listings.
type AvailabilityFilter struct {
	EmployeeID *string
}

// AvailabilityRepository stores availability entries.
type AvailabilityRepository interface {
	CreateAvailability(ctx context.Context, entry AvailabilityEntry) error
	UpdateAvailability(ctx context.Context, id string, patch AvailabilityPatch) (bool, error)
	GetAvailability(ctx context.Context, id string) (AvailabilityEntry, error)
	ListAvailability(ctx context.Context, filter AvailabilityFilter) ([]AvailabilityEntry, error)
	DeleteAvailability(ctx context.Context, id string) (bool, error)
}

// Repository is the full storage contract of the HR store. Listings are
// returned in insertion order.
type Repository interface {
	EmployeeRepository
	DepartmentRepository
	AvailabilityRepository
}
