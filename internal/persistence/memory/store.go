package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/hr-directory/internal/persistence"
)

// Revisions counts the mutations applied to each collection.
type Revisions struct {
	Employees    uint64
	Departments  uint64
	Availability uint64
}

// Snapshot exposes the current collections without copying them. The slices
// are never modified after they are published, so callers may hold on to them
// and compare them with later snapshots, but must not write to them.
type Snapshot struct {
	Employees    []persistence.Employee
	Departments  []persistence.Department
	Availability []persistence.AvailabilityEntry
	Revisions    Revisions
}

// Store keeps the HR collections in process memory. Every mutation publishes a
// freshly allocated slice for the collections it touches.
type Store struct {
	mu           sync.RWMutex
	employees    []persistence.Employee
	departments  []persistence.Department
	availability []persistence.AvailabilityEntry
	revisions    Revisions
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		employees:    []persistence.Employee{},
		departments:  []persistence.Department{},
		availability: []persistence.AvailabilityEntry{},
	}
}

// Snapshot returns the currently published collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Employees:    s.employees,
		Departments:  s.departments,
		Availability: s.availability,
		Revisions:    s.revisions,
	}
}

// MutationCounts reports the revision of each collection keyed by collection name.
func (s *Store) MutationCounts() map[string]uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]uint64{
		"employees":    s.revisions.Employees,
		"departments":  s.revisions.Departments,
		"availability": s.revisions.Availability,
	}
}

// Close is a no-op; it lets Store stand in wherever a closable backend is expected.
func (s *Store) Close() error {
	return nil
}

// --- EmployeeRepository implementation ---

// CreateEmployee appends a new employee.
func (s *Store) CreateEmployee(ctx context.Context, employee persistence.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.employees, employee.ID, employeeID) >= 0 {
		return fmt.Errorf("memory: employee %s: %w", employee.ID, persistence.ErrDuplicate)
	}

	s.employees = appendCopy(s.employees, persistence.CloneEmployee(employee))
	s.revisions.Employees++
	return nil
}

// UpdateEmployee merges patch into the employee with the given id.
func (s *Store) UpdateEmployee(ctx context.Context, id string, patch persistence.EmployeePatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.employees, id, employeeID)
	if idx < 0 {
		return false, nil
	}

	s.employees = replaceAt(s.employees, idx, patch.Apply(s.employees[idx]))
	s.revisions.Employees++
	return true, nil
}

// GetEmployee retrieves an employee by id.
func (s *Store) GetEmployee(ctx context.Context, id string) (persistence.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexOf(s.employees, id, employeeID)
	if idx < 0 {
		return persistence.Employee{}, persistence.ErrNotFound
	}
	return persistence.CloneEmployee(s.employees[idx]), nil
}

// ListEmployees returns employees in insertion order.
func (s *Store) ListEmployees(ctx context.Context, filter persistence.EmployeeFilter) ([]persistence.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]persistence.Employee, 0, len(s.employees))
	for _, employee := range s.employees {
		if filter.DepartmentID != nil && !persistence.StringEquals(employee.DepartmentID, *filter.DepartmentID) {
			continue
		}
		out = append(out, persistence.CloneEmployee(employee))
	}
	return out, nil
}

// DeleteEmployee removes an employee, clears the departments it manages and
// drops its availability entries.
func (s *Store) DeleteEmployee(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.employees, id, employeeID)
	if idx < 0 {
		return false, nil
	}

	s.employees = removeAt(s.employees, idx)
	s.revisions.Employees++

	managed := false
	for _, dept := range s.departments {
		if persistence.StringEquals(dept.ManagerEmployeeID, id) {
			managed = true
			break
		}
	}
	if managed {
		departments := make([]persistence.Department, 0, len(s.departments))
		for _, dept := range s.departments {
			if persistence.StringEquals(dept.ManagerEmployeeID, id) {
				dept.ManagerEmployeeID = nil
			}
			departments = append(departments, dept)
		}
		s.departments = departments
		s.revisions.Departments++
	}

	availability := make([]persistence.AvailabilityEntry, 0, len(s.availability))
	for _, entry := range s.availability {
		if entry.EmployeeID == id {
			continue
		}
		availability = append(availability, entry)
	}
	if len(availability) != len(s.availability) {
		s.availability = availability
		s.revisions.Availability++
	}

	return true, nil
}

// --- DepartmentRepository implementation ---

// CreateDepartment appends a new department.
func (s *Store) CreateDepartment(ctx context.Context, department persistence.Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.departments, department.ID, departmentID) >= 0 {
		return fmt.Errorf("memory: department %s: %w", department.ID, persistence.ErrDuplicate)
	}

	s.departments = appendCopy(s.departments, persistence.CloneDepartment(department))
	s.revisions.Departments++
	return nil
}

// UpdateDepartment merges patch into the department with the given id.
func (s *Store) UpdateDepartment(ctx context.Context, id string, patch persistence.DepartmentPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.departments, id, departmentID)
	if idx < 0 {
		return false, nil
	}

	s.departments = replaceAt(s.departments, idx, patch.Apply(s.departments[idx]))
	s.revisions.Departments++
	return true, nil
}

// GetDepartment retrieves a department by id.
func (s *Store) GetDepartment(ctx context.Context, id string) (persistence.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexOf(s.departments, id, departmentID)
	if idx < 0 {
		return persistence.Department{}, persistence.ErrNotFound
	}
	return persistence.CloneDepartment(s.departments[idx]), nil
}

// ListDepartments returns departments in insertion order.
func (s *Store) ListDepartments(ctx context.Context) ([]persistence.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]persistence.Department, 0, len(s.departments))
	for _, dept := range s.departments {
		out = append(out, persistence.CloneDepartment(dept))
	}
	return out, nil
}

// DeleteDepartment removes a department and unassigns its employees.
func (s *Store) DeleteDepartment(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.departments, id, departmentID)
	if idx < 0 {
		return false, nil
	}

	s.departments = removeAt(s.departments, idx)
	s.revisions.Departments++

	changed := false
	employees := make([]persistence.Employee, 0, len(s.employees))
	for _, employee := range s.employees {
		if persistence.StringEquals(employee.DepartmentID, id) {
			employee.DepartmentID = nil
			changed = true
		}
		employees = append(employees, employee)
	}
	if changed {
		s.employees = employees
		s.revisions.Employees++
	}

	return true, nil
}

// --- AvailabilityRepository implementation ---

// CreateAvailability appends a new availability entry.
func (s *Store) CreateAvailability(ctx context.Context, entry persistence.AvailabilityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.availability, entry.ID, availabilityID) >= 0 {
		return fmt.Errorf("memory: availability %s: %w", entry.ID, persistence.ErrDuplicate)
	}

	s.availability = appendCopy(s.availability, persistence.CloneAvailability(entry))
	s.revisions.Availability++
	return nil
}

// UpdateAvailability merges patch into the entry with the given id.
func (s *Store) UpdateAvailability(ctx context.Context, id string, patch persistence.AvailabilityPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.availability, id, availabilityID)
	if idx < 0 {
		return false, nil
	}

	s.availability = replaceAt(s.availability, idx, patch.Apply(s.availability[idx]))
	s.revisions.Availability++
	return true, nil
}

// GetAvailability retrieves an availability entry by id.
func (s *Store) GetAvailability(ctx context.Context, id string) (persistence.AvailabilityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := indexOf(s.availability, id, availabilityID)
	if idx < 0 {
		return persistence.AvailabilityEntry{}, persistence.ErrNotFound
	}
	return persistence.CloneAvailability(s.availability[idx]), nil
}

// ListAvailability returns entries in insertion order.
func (s *Store) ListAvailability(ctx context.Context, filter persistence.AvailabilityFilter) ([]persistence.AvailabilityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]persistence.AvailabilityEntry, 0, len(s.availability))
	for _, entry := range s.availability {
		if filter.EmployeeID != nil && entry.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, persistence.CloneAvailability(entry))
	}
	return out, nil
}

// DeleteAvailability removes an availability entry.
func (s *Store) DeleteAvailability(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexOf(s.availability, id, availabilityID)
	if idx < 0 {
		return false, nil
	}

	s.availability = removeAt(s.availability, idx)
	s.revisions.Availability++
	return true, nil
}

// --- Helpers ---

func employeeID(e persistence.Employee) string             { return e.ID }
func departmentID(d persistence.Department) string         { return d.ID }
func availabilityID(a persistence.AvailabilityEntry) string { return a.ID }

func indexOf[T any](values []T, id string, key func(T) string) int {
	for i, value := range values {
		if key(value) == id {
			return i
		}
	}
	return -1
}

func appendCopy[T any](values []T, value T) []T {
	out := make([]T, 0, len(values)+1)
	out = append(out, values...)
	return append(out, value)
}

func replaceAt[T any](values []T, idx int, value T) []T {
	out := make([]T, len(values))
	copy(out, values)
	out[idx] = value
	return out
}

func removeAt[T any](values []T, idx int) []T {
	out := make([]T, 0, len(values)-1)
	out = append(out, values[:idx]...)
	return append(out, values[idx+1:]...)
}
