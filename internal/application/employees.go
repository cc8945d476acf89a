package application

import (
	"context"
	"errors"
	"strings"

	"github.com/example/hr-directory/internal/persistence"
)

// AddEmployee stores input as a new employee under a generated id. Input is
// stored as given; form rules belong to the caller.
func (s *Store) AddEmployee(ctx context.Context, input EmployeeInput) (employee Employee, err error) {
	logger := s.loggerWith(ctx, "AddEmployee")
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to add employee", err)
			return
		}
		logger.With("employee_id", employee.ID).InfoContext(ctx, "employee added")
	}()

	candidate := Employee{
		ID:           s.idGenerator(),
		Name:         input.Name,
		Email:        input.Email,
		Position:     input.Position,
		DepartmentID: input.DepartmentID,
		Phone:        input.Phone,
		HireDate:     input.HireDate,
	}
	if err = s.repo.CreateEmployee(ctx, candidate); err != nil {
		err = mapRepoError(err)
		return
	}

	employee = candidate
	return
}

// UpdateEmployee merges patch into the employee with the given id. It reports
// false, and changes nothing, when no such employee exists.
func (s *Store) UpdateEmployee(ctx context.Context, id string, patch EmployeePatch) (updated bool, err error) {
	logger := s.loggerWith(ctx, "UpdateEmployee", "employee_id", id)
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to update employee", err)
			return
		}
		logger.InfoContext(ctx, "employee update processed", "updated", updated)
	}()

	updated, err = s.repo.UpdateEmployee(ctx, id, patch)
	err = mapRepoError(err)
	return
}

// RemoveEmployee deletes the employee, clears it as manager of any department
// and deletes its availability entries. It reports false when no such
// employee exists.
func (s *Store) RemoveEmployee(ctx context.Context, id string) (removed bool, err error) {
	logger := s.loggerWith(ctx, "RemoveEmployee", "employee_id", id)

	removed, err = s.repo.DeleteEmployee(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		logFailure(ctx, logger, "failed to remove employee", err)
		return false, err
	}

	logger.InfoContext(ctx, "employee removal processed", "removed", removed)
	return removed, nil
}

// GetEmployeeByID returns the employee with the given id, or nil when absent.
func (s *Store) GetEmployeeByID(ctx context.Context, id string) (*Employee, error) {
	employee, err := s.repo.GetEmployee(ctx, id)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetEmployeesByDepartment returns the employees assigned to departmentID in
// insertion order. The result is empty, never nil, when there are none.
func (s *Store) GetEmployeesByDepartment(ctx context.Context, departmentID string) ([]Employee, error) {
	employees, err := s.repo.ListEmployees(ctx, persistence.EmployeeFilter{DepartmentID: &departmentID})
	if err != nil {
		return nil, err
	}
	return nonNil(employees), nil
}

// Employees returns every employee in insertion order.
func (s *Store) Employees(ctx context.Context) ([]Employee, error) {
	employees, err := s.repo.ListEmployees(ctx, persistence.EmployeeFilter{})
	if err != nil {
		return nil, err
	}
	return nonNil(employees), nil
}

// SearchEmployees returns the employees whose name, email or position contains
// term, ignoring case. An empty term matches every employee.
func (s *Store) SearchEmployees(ctx context.Context, term string) (matches []Employee, err error) {
	logger := s.loggerWith(ctx, "SearchEmployees")
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to search employees", err)
			return
		}
		logger.With("result_count", len(matches)).DebugContext(ctx, "employees searched")
	}()

	var all []Employee
	all, err = s.Employees(ctx)
	if err != nil {
		return
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	matches = make([]Employee, 0, len(all))
	for _, employee := range all {
		if containsFold(needle, employee.Name, employee.Email, employee.Position) {
			matches = append(matches, employee)
		}
	}
	return
}

func containsFold(needle string, haystacks ...string) bool {
	if needle == "" {
		return true
	}
	for _, haystack := range haystacks {
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
