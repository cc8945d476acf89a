package application

import (
	"context"
	"errors"
	"strings"

	"github.com/example/hr-directory/internal/persistence"
)

// AddDepartment stores input as a new department under a generated id.
// The manager reference is not checked against existing employees.
func (s *Store) AddDepartment(ctx context.Context, input DepartmentInput) (department Department, err error) {
	logger := s.loggerWith(ctx, "AddDepartment")
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to add department", err)
			return
		}
		logger.With("department_id", department.ID).InfoContext(ctx, "department added")
	}()

	candidate := Department{
		ID:                s.idGenerator(),
		Name:              input.Name,
		Description:       input.Description,
		ManagerEmployeeID: input.ManagerEmployeeID,
	}
	if err = s.repo.CreateDepartment(ctx, candidate); err != nil {
		err = mapRepoError(err)
		return
	}

	department = candidate
	return
}

// UpdateDepartment merges patch into the department with the given id. It
// reports false when no such department exists.
func (s *Store) UpdateDepartment(ctx context.Context, id string, patch DepartmentPatch) (updated bool, err error) {
	logger := s.loggerWith(ctx, "UpdateDepartment", "department_id", id)
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to update department", err)
			return
		}
		logger.InfoContext(ctx, "department update processed", "updated", updated)
	}()

	updated, err = s.repo.UpdateDepartment(ctx, id, patch)
	err = mapRepoError(err)
	return
}

// RemoveDepartment deletes the department and leaves its employees
// unassigned. It reports false when no such department exists.
func (s *Store) RemoveDepartment(ctx context.Context, id string) (removed bool, err error) {
	logger := s.loggerWith(ctx, "RemoveDepartment", "department_id", id)

	removed, err = s.repo.DeleteDepartment(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		logFailure(ctx, logger, "failed to remove department", err)
		return false, err
	}

	logger.InfoContext(ctx, "department removal processed", "removed", removed)
	return removed, nil
}

// GetDepartmentByID returns the department with the given id, or nil when absent.
func (s *Store) GetDepartmentByID(ctx context.Context, id string) (*Department, error) {
	department, err := s.repo.GetDepartment(ctx, id)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &department, nil
}

// Departments returns every department in insertion order.
func (s *Store) Departments(ctx context.Context) ([]Department, error) {
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(departments), nil
}

// SearchDepartments returns the departments whose name or description
// contains term, ignoring case.
func (s *Store) SearchDepartments(ctx context.Context, term string) ([]Department, error) {
	all, err := s.Departments(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(term))
	matches := make([]Department, 0, len(all))
	for _, department := range all {
		if containsFold(needle, department.Name, department.Description) {
			matches = append(matches, department)
		}
	}
	return matches, nil
}

// DepartmentRoster resolves the department's manager and members. It returns
// ErrNotFound when the department does not exist.
func (s *Store) DepartmentRoster(ctx context.Context, id string) (Roster, error) {
	department, err := s.GetDepartmentByID(ctx, id)
	if err != nil {
		return Roster{}, err
	}
	if department == nil {
		return Roster{}, ErrNotFound
	}

	roster := Roster{Department: *department}
	if department.ManagerEmployeeID != nil {
		roster.Manager, err = s.GetEmployeeByID(ctx, *department.ManagerEmployeeID)
		if err != nil {
			return Roster{}, err
		}
	}

	roster.Members, err = s.GetEmployeesByDepartment(ctx, id)
	if err != nil {
		return Roster{}, err
	}
	return roster, nil
}
