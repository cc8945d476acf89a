package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/hr-directory/internal/persistence"
)

const dateLayout = time.RFC3339Nano

type rowScanner interface {
	Scan(dest ...any) error
}

// --- EmployeeRepository implementation ---

const employeeColumns = `id, name, email, position, department_id, phone, hire_date`

// CreateEmployee inserts a new employee.
func (s *Store) CreateEmployee(ctx context.Context, employee persistence.Employee) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (`+employeeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		employee.ID,
		employee.Name,
		employee.Email,
		employee.Position,
		nullString(employee.DepartmentID),
		nullString(employee.Phone),
		employee.HireDate,
	)
	return mapError(err)
}

// UpdateEmployee merges patch into the stored employee.
func (s *Store) UpdateEmployee(ctx context.Context, id string, patch persistence.EmployeePatch) (bool, error) {
	found := false
	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		current, err := scanEmployee(tx.QueryRowContext(ctx,
			`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id))
		if err != nil {
			return mapError(err)
		}
		found = true

		next := patch.Apply(current)
		_, err = tx.ExecContext(ctx,
			`UPDATE employees SET name = ?, email = ?, position = ?, department_id = ?, phone = ?, hire_date = ? WHERE id = ?`,
			next.Name,
			next.Email,
			next.Position,
			nullString(next.DepartmentID),
			nullString(next.Phone),
			next.HireDate,
			id,
		)
		return mapError(err)
	})
	return absentIsNoop(found, err)
}

// GetEmployee retrieves an employee by id.
func (s *Store) GetEmployee(ctx context.Context, id string) (persistence.Employee, error) {
	employee, err := scanEmployee(s.db.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id))
	if err != nil {
		return persistence.Employee{}, mapError(err)
	}
	return employee, nil
}

// ListEmployees returns employees in insertion order.
func (s *Store) ListEmployees(ctx context.Context, filter persistence.EmployeeFilter) ([]persistence.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	var args []any
	if filter.DepartmentID != nil {
		query += ` WHERE department_id = ?`
		args = append(args, *filter.DepartmentID)
	}
	query += ` ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer func() { _ = rows.Close() }()

	employees := make([]persistence.Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}

// DeleteEmployee removes an employee together with its manager references and
// availability entries.
func (s *Store) DeleteEmployee(ctx context.Context, id string) (bool, error) {
	found := false
	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete employee: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete employee: %w", err)
		}
		if affected == 0 {
			return nil
		}
		found = true

		if _, err := tx.ExecContext(ctx,
			`UPDATE departments SET manager_employee_id = NULL WHERE manager_employee_id = ?`, id,
		); err != nil {
			return fmt.Errorf("clear department managers: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM availability_entries WHERE employee_id = ?`, id,
		); err != nil {
			return fmt.Errorf("delete availability: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func scanEmployee(row rowScanner) (persistence.Employee, error) {
	var (
		employee     persistence.Employee
		departmentID sql.NullString
		phone        sql.NullString
	)
	if err := row.Scan(
		&employee.ID,
		&employee.Name,
		&employee.Email,
		&employee.Position,
		&departmentID,
		&phone,
		&employee.HireDate,
	); err != nil {
		return persistence.Employee{}, err
	}
	employee.DepartmentID = stringPtr(departmentID)
	employee.Phone = stringPtr(phone)
	return employee, nil
}

// --- DepartmentRepository implementation ---

const departmentColumns = `id, name, description, manager_employee_id`

// CreateDepartment inserts a new department.
func (s *Store) CreateDepartment(ctx context.Context, department persistence.Department) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO departments (`+departmentColumns+`) VALUES (?, ?, ?, ?)`,
		department.ID,
		department.Name,
		department.Description,
		nullString(department.ManagerEmployeeID),
	)
	return mapError(err)
}

// UpdateDepartment merges patch into the stored department.
func (s *Store) UpdateDepartment(ctx context.Context, id string, patch persistence.DepartmentPatch) (bool, error) {
	found := false
	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		current, err := scanDepartment(tx.QueryRowContext(ctx,
			`SELECT `+departmentColumns+` FROM departments WHERE id = ?`, id))
		if err != nil {
			return mapError(err)
		}
		found = true

		next := patch.Apply(current)
		_, err = tx.ExecContext(ctx,
			`UPDATE departments SET name = ?, description = ?, manager_employee_id = ? WHERE id = ?`,
			next.Name,
			next.Description,
			nullString(next.ManagerEmployeeID),
			id,
		)
		return mapError(err)
	})
	return absentIsNoop(found, err)
}

// GetDepartment retrieves a department by id.
func (s *Store) GetDepartment(ctx context.Context, id string) (persistence.Department, error) {
	department, err := scanDepartment(s.db.QueryRowContext(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE id = ?`, id))
	if err != nil {
		return persistence.Department{}, mapError(err)
	}
	return department, nil
}

// ListDepartments returns departments in insertion order.
func (s *Store) ListDepartments(ctx context.Context) ([]persistence.Department, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+departmentColumns+` FROM departments ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	departments := make([]persistence.Department, 0)
	for rows.Next() {
		department, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan department: %w", err)
		}
		departments = append(departments, department)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate departments: %w", err)
	}
	return departments, nil
}

// DeleteDepartment removes a department and unassigns its employees.
func (s *Store) DeleteDepartment(ctx context.Context, id string) (bool, error) {
	found := false
	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM departments WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete department: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete department: %w", err)
		}
		if affected == 0 {
			return nil
		}
		found = true

		if _, err := tx.ExecContext(ctx,
			`UPDATE employees SET department_id = NULL WHERE department_id = ?`, id,
		); err != nil {
			return fmt.Errorf("unassign employees: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func scanDepartment(row rowScanner) (persistence.Department, error) {
	var (
		department persistence.Department
		manager    sql.NullString
	)
	if err := row.Scan(&department.ID, &department.Name, &department.Description, &manager); err != nil {
		return persistence.Department{}, err
	}
	department.ManagerEmployeeID = stringPtr(manager)
	return department, nil
}

// --- AvailabilityRepository implementation ---

const availabilityColumns = `id, employee_id, date, start_time, end_time, status, note`

// CreateAvailability inserts a new availability entry.
func (s *Store) CreateAvailability(ctx context.Context, entry persistence.AvailabilityEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO availability_entries (`+availabilityColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.EmployeeID,
		entry.Date.Format(dateLayout),
		entry.StartTime,
		entry.EndTime,
		string(entry.Status),
		nullString(entry.Note),
	)
	return mapError(err)
}

// UpdateAvailability merges patch into the stored entry.
func (s *Store) UpdateAvailability(ctx context.Context, id string, patch persistence.AvailabilityPatch) (bool, error) {
	found := false
	err := s.withTransaction(ctx, func(tx *sql.Tx) error {
		current, err := scanAvailability(tx.QueryRowContext(ctx,
			`SELECT `+availabilityColumns+` FROM availability_entries WHERE id = ?`, id))
		if err != nil {
			return mapError(err)
		}
		found = true

		next := patch.Apply(current)
		_, err = tx.ExecContext(ctx,
			`UPDATE availability_entries SET employee_id = ?, date = ?, start_time = ?, end_time = ?, status = ?, note = ? WHERE id = ?`,
			next.EmployeeID,
			next.Date.Format(dateLayout),
			next.StartTime,
			next.EndTime,
			string(next.Status),
			nullString(next.Note),
			id,
		)
		return mapError(err)
	})
	return absentIsNoop(found, err)
}

// GetAvailability retrieves an availability entry by id.
func (s *Store) GetAvailability(ctx context.Context, id string) (persistence.AvailabilityEntry, error) {
	entry, err := scanAvailability(s.db.QueryRowContext(ctx,
		`SELECT `+availabilityColumns+` FROM availability_entries WHERE id = ?`, id))
	if err != nil {
		return persistence.AvailabilityEntry{}, mapError(err)
	}
	return entry, nil
}

// ListAvailability returns entries in insertion order.
func (s *Store) ListAvailability(ctx context.Context, filter persistence.AvailabilityFilter) ([]persistence.AvailabilityEntry, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availability_entries`
	var args []any
	if filter.EmployeeID != nil {
		query += ` WHERE employee_id = ?`
		args = append(args, *filter.EmployeeID)
	}
	query += ` ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list availability: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]persistence.AvailabilityEntry, 0)
	for rows.Next() {
		entry, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability: %w", err)
	}
	return entries, nil
}

// DeleteAvailability removes an availability entry.
func (s *Store) DeleteAvailability(ctx context.Context, id string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM availability_entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete availability: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete availability: %w", err)
	}
	return affected > 0, nil
}

func scanAvailability(row rowScanner) (persistence.AvailabilityEntry, error) {
	var (
		entry  persistence.AvailabilityEntry
		date   string
		status string
		note   sql.NullString
	)
	if err := row.Scan(
		&entry.ID,
		&entry.EmployeeID,
		&date,
		&entry.StartTime,
		&entry.EndTime,
		&status,
		&note,
	); err != nil {
		return persistence.AvailabilityEntry{}, err
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return persistence.AvailabilityEntry{}, fmt.Errorf("parse availability date %q: %w", date, err)
	}
	entry.Date = parsed
	entry.Status = persistence.AvailabilityStatus(status)
	entry.Note = stringPtr(note)
	return entry, nil
}

// --- Helpers ---

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	out := value.String
	return &out
}

// absentIsNoop turns a not-found lookup inside an update into a silent no-op.
func absentIsNoop(found bool, err error) (bool, error) {
	if err != nil {
		if !found && errors.Is(err, persistence.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return found, nil
}
