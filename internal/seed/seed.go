// Package seed provides the records a fresh HR store starts with: a built-in
// sample, or a YAML file that replaces it.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/example/hr-directory/internal/calendar"
	"github.com/example/hr-directory/internal/persistence"
)

// Today is the placeholder accepted in place of a YYYY-MM-DD date. It resolves
// to the day the seed is loaded.
const Today = "today"

// ErrInvalidSeed indicates a seed document that cannot be loaded.
var ErrInvalidSeed = errors.New("seed: invalid document")

// Sample returns the built-in dataset. Availability entries are dated today.
func Sample(today time.Time) persistence.Dataset {
	return persistence.Dataset{
		Departments: []persistence.Department{
			{ID: "1", Name: "Engineering", Description: "Software development department", ManagerEmployeeID: ptr("1")},
			{ID: "2", Name: "Product", Description: "Product management department", ManagerEmployeeID: ptr("2")},
			{ID: "3", Name: "Design", Description: "User experience and design department", ManagerEmployeeID: ptr("3")},
		},
		Employees: []persistence.Employee{
			{
				ID:           "1",
				Name:         "John Doe",
				Email:        "john.doe@company.com",
				Position:     "Software Engineer",
				DepartmentID: ptr("1"),
				Phone:        ptr("555-123-4567"),
				HireDate:     "2020-01-15",
			},
			{
				ID:           "2",
				Name:         "Jane Smith",
				Email:        "jane.smith@company.com",
				Position:     "Product Manager",
				DepartmentID: ptr("2"),
				Phone:        ptr("555-987-6543"),
				HireDate:     "2019-05-10",
			},
			{
				ID:           "3",
				Name:         "Robert Johnson",
				Email:        "robert.j@company.com",
				Position:     "UX Designer",
				DepartmentID: ptr("3"),
				Phone:        ptr("555-456-7890"),
				HireDate:     "2021-03-22",
			},
		},
		Availability: []persistence.AvailabilityEntry{
			{ID: "1", EmployeeID: "1", Date: today, StartTime: "09:00", EndTime: "17:00", Status: persistence.StatusAvailable},
			{ID: "2", EmployeeID: "2", Date: today, StartTime: "10:00", EndTime: "18:00", Status: persistence.StatusAvailable},
			{ID: "3", EmployeeID: "3", Date: today, StartTime: "08:00", EndTime: "16:00", Status: persistence.StatusUnavailable, Note: ptr("Vacation")},
		},
	}
}

// document is the YAML layout of a seed file.
type document struct {
	Departments  []departmentDoc   `yaml:"departments"`
	Employees    []employeeDoc     `yaml:"employees"`
	Availability []availabilityDoc `yaml:"availability"`
}

type employeeDoc struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Email        string  `yaml:"email"`
	Position     string  `yaml:"position"`
	DepartmentID *string `yaml:"department_id,omitempty"`
	Phone        *string `yaml:"phone,omitempty"`
	HireDate     string  `yaml:"hire_date"`
}

type departmentDoc struct {
	ID                string  `yaml:"id"`
	Name              string  `yaml:"name"`
	Description       string  `yaml:"description"`
	ManagerEmployeeID *string `yaml:"manager_employee_id,omitempty"`
}

type availabilityDoc struct {
	ID         string  `yaml:"id"`
	EmployeeID string  `yaml:"employee_id"`
	Date       string  `yaml:"date"`
	StartTime  string  `yaml:"start_time"`
	EndTime    string  `yaml:"end_time"`
	Status     string  `yaml:"status"`
	Note       *string `yaml:"note,omitempty"`
}

// LoadFile reads a seed document from path.
func LoadFile(path string, cal *calendar.Calendar, now time.Time) (persistence.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return persistence.Dataset{}, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dataset, err := Decode(f, cal, now)
	if err != nil {
		return persistence.Dataset{}, fmt.Errorf("load seed file %s: %w", path, err)
	}
	return dataset, nil
}

// Decode parses a seed document. Dates are YYYY-MM-DD in the calendar's
// location, or "today" for the day containing now.
func Decode(r io.Reader, cal *calendar.Calendar, now time.Time) (persistence.Dataset, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return persistence.Dataset{}, fmt.Errorf("%w: empty document", ErrInvalidSeed)
		}
		return persistence.Dataset{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return doc.dataset(cal, now)
}

// Encode renders dataset as a seed document, dates formatted in the
// calendar's location.
func Encode(w io.Writer, dataset persistence.Dataset, cal *calendar.Calendar) error {
	doc := document{
		Departments:  make([]departmentDoc, 0, len(dataset.Departments)),
		Employees:    make([]employeeDoc, 0, len(dataset.Employees)),
		Availability: make([]availabilityDoc, 0, len(dataset.Availability)),
	}
	for _, d := range dataset.Departments {
		doc.Departments = append(doc.Departments, departmentDoc{
			ID:                d.ID,
			Name:              d.Name,
			Description:       d.Description,
			ManagerEmployeeID: d.ManagerEmployeeID,
		})
	}
	for _, e := range dataset.Employees {
		doc.Employees = append(doc.Employees, employeeDoc{
			ID:           e.ID,
			Name:         e.Name,
			Email:        e.Email,
			Position:     e.Position,
			DepartmentID: e.DepartmentID,
			Phone:        e.Phone,
			HireDate:     e.HireDate,
		})
	}
	for _, a := range dataset.Availability {
		doc.Availability = append(doc.Availability, availabilityDoc{
			ID:         a.ID,
			EmployeeID: a.EmployeeID,
			Date:       cal.FormatDate(a.Date),
			StartTime:  a.StartTime,
			EndTime:    a.EndTime,
			Status:     string(a.Status),
			Note:       a.Note,
		})
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (doc document) dataset(cal *calendar.Calendar, now time.Time) (persistence.Dataset, error) {
	var problems []string
	seen := map[string]map[string]struct{}{
		"department":   {},
		"employee":     {},
		"availability": {},
	}
	checkID := func(kind, id string, index int) {
		if strings.TrimSpace(id) == "" {
			problems = append(problems, fmt.Sprintf("%s #%d: id is required", kind, index+1))
			return
		}
		if _, dup := seen[kind][id]; dup {
			problems = append(problems, fmt.Sprintf("%s #%d: duplicate id %q", kind, index+1, id))
		}
		seen[kind][id] = struct{}{}
	}

	dataset := persistence.Dataset{
		Departments:  make([]persistence.Department, 0, len(doc.Departments)),
		Employees:    make([]persistence.Employee, 0, len(doc.Employees)),
		Availability: make([]persistence.AvailabilityEntry, 0, len(doc.Availability)),
	}

	for i, d := range doc.Departments {
		checkID("department", d.ID, i)
		dataset.Departments = append(dataset.Departments, persistence.Department{
			ID:                d.ID,
			Name:              d.Name,
			Description:       d.Description,
			ManagerEmployeeID: d.ManagerEmployeeID,
		})
	}

	for i, e := range doc.Employees {
		checkID("employee", e.ID, i)
		if !calendar.ValidDate(e.HireDate) {
			problems = append(problems, fmt.Sprintf("employee #%d: hire_date %q is not YYYY-MM-DD", i+1, e.HireDate))
		}
		dataset.Employees = append(dataset.Employees, persistence.Employee{
			ID:           e.ID,
			Name:         e.Name,
			Email:        e.Email,
			Position:     e.Position,
			DepartmentID: e.DepartmentID,
			Phone:        e.Phone,
			HireDate:     e.HireDate,
		})
	}

	for i, a := range doc.Availability {
		checkID("availability", a.ID, i)
		date, err := resolveDate(cal, a.Date, now)
		if err != nil {
			problems = append(problems, fmt.Sprintf("availability #%d: %v", i+1, err))
		}
		status := persistence.AvailabilityStatus(a.Status)
		if !status.Valid() {
			problems = append(problems, fmt.Sprintf("availability #%d: unknown status %q", i+1, a.Status))
		}
		if !calendar.ValidClock(a.StartTime) || !calendar.ValidClock(a.EndTime) {
			problems = append(problems, fmt.Sprintf("availability #%d: times must be HH:MM", i+1))
		}
		dataset.Availability = append(dataset.Availability, persistence.AvailabilityEntry{
			ID:         a.ID,
			EmployeeID: a.EmployeeID,
			Date:       date,
			StartTime:  a.StartTime,
			EndTime:    a.EndTime,
			Status:     status,
			Note:       a.Note,
		})
	}

	if len(problems) > 0 {
		return persistence.Dataset{}, fmt.Errorf("%w: %s", ErrInvalidSeed, strings.Join(problems, "; "))
	}
	return dataset, nil
}

func resolveDate(cal *calendar.Calendar, value string, now time.Time) (time.Time, error) {
	if strings.EqualFold(strings.TrimSpace(value), Today) {
		return cal.StartOfDay(now), nil
	}
	return cal.ParseDate(value)
}

func ptr(value string) *string {
	return &value
}
