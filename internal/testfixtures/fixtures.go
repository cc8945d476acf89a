package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/hr-directory/internal/application"
	"github.com/example/hr-directory/internal/persistence"
)

var (
	employeeCounter     uint64
	departmentCounter   uint64
	availabilityCounter uint64
)

// referenceTime is a Wednesday morning, so its week spans Monday 4 to Sunday 10 March.
var referenceTime = time.Date(2024, time.March, 6, 10, 30, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// --------------------------- Employee fixtures ---------------------------

// EmployeeFixture represents a deterministic employee record that can be
// materialised for application or persistence tests.
type EmployeeFixture struct {
	ID           string
	Name         string
	Email        string
	Position     string
	DepartmentID *string
	Phone        *string
	HireDate     string
}

// EmployeeOption configures the generated employee fixture.
type EmployeeOption func(*EmployeeFixture)

// NewEmployeeFixture returns a deterministic employee fixture with optional overrides.
func NewEmployeeFixture(opts ...EmployeeOption) EmployeeFixture {
	idx := atomic.AddUint64(&employeeCounter, 1)
	id := fmt.Sprintf("employee-%03d", idx)
	fixture := EmployeeFixture{
		ID:       id,
		Name:     fmt.Sprintf("Employee %03d", idx),
		Email:    fmt.Sprintf("%s@example.com", id),
		Position: "Engineer",
		HireDate: referenceTime.AddDate(0, 0, -int(idx)).Format("2006-01-02"),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEmployeeID overrides the generated employee ID.
func WithEmployeeID(id string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.ID = id
	}
}

// WithEmployeeName overrides the generated name.
func WithEmployeeName(name string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Name = name
	}
}

// WithEmployeeEmail overrides the generated email address.
func WithEmployeeEmail(email string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Email = email
	}
}

// WithEmployeePosition overrides the generated position.
func WithEmployeePosition(position string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.Position = position
	}
}

// WithEmployeeDepartment assigns the employee to a department.
func WithEmployeeDepartment(departmentID string) EmployeeOption {
	return func(f *EmployeeFixture) {
		id := departmentID
		f.DepartmentID = &id
	}
}

// WithEmployeePhone sets the optional phone number.
func WithEmployeePhone(phone string) EmployeeOption {
	return func(f *EmployeeFixture) {
		value := phone
		f.Phone = &value
	}
}

// WithEmployeeHireDate overrides the YYYY-MM-DD hire date.
func WithEmployeeHireDate(date string) EmployeeOption {
	return func(f *EmployeeFixture) {
		f.HireDate = date
	}
}

// Persistence returns the fixture as a persistence.Employee value.
func (f EmployeeFixture) Persistence() persistence.Employee {
	return persistence.Employee{
		ID:           f.ID,
		Name:         f.Name,
		Email:        f.Email,
		Position:     f.Position,
		DepartmentID: persistence.CloneString(f.DepartmentID),
		Phone:        persistence.CloneString(f.Phone),
		HireDate:     f.HireDate,
	}
}

// Input returns the fixture as an application.EmployeeInput.
func (f EmployeeFixture) Input() application.EmployeeInput {
	return application.EmployeeInput{
		Name:         f.Name,
		Email:        f.Email,
		Position:     f.Position,
		DepartmentID: persistence.CloneString(f.DepartmentID),
		Phone:        persistence.CloneString(f.Phone),
		HireDate:     f.HireDate,
	}
}

// -------------------------- Department fixtures --------------------------

// DepartmentFixture represents a deterministic department record.
type DepartmentFixture struct {
	ID                string
	Name              string
	Description       string
	ManagerEmployeeID *string
}

// DepartmentOption configures the generated department fixture.
type DepartmentOption func(*DepartmentFixture)

// NewDepartmentFixture returns a deterministic department fixture with optional overrides.
func NewDepartmentFixture(opts ...DepartmentOption) DepartmentFixture {
	idx := atomic.AddUint64(&departmentCounter, 1)
	fixture := DepartmentFixture{
		ID:          fmt.Sprintf("department-%03d", idx),
		Name:        fmt.Sprintf("Department %03d", idx),
		Description: fmt.Sprintf("Department number %03d", idx),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithDepartmentID overrides the generated department ID.
func WithDepartmentID(id string) DepartmentOption {
	return func(f *DepartmentFixture) {
		f.ID = id
	}
}

// WithDepartmentName overrides the generated name.
func WithDepartmentName(name string) DepartmentOption {
	return func(f *DepartmentFixture) {
		f.Name = name
	}
}

// WithDepartmentDescription overrides the generated description.
func WithDepartmentDescription(description string) DepartmentOption {
	return func(f *DepartmentFixture) {
		f.Description = description
	}
}

// WithDepartmentManager sets the manager reference.
func WithDepartmentManager(employeeID string) DepartmentOption {
	return func(f *DepartmentFixture) {
		id := employeeID
		f.ManagerEmployeeID = &id
	}
}

// Persistence returns the fixture as a persistence.Department value.
func (f DepartmentFixture) Persistence() persistence.Department {
	return persistence.Department{
		ID:                f.ID,
		Name:              f.Name,
		Description:       f.Description,
		ManagerEmployeeID: persistence.CloneString(f.ManagerEmployeeID),
	}
}

// Input returns the fixture as an application.DepartmentInput.
func (f DepartmentFixture) Input() application.DepartmentInput {
	return application.DepartmentInput{
		Name:              f.Name,
		Description:       f.Description,
		ManagerEmployeeID: persistence.CloneString(f.ManagerEmployeeID),
	}
}

// ------------------------- Availability fixtures -------------------------

// AvailabilityFixture represents a deterministic availability entry.
type AvailabilityFixture struct {
	ID         string
	EmployeeID string
	Date       time.Time
	StartTime  string
	EndTime    string
	Status     persistence.AvailabilityStatus
	Note       *string
}

// AvailabilityOption configures the generated availability fixture.
type AvailabilityOption func(*AvailabilityFixture)

// NewAvailabilityFixture returns a deterministic availability fixture dated
// on the reference day.
func NewAvailabilityFixture(opts ...AvailabilityOption) AvailabilityFixture {
	idx := atomic.AddUint64(&availabilityCounter, 1)
	fixture := AvailabilityFixture{
		ID:         fmt.Sprintf("availability-%03d", idx),
		EmployeeID: fmt.Sprintf("employee-%03d", idx),
		Date:       referenceTime,
		StartTime:  "09:00",
		EndTime:    "17:00",
		Status:     persistence.StatusAvailable,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithAvailabilityID overrides the generated entry ID.
func WithAvailabilityID(id string) AvailabilityOption {
	return func(f *AvailabilityFixture) {
		f.ID = id
	}
}

// WithAvailabilityEmployee sets the employee reference.
func WithAvailabilityEmployee(employeeID string) AvailabilityOption {
	return func(f *AvailabilityFixture) {
		f.EmployeeID = employeeID
	}
}

// WithAvailabilityDate sets the entry date.
func WithAvailabilityDate(date time.Time) AvailabilityOption {
	return func(f *AvailabilityFixture) {
		f.Date = date
	}
}

// WithAvailabilityHours sets the start and end times.
func WithAvailabilityHours(start, end string) AvailabilityOption {
	return func(f *AvailabilityFixture) {
		f.StartTime = start
		f.EndTime = end
	}
}

// WithAvailabilityStatus overrides the status.
func WithAvailabilityStatus(status persistence.AvailabilityStatus) AvailabilityOption {
	return func(f *AvailabilityFixture) {
		f.Status = status
	}
}

// WithAvailabilityNote sets the optional note.
func WithAvailabilityNote(note string) AvailabilityOption {
	return func(f *AvailabilityFixture) {
		value := note
		f.Note = &value
	}
}

// Persistence returns the fixture as a persistence.AvailabilityEntry value.
func (f AvailabilityFixture) Persistence() persistence.AvailabilityEntry {
	return persistence.AvailabilityEntry{
		ID:         f.ID,
		EmployeeID: f.EmployeeID,
		Date:       f.Date,
		StartTime:  f.StartTime,
		EndTime:    f.EndTime,
		Status:     f.Status,
		Note:       persistence.CloneString(f.Note),
	}
}

// Input returns the fixture as an application.AvailabilityInput.
func (f AvailabilityFixture) Input() application.AvailabilityInput {
	return application.AvailabilityInput{
		EmployeeID: f.EmployeeID,
		Date:       f.Date,
		StartTime:  f.StartTime,
		EndTime:    f.EndTime,
		Status:     f.Status,
		Note:       persistence.CloneString(f.Note),
	}
}
