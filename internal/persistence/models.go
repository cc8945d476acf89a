package persistence

import "time"

// AvailabilityStatus tags a day availability entry.
type AvailabilityStatus string

const (
	// StatusAvailable marks an employee as working during the entry's hours.
	StatusAvailable AvailabilityStatus = "available"
	// StatusUnavailable marks an employee as away during the entry's hours.
	StatusUnavailable AvailabilityStatus = "unavailable"
)

// Valid reports whether the status is one of the known tags.
func (s AvailabilityStatus) Valid() bool {
	return s == StatusAvailable || s == StatusUnavailable
}

// Employee is a staff member record.
type Employee struct {
	ID           string
	Name         string
	Email        string
	Position     string
	DepartmentID *string
	Phone        *string
	HireDate     string
}

// Department groups employees and optionally names a manager.
type Department struct {
	ID                string
	Name              string
	Description       string
	ManagerEmployeeID *string
}

// AvailabilityEntry records an employee's availability for one calendar day.
type AvailabilityEntry struct {
	ID         string
	EmployeeID string
	Date       time.Time
	StartTime  string
	EndTime    string
	Status     AvailabilityStatus
	Note       *string
}

// Dataset is a complete set of records, used for seeding a backend.
type Dataset struct {
	Employees    []Employee
	Departments  []Department
	Availability []AvailabilityEntry
}

// NullableString describes an update to a nullable string field. When Set is
// false the field is left untouched; otherwise it is replaced with Value,
// which may be nil.
type NullableString struct {
	Set   bool
	Value *string
}

// SetString returns a NullableString assigning value.
func SetString(value string) NullableString {
	return NullableString{Set: true, Value: &value}
}

// Clear returns a NullableString assigning nil.
func Clear() NullableString {
	return NullableString{Set: true}
}

func (n NullableString) apply(current *string) *string {
	if !n.Set {
		return CloneString(current)
	}
	return CloneString(n.Value)
}

// EmployeePatch lists the employee fields to change. Nil pointers are left untouched.
type EmployeePatch struct {
	Name         *string
	Email        *string
	Position     *string
	DepartmentID NullableString
	Phone        NullableString
	HireDate     *string
}

// Apply returns a copy of employee with the patch merged in. The ID is never changed.
func (p EmployeePatch) Apply(employee Employee) Employee {
	out := CloneEmployee(employee)
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Position != nil {
		out.Position = *p.Position
	}
	if p.HireDate != nil {
		out.HireDate = *p.HireDate
	}
	out.DepartmentID = p.DepartmentID.apply(employee.DepartmentID)
	out.Phone = p.Phone.apply(employee.Phone)
	return out
}

// DepartmentPatch lists the department fields to change.
type DepartmentPatch struct {
	Name              *string
	Description       *string
	ManagerEmployeeID NullableString
}

// Apply returns a copy of department with the patch merged in.
func (p DepartmentPatch) Apply(department Department) Department {
	out := CloneDepartment(department)
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	out.ManagerEmployeeID = p.ManagerEmployeeID.apply(department.ManagerEmployeeID)
	return out
}

// AvailabilityPatch lists the availability entry fields to change.
type AvailabilityPatch struct {
	EmployeeID *string
	Date       *time.Time
	StartTime  *string
	EndTime    *string
	Status     *AvailabilityStatus
	Note       NullableString
}

// Apply returns a copy of entry with the patch merged in.
func (p AvailabilityPatch) Apply(entry AvailabilityEntry) AvailabilityEntry {
	out := CloneAvailability(entry)
	if p.EmployeeID != nil {
		out.EmployeeID = *p.EmployeeID
	}
	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.StartTime != nil {
		out.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		out.EndTime = *p.EndTime
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	out.Note = p.Note.apply(entry.Note)
	return out
}

// CloneString returns a copy of value that shares no memory with it.
func CloneString(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}

// CloneEmployee returns a deep copy of employee.
func CloneEmployee(employee Employee) Employee {
	employee.DepartmentID = CloneString(employee.DepartmentID)
	employee.Phone = CloneString(employee.Phone)
	return employee
}

// CloneDepartment returns a deep copy of department.
func CloneDepartment(department Department) Department {
	department.ManagerEmployeeID = CloneString(department.ManagerEmployeeID)
	return department
}

// CloneAvailability returns a deep copy of entry.
func CloneAvailability(entry AvailabilityEntry) AvailabilityEntry {
	entry.Note = CloneString(entry.Note)
	return entry
}

// StringEquals reports whether value is non-nil and equal to target.
func StringEquals(value *string, target string) bool {
	return value != nil && *value == target
}
