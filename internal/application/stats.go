package application

import (
	"context"
	"math"
)

// Stats computes the dashboard figures. Availability counts consider only the
// entries dated today in the store's location.
func (s *Store) Stats(ctx context.Context) (stats DashboardStats, err error) {
	logger := s.loggerWith(ctx, "Stats")
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to compute stats", err)
		}
	}()

	employees, err := s.Employees(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	departments, err := s.Departments(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	today, err := s.GetAvailabilityForDate(ctx, s.now())
	if err != nil {
		return DashboardStats{}, err
	}

	stats.TotalEmployees = len(employees)
	stats.TotalDepartments = len(departments)

	for _, entry := range today {
		switch entry.Status {
		case StatusAvailable:
			stats.AvailableToday++
		case StatusUnavailable:
			stats.UnavailableToday++
		}
	}

	headcount := make(map[string]int, len(departments))
	for _, employee := range employees {
		if employee.DepartmentID == nil {
			stats.UnassignedEmployees++
			continue
		}
		headcount[*employee.DepartmentID]++
	}

	stats.Departments = make([]DepartmentHeadcount, 0, len(departments))
	for _, department := range departments {
		count := headcount[department.ID]
		stats.Departments = append(stats.Departments, DepartmentHeadcount{
			DepartmentID: department.ID,
			Name:         department.Name,
			Employees:    count,
			Percentage:   percentage(count, len(employees)),
		})
	}
	return stats, nil
}

func percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(part)*100/float64(total) + 0.5))
}
