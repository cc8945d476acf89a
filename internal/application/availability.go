package application

import (
	"context"
	"errors"
	"time"

	"github.com/example/hr-directory/internal/persistence"
)

// AddAvailability stores input as a new availability entry. The employee
// reference is not checked.
func (s *Store) AddAvailability(ctx context.Context, input AvailabilityInput) (entry AvailabilityEntry, err error) {
	logger := s.loggerWith(ctx, "AddAvailability", "employee_id", input.EmployeeID)
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to add availability", err)
			return
		}
		logger.With("availability_id", entry.ID).InfoContext(ctx, "availability added")
	}()

	candidate := AvailabilityEntry{
		ID:         s.idGenerator(),
		EmployeeID: input.EmployeeID,
		Date:       input.Date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Status:     input.Status,
		Note:       input.Note,
	}
	if err = s.repo.CreateAvailability(ctx, candidate); err != nil {
		err = mapRepoError(err)
		return
	}

	entry = candidate
	return
}

// UpdateAvailability merges patch into the entry with the given id. It
// reports false when no such entry exists.
func (s *Store) UpdateAvailability(ctx context.Context, id string, patch AvailabilityPatch) (updated bool, err error) {
	logger := s.loggerWith(ctx, "UpdateAvailability", "availability_id", id)
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to update availability", err)
			return
		}
		logger.InfoContext(ctx, "availability update processed", "updated", updated)
	}()

	updated, err = s.repo.UpdateAvailability(ctx, id, patch)
	err = mapRepoError(err)
	return
}

// RemoveAvailability deletes the entry with the given id. It reports false
// when no such entry exists.
func (s *Store) RemoveAvailability(ctx context.Context, id string) (removed bool, err error) {
	logger := s.loggerWith(ctx, "RemoveAvailability", "availability_id", id)

	removed, err = s.repo.DeleteAvailability(ctx, id)
	if err != nil {
		err = mapRepoError(err)
		logFailure(ctx, logger, "failed to remove availability", err)
		return false, err
	}

	logger.InfoContext(ctx, "availability removal processed", "removed", removed)
	return removed, nil
}

// Availability returns every availability entry in insertion order.
func (s *Store) Availability(ctx context.Context) ([]AvailabilityEntry, error) {
	entries, err := s.repo.ListAvailability(ctx, persistence.AvailabilityFilter{})
	if err != nil {
		return nil, err
	}
	return nonNil(entries), nil
}

// GetAvailabilityByID returns the entry with the given id, or nil when absent.
func (s *Store) GetAvailabilityByID(ctx context.Context, id string) (*AvailabilityEntry, error) {
	entry, err := s.repo.GetAvailability(ctx, id)
	if errors.Is(err, persistence.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetAvailabilityForEmployee returns the employee's entries in insertion order.
func (s *Store) GetAvailabilityForEmployee(ctx context.Context, employeeID string) ([]AvailabilityEntry, error) {
	entries, err := s.repo.ListAvailability(ctx, persistence.AvailabilityFilter{EmployeeID: &employeeID})
	if err != nil {
		return nil, err
	}
	return nonNil(entries), nil
}

// GetAvailabilityForDate returns the entries dated on the same calendar day as
// date, ignoring time of day.
func (s *Store) GetAvailabilityForDate(ctx context.Context, date time.Time) ([]AvailabilityEntry, error) {
	return s.filterAvailability(ctx, func(entry AvailabilityEntry) bool {
		return s.calendar.SameDay(entry.Date, date)
	})
}

// GetAvailabilityForWeek returns the Monday-start week containing reference
// and the entries dated within it.
func (s *Store) GetAvailabilityForWeek(ctx context.Context, reference time.Time) (WeekView, error) {
	entries, err := s.filterAvailability(ctx, func(entry AvailabilityEntry) bool {
		return s.calendar.InWeek(entry.Date, reference)
	})
	if err != nil {
		return WeekView{}, err
	}
	return WeekView{Days: s.calendar.Week(reference), Entries: entries}, nil
}

func (s *Store) filterAvailability(ctx context.Context, keep func(AvailabilityEntry) bool) ([]AvailabilityEntry, error) {
	all, err := s.Availability(ctx)
	if err != nil {
		return nil, err
	}
	matches := make([]AvailabilityEntry, 0, len(all))
	for _, entry := range all {
		if keep(entry) {
			matches = append(matches, entry)
		}
	}
	return matches, nil
}
