package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/example/hr-directory/internal/calendar"
	"github.com/example/hr-directory/internal/persistence"
)

const serviceName = "Store"

// Store is the HR store: employees, departments and availability entries with
// the cascades that keep references between them consistent.
//
// A Store is passed explicitly to every consumer. Its methods are safe for
// concurrent use when the backing repository is.
type Store struct {
	repo        persistence.Repository
	idGenerator func() string
	now         func() time.Time
	calendar    *calendar.Calendar
	logger      *slog.Logger
}

// Option customises a Store.
type Option func(*Store)

// WithLocation sets the location used to decide whether two instants fall on
// the same calendar day.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		s.calendar = calendar.New(loc)
	}
}

// NewStore constructs a store over repo. A nil idGenerator produces random
// UUIDs and a nil now uses time.Now. It panics when repo is nil.
func NewStore(repo persistence.Repository, idGenerator func() string, now func() time.Time, opts ...Option) *Store {
	return NewStoreWithLogger(repo, idGenerator, now, nil, opts...)
}

// NewStoreWithLogger constructs a store with a specified logger.
func NewStoreWithLogger(repo persistence.Repository, idGenerator func() string, now func() time.Time, logger *slog.Logger, opts ...Option) *Store {
	if repo == nil {
		panic("application: NewStore requires a repository")
	}
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	store := &Store{
		repo:        repo,
		idGenerator: idGenerator,
		now:         now,
		calendar:    calendar.New(nil),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Calendar exposes the calendar the store uses for day matching.
func (s *Store) Calendar() *calendar.Calendar {
	return s.calendar
}

// Now returns the store's notion of the current instant.
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return storeLogger(ctx, s.logger, operation, attrs...)
}

// Import loads a complete dataset, keeping the identifiers it carries. It is
// used to seed an empty store.
func (s *Store) Import(ctx context.Context, dataset persistence.Dataset) (err error) {
	logger := s.loggerWith(ctx, "Import")
	defer func() {
		if err != nil {
			logFailure(ctx, logger, "failed to import dataset", err)
			return
		}
		logger.InfoContext(ctx, "dataset imported",
			"employees", len(dataset.Employees),
			"departments", len(dataset.Departments),
			"availability", len(dataset.Availability),
		)
	}()

	for _, department := range dataset.Departments {
		if err = s.repo.CreateDepartment(ctx, department); err != nil {
			err = fmt.Errorf("import department %s: %w", department.ID, mapRepoError(err))
			return
		}
	}
	for _, employee := range dataset.Employees {
		if err = s.repo.CreateEmployee(ctx, employee); err != nil {
			err = fmt.Errorf("import employee %s: %w", employee.ID, mapRepoError(err))
			return
		}
	}
	for _, entry := range dataset.Availability {
		if err = s.repo.CreateAvailability(ctx, entry); err != nil {
			err = fmt.Errorf("import availability %s: %w", entry.ID, mapRepoError(err))
			return
		}
	}
	return nil
}

func mapRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, persistence.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, persistence.ErrDuplicate) {
		return ErrAlreadyExists
	}
	return err
}
