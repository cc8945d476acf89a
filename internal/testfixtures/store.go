package testfixtures

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/example/hr-directory/internal/application"
	"github.com/example/hr-directory/internal/persistence"
	"github.com/example/hr-directory/internal/persistence/memory"
	"github.com/example/hr-directory/internal/seed"
)

// StoreFactory assists tests with constructing HR stores using deterministic
// identifiers and clocks.
type StoreFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	Location    *time.Location
	Logger      *slog.Logger
}

// StoreFactoryOption configures a StoreFactory instance.
type StoreFactoryOption func(*StoreFactory)

// NewStoreFactory constructs a StoreFactory with defaults. Stores it builds
// match calendar days in UTC.
func NewStoreFactory(opts ...StoreFactoryOption) *StoreFactory {
	factory := &StoreFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
		Location:    time.UTC,
		Logger:      DiscardLogger(),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) StoreFactoryOption {
	return func(factory *StoreFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) StoreFactoryOption {
	return func(factory *StoreFactory) {
		factory.IDGenerator = generator
	}
}

// WithLogger routes store logs to logger.
func WithLogger(logger *slog.Logger) StoreFactoryOption {
	return func(factory *StoreFactory) {
		factory.Logger = logger
	}
}

// NewStore builds a store over repo. A nil repo gets a fresh memory backend.
func (f *StoreFactory) NewStore(repo persistence.Repository) *application.Store {
	if repo == nil {
		repo = memory.New()
	}
	return application.NewStoreWithLogger(
		repo,
		f.IDGenerator.NextFunc(),
		f.Clock.NowFunc(),
		f.Logger,
		application.WithLocation(f.Location),
	)
}

// NewSeededStore builds a store over repo loaded with the built-in sample
// dataset dated on the factory clock's current day.
func (f *StoreFactory) NewSeededStore(tb testing.TB, repo persistence.Repository) *application.Store {
	tb.Helper()

	store := f.NewStore(repo)
	if err := store.Import(context.Background(), seed.Sample(f.Clock.Now())); err != nil {
		tb.Fatalf("failed to seed store: %v", err)
	}
	return store
}
