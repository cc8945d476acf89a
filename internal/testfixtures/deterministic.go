package testfixtures

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Clock is a settable time source. Stores built by StoreFactory read it for
// "today" and for the default week of the availability calendar.
type Clock struct {
	mu      sync.Mutex
	current time.Time
}

// NewClock starts at start, or at ReferenceTime when start is zero.
func NewClock(start time.Time) *Clock {
	if start.IsZero() {
		start = ReferenceTime()
	}
	return &Clock{current: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NowFunc returns time.Now for a nil clock.
func (c *Clock) NowFunc() func() time.Time {
	if c == nil {
		return time.Now
	}
	return c.Now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = t
}

// AddDays shifts the clock by whole calendar days, keeping the wall time.
func (c *Clock) AddDays(days int) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.AddDate(0, 0, days)
	return c.current
}

// NextWeek moves the clock seven days forward.
func (c *Clock) NextWeek() time.Time {
	return c.AddDays(7)
}

// IDGenerator hands out "<prefix>-<n>" identifiers, counting from 1. The
// prefix keeps generated ids apart from the numeric ids of the sample seed.
type IDGenerator struct {
	prefix string
	next   atomic.Uint64
}

// NewIDGenerator uses "id" when prefix is empty.
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "id"
	}
	return &IDGenerator{prefix: prefix}
}

func (g *IDGenerator) Next() string {
	return g.prefix + "-" + strconv.FormatUint(g.next.Add(1), 10)
}

// Issued reports how many identifiers have been handed out.
func (g *IDGenerator) Issued() int {
	return int(g.next.Load())
}

// NextFunc returns a generator of empty ids for a nil receiver.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return func() string { return "" }
	}
	return g.Next
}
