package clock

import "time"

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// OutletClock localizes "now" to an outlet's configured zone so the
// resolver, generator, and allocator all see the same instant and the
// same calendar date. Tests swap the base clock for a MockClock.
type OutletClock struct {
	base Clock
}

func NewOutletClock(base Clock) *OutletClock {
	return &OutletClock{base: base}
}

func (c *OutletClock) NowIn(loc *time.Location) time.Time {
	return c.base.Now().In(loc)
}

// StartOfDay returns midnight of the current date in loc.
func (c *OutletClock) StartOfDay(loc *time.Location) time.Time {
	now := c.base.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
}

type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}
