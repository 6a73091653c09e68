// Package gameclock provides the time source used by the sync engine.
// Injecting the clock keeps invulnerability windows and interpolation
// render times deterministic under test.
package gameclock

import "time"

// Clock supplies the current time to engine components.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Mock is a manually advanced Clock for tests.
type Mock struct {
	current time.Time
}

// NewMock returns a Mock frozen at start.
func NewMock(start time.Time) *Mock {
	return &Mock{current: start}
}

func (m *Mock) Now() time.Time {
	return m.current
}

// Advance moves the mock clock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}

// Set jumps the mock clock to t.
func (m *Mock) Set(t time.Time) {
	m.current = t
}
