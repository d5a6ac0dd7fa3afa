package ecs

import "time"

// Clock is the time source a Scheduler measures frames with.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the monotonic wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// ManualClock is a Clock that only moves when told to. Sleep advances it
// instead of blocking, which makes frame pacing deterministic in tests.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a manual clock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (m *ManualClock) Now() time.Time {
	return m.now
}

func (m *ManualClock) Sleep(d time.Duration) {
	if d > 0 {
		m.now = m.now.Add(d)
	}
}

// Advance moves the clock forward by d.
func (m *ManualClock) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// Set moves the clock to t.
func (m *ManualClock) Set(t time.Time) {
	m.now = t
}
