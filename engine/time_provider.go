package engine

import "time"

// TimeProvider abstracts the clock so scheduling can be mocked in tests
type TimeProvider interface {
	// Now returns the current time
	Now() time.Time
	// NewTimer creates a one-shot timer firing after d
	NewTimer(d time.Duration) Timer
}

// Timer is a re-armable one-shot timer. Re-arming takes an absolute
// deadline rather than a relative duration so a mocked clock advancing
// concurrently cannot skew the schedule.
type Timer interface {
	C() <-chan time.Time
	ResetAt(deadline time.Time)
	Stop()
}

// MonotonicTimeProvider is the production clock backed by the runtime's
// monotonic time
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a real-time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current monotonic-backed time
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// NewTimer creates a timer backed by time.Timer
func (p *MonotonicTimeProvider) NewTimer(d time.Duration) Timer {
	return &monotonicTimer{t: time.NewTimer(d)}
}

type monotonicTimer struct {
	t *time.Timer
}

func (m *monotonicTimer) C() <-chan time.Time {
	return m.t.C
}

func (m *monotonicTimer) ResetAt(deadline time.Time) {
	d := time.Until(deadline)
	if d < 0 {
		d = 0
	}
	m.t.Reset(d)
}

func (m *monotonicTimer) Stop() {
	m.t.Stop()
}
