package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a controllable clock for tests. Time only moves
// when Advance or SetTime is called, and timers created through it fire
// synchronously inside those calls, so tick delivery is deterministic.
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
	timers      []*mockTimer
}

// NewMockTimeProvider creates a mock clock frozen at startTime
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the mocked current time
func (p *MockTimeProvider) Now() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currentTime
}

// SetTime jumps the mocked clock to t, firing any timer whose deadline
// is now reached
func (p *MockTimeProvider) SetTime(t time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentTime = t
	p.fireExpiredLocked()
}

// Advance moves the mocked clock forward by d, firing any timer whose
// deadline is now reached
func (p *MockTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentTime = p.currentTime.Add(d)
	p.fireExpiredLocked()
}

// NewTimer creates a one-shot timer that fires when the mocked clock
// reaches the deadline
func (p *MockTimeProvider) NewTimer(d time.Duration) Timer {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := &mockTimer{
		provider: p,
		c:        make(chan time.Time, 1),
		deadline: p.currentTime.Add(d),
		active:   true,
	}
	p.timers = append(p.timers, t)
	if d <= 0 {
		t.fireLocked(p.currentTime)
	}
	return t
}

// fireExpiredLocked fires every active timer whose deadline has passed.
// Caller holds p.mu.
func (p *MockTimeProvider) fireExpiredLocked() {
	for _, t := range p.timers {
		if t.active && !t.deadline.After(p.currentTime) {
			t.fireLocked(p.currentTime)
		}
	}
}

// mockTimer is a one-shot timer bound to a MockTimeProvider.
// Its fields are guarded by the provider's mutex.
type mockTimer struct {
	provider *MockTimeProvider
	c        chan time.Time
	deadline time.Time
	active   bool
}

func (t *mockTimer) C() <-chan time.Time {
	return t.c
}

// ResetAt re-arms the timer for an absolute deadline. A deadline at or
// before the mocked present fires immediately.
func (t *mockTimer) ResetAt(deadline time.Time) {
	t.provider.mu.Lock()
	defer t.provider.mu.Unlock()
	t.deadline = deadline
	t.active = true
	if !deadline.After(t.provider.currentTime) {
		t.fireLocked(t.provider.currentTime)
	}
}

func (t *mockTimer) Stop() {
	t.provider.mu.Lock()
	defer t.provider.mu.Unlock()
	t.active = false
}

// fireLocked delivers the tick once. Caller holds the provider's mutex.
// The send never blocks; the channel is buffered and the timer is
// disarmed until the next ResetAt.
func (t *mockTimer) fireLocked(now time.Time) {
	t.active = false
	select {
	case t.c <- now:
	default:
	}
}
