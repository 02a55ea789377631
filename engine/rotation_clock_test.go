package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

const testTickInterval = 2 * time.Millisecond

// TestClockFiresTicks verifies ticks arrive after Start
func TestClockFiresTicks(t *testing.T) {
	rc := NewRotationClock(testTickInterval, nil)

	var ticks atomic.Int64
	rc.Start(func() {
		ticks.Add(1)
	})
	defer rc.Stop()

	time.Sleep(50 * time.Millisecond)

	if ticks.Load() == 0 {
		t.Error("Expected at least one tick after Start")
	}
	if !rc.IsRunning() {
		t.Error("Expected clock to report running")
	}
}

// TestClockStopHaltsTicks verifies no tick fires after Stop returns
func TestClockStopHaltsTicks(t *testing.T) {
	rc := NewRotationClock(testTickInterval, nil)

	var ticks atomic.Int64
	rc.Start(func() {
		ticks.Add(1)
	})

	time.Sleep(20 * time.Millisecond)
	rc.Stop()

	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)

	if got := ticks.Load(); got != after {
		t.Errorf("Expected no ticks after Stop, got %d more", got-after)
	}
	if rc.IsRunning() {
		t.Error("Expected clock to report stopped")
	}
}

// TestClockStopIdempotent verifies Stop can be called repeatedly
func TestClockStopIdempotent(t *testing.T) {
	rc := NewRotationClock(testTickInterval, nil)

	rc.Start(func() {})
	rc.Stop()
	rc.Stop()
	rc.Stop()

	if rc.IsRunning() {
		t.Error("Expected clock stopped after repeated Stop")
	}
}

// TestClockStopWithoutStart verifies Stop on a fresh clock is a no-op
func TestClockStopWithoutStart(t *testing.T) {
	rc := NewRotationClock(testTickInterval, nil)
	rc.Stop()

	if rc.IsRunning() {
		t.Error("Expected never-started clock to report stopped")
	}
}

// TestClockRestartReplacesRun verifies double Start yields one tick stream
func TestClockRestartReplacesRun(t *testing.T) {
	rc := NewRotationClock(5*time.Millisecond, nil)

	var first, second atomic.Int64
	rc.Start(func() {
		first.Add(1)
	})
	time.Sleep(20 * time.Millisecond)

	rc.Start(func() {
		second.Add(1)
	})
	defer rc.Stop()

	firstAfterRestart := first.Load()
	time.Sleep(50 * time.Millisecond)

	if got := first.Load(); got != firstAfterRestart {
		t.Errorf("Old tick stream still firing: %d extra ticks", got-firstAfterRestart)
	}
	if second.Load() == 0 {
		t.Error("Expected new tick stream to fire after restart")
	}
}

// TestClockTickOrdering verifies ticks are delivered strictly one at a time
func TestClockTickOrdering(t *testing.T) {
	rc := NewRotationClock(time.Millisecond, nil)

	var inFlight atomic.Int32
	var overlapped atomic.Bool
	rc.Start(func() {
		if inFlight.Add(1) > 1 {
			overlapped.Store(true)
		}
		time.Sleep(100 * time.Microsecond)
		inFlight.Add(-1)
	})

	time.Sleep(50 * time.Millisecond)
	rc.Stop()

	if overlapped.Load() {
		t.Error("Tick callbacks overlapped; expected strict ordering")
	}
}

// TestClockMockDrivenTicks drives the clock through a mocked provider
// and verifies exactly one tick fires per interval advanced
func TestClockMockDrivenTicks(t *testing.T) {
	const interval = 16 * time.Millisecond
	tp := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	rc := NewRotationClock(interval, tp)

	tickCh := make(chan struct{}, 8)
	rc.Start(func() {
		tickCh <- struct{}{}
	})
	defer rc.Stop()

	select {
	case <-tickCh:
		t.Fatal("Expected no tick before the mocked clock advances")
	case <-time.After(20 * time.Millisecond):
	}

	for i := 0; i < 5; i++ {
		tp.Advance(interval)
		select {
		case <-tickCh:
		case <-time.After(time.Second):
			t.Fatalf("Expected tick %d after advancing the mocked clock", i+1)
		}
	}

	select {
	case <-tickCh:
		t.Error("Expected exactly one tick per advance")
	case <-time.After(20 * time.Millisecond):
	}

	if got := rc.TickCount(); got != 5 {
		t.Errorf("Expected tick count 5, got %d", got)
	}
}

// TestClockMockStopHaltsTicks verifies Advance fires nothing once stopped
func TestClockMockStopHaltsTicks(t *testing.T) {
	const interval = 16 * time.Millisecond
	tp := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	rc := NewRotationClock(interval, tp)

	tickCh := make(chan struct{}, 8)
	rc.Start(func() {
		tickCh <- struct{}{}
	})

	tp.Advance(interval)
	select {
	case <-tickCh:
	case <-time.After(time.Second):
		t.Fatal("Expected a tick before Stop")
	}

	rc.Stop()
	tp.Advance(10 * interval)

	select {
	case <-tickCh:
		t.Error("Expected no tick after Stop")
	case <-time.After(20 * time.Millisecond):
	}
}

// TestClockTickCount verifies the counter advances with ticks
func TestClockTickCount(t *testing.T) {
	rc := NewRotationClock(testTickInterval, NewMonotonicTimeProvider())

	rc.Start(func() {})
	time.Sleep(30 * time.Millisecond)
	rc.Stop()

	if rc.TickCount() == 0 {
		t.Error("Expected tick count to advance")
	}
}
