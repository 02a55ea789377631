package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jigardave8/8dSongs/core"
)

// RotationClock fires a callback on a fixed tick with drift correction.
// It carries no kinematic logic itself; it only schedules. All waiting
// goes through the TimeProvider's timer, so a mocked provider drives
// ticks deterministically in tests.
//
// At most one tick stream is ever active: Start while running replaces the
// prior run, and Stop guarantees no further tick fires after it returns.
type RotationClock struct {
	interval time.Duration
	clock    TimeProvider

	mu  sync.Mutex // protects run
	run *clockRun

	tickCount atomic.Uint64
	running   atomic.Bool
}

// clockRun is the cancellation handle for one Start..Stop cycle
type clockRun struct {
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRotationClock creates a clock with the given tick interval.
// A nil provider defaults to real time.
func NewRotationClock(interval time.Duration, provider TimeProvider) *RotationClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &RotationClock{
		interval: interval,
		clock:    provider,
	}
}

// Start begins firing onTick every interval. If the clock is already
// running, the prior tick stream is stopped first so two runs never
// overlap. The first timer is armed before Start returns.
func (rc *RotationClock) Start(onTick func()) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.run != nil {
		rc.stopRunLocked()
	}

	run := &clockRun{stopChan: make(chan struct{})}
	rc.run = run
	rc.running.Store(true)

	deadline := rc.clock.Now().Add(rc.interval)
	timer := rc.clock.NewTimer(rc.interval)

	run.wg.Add(1)
	core.Go(func() {
		rc.loop(run, timer, deadline, onTick)
	})
}

// Stop halts the tick stream. Idempotent; safe to call when never started.
// No tick fires after Stop returns.
func (rc *RotationClock) Stop() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.stopRunLocked()
}

// stopRunLocked cancels the active run and waits for its goroutine to exit
func (rc *RotationClock) stopRunLocked() {
	run := rc.run
	if run == nil {
		return
	}
	run.stopOnce.Do(func() {
		close(run.stopChan)
	})
	run.wg.Wait()
	rc.run = nil
	rc.running.Store(false)
}

// IsRunning returns true while a tick stream is active
func (rc *RotationClock) IsRunning() bool {
	return rc.running.Load()
}

// TickCount returns the total ticks fired across all runs
func (rc *RotationClock) TickCount() uint64 {
	return rc.tickCount.Load()
}

// loop is the drift-corrected scheduling loop for one run
func (rc *RotationClock) loop(run *clockRun, timer Timer, deadline time.Time, onTick func()) {
	defer run.wg.Done()
	defer timer.Stop()

	for {
		select {
		case <-run.stopChan:
			return
		case <-timer.C():
		}

		// Stop may have raced the timer; never fire after cancellation
		select {
		case <-run.stopChan:
			return
		default:
		}

		onTick()
		rc.tickCount.Add(1)

		deadline = deadline.Add(rc.interval)
		now := rc.clock.Now()

		// If the callback fell far behind, rebase instead of bursting
		if now.Sub(deadline) > rc.interval*2 {
			deadline = now.Add(rc.interval)
		}

		timer.ResetAt(deadline)
	}
}
