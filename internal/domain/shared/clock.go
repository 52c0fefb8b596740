package shared

import (
	"sort"
	"sync"
	"time"
)

// Clock is an abstraction for time operations, allowing time to be mocked in tests
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
	NewTimer(d time.Duration) Timer
	NewTicker(d time.Duration) Ticker
}

// Timer is a one-shot timer whose channel receives once when it fires
type Timer interface {
	C() <-chan time.Time
	// Stop prevents the timer from firing. It is safe to call more than once.
	Stop() bool
}

// Ticker delivers ticks on its channel at a fixed interval until stopped
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// RealClock implements Clock using the actual system time
type RealClock struct{}

// Now returns the current system time in UTC
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// Sleep blocks for the given duration
func (r *RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// NewTimer wraps time.NewTimer
func (r *RealClock) NewTimer(d time.Duration) Timer {
	return &realTimer{t: time.NewTimer(d)}
}

// NewTicker wraps time.NewTicker
func (r *RealClock) NewTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTimer struct{ t *time.Timer }

func (r *realTimer) C() <-chan time.Time { return r.t.C }
func (r *realTimer) Stop() bool          { return r.t.Stop() }

type realTicker struct{ t *time.Ticker }

func (r *realTicker) C() <-chan time.Time { return r.t.C }
func (r *realTicker) Stop()               { r.t.Stop() }

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// MockClock implements Clock with a controllable time for testing.
// Timers and tickers fire only when Advance moves time past their deadline.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
	waiters     []*mockWaiter
}

type mockWaiter struct {
	clock    *MockClock
	deadline time.Time
	interval time.Duration // zero for one-shot timers
	ch       chan time.Time
	stopped  bool
}

func (w *mockWaiter) C() <-chan time.Time { return w.ch }

func (w *mockWaiter) Stop() bool {
	w.clock.mu.Lock()
	defer w.clock.mu.Unlock()
	active := !w.stopped
	w.stopped = true
	return active
}

type mockTicker struct{ *mockWaiter }

func (t mockTicker) Stop() { t.mockWaiter.Stop() }

// NewMockClock creates a MockClock starting at the given time
// If zero time is provided, starts at current time
func NewMockClock(startTime time.Time) *MockClock {
	if startTime.IsZero() {
		startTime = time.Now()
	}
	return &MockClock{CurrentTime: startTime}
}

// Now returns the mock's current time
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CurrentTime
}

// Sleep advances the mock clock without blocking (instant in tests)
func (m *MockClock) Sleep(d time.Duration) {
	m.Advance(d)
}

// NewTimer registers a one-shot timer against the mock time
func (m *MockClock) NewTimer(d time.Duration) Timer {
	return m.addWaiter(d, 0)
}

// NewTicker registers a repeating ticker against the mock time
func (m *MockClock) NewTicker(d time.Duration) Ticker {
	return mockTicker{m.addWaiter(d, d)}
}

func (m *MockClock) addWaiter(d, interval time.Duration) *mockWaiter {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := &mockWaiter{
		clock:    m,
		deadline: m.CurrentTime.Add(d),
		interval: interval,
		ch:       make(chan time.Time, 1),
	}
	m.waiters = append(m.waiters, w)
	return w
}

// Advance moves the mock clock forward by the given duration, firing every
// timer and ticker whose deadline has passed. Ticks that find a full channel
// are dropped, as with time.Ticker.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CurrentTime = m.CurrentTime.Add(d)

	sort.SliceStable(m.waiters, func(i, j int) bool {
		return m.waiters[i].deadline.Before(m.waiters[j].deadline)
	})

	live := m.waiters[:0]
	for _, w := range m.waiters {
		for !w.stopped && !w.deadline.After(m.CurrentTime) {
			select {
			case w.ch <- w.deadline:
			default:
			}
			if w.interval == 0 {
				w.stopped = true
				break
			}
			w.deadline = w.deadline.Add(w.interval)
		}
		if !w.stopped {
			live = append(live, w)
		}
	}
	m.waiters = live
}

// SetTime sets the mock clock to a specific time without firing timers
func (m *MockClock) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CurrentTime = t
}

// PendingTimers returns the number of timers and tickers that have not fired or been stopped
func (m *MockClock) PendingTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, w := range m.waiters {
		if !w.stopped {
			count++
		}
	}
	return count
}
