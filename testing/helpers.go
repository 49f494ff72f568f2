// Package testing provides test doubles and helpers for pac-based code.
//
// Example usage:
//
//	func TestSignalDispatch(t *testing.T) {
//		mock := testing.NewMockCallback[int, int](t, "doubler")
//		mock.WithReturn(42)
//
//		sig := pac.NewSignal[int, int]("test")
//		sig.Connect(mock.Callback())
//		results := sig.Emit(5)
//
//		testing.AssertCalled(t, mock, 1)
//	}
package testing

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/zoobzio/pac"
)

// MockCallback is a configurable test double implementing pac's
// Callback[T, R] shape. It tracks call count and history and allows
// injecting a return value, a delay, or a panic.
type MockCallback[T, R any] struct { //nolint:govet // fieldalignment: test helper struct optimized for functionality over memory efficiency
	t           *testing.T
	name        string
	callCount   int64
	mu          sync.RWMutex
	lastInput   T
	returnVal   R
	delay       time.Duration
	panicMsg    string
	callHistory []MockCall[T]
	maxHistory  int
}

// MockCall records one invocation of a MockCallback.
type MockCall[T any] struct {
	Input     T
	Timestamp time.Time
}

// NewMockCallback creates a mock callback named name.
func NewMockCallback[T, R any](t *testing.T, name string) *MockCallback[T, R] {
	return &MockCallback[T, R]{t: t, name: name, maxHistory: 100}
}

// WithReturn configures the value Callback() returns for every subsequent
// call.
func (m *MockCallback[T, R]) WithReturn(val R) *MockCallback[T, R] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returnVal = val
	return m
}

// WithDelay configures Callback() to sleep d before returning, useful for
// exercising Toe's pause/idle timing or Signal's synchronous-emit
// assumptions.
func (m *MockCallback[T, R]) WithDelay(d time.Duration) *MockCallback[T, R] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// WithPanic configures Callback() to panic with msg, for exercising
// Signal.Emit's and Runnable.Run's panic recovery.
func (m *MockCallback[T, R]) WithPanic(msg string) *MockCallback[T, R] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicMsg = msg
	return m
}

// WithHistorySize configures how many calls to retain. 0 disables history.
func (m *MockCallback[T, R]) WithHistorySize(size int) *MockCallback[T, R] {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxHistory = size
	if size == 0 {
		m.callHistory = nil
	} else if len(m.callHistory) > size {
		m.callHistory = m.callHistory[len(m.callHistory)-size:]
	}
	return m
}

// Callback returns a pac.Callback[T, R] backed by this mock, suitable for
// Signal.Connect or NewRunnable.
func (m *MockCallback[T, R]) Callback() pac.Callback[T, R] {
	return pac.NewCallback(m.call)
}

func (m *MockCallback[T, R]) call(arg T) R {
	atomic.AddInt64(&m.callCount, 1)

	m.mu.Lock()
	m.lastInput = arg
	if m.maxHistory > 0 {
		m.callHistory = append(m.callHistory, MockCall[T]{Input: arg, Timestamp: time.Now()})
		if len(m.callHistory) > m.maxHistory {
			m.callHistory = m.callHistory[1:]
		}
	}
	delay := m.delay
	returnVal := m.returnVal
	panicMsg := m.panicMsg
	m.mu.Unlock()

	if panicMsg != "" {
		panic(panicMsg)
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	return returnVal
}

// CallCount returns the number of times the mock has been called.
func (m *MockCallback[T, R]) CallCount() int {
	return int(atomic.LoadInt64(&m.callCount))
}

// LastInput returns the argument from the most recent call.
func (m *MockCallback[T, R]) LastInput() T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastInput
}

// CallHistory returns a copy of recorded calls.
func (m *MockCallback[T, R]) CallHistory() []MockCall[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.maxHistory == 0 {
		return nil
	}
	history := make([]MockCall[T], len(m.callHistory))
	copy(history, m.callHistory)
	return history
}

// Reset clears all call tracking.
func (m *MockCallback[T, R]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	atomic.StoreInt64(&m.callCount, 0)
	var zero T
	m.lastInput = zero
	m.callHistory = nil
}

// AssertCalled verifies the mock was called exactly expectedCalls times.
func AssertCalled[T, R any](t *testing.T, mock *MockCallback[T, R], expectedCalls int) {
	t.Helper()
	actual := mock.CallCount()
	if actual != expectedCalls {
		t.Errorf("expected mock %q to be called %d times, got %d", mock.name, expectedCalls, actual)
	}
}

// AssertNotCalled verifies the mock was never called.
func AssertNotCalled[T, R any](t *testing.T, mock *MockCallback[T, R]) {
	t.Helper()
	AssertCalled(t, mock, 0)
}

// AssertCalledWith verifies the mock's most recent call received expected.
func AssertCalledWith[T comparable, R any](t *testing.T, mock *MockCallback[T, R], expected T) {
	t.Helper()
	if mock.CallCount() == 0 {
		t.Errorf("expected mock %q to be called with %v, but it was never called", mock.name, expected)
		return
	}
	if actual := mock.LastInput(); actual != expected {
		t.Errorf("expected mock %q to be called with %v, got %v", mock.name, expected, actual)
	}
}

// AssertCalledBetween verifies the mock was called between min and max
// times, inclusive.
func AssertCalledBetween[T, R any](t *testing.T, mock *MockCallback[T, R], minCalls, maxCalls int) {
	t.Helper()
	actual := mock.CallCount()
	if actual < minCalls || actual > maxCalls {
		t.Errorf("expected mock %q to be called between %d and %d times, got %d", mock.name, minCalls, maxCalls, actual)
	}
}

// WaitForCalls polls until the mock has been called at least expectedCalls
// times, or timeout elapses. Returns true if the expected count was
// reached.
func WaitForCalls[T, R any](mock *MockCallback[T, R], expectedCalls int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if mock.CallCount() >= expectedCalls {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return mock.CallCount() >= expectedCalls
}

// ParallelTest runs testFunc concurrently across n goroutines, passing each
// its index, and waits for all to finish. Useful for exercising a Signal or
// Toe's documented concurrency boundaries under contention.
func ParallelTest(t *testing.T, n int, testFunc func(int)) {
	t.Helper()
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(id int) {
			defer wg.Done()
			testFunc(id)
		}(i)
	}
	wg.Wait()
}
