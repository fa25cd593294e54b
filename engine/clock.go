package engine

import (
	"sync"
	"time"
)

// Clock is the frame loop's time source
type Clock interface {
	Now() time.Time
}

// SystemClock provides the real system time with monotonic clock readings
type SystemClock struct{}

// NewSystemClock creates a monotonic system clock
func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time with monotonic clock reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock provides a controllable time source for testing
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockClock creates a mock clock starting at startTime
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockClock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Set sets the current time
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the current time forward by d
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
