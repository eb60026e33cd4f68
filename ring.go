package reactor

import (
	"sync"
	"time"
)

// ApplyFailure records one failed spec application.
type ApplyFailure struct {
	// Stage is the processing stage that failed: "unmarshal", "validate",
	// or "apply".
	Stage string

	// Err is the error returned by the failing stage.
	Err error

	// At is the time the failure was recorded, per the controller's clock.
	At time.Time
}

// failureRing is a thread-safe ring buffer of recent spec failures.
type failureRing struct {
	mu       sync.RWMutex
	failures []ApplyFailure
	size     int
	head     int
	count    int
}

// newFailureRing creates a failure ring with the given capacity.
// If size is 0 or negative, the ring is disabled and returns nil.
func newFailureRing(size int) *failureRing {
	if size <= 0 {
		return nil
	}
	return &failureRing{
		failures: make([]ApplyFailure, size),
		size:     size,
	}
}

// push records a failure, evicting the oldest when full.
func (r *failureRing) push(f ApplyFailure) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures[r.head] = f
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// all returns the recorded failures, oldest first.
func (r *failureRing) all() []ApplyFailure {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.count == 0 {
		return nil
	}

	result := make([]ApplyFailure, r.count)
	start := (r.head - r.count + r.size) % r.size
	for i := 0; i < r.count; i++ {
		result[i] = r.failures[(start+i)%r.size]
	}
	return result
}
