package testutil

import "sync"

// NotifyRecorder counts change notifications from a transition group.
//
// Pass Record as the notify callback and assert on Count to verify which
// internal transitions requested a re-render.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type NotifyRecorder struct {
	mu    sync.Mutex
	count int
}

// NewNotifyRecorder creates a recorder with a zero count.
func NewNotifyRecorder() *NotifyRecorder {
	return &NotifyRecorder{}
}

// Record increments the notification count.
func (r *NotifyRecorder) Record() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
}

// Count returns the number of notifications recorded so far.
func (r *NotifyRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears the count for test reuse.
func (r *NotifyRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count = 0
}
