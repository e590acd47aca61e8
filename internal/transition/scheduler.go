package transition

import (
	"sort"
	"time"
)

// activationTicks is the number of host frame ticks an activation waits for.
//
// Two ticks, not one: the initial ("inactive") phase tag must be observed as
// rendered at least once before flipping to the "active" tag, otherwise
// hosts that batch state changes within one rendering pass collapse both
// states into a single paint and no visual transition is perceptible.
const activationTicks = 2

// keyTimers holds the pending deferred work for a single key: at most one
// settle timer, one remove timer, and one tick-counted activation.
type keyTimers struct {
	settle   CancelFunc
	remove   CancelFunc
	activate int // remaining ticks; 0 = no pending activation
}

func (kt *keyTimers) empty() bool {
	return kt.settle == nil && kt.remove == nil && kt.activate == 0
}

// scheduler owns the per-key timer table for a Group.
//
// Scheduling a settle or remove timer for a key cancels any prior timer of
// the same kind, so the table holds at most one pending callback of each
// kind per key. Activations are counted in frame ticks rather than time;
// Tick drains them.
//
// Like the rest of the engine, the scheduler is single-writer: all calls
// come from the host loop goroutine.
type scheduler struct {
	source TimerSource
	keys   map[string]*keyTimers
}

func newScheduler(source TimerSource) *scheduler {
	return &scheduler{
		source: source,
		keys:   make(map[string]*keyTimers),
	}
}

// ScheduleSettle registers fn to fire after the enter duration, replacing
// any settle timer already pending for the key.
func (s *scheduler) ScheduleSettle(key string, after time.Duration, fn func()) {
	kt := s.entry(key)
	if kt.settle != nil {
		kt.settle()
	}
	kt.settle = s.source.AfterFunc(after, func() {
		kt.settle = nil
		s.drop(key, kt)
		fn()
	})
}

// ScheduleRemove registers fn to fire after the leave duration, replacing
// any remove timer already pending for the key.
func (s *scheduler) ScheduleRemove(key string, after time.Duration, fn func()) {
	kt := s.entry(key)
	if kt.remove != nil {
		kt.remove()
	}
	kt.remove = s.source.AfterFunc(after, func() {
		kt.remove = nil
		s.drop(key, kt)
		fn()
	})
}

// ScheduleActivate arms (or re-arms) the key's two-tick activation.
func (s *scheduler) ScheduleActivate(key string) {
	s.entry(key).activate = activationTicks
}

// CancelSettle drops the key's pending settle timer, if any.
func (s *scheduler) CancelSettle(key string) {
	kt, ok := s.keys[key]
	if !ok {
		return
	}
	if kt.settle != nil {
		kt.settle()
		kt.settle = nil
	}
	s.drop(key, kt)
}

// CancelRemove drops the key's pending remove timer, if any.
func (s *scheduler) CancelRemove(key string) {
	kt, ok := s.keys[key]
	if !ok {
		return
	}
	if kt.remove != nil {
		kt.remove()
		kt.remove = nil
	}
	s.drop(key, kt)
}

// CancelActivate disarms the key's pending activation, if any.
func (s *scheduler) CancelActivate(key string) {
	kt, ok := s.keys[key]
	if !ok {
		return
	}
	kt.activate = 0
	s.drop(key, kt)
}

// CancelKey drops everything pending for a key. Called when the key leaves
// all tracked sets (destroy or reinstate).
func (s *scheduler) CancelKey(key string) {
	kt, ok := s.keys[key]
	if !ok {
		return
	}
	if kt.settle != nil {
		kt.settle()
	}
	if kt.remove != nil {
		kt.remove()
	}
	delete(s.keys, key)
}

// CancelAll drops every pending timer and activation. Called on teardown so
// no callback can mutate state after the instance is no longer observed.
func (s *scheduler) CancelAll() {
	for key := range s.keys {
		s.CancelKey(key)
	}
}

// Tick advances every armed activation by one frame tick and invokes
// activate for each key that completes its two-tick wait. Keys fire in
// sorted order so tick-driven transitions are deterministic.
func (s *scheduler) Tick(activate func(key string)) {
	var due []string
	for key, kt := range s.keys {
		if kt.activate == 0 {
			continue
		}
		kt.activate--
		if kt.activate == 0 {
			due = append(due, key)
		}
	}
	sort.Strings(due)
	for _, key := range due {
		if kt, ok := s.keys[key]; ok {
			s.drop(key, kt)
		}
		activate(key)
	}
}

// PendingActivations returns the number of keys with an armed activation.
func (s *scheduler) PendingActivations() int {
	n := 0
	for _, kt := range s.keys {
		if kt.activate > 0 {
			n++
		}
	}
	return n
}

func (s *scheduler) entry(key string) *keyTimers {
	kt, ok := s.keys[key]
	if !ok {
		kt = &keyTimers{}
		s.keys[key] = kt
	}
	return kt
}

// drop removes the table entry once nothing is pending for the key.
func (s *scheduler) drop(key string, kt *keyTimers) {
	if kt.empty() {
		delete(s.keys, key)
	}
}
