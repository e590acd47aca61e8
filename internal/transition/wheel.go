package transition

import "time"

// CancelFunc cancels a pending deferred callback. Calling it after the
// callback has fired, or calling it twice, is a no-op.
type CancelFunc func()

// TimerSource is the host-supplied deferred-callback primitive: "invoke this
// callback after d", cancelable by handle.
//
// Implementations must deliver callbacks serialized with every other engine
// event (Update, Tick, other callbacks). Wheel is the stock implementation;
// hosts with their own timer machinery can provide an adapter instead.
type TimerSource interface {
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

// wheelTimer is one pending deadline on a Wheel.
type wheelTimer struct {
	deadline  time.Time
	seq       int64
	fn        func()
	cancelled bool
}

// Wheel is a host-polled TimerSource.
//
// Instead of firing callbacks from background goroutines, a Wheel holds
// deadlines until the host drives it from its own event loop via Poll or
// Advance. This keeps every callback serialized with the rest of the
// engine's events and makes timer behavior fully deterministic: due timers
// fire in (deadline, scheduling seq) order.
//
// NOT thread-safe. All methods must be called from the host loop goroutine,
// the same one that calls into the Group.
type Wheel struct {
	now    time.Time
	clock  *Clock
	timers []*wheelTimer
}

// NewWheel creates a wheel whose notion of "now" starts at the given time.
func NewWheel(start time.Time) *Wheel {
	return &Wheel{now: start, clock: NewClock()}
}

// Now returns the wheel's current time.
func (w *Wheel) Now() time.Time {
	return w.now
}

// AfterFunc registers fn to fire once d has elapsed on the wheel.
// A non-positive d fires on the next Poll - never synchronously, so the
// deferred-callback contract holds even for zero delays.
func (w *Wheel) AfterFunc(d time.Duration, fn func()) CancelFunc {
	t := &wheelTimer{
		deadline: w.now.Add(d),
		seq:      w.clock.Next(),
		fn:       fn,
	}
	w.timers = append(w.timers, t)
	return func() { t.cancelled = true }
}

// Poll moves the wheel to now (never backwards) and fires every due timer in
// (deadline, seq) order. Callbacks may schedule or cancel other timers;
// newly due timers fire within the same poll. Returns the number fired.
func (w *Wheel) Poll(now time.Time) int {
	if now.After(w.now) {
		w.now = now
	}

	fired := 0
	for {
		best := -1
		for i, t := range w.timers {
			if t.cancelled || t.deadline.After(w.now) {
				continue
			}
			if best == -1 || earlier(t, w.timers[best]) {
				best = i
			}
		}
		if best == -1 {
			break
		}
		t := w.timers[best]
		w.timers = append(w.timers[:best], w.timers[best+1:]...)
		t.fn()
		fired++
	}

	w.compact()
	return fired
}

// Advance moves the wheel forward by d and fires due timers, like Poll.
func (w *Wheel) Advance(d time.Duration) int {
	return w.Poll(w.now.Add(d))
}

// Pending returns the number of live (uncancelled, unfired) timers.
func (w *Wheel) Pending() int {
	n := 0
	for _, t := range w.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// compact drops cancelled timers so they do not accumulate between polls.
func (w *Wheel) compact() {
	live := w.timers[:0]
	for _, t := range w.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	w.timers = live
}

func earlier(a, b *wheelTimer) bool {
	if a.deadline.Equal(b.deadline) {
		return a.seq < b.seq
	}
	return a.deadline.Before(b.deadline)
}
