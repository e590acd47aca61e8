package transition

import (
	"log/slog"
	"time"
)

// keyState is the lifecycle position of a single key. Each key's lifecycle
// is one explicit state value rather than membership in independently
// mutated sets, which rules out cross-set invariant drift.
type keyState int

const (
	stateEnteringInactive keyState = iota + 1
	stateEnteringActive
	stateSettled
	stateLeavingInactive
	stateLeavingActive
)

// String returns the state name for logging.
func (s keyState) String() string {
	switch s {
	case stateEnteringInactive:
		return "entering-inactive"
	case stateEnteringActive:
		return "entering-active"
	case stateSettled:
		return "settled"
	case stateLeavingInactive:
		return "leaving-inactive"
	case stateLeavingActive:
		return "leaving-active"
	default:
		return "absent"
	}
}

// keyRecord is the engine's per-key state.
type keyRecord struct {
	state keyState
}

// entering reports membership in the entering set derived from the state.
func (r *keyRecord) entering() bool {
	return r.state == stateEnteringInactive || r.state == stateEnteringActive
}

// inactive reports membership in the inactive set derived from the state.
func (r *keyRecord) inactive() bool {
	return r.state == stateEnteringInactive || r.state == stateLeavingInactive
}

// DefaultPrefix is used when Config.Prefix is empty, so phase tags are never
// malformed ("-enter").
const DefaultPrefix = "m"

// Wrapper describes an optional host-side wrapper element, for hosts that
// cannot attach a phase tag to an item's own representation and must wrap it
// instead. The engine only carries it through; it never constructs
// presentation objects.
type Wrapper struct {
	Tag   string
	Class string
}

// Config is the immutable construction-time configuration of a Group.
type Config struct {
	// Prefix is the transition name prefix for phase tags. Defaults to
	// DefaultPrefix when empty.
	Prefix string

	// EnterDuration is how long a key renders its entering phase before
	// settling. Must be positive.
	EnterDuration time.Duration

	// LeaveDuration is how long a removed key keeps rendering its leaving
	// phase before it is destroyed. Must be positive.
	LeaveDuration time.Duration

	// Wrapper is optional; see Wrapper.
	Wrapper *Wrapper
}

func (c Config) validate() error {
	if c.EnterDuration <= 0 {
		return &ConfigError{Field: "EnterDuration", Message: "must be positive"}
	}
	if c.LeaveDuration <= 0 {
		return &ConfigError{Field: "LeaveDuration", Message: "must be positive"}
	}
	return nil
}

// Option configures a Group at construction.
type Option func(*Group)

// WithNotify registers a callback invoked whenever a timer- or tick-driven
// transition changes what Render would produce. Host-initiated updates do
// not notify - the host already knows it changed something.
func WithNotify(fn func()) Option {
	return func(g *Group) {
		g.notify = fn
	}
}

// WithLogger sets the Group's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Group) {
		g.logger = logger
	}
}

// Group is one instance of the transition engine.
//
// The host feeds it observations of its collection via Update, frame ticks
// via Tick, and drives the TimerSource; the Group answers with Render. All
// methods must be called from the host loop goroutine - the Group is
// single-writer and performs no locking.
type Group struct {
	cfg      Config
	timers   *scheduler
	keys     map[string]*keyRecord
	current  []Item
	leaving  Registry
	observed bool
	closed   bool
	notify   func()
	logger   *slog.Logger
}

// New creates a Group. The TimerSource is required; callbacks it delivers
// must be serialized with Update and Tick. Non-positive durations fail fast
// with a ConfigError.
func New(cfg Config, timers TimerSource, opts ...Option) (*Group, error) {
	if timers == nil {
		return nil, &ConfigError{Field: "TimerSource", Message: "required"}
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	g := &Group{
		cfg:    cfg,
		timers: newScheduler(timers),
		keys:   make(map[string]*keyRecord),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the Group's configuration (with defaults applied).
func (g *Group) Config() Config {
	return g.cfg
}

// Update reconciles a new observation of the host's collection.
//
// The very first observation seeds every key as settled: mounting a
// collection does not animate. Afterwards, keys that disappeared start
// leaving, keys that appeared start entering, and a leaving key that
// reappears is reinstated and treated as a fresh entry. Each update cycle is
// atomic - the diff is computed against the fully settled previous snapshot
// and applied completely before Update returns.
func (g *Group) Update(items []Item) {
	if g.closed {
		return
	}

	next := make([]Item, len(items))
	copy(next, items)

	if !g.observed {
		g.observed = true
		g.current = next
		for _, it := range next {
			g.keys[it.Key] = &keyRecord{state: stateSettled}
		}
		g.logger.Debug("initial observation", "items", len(next))
		return
	}

	old := g.current
	removed := Diff(old, next)
	added := Diff(next, old)
	g.current = next
	if len(removed) == 0 && len(added) == 0 {
		return
	}

	// Removals first: leaving entries claim merged slots computed against
	// the pre-update layout.
	var batch []PositionedItem
	for _, rm := range removed {
		key := rm.Item.Key
		rec := g.keys[key]
		if rec == nil {
			continue
		}
		switch rec.state {
		case stateEnteringInactive, stateEnteringActive:
			g.timers.CancelSettle(key)
		case stateSettled:
		default:
			// Leaving keys are never in the live collection; a record in a
			// leaving state here means the caller broke the key-uniqueness
			// contract. Skip it.
			continue
		}
		rec.state = stateLeavingInactive
		batch = append(batch, rm)
		g.timers.ScheduleRemove(key, g.cfg.LeaveDuration, func() { g.removeFired(key) })
		g.timers.ScheduleActivate(key)
		g.logger.Debug("key leaving", "key", key, "index", rm.Index)
	}
	g.leaving = g.leaving.MergeRemoved(batch)

	for _, ad := range added {
		key := ad.Item.Key
		if g.leaving.Contains(key) {
			// Re-entry edge: the pending remove and activation die together.
			g.timers.CancelRemove(key)
			g.timers.CancelActivate(key)
			g.leaving = g.leaving.Reinstate(key)
			g.logger.Debug("key reinstated", "key", key)
		}
		rec := g.keys[key]
		if rec == nil {
			rec = &keyRecord{}
			g.keys[key] = rec
		}
		rec.state = stateEnteringInactive
		g.timers.ScheduleSettle(key, g.cfg.EnterDuration, func() { g.settleFired(key) })
		g.timers.ScheduleActivate(key)
		g.logger.Debug("key entering", "key", key, "index", ad.Index)
	}
}

// Tick delivers one "next opportunity to observe a rendered frame" signal.
// The host calls it once per rendered frame; activations flip inactive keys
// to their active phase after two such signals.
func (g *Group) Tick() {
	if g.closed {
		return
	}
	g.timers.Tick(g.activateFired)
}

// Render produces the merged, phase-tagged output for the current pass.
// Safe to render directly in order; length is len(current)+len(leaving).
func (g *Group) Render() []RenderedItem {
	entering := make(map[string]bool)
	inactive := make(map[string]bool)
	for key, rec := range g.keys {
		if rec.entering() {
			entering[key] = true
		}
		if rec.inactive() {
			inactive[key] = true
		}
	}
	return Reconcile(g.current, g.leaving, entering, inactive, g.cfg.Prefix)
}

// Close tears the Group down, cancelling every outstanding timer and pending
// activation so no callback can mutate state after the instance is no longer
// observed. Subsequent calls are no-ops.
func (g *Group) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.timers.CancelAll()
	g.keys = make(map[string]*keyRecord)
	g.leaving = nil
	g.current = nil
	g.logger.Debug("group closed")
}

// settleFired ends a key's entering sequence. Stale firings for keys that
// already transitioned away are dropped silently.
func (g *Group) settleFired(key string) {
	if g.closed {
		return
	}
	rec := g.keys[key]
	if rec == nil || !rec.entering() {
		return
	}
	rec.state = stateSettled
	// A settle racing ahead of the activation ticks leaves the armed
	// activation pointless; drop it rather than letting it fire stale.
	g.timers.CancelActivate(key)
	g.logger.Debug("key settled", "key", key)
	g.changed()
}

// removeFired destroys a leaving key: it leaves the registry, its indices
// compact, and its record is gone. Stale firings are dropped silently.
func (g *Group) removeFired(key string) {
	if g.closed {
		return
	}
	rec := g.keys[key]
	if rec == nil || (rec.state != stateLeavingInactive && rec.state != stateLeavingActive) {
		return
	}
	g.leaving = g.leaving.Destroy(key)
	delete(g.keys, key)
	g.timers.CancelKey(key)
	g.logger.Debug("key removed", "key", key)
	g.changed()
}

// activateFired flips a key from its inactive phase to the active one.
// Keys that raced out of an inactive state are dropped silently.
func (g *Group) activateFired(key string) {
	rec := g.keys[key]
	if rec == nil {
		return
	}
	switch rec.state {
	case stateEnteringInactive:
		rec.state = stateEnteringActive
	case stateLeavingInactive:
		rec.state = stateLeavingActive
	default:
		return
	}
	g.logger.Debug("key activated", "key", key, "state", rec.state.String())
	g.changed()
}

func (g *Group) changed() {
	if g.notify != nil {
		g.notify()
	}
}
