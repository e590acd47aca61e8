// Package transition implements an enter/leave transition engine for
// ordered, keyed collections.
//
// The engine reconciles successive observations of a host-owned collection.
// Keys that appear render through an entering phase sequence before settling;
// keys that disappear keep rendering through a leaving phase sequence before
// they are finally dropped. Every reconciliation pass produces a single
// merged, positionally correct output in which leaving items still occupy
// their old slots while present items flow into the remaining gaps.
//
// The engine is headless: it never constructs presentation objects, only
// phase tags of the form "<prefix>-enter", "<prefix>-enter-active",
// "<prefix>-leave" and "<prefix>-leave-active". The host maps tags to
// whatever styling its rendering technology supports.
//
// # Single-writer model
//
// All engine state is mutated in response to discrete, host-delivered
// events: a new observation (Group.Update), a frame tick (Group.Tick), or a
// fired timer callback. The host must serialize these - the engine performs
// no locking and spawns no goroutines. Waiting is expressed through a
// host-supplied TimerSource, never by blocking.
package transition
