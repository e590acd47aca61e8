package tui

import "github.com/google/uuid"

// KeyGenerator produces keys for demo items. The demo uses random UUIDs;
// tests substitute a sequential generator for stable output.
type KeyGenerator interface {
	NewKey() string
}

// UUIDKeyGenerator generates random UUID keys.
type UUIDKeyGenerator struct{}

// NewKey returns a fresh random UUID string.
func (UUIDKeyGenerator) NewKey() string {
	return uuid.NewString()
}

// demoLabels are cycled through as items are added, so every row in the
// demo list reads as something other than a bare key.
var demoLabels = []string{
	"alpha", "bravo", "charlie", "delta", "echo",
	"foxtrot", "golf", "hotel", "india", "juliet",
}

// labelFor picks a label for the nth item ever added.
func labelFor(n int) string {
	return demoLabels[n%len(demoLabels)]
}
