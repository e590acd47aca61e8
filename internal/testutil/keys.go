// Package testutil provides deterministic helpers shared by tests across
// the module.
package testutil

import (
	"fmt"
	"sync"
)

// SequentialKeyGenerator produces keys in a fixed sequence.
//
// This enables deterministic test execution and golden snapshot comparison:
// the same scenario with the same generator produces byte-identical output.
// Production hosts use random UUID keys instead.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type SequentialKeyGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequentialKeyGenerator creates a generator producing "<prefix>-1",
// "<prefix>-2", and so on. An empty prefix defaults to "item".
func NewSequentialKeyGenerator(prefix string) *SequentialKeyGenerator {
	if prefix == "" {
		prefix = "item"
	}
	return &SequentialKeyGenerator{prefix: prefix}
}

// NewKey returns the next key in the sequence.
func (g *SequentialKeyGenerator) NewKey() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}

// Reset restarts the sequence. After Reset, NewKey returns "<prefix>-1".
func (g *SequentialKeyGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next = 0
}
