// Package testutil provides deterministic ID and time sources for tests.
package testutil

import (
	"fmt"
	"sync"
)

// FixedIDGenerator returns predetermined run IDs in order.
//
// Once every ID has been handed out it falls back to "test-run-N" so long
// tests do not need to size the list up front.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator that returns ids in order.
//
//	gen := NewFixedIDGenerator("run-a", "run-b")
//	gen.NewID() // "run-a"
//	gen.NewID() // "run-b"
//	gen.NewID() // "test-run-3"
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// NewID returns the next ID.
func (g *FixedIDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.idx++
	if g.idx <= len(g.ids) {
		return g.ids[g.idx-1]
	}
	return fmt.Sprintf("test-run-%d", g.idx)
}
