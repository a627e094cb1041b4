// Package store provides catalog.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/uniform-engine/catalog"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu  sync.RWMutex
	cat *catalog.Catalog
}

func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a deep copy of the held catalog so callers can mutate
// their snapshot without racing other readers.
func (m *Memory) Load(_ context.Context) (*catalog.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cat == nil {
		return &catalog.Catalog{DefaultOccupation: "MOZO", DefaultLocation: "OTHER"}, nil
	}
	return m.cat.Clone(), nil
}

// Save replaces the held catalog with a deep copy of c.
func (m *Memory) Save(_ context.Context, c *catalog.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cat = c.Clone()
	return nil
}

var _ catalog.Store = (*Memory)(nil)
