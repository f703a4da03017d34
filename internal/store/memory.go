// memory.go implements a process-local store for tests and ephemeral
// sessions. Values are copied on the way in and on the way out, so callers
// can never reach the store's internal map.

package store

import (
	"context"
	"sync"

	"github.com/jpl-au/mystuff/internal/link"
)

// Memory holds the collection in process memory.
type Memory struct {
	mu     sync.Mutex
	links  link.Collection
	writes int
}

var _ DataStore = (*Memory)(nil)

// NewMemory returns a store seeded with a copy of initial (may be nil).
func NewMemory(initial link.Collection) *Memory {
	return &Memory{links: initial.Clone()}
}

// Links returns a copy of the current collection.
func (m *Memory) Links(ctx context.Context) (link.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.links.Clone(), nil
}

// SetLinks replaces the collection with a copy of links.
func (m *Memory) SetLinks(ctx context.Context, links link.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKeys(links); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links = links.Clone()
	m.writes++
	return nil
}

// Writes reports how many times SetLinks has succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
