/*
Package history keeps a short list of recent searches.

The list is most-recent-first and bounded: adding a term that is already present moves it to the
front instead of repeating it, and the oldest term falls off once the list is full. Where the list
lives is up to the Store handed to New, so callers and tests pick in-memory or on-disk persistence
without the history logic knowing.
*/
package history

import (
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultCapacity is the number of searches kept when no capacity is configured.
const DefaultCapacity = 5

// Store persists the history list.
type Store interface {
	// Get returns the stored list, most recent first. An empty store returns an empty list.
	Get() ([]string, error)
	// Set replaces the stored list.
	Set(items []string) error
	// Clear removes the stored list.
	Clear() error
}

// History is a bounded most-recent-first list of search terms backed by a Store.
// It is safe for concurrent use.
type History struct {
	store    Store
	capacity int
	mu       sync.Mutex
}

// New creates a History over store. A capacity below 1 uses DefaultCapacity.
func New(store Store, capacity int) *History {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &History{store: store, capacity: capacity}
}

// Capacity returns the maximum number of terms kept.
func (h *History) Capacity() int {
	return h.capacity
}

// Add records term as the most recent search. Empty terms are ignored.
func (h *History) Add(term string) error {
	if term == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.store.Get()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	items = slices.DeleteFunc(items, func(s string) bool { return s == term })
	items = slices.Insert(items, 0, term)
	if len(items) > h.capacity {
		items = items[:h.capacity]
	}

	if err := h.store.Set(items); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	log.Debugf("History: added %q (%d/%d)", term, len(items), h.capacity)
	return nil
}

// List returns the recorded terms, most recent first.
func (h *History) List() ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.store.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	// a store written by an older, larger capacity may hold more
	if len(items) > h.capacity {
		items = items[:h.capacity]
	}
	return items, nil
}

// Clear forgets every recorded term.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
