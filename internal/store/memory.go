// Package store persists dispute records in a capped, two-tier event
// store: a durable object-storage tier and an in-memory tier that keeps
// serving when the durable one is down.
package store

import (
	"context"
	"sort"
	"sync"

	"disputedesk/internal/domain/dispute"
)

// DefaultCapacity bounds the store when no capacity is configured.
const DefaultCapacity = 100

// Memory is the in-memory tier: a capped, mutex-serialized record set
// upserted by ID and read most-recent-first. Insertion of a new ID past
// capacity evicts exactly one record, the oldest by CreatedAt.
type Memory struct {
	mu       sync.Mutex
	capacity int
	recs     []dispute.Event // sorted by CreatedAt descending
}

// NewMemory creates an in-memory store. capacity <= 0 falls back to
// DefaultCapacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{capacity: capacity}
}

// Put inserts or replaces the record with the same ID, then evicts the
// oldest record if the insert pushed the set past capacity.
func (m *Memory) Put(_ context.Context, rec dispute.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsert(rec)
	return nil
}

func (m *Memory) upsert(rec dispute.Event) {
	replaced := false
	for i := range m.recs {
		if m.recs[i].ID == rec.ID {
			m.recs[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		m.recs = append(m.recs, rec)
	}

	sort.SliceStable(m.recs, func(i, j int) bool {
		return m.recs[i].CreatedAt.After(m.recs[j].CreatedAt)
	})

	// Evict after insert: the set briefly holds capacity+1 and the
	// oldest goes, which may be the record just inserted.
	if len(m.recs) > m.capacity {
		m.recs = m.recs[:m.capacity]
	}
}

// GetAll returns a copy of every record, most recent CreatedAt first.
func (m *Memory) GetAll(context.Context) ([]dispute.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]dispute.Event, len(m.recs))
	copy(out, m.recs)
	return out, nil
}

// Snapshot returns the current record set for persistence.
func (m *Memory) Snapshot() []dispute.Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]dispute.Event, len(m.recs))
	copy(out, m.recs)
	return out
}

// Replace swaps the whole record set, re-applying ordering and the cap.
func (m *Memory) Replace(recs []dispute.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recs = m.recs[:0]
	for _, rec := range recs {
		m.upsert(rec)
	}
}

// Len reports the current record count.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.recs)
}
