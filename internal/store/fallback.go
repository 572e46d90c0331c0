package store

import (
	"context"
	"log/slog"
	"sync"

	"disputedesk/internal/domain/dispute"
	"disputedesk/pkg/metrics"
)

//go:generate mockgen -source fallback.go -destination mock_backend.go -package store

// Backend is the durable tier contract the fallback store writes
// through to.
type Backend interface {
	Load(ctx context.Context) ([]dispute.Event, error)
	Save(ctx context.Context, recs []dispute.Event) error
}

// Durable is the production store: every write lands in the in-memory
// tier and is written through to the durable backend. When the backend
// is down the memory tier keeps serving and a dirty flag marks the
// divergence; the next successful write flushes the whole set. One
// mutex serializes all operations, so callers get read-merge-write
// atomicity for free.
type Durable struct {
	mu      sync.Mutex
	backend Backend
	cache   *Memory
	dirty   bool
	loaded  bool
	log     *slog.Logger
}

// NewDurable wires the two tiers. capacity caps both.
func NewDurable(backend Backend, capacity int, log *slog.Logger) *Durable {
	return &Durable{
		backend: backend,
		cache:   NewMemory(capacity),
		log:     log,
	}
}

// Put upserts the record in both tiers. A backend failure degrades the
// write to the memory tier and marks the store dirty; the call still
// succeeds so webhook processing never depends on object storage.
func (d *Durable) Put(ctx context.Context, rec dispute.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ensureLoaded(ctx)
	_ = d.cache.Put(ctx, rec)

	if err := d.backend.Save(ctx, d.cache.Snapshot()); err != nil {
		d.dirty = true
		metrics.StoreFallback.WithLabelValues("put").Inc()
		d.log.WarnContext(ctx, "durable tier write failed, serving from memory", "error", err)
		return nil
	}

	if d.dirty {
		d.log.InfoContext(ctx, "durable tier recovered, pending records flushed")
	}
	d.dirty = false
	d.loaded = true
	return nil
}

// GetAll reads the durable tier, falling back to the memory tier when
// it is unreachable. While dirty, memory is authoritative: reloading
// from the backend would drop the records it has not seen.
func (d *Durable) GetAll(ctx context.Context) ([]dispute.Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.dirty {
		metrics.StoreFallback.WithLabelValues("get_all").Inc()
		return d.cache.GetAll(ctx)
	}

	recs, err := d.backend.Load(ctx)
	if err != nil {
		metrics.StoreFallback.WithLabelValues("get_all").Inc()
		d.log.WarnContext(ctx, "durable tier read failed, serving from memory", "error", err)
		return d.cache.GetAll(ctx)
	}

	d.cache.Replace(recs)
	d.loaded = true
	return d.cache.GetAll(ctx)
}

// ensureLoaded primes the memory tier from the backend before the first
// write. Skipped while dirty: memory already holds records the backend
// is missing.
func (d *Durable) ensureLoaded(ctx context.Context) {
	if d.loaded || d.dirty {
		return
	}
	recs, err := d.backend.Load(ctx)
	if err != nil {
		metrics.StoreFallback.WithLabelValues("load").Inc()
		d.log.WarnContext(ctx, "durable tier load failed, starting from memory", "error", err)
		return
	}
	d.cache.Replace(recs)
	d.loaded = true
}
