package messaging

import (
	"context"
	"log/slog"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Runner drives a set of workers concurrently with one shared handler.
type Runner struct {
	log     *slog.Logger
	workers []Worker
	handler MessageHandler
}

// NewRunner creates a runner over the given workers.
func NewRunner(log *slog.Logger, workers []Worker, handler MessageHandler) *Runner {
	return &Runner{
		log:     log,
		workers: workers,
		handler: handler,
	}
}

// Start runs all workers and blocks until the context is cancelled or
// any worker fails.
func (r *Runner) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for i, w := range r.workers {
		g.Go(func() error {
			defer func() {
				if rec := recover(); rec != nil {
					r.log.Error("worker panic recovered",
						"worker_idx", i, "panic", rec, "stack", string(debug.Stack()))
				}
				if err := w.Close(); err != nil {
					r.log.Error("worker close failed", "worker_idx", i, "error", err)
				}
			}()
			return w.Start(ctx, r.handler)
		})
	}

	return g.Wait()
}

// Close closes all workers.
func (r *Runner) Close() error {
	for _, w := range r.workers {
		if err := w.Close(); err != nil {
			r.log.Error("worker close failed", "error", err)
		}
	}
	return nil
}
