package health

import (
	"context"
	"sync"
	"time"
)

// Registry aggregates the dependency checkers behind /health/ready.
type Registry struct {
	checkers []Checker
}

// NewRegistry creates a registry over the given checkers. An empty
// registry reports up: a sync-mode deployment without minio has nothing
// to probe beyond Postgres.
func NewRegistry(checkers ...Checker) *Registry {
	return &Registry{checkers: checkers}
}

// CheckResult is one dependency's outcome in a readiness response.
type CheckResult struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// ReadinessResponse aggregates all dependency checks. Overall status is
// down as soon as any single dependency is down: accepting a webhook
// while Postgres is gone could lose a defense update.
type ReadinessResponse struct {
	Status Status        `json:"status"`
	Checks []CheckResult `json:"checks,omitempty"`
}

// CheckAll probes every registered dependency concurrently under ctx.
func (r *Registry) CheckAll(ctx context.Context) ReadinessResponse {
	resp := ReadinessResponse{Status: StatusUp}
	if len(r.checkers) == 0 {
		return resp
	}

	resp.Checks = make([]CheckResult, len(r.checkers))

	var wg sync.WaitGroup
	wg.Add(len(r.checkers))
	for i, checker := range r.checkers {
		go func(i int, c Checker) {
			defer wg.Done()
			start := time.Now()
			res := c.Check(ctx)
			resp.Checks[i] = CheckResult{
				Name:       c.Name(),
				Status:     res.Status,
				Message:    res.Message,
				DurationMS: time.Since(start).Milliseconds(),
			}
		}(i, checker)
	}
	wg.Wait()

	for _, check := range resp.Checks {
		if check.Status == StatusDown {
			resp.Status = StatusDown
			break
		}
	}
	return resp
}
