// Package health exposes liveness and readiness probes over the
// dependencies the dispute service actually has in a given
// configuration: Postgres always, Kafka only in async webhook mode,
// the object store only when a blob tier is configured.
package health

import "context"

// Status of a single dependency, or of the service as a whole.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Result of probing one dependency.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// A Checker probes one dependency. Checks must respect ctx: readiness
// runs them under a shared deadline and a hung probe counts as down.
type Checker interface {
	// Name identifies the dependency in readiness responses.
	Name() string
	// Check probes the dependency.
	Check(ctx context.Context) Result
}
