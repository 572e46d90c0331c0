package dispute

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate mockgen -source ports.go -destination mock_ports.go -package dispute

// Store persists dispute records. Implementations serialize access so a
// read-merge-write sequence on a single record is atomic with respect to
// other callers.
type Store interface {
	// Put inserts or replaces the record with the same ID.
	Put(ctx context.Context, rec Event) error
	// GetAll returns every stored record, most recent CreatedAt first.
	GetAll(ctx context.Context) ([]Event, error)
}

// IngestedEvent is the audit envelope indexed for every processed
// webhook delivery, independent of the mutable dispute record.
type IngestedEvent struct {
	EventID   string          `json:"event_id"`
	DisputeID string          `json:"dispute_id"`
	Kind      string          `json:"kind"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// EventSink receives the append-only ingestion trail. Sink failures are
// logged and never fail the webhook.
type EventSink interface {
	IndexDisputeEvent(ctx context.Context, ev IngestedEvent) error
}

// NoopSink satisfies EventSink when no search backend is configured.
type NoopSink struct{}

func (NoopSink) IndexDisputeEvent(context.Context, IngestedEvent) error { return nil }

// Charge is the gateway's view of the disputed charge, used to enrich
// the draft defense with card details the webhook payload omits.
type Charge struct {
	ID           string `json:"id"`
	CardBrand    string `json:"card_brand,omitempty"`
	CardLastFour string `json:"card_last_four,omitempty"`
}

// ChargeFetcher reads charge details back from the gateway.
type ChargeFetcher interface {
	GetCharge(ctx context.Context, chargeID string) (*Charge, error)
}

// DefenseProjector propagates a gateway-reported outcome onto any
// defense records filed for the dispute.
type DefenseProjector interface {
	ApplyOutcome(ctx context.Context, disputeID string, outcome Status) error
}
