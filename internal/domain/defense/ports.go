package defense

import (
	"context"
	"encoding/json"

	"disputedesk/internal/domain/dispute"
)

//go:generate mockgen -source ports.go -destination mock_ports.go -package defense

// Repo persists defense records.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	// GetByID returns apperror.ErrDefenseNotFound when no row matches.
	GetByID(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	ListByDisputeID(ctx context.Context, disputeID string) ([]Record, error)
	Update(ctx context.Context, rec Record) error
}

// GatewaySubmitter files a defense with the payment gateway and returns
// the gateway's raw acknowledgement.
type GatewaySubmitter interface {
	SubmitDefense(ctx context.Context, rec Record) (json.RawMessage, error)
}

// DisputeDirectory is the slice of the dispute service the defense
// workflow needs: parent upsert and lifecycle advancement.
type DisputeDirectory interface {
	EnsureDispute(ctx context.Context, id string) (dispute.Event, error)
	MarkSubmitted(ctx context.Context, id string) (dispute.Event, error)
}
