// Package webhook decouples the authenticated HTTP edge from webhook
// processing. The edge verifies, parses and acknowledges; a Processor
// decides whether the work happens inline or rides through Kafka.
package webhook

import (
	"context"

	"disputedesk/internal/domain/dispute"
)

// Mode selects the processing strategy.
type Mode string

const (
	ModeSync  Mode = "sync"
	ModeKafka Mode = "kafka"
)

// Processor applies an authenticated, parsed webhook. The raw body is
// carried alongside so the async path can republish it verbatim.
type Processor interface {
	ProcessGatewayEvent(ctx context.Context, ev dispute.GatewayEvent, raw []byte) error
	ProcessFulfillment(ctx context.Context, fe dispute.FulfillmentEvent, raw []byte) error
}
