package webhook

import (
	"context"

	"disputedesk/internal/domain/dispute"
)

// SyncProcessor applies webhooks inline on the request goroutine. The
// delivery is durable in the store before the HTTP response goes out.
type SyncProcessor struct {
	disputes *dispute.Service
}

var _ Processor = (*SyncProcessor)(nil)

func NewSyncProcessor(disputes *dispute.Service) *SyncProcessor {
	return &SyncProcessor{disputes: disputes}
}

func (p *SyncProcessor) ProcessGatewayEvent(ctx context.Context, ev dispute.GatewayEvent, _ []byte) error {
	return p.disputes.ProcessGatewayEvent(ctx, ev)
}

func (p *SyncProcessor) ProcessFulfillment(ctx context.Context, fe dispute.FulfillmentEvent, _ []byte) error {
	return p.disputes.ProcessFulfillment(ctx, fe)
}
