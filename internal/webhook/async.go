package webhook

import (
	"context"
	"fmt"

	"disputedesk/internal/domain/dispute"
	"disputedesk/internal/messaging"
)

// AsyncProcessor republishes verified webhook bodies to Kafka and lets
// the consumer side do the work. The HTTP edge acknowledges as soon as
// the broker has the message; ordering per dispute comes from keying by
// dispute ID.
type AsyncProcessor struct {
	gateway  messaging.Publisher
	platform messaging.Publisher
}

var _ Processor = (*AsyncProcessor)(nil)

func NewAsyncProcessor(gateway, platform messaging.Publisher) *AsyncProcessor {
	return &AsyncProcessor{gateway: gateway, platform: platform}
}

func (p *AsyncProcessor) ProcessGatewayEvent(ctx context.Context, ev dispute.GatewayEvent, raw []byte) error {
	env := messaging.NewEnvelope(ev.DisputeID(), messaging.TypeGatewayDispute, "", raw)
	if err := p.gateway.Publish(ctx, env); err != nil {
		return fmt.Errorf("enqueue gateway event %s: %w", ev.ID, err)
	}
	return nil
}

func (p *AsyncProcessor) ProcessFulfillment(ctx context.Context, fe dispute.FulfillmentEvent, raw []byte) error {
	env := messaging.NewEnvelope(fe.CustomerEmail, messaging.TypePlatformFulfillment, fe.Topic, raw)
	if err := p.platform.Publish(ctx, env); err != nil {
		return fmt.Errorf("enqueue fulfillment %s: %w", fe.Topic, err)
	}
	return nil
}
