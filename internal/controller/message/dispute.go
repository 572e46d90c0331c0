// Package message holds the Kafka-side controllers: they unwrap
// envelopes published by the webhook edge and drive the domain services.
package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"disputedesk/internal/domain/dispute"
	"disputedesk/internal/messaging"
)

// DisputeController handles gateway dispute messages.
type DisputeController struct {
	log     *slog.Logger
	service *dispute.Service
}

func NewDisputeController(log *slog.Logger, service *dispute.Service) *DisputeController {
	return &DisputeController{
		log:     log,
		service: service,
	}
}

// HandleMessage processes one gateway dispute message. The payload was
// verified at the HTTP edge; a payload that fails to parse here is
// corrupt and goes to the DLQ, not back onto the topic.
func (c *DisputeController) HandleMessage(ctx context.Context, key, value []byte) error {
	var env messaging.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		c.log.ErrorContext(ctx, "envelope unmarshal failed", "key", string(key), "error", err)
		return fmt.Errorf("unmarshal envelope: %w", err)
	}

	var ev dispute.GatewayEvent
	if err := json.Unmarshal(env.Payload, &ev); err != nil {
		c.log.ErrorContext(ctx, "gateway event unmarshal failed", "event_id", env.EventID, "error", err)
		return fmt.Errorf("unmarshal gateway event: %w", err)
	}

	if err := c.service.ProcessGatewayEvent(ctx, ev); err != nil {
		if errors.Is(err, dispute.ErrIgnoredEventType) {
			c.log.InfoContext(ctx, "unknown gateway event type skipped",
				"event_id", env.EventID, "type", ev.Type)
			return nil
		}
		c.log.ErrorContext(ctx, "gateway event processing failed",
			"event_id", env.EventID, "dispute_id", ev.DisputeID(), "error", err)
		return err
	}

	c.log.InfoContext(ctx, "gateway event processed",
		"event_id", env.EventID, "dispute_id", ev.DisputeID(), "type", ev.Type)
	return nil
}
