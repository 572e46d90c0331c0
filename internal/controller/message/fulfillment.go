package message

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"disputedesk/internal/domain/dispute"
	"disputedesk/internal/messaging"
)

// FulfillmentController handles platform fulfillment messages.
type FulfillmentController struct {
	log     *slog.Logger
	service *dispute.Service
}

func NewFulfillmentController(log *slog.Logger, service *dispute.Service) *FulfillmentController {
	return &FulfillmentController{
		log:     log,
		service: service,
	}
}

// HandleMessage processes one platform fulfillment message.
func (c *FulfillmentController) HandleMessage(ctx context.Context, key, value []byte) error {
	var env messaging.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		c.log.ErrorContext(ctx, "envelope unmarshal failed", "key", string(key), "error", err)
		return fmt.Errorf("unmarshal envelope: %w", err)
	}

	fe, err := dispute.ParseFulfillment(env.Topic, env.Payload, time.Now().UTC())
	if err != nil {
		if errors.Is(err, dispute.ErrIgnoredTopic) {
			c.log.InfoContext(ctx, "ignored platform topic skipped",
				"event_id", env.EventID, "topic", env.Topic)
			return nil
		}
		c.log.ErrorContext(ctx, "fulfillment parse failed",
			"event_id", env.EventID, "topic", env.Topic, "error", err)
		return err
	}

	if err := c.service.ProcessFulfillment(ctx, fe); err != nil {
		c.log.ErrorContext(ctx, "fulfillment processing failed",
			"event_id", env.EventID, "order_name", fe.OrderName, "error", err)
		return err
	}

	c.log.InfoContext(ctx, "fulfillment processed",
		"event_id", env.EventID, "topic", env.Topic, "order_name", fe.OrderName)
	return nil
}
