// Package messaging defines the broker-agnostic contracts the async
// webhook pipeline is built on.
package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message types carried in envelopes on the webhook topics.
const (
	TypeGatewayDispute      = "gateway.dispute"
	TypePlatformFulfillment = "platform.fulfillment"
)

// Envelope wraps a webhook payload with routing and tracing metadata.
// The payload is the verified raw webhook body; verification happened
// at the HTTP edge, consumers trust what is on the topic.
type Envelope struct {
	EventID   string          `json:"event_id"`
	Key       string          `json:"key"`
	Type      string          `json:"type"`
	Topic     string          `json:"topic,omitempty"` // platform webhook topic, empty for gateway events
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEnvelope creates an envelope with a generated event ID around an
// already-serialized payload.
func NewEnvelope(key, msgType, topic string, payload []byte) Envelope {
	return Envelope{
		EventID:   uuid.New().String(),
		Key:       key,
		Type:      msgType,
		Topic:     topic,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher sends envelopes to a message broker.
type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
	Close() error
}

// MessageHandler processes a single message.
type MessageHandler func(ctx context.Context, key, value []byte) error

// Worker consumes messages from a message broker.
type Worker interface {
	Start(ctx context.Context, handler MessageHandler) error
	Close() error
}
