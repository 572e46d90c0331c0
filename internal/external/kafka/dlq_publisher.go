package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// DLQPublisher parks failed messages on a dead letter topic.
type DLQPublisher struct {
	writer *kafka.Writer
	log    *slog.Logger
}

// NewDLQPublisher creates a publisher for the DLQ topic.
func NewDLQPublisher(log *slog.Logger, brokers []string, dlqTopic string) *DLQPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        dlqTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	return &DLQPublisher{
		writer: writer,
		log:    log,
	}
}

// PublishToDLQ writes the failed message with the error in headers.
func (p *DLQPublisher) PublishToDLQ(ctx context.Context, key, value []byte, err error) error {
	msg := kafka.Message{
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: "error", Value: []byte(err.Error())},
			{Key: "failed_at", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}

	if writeErr := p.writer.WriteMessages(ctx, msg); writeErr != nil {
		p.log.ErrorContext(ctx, "DLQ publish failed",
			"topic", p.writer.Topic, "key", string(key), "error", writeErr, "original_error", err)
		return writeErr
	}

	p.log.WarnContext(ctx, "message parked on DLQ",
		"topic", p.writer.Topic, "key", string(key), "error", err)
	return nil
}

// Close closes the DLQ writer.
func (p *DLQPublisher) Close() error {
	return p.writer.Close()
}
