package kafka

import (
	"context"
	"errors"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"disputedesk/internal/messaging"
	"disputedesk/pkg/correlation"
)

// Consumer implements messaging.Worker on a Kafka consumer group.
type Consumer struct {
	reader *kafka.Reader
	log    *slog.Logger
}

// NewConsumer creates a consumer for one topic and group.
func NewConsumer(log *slog.Logger, brokers []string, topic, groupID string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &Consumer{
		reader: reader,
		log:    log,
	}
}

// Start fetches, handles and commits messages until the context is
// cancelled. A handler error leaves the offset uncommitted, so the
// message is redelivered.
func (c *Consumer) Start(ctx context.Context, handler messaging.MessageHandler) error {
	c.log.Info("consumer started",
		"topic", c.reader.Config().Topic, "group_id", c.reader.Config().GroupID)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				c.log.Info("consumer stopped")
				return nil
			}
			c.log.Error("fetch failed", "error", err)
			return err
		}

		msgCtx := ctx
		for _, h := range msg.Headers {
			if h.Key == correlation.KafkaHeaderName {
				msgCtx = correlation.WithID(ctx, string(h.Value))
				break
			}
		}

		if err := handler(msgCtx, msg.Key, msg.Value); err != nil {
			c.log.ErrorContext(msgCtx, "handler failed, offset not committed",
				"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset,
				"key", string(msg.Key), "error", err)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.log.Error("commit failed",
				"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
			return err
		}
	}
}

// Close closes the Kafka reader.
func (c *Consumer) Close() error {
	c.log.Info("closing consumer",
		"topic", c.reader.Config().Topic, "group_id", c.reader.Config().GroupID)
	return c.reader.Close()
}
