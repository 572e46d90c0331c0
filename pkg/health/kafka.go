package health

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"
)

// KafkaChecker dials the webhook pipeline's brokers. Registered only
// when WEBHOOK_MODE is kafka; in sync mode the broker is not a
// dependency at all.
type KafkaChecker struct {
	brokers []string
}

func NewKafkaChecker(brokers []string) *KafkaChecker {
	return &KafkaChecker{brokers: brokers}
}

// Name returns "kafka".
func (c *KafkaChecker) Name() string {
	return "kafka"
}

// Check passes as soon as one broker accepts a TCP dial; the client
// discovers the rest of the cluster from there.
func (c *KafkaChecker) Check(ctx context.Context) Result {
	for _, broker := range c.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			continue
		}
		_ = conn.Close()
		return Result{Status: StatusUp}
	}
	return Result{
		Status:  StatusDown,
		Message: fmt.Sprintf("none of %d brokers reachable", len(c.brokers)),
	}
}
