package app

import (
	"context"
	"log/slog"

	"disputedesk/config"
	"disputedesk/internal/controller/message"
	"disputedesk/internal/domain/dispute"
	"disputedesk/internal/external/kafka"
	"disputedesk/internal/messaging"
)

// StartWorkers starts the Kafka consumers that drain the webhook topics.
// Each consumer runs until ctx is cancelled; handler failures go through
// retry with backoff and end up on the DLQ topic.
func StartWorkers(ctx context.Context, log *slog.Logger, cfg config.Config, disputes *dispute.Service) {
	dlq := kafka.NewDLQPublisher(log, cfg.KafkaBrokers, cfg.KafkaDLQTopic)

	disputeController := message.NewDisputeController(log, disputes)
	disputeConsumer := kafka.NewConsumer(log, cfg.KafkaBrokers,
		cfg.KafkaDisputesTopic, cfg.KafkaDisputesConsumerGroup)
	disputeRunner := messaging.NewRunner(log, []messaging.Worker{disputeConsumer},
		wrapHandler(disputeController.HandleMessage, dlq,
			cfg.KafkaDisputesTopic, cfg.KafkaDisputesConsumerGroup))

	fulfillmentController := message.NewFulfillmentController(log, disputes)
	fulfillmentConsumer := kafka.NewConsumer(log, cfg.KafkaBrokers,
		cfg.KafkaFulfillmentsTopic, cfg.KafkaFulfillmentsConsumerGroup)
	fulfillmentRunner := messaging.NewRunner(log, []messaging.Worker{fulfillmentConsumer},
		wrapHandler(fulfillmentController.HandleMessage, dlq,
			cfg.KafkaFulfillmentsTopic, cfg.KafkaFulfillmentsConsumerGroup))

	go func() {
		log.Info("starting dispute webhook consumer",
			"topic", cfg.KafkaDisputesTopic, "group", cfg.KafkaDisputesConsumerGroup)
		if err := disputeRunner.Start(ctx); err != nil {
			log.Error("dispute runner failed", "error", err)
		}
	}()

	go func() {
		log.Info("starting fulfillment webhook consumer",
			"topic", cfg.KafkaFulfillmentsTopic, "group", cfg.KafkaFulfillmentsConsumerGroup)
		if err := fulfillmentRunner.Start(ctx); err != nil {
			log.Error("fulfillment runner failed", "error", err)
		}
	}()
}

func wrapHandler(handler messaging.MessageHandler, dlq messaging.DLQPublisher, topic, group string) messaging.MessageHandler {
	handler = messaging.WithRetry(handler, messaging.DefaultRetryConfig())
	handler = messaging.WithDLQ(handler, dlq)
	return messaging.WithMetrics(handler, topic, group)
}
