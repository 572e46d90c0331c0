package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port      int    `env:"PORT" envDefault:"3000"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	PgURL     string `env:"PG_URL" required:"true"`
	PgPoolMax int    `env:"PG_POOL_MAX" envDefault:"10"`

	// Webhook edge authentication. The gateway signs with hex digests,
	// the platform with base64; both are HMAC-SHA256 over the raw body.
	GatewayWebhookSecret    string `env:"GATEWAY_WEBHOOK_SECRET" required:"true"`
	PlatformWebhookSecret   string `env:"PLATFORM_WEBHOOK_SECRET" required:"true"`
	GatewaySignatureHeader  string `env:"GATEWAY_SIGNATURE_HEADER" envDefault:"X-Hub-Signature"`
	PlatformSignatureHeader string `env:"PLATFORM_SIGNATURE_HEADER" envDefault:"X-Shopify-Hmac-Sha256"`
	PlatformTopicHeader     string `env:"PLATFORM_TOPIC_HEADER" envDefault:"X-Shopify-Topic"`

	// Webhook processing mode: "sync" (direct) or "kafka" (async via Kafka)
	WebhookMode string `env:"WEBHOOK_MODE" envDefault:"sync"`

	AmountTolerancePct float64 `env:"AMOUNT_TOLERANCE_PCT" envDefault:"5"`
	StoreCapacity      int     `env:"STORE_CAPACITY" envDefault:"100"`
	StoreObjectKey     string  `env:"STORE_OBJECT_KEY" envDefault:"chargebacks.json"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MinioBucket    string `env:"MINIO_BUCKET" envDefault:"disputes"`

	ShopifyBaseURL    string        `env:"SHOPIFY_BASE_URL" required:"true"`
	ShopifyToken      string        `env:"SHOPIFY_ACCESS_TOKEN" required:"true"`
	ShopifyAPIVersion string        `env:"SHOPIFY_API_VERSION" envDefault:"2024-01"`
	ShopifyTimeout    time.Duration `env:"SHOPIFY_CLIENT_TIMEOUT" envDefault:"10s"`

	PagarmeBaseURL string        `env:"PAGARME_BASE_URL"`
	PagarmeAPIKey  string        `env:"PAGARME_API_KEY"`
	PagarmeTimeout time.Duration `env:"PAGARME_CLIENT_TIMEOUT" envDefault:"20s"`

	MatchTimeout time.Duration `env:"MATCH_TIMEOUT" envDefault:"8s"`

	OpensearchUrls               []string `env:"OPENSEARCH_URLS" envSeparator:","`
	OpensearchIndexDisputeEvents string   `env:"OPENSEARCH_INDEX_DISPUTE_EVENTS" envDefault:"dispute-events"`

	// Kafka configuration, used only when WebhookMode is "kafka".
	KafkaBrokers                   []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaDisputesTopic             string   `env:"KAFKA_DISPUTES_TOPIC" envDefault:"webhooks.disputes"`
	KafkaFulfillmentsTopic         string   `env:"KAFKA_FULFILLMENTS_TOPIC" envDefault:"webhooks.fulfillments"`
	KafkaDLQTopic                  string   `env:"KAFKA_DLQ_TOPIC" envDefault:"webhooks.dlq"`
	KafkaDisputesConsumerGroup     string   `env:"KAFKA_DISPUTES_CONSUMER_GROUP" envDefault:"disputedesk-disputes"`
	KafkaFulfillmentsConsumerGroup string   `env:"KAFKA_FULFILLMENTS_CONSUMER_GROUP" envDefault:"disputedesk-fulfillments"`
}

func New() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
