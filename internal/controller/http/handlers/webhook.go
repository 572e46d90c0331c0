package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"disputedesk/internal/domain/dispute"
	"disputedesk/internal/webhook"
	"disputedesk/pkg/metrics"
	"disputedesk/pkg/signature"
)

// Webhook sources, used as metric labels.
const (
	sourceGateway  = "gateway"
	sourcePlatform = "platform"
)

// WebhookHandler is the authenticated webhook edge for both sources.
//
// The response contract after authentication is always 200: webhook
// senders disable endpoints that keep failing, so processing errors are
// reported in the body and metrics, never in the status code. Only an
// invalid signature (401) or an unparsable body (400) refuse a delivery.
type WebhookHandler struct {
	gatewayProfile  signature.Profile
	platformProfile signature.Profile
	topicHeader     string
	processor       webhook.Processor
	log             *slog.Logger
}

func NewWebhookHandler(gatewayProfile, platformProfile signature.Profile, topicHeader string, processor webhook.Processor, log *slog.Logger) WebhookHandler {
	return WebhookHandler{
		gatewayProfile:  gatewayProfile,
		platformProfile: platformProfile,
		topicHeader:     topicHeader,
		processor:       processor,
		log:             log,
	}
}

// GatewayWebhook receives payment gateway dispute events.
func (h *WebhookHandler) GatewayWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		metrics.WebhooksReceived.WithLabelValues(sourceGateway, "malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "unreadable body"})
		return
	}

	if !h.gatewayProfile.Verify(body, c.GetHeader(h.gatewayProfile.Header)) {
		metrics.WebhooksReceived.WithLabelValues(sourceGateway, "invalid_signature").Inc()
		h.log.WarnContext(c.Request.Context(), "gateway webhook signature rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid signature"})
		return
	}

	var ev dispute.GatewayEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		metrics.WebhooksReceived.WithLabelValues(sourceGateway, "malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	if !ev.Type.Known() {
		metrics.WebhooksReceived.WithLabelValues(sourceGateway, "ignored").Inc()
		c.JSON(http.StatusOK, gin.H{"status": "ignored", "type": string(ev.Type)})
		return
	}

	if err := h.processor.ProcessGatewayEvent(c.Request.Context(), ev, body); err != nil {
		metrics.WebhooksReceived.WithLabelValues(sourceGateway, "processing_failed").Inc()
		h.log.ErrorContext(c.Request.Context(), "gateway webhook processing failed",
			"event_id", ev.ID, "dispute_id", ev.DisputeID(), "error", err)
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}

	metrics.WebhooksReceived.WithLabelValues(sourceGateway, "accepted").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PlatformWebhook receives e-commerce platform fulfillment events.
func (h *WebhookHandler) PlatformWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		metrics.WebhooksReceived.WithLabelValues(sourcePlatform, "malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "unreadable body"})
		return
	}

	if !h.platformProfile.Verify(body, c.GetHeader(h.platformProfile.Header)) {
		metrics.WebhooksReceived.WithLabelValues(sourcePlatform, "invalid_signature").Inc()
		h.log.WarnContext(c.Request.Context(), "platform webhook signature rejected",
			"topic", c.GetHeader(h.topicHeader))
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid signature"})
		return
	}

	topic := c.GetHeader(h.topicHeader)
	fe, err := dispute.ParseFulfillment(topic, body, time.Now().UTC())
	if err != nil {
		if errors.Is(err, dispute.ErrIgnoredTopic) {
			metrics.WebhooksReceived.WithLabelValues(sourcePlatform, "ignored").Inc()
			c.JSON(http.StatusOK, gin.H{"status": "ignored", "topic": topic})
			return
		}
		metrics.WebhooksReceived.WithLabelValues(sourcePlatform, "malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}

	if err := h.processor.ProcessFulfillment(c.Request.Context(), fe, body); err != nil {
		metrics.WebhooksReceived.WithLabelValues(sourcePlatform, "processing_failed").Inc()
		h.log.ErrorContext(c.Request.Context(), "platform webhook processing failed",
			"topic", topic, "order_name", fe.OrderName, "error", err)
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}

	metrics.WebhooksReceived.WithLabelValues(sourcePlatform, "accepted").Inc()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
