// Package http wires the gin engine: webhook edge, operator API,
// health probes and the metrics endpoint.
package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"disputedesk/internal/controller/http/handlers"
	"disputedesk/pkg/health"
	"disputedesk/pkg/logger"
	"disputedesk/pkg/metrics"
)

const readinessTimeout = 5 * time.Second

type Router struct {
	webhook handlers.WebhookHandler
	dispute handlers.DisputeHandler
	defense handlers.DefenseHandler
	checks  *health.Registry
}

func NewRouter(webhook handlers.WebhookHandler, dispute handlers.DisputeHandler, defense handlers.DefenseHandler, checks *health.Registry) *Router {
	return &Router{
		webhook: webhook,
		dispute: dispute,
		defense: defense,
		checks:  checks,
	}
}

func (r *Router) SetUp(engine *gin.Engine) {
	engine.Use(logger.CorrelationMiddleware())
	engine.Use(logger.RequestLogger())
	engine.Use(metrics.GinMiddleware())

	engine.POST("/webhooks/gateway/disputes", r.webhook.GatewayWebhook)
	engine.POST("/webhooks/platform/orders", r.webhook.PlatformWebhook)

	engine.GET("/disputes", r.dispute.List)
	engine.GET("/disputes/unified", r.dispute.Unified)
	engine.GET("/disputes/:dispute_id", r.dispute.Get)
	engine.GET("/disputes/:dispute_id/events", r.dispute.GetEvents)
	engine.GET("/disputes/:dispute_id/defenses", r.defense.ListByDispute)
	engine.POST("/disputes/:dispute_id/match", r.dispute.ManualMatch)

	engine.POST("/defenses", r.defense.Create)
	engine.GET("/defenses", r.defense.List)
	engine.GET("/defenses/:defense_id", r.defense.Get)
	engine.POST("/defenses/:defense_id/approve", r.defense.Approve)
	engine.POST("/defenses/:defense_id/submit", r.defense.Submit)

	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.checks, readinessTimeout))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
}
