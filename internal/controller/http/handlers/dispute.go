// Package handlers holds the gin handlers for the webhook edge and the
// operator API.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"disputedesk/internal/controller/apperror"
	"disputedesk/internal/domain/dispute"
)

// EventsLister reads the indexed ingestion trail for one dispute.
type EventsLister interface {
	ListDisputeEvents(ctx context.Context, disputeID string) ([]dispute.IngestedEvent, error)
}

type DisputeHandler struct {
	service *dispute.Service
	events  EventsLister
}

// NewDisputeHandler creates the operator-facing dispute handler. events
// may be nil when no search backend is configured.
func NewDisputeHandler(s *dispute.Service, events EventsLister) DisputeHandler {
	return DisputeHandler{service: s, events: events}
}

func (h *DisputeHandler) List(c *gin.Context) {
	recs, err := h.service.ListDisputes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"disputes": recs})
}

func (h *DisputeHandler) Unified(c *gin.Context) {
	view, err := h.service.UnifiedView(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"disputes": view})
}

func (h *DisputeHandler) Get(c *gin.Context) {
	rec, err := h.service.GetDispute(c.Request.Context(), c.Param("dispute_id"))
	if err != nil {
		if errors.Is(err, apperror.ErrDisputeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "dispute not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

type manualMatchRequest struct {
	OrderNumber string `json:"order_number" binding:"required"`
}

func (h *DisputeHandler) ManualMatch(c *gin.Context) {
	var req manualMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "order_number is required"})
		return
	}

	rec, err := h.service.ManualMatch(c.Request.Context(), c.Param("dispute_id"), req.OrderNumber)
	if err != nil {
		switch {
		case errors.Is(err, apperror.ErrDisputeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "dispute not found"})
		case errors.Is(err, apperror.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *DisputeHandler) GetEvents(c *gin.Context) {
	if h.events == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "event history not configured"})
		return
	}

	evs, err := h.events.ListDisputeEvents(c.Request.Context(), c.Param("dispute_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": evs})
}
