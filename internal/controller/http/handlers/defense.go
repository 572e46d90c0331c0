package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"disputedesk/internal/controller/apperror"
	"disputedesk/internal/domain/defense"
)

type DefenseHandler struct {
	service *defense.Service
}

func NewDefenseHandler(s *defense.Service) DefenseHandler {
	return DefenseHandler{service: s}
}

func (h *DefenseHandler) Create(c *gin.Context) {
	var in defense.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload"})
		return
	}
	if in.DisputeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "dispute_id is required"})
		return
	}

	rec, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *DefenseHandler) List(c *gin.Context) {
	recs, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"defenses": recs})
}

func (h *DefenseHandler) Get(c *gin.Context) {
	rec, err := h.service.Get(c.Request.Context(), c.Param("defense_id"))
	if err != nil {
		if errors.Is(err, apperror.ErrDefenseNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "defense not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *DefenseHandler) ListByDispute(c *gin.Context) {
	recs, err := h.service.ListByDispute(c.Request.Context(), c.Param("dispute_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"defenses": recs})
}

type approveRequest struct {
	Submit bool `json:"submit"`
}

func (h *DefenseHandler) Approve(c *gin.Context) {
	// an empty or unparsable body means approve without submitting
	var req approveRequest
	_ = c.ShouldBindJSON(&req)

	rec, err := h.service.Approve(c.Request.Context(), c.Param("defense_id"), req.Submit)
	if err != nil {
		h.writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *DefenseHandler) Submit(c *gin.Context) {
	rec, err := h.service.Submit(c.Request.Context(), c.Param("defense_id"))
	if err != nil {
		h.writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *DefenseHandler) writeWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperror.ErrDefenseNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "defense not found"})
	case errors.Is(err, apperror.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
