package handlers

import (
	"net/http"

	"gogo-delivery/models"
	"gogo-delivery/policy"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo returns the order lifecycle for informational purposes
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   policy.Transitions(),
		"terminal_states": []models.OrderState{models.StateCompleted, models.StateCancelled},
		"description":     "Food Delivery Order Lifecycle State Machine",
	})
}

// Health reports whether the database answers
func (h *Handler) Health(c *gin.Context) {
	if err := h.client.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "GoGo Delivery API",
		"version": "1.0.0",
	})
}
