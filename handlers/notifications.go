package handlers

import (
	"net/http"

	"gogo-delivery/middleware"
	"gogo-delivery/models"

	"github.com/gin-gonic/gin"
)

type DirectNotificationRequest struct {
	Username string `json:"username" binding:"required"`
	models.NotificationInput
}

type BroadcastRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
	models.NotificationInput
}

// MyNotifications returns the notifications sent to the caller, newest first
func (h *Handler) MyNotifications(c *gin.Context) {
	list, err := h.client.UserNotifications(c.Request.Context(), middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "notifications": list})
}

// SendNotification notifies a single user (manager and rider)
func (h *Handler) SendNotification(c *gin.Context) {
	var req DirectNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.client.SendDirectNotification(c.Request.Context(), middleware.GetUsername(c), req.Username, req.NotificationInput)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Notification sent", "id": id})
}

// BroadcastNotification notifies every user with the given role (manager only)
func (h *Handler) BroadcastNotification(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	n, err := h.client.BroadcastNotification(c.Request.Context(), middleware.GetUsername(c), req.Role, req.NotificationInput)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Notification broadcast", "recipients": n})
}
