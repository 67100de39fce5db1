package handlers

import (
	"net/http"

	"gogo-delivery/middleware"
	"gogo-delivery/models"

	"github.com/gin-gonic/gin"
)

type SetRoleRequest struct {
	Username string          `json:"username" binding:"required"`
	Role     models.UserRole `json:"role" binding:"required"`
}

// ListUsers returns every user (manager only)
func (h *Handler) ListUsers(c *gin.Context) {
	by, err := models.ParseSortUsersBy(c.Query("sort_by"))
	if err != nil {
		badRequest(c, err)
		return
	}
	order, ok := sortOrder(c)
	if !ok {
		return
	}
	users, err := h.client.Users(c.Request.Context(), middleware.GetUsername(c), by, order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// GetUser returns a single user by ID
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	user, err := h.client.UserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SetUserRole changes another user's role (manager only)
func (h *Handler) SetUserRole(c *gin.Context) {
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ok, err := h.client.SetUserRole(c.Request.Context(), middleware.GetUsername(c), req.Username, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	message(c, ok, "Role updated", "User not found")
}

// ListAddresses returns the caller's delivery addresses
func (h *Handler) ListAddresses(c *gin.Context) {
	addresses, err := h.client.UserAddresses(c.Request.Context(), middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(addresses), "addresses": addresses})
}

// AddAddress stores a new delivery address for the caller
func (h *Handler) AddAddress(c *gin.Context) {
	var req models.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.client.AddUserAddress(c.Request.Context(), middleware.GetUsername(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address added", "id": id})
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.client.UpdateUserAddress(c.Request.Context(), middleware.GetUsername(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	message(c, updated, "Address updated", "Address not found")
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.client.DeleteUserAddress(c.Request.Context(), middleware.GetUsername(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	message(c, deleted, "Address deleted", "Address not found")
}
