package handlers

import (
	"net/http"

	"gogo-delivery/middleware"
	"gogo-delivery/models"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new customer account
func (h *Handler) Register(c *gin.Context) {
	var req models.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := h.client.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	user, err := h.client.UserByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(h.secret, h.tokenTTL, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user":    user,
	})
}

// Login authenticates a user and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ok, err := h.client.CheckCredentials(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}
	user, err := h.client.UserByName(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.GenerateToken(h.secret, h.tokenTTL, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// GetProfile returns the authenticated user's profile
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.client.CurrentUser(c.Request.Context(), middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
