package handlers

import (
	"net/http"

	"gogo-delivery/middleware"
	"gogo-delivery/models"

	"github.com/gin-gonic/gin"
)

type CartCountRequest struct {
	Count int `json:"count" binding:"required"`
}

// GetCart returns the caller's cart with line and grand totals
func (h *Handler) GetCart(c *gin.Context) {
	by, err := models.ParseSortCartBy(c.Query("sort_by"))
	if err != nil {
		badRequest(c, err)
		return
	}
	order, ok := sortOrder(c)
	if !ok {
		return
	}
	cart, err := h.client.UserCart(c.Request.Context(), middleware.GetUsername(c), by, order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

func (h *Handler) IsInCart(c *gin.Context) {
	foodID, ok := paramID(c, "foodId")
	if !ok {
		return
	}
	in, err := h.client.IsInUserCart(c.Request.Context(), middleware.GetUsername(c), foodID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food_id": foodID, "in_cart": in})
}

// AddCartItem puts a food into the caller's cart
func (h *Handler) AddCartItem(c *gin.Context) {
	var req models.CartItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.client.AddUserCartItem(c.Request.Context(), middleware.GetUsername(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Added to cart", "id": id})
}

func (h *Handler) UpdateCartItem(c *gin.Context) {
	foodID, ok := paramID(c, "foodId")
	if !ok {
		return
	}
	var req CartCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.client.UpdateUserCartItem(c.Request.Context(), middleware.GetUsername(c), foodID, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}
	message(c, updated, "Cart updated", "Food is not in the cart")
}

func (h *Handler) DeleteCartItem(c *gin.Context) {
	foodID, ok := paramID(c, "foodId")
	if !ok {
		return
	}
	deleted, err := h.client.DeleteUserCartItem(c.Request.Context(), middleware.GetUsername(c), foodID)
	if err != nil {
		respondError(c, err)
		return
	}
	message(c, deleted, "Removed from cart", "Food is not in the cart")
}

// ListFavorites returns the caller's favorite food
func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, err := h.client.UserFavorites(c.Request.Context(), middleware.GetUsername(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(favorites), "favorites": favorites})
}

func (h *Handler) IsFavorite(c *gin.Context) {
	foodID, ok := paramID(c, "foodId")
	if !ok {
		return
	}
	fav, err := h.client.IsUserFavorite(c.Request.Context(), middleware.GetUsername(c), foodID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food_id": foodID, "favorite": fav})
}

func (h *Handler) AddFavorite(c *gin.Context) {
	foodID, ok := paramID(c, "foodId")
	if !ok {
		return
	}
	id, err := h.client.AddUserFavorite(c.Request.Context(), middleware.GetUsername(c), foodID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Added to favorites", "id": id})
}

func (h *Handler) DeleteFavorite(c *gin.Context) {
	foodID, ok := paramID(c, "foodId")
	if !ok {
		return
	}
	deleted, err := h.client.DeleteUserFavorite(c.Request.Context(), middleware.GetUsername(c), foodID)
	if err != nil {
		respondError(c, err)
		return
	}
	message(c, deleted, "Removed from favorites", "Food is not in favorites")
}

// ToggleFavorite flips the favorite mark and returns the new state
func (h *Handler) ToggleFavorite(c *gin.Context) {
	foodID, ok := paramID(c, "foodId")
	if !ok {
		return
	}
	fav, err := h.client.ToggleUserFavorite(c.Request.Context(), middleware.GetUsername(c), foodID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"food_id": foodID, "favorite": fav})
}
