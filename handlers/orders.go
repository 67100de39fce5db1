package handlers

import (
	"net/http"

	"gogo-delivery/middleware"
	"gogo-delivery/models"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	AddressID uint `json:"address_id" binding:"required"`
}

// PlaceOrder checks out the caller's cart to one of their addresses
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.client.MakeOrder(c.Request.Context(), middleware.GetUsername(c), req.AddressID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order_id": id})
}

func ordersFilter(c *gin.Context) (models.OrdersFilter, bool) {
	filter, err := models.ParseOrdersFilter(c.Query("status"))
	if err != nil {
		badRequest(c, err)
		return "", false
	}
	return filter, true
}

// ListOrders returns every order (manager and rider)
func (h *Handler) ListOrders(c *gin.Context) {
	filter, ok := ordersFilter(c)
	if !ok {
		return
	}
	orders, err := h.client.Orders(c.Request.Context(), middleware.GetUsername(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetMyOrders returns the caller's own orders
func (h *Handler) GetMyOrders(c *gin.Context) {
	filter, ok := ordersFilter(c)
	if !ok {
		return
	}
	orders, err := h.client.UserOrders(c.Request.Context(), middleware.GetUsername(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns one of the caller's orders with items and feedback
func (h *Handler) GetOrderDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := h.client.UserOrder(c.Request.Context(), middleware.GetUsername(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// TakeOrder lets a rider claim a placed order
func (h *Handler) TakeOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	taken, err := h.client.TakeOrder(c.Request.Context(), middleware.GetUsername(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !taken {
		c.JSON(http.StatusConflict, gin.H{"error": "Order is already taken or does not exist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order taken"})
}

// CompleteOrder lets the assigned rider mark the order delivered
func (h *Handler) CompleteOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	done, err := h.client.CompleteOrder(c.Request.Context(), middleware.GetUsername(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !done {
		c.JSON(http.StatusConflict, gin.H{"error": "Order is not taken by you or is already completed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order completed"})
}

// CancelOrder deletes the caller's order while no rider has claimed it
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cancelled, err := h.client.CancelOrder(c.Request.Context(), middleware.GetUsername(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !cancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "Order cannot be cancelled: not yours, already taken or missing"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}

// AddFeedback rates a completed order of the caller
func (h *Handler) AddFeedback(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.FeedbackInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.OrderID = id
	feedbackID, err := h.client.AddFeedback(c.Request.Context(), middleware.GetUsername(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Feedback submitted", "id": feedbackID})
}
