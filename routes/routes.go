package routes

import (
	"gogo-delivery/handlers"
	"gogo-delivery/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every endpoint. Role checks happen in the client, so
// authenticated groups only require a valid token.
func SetupRoutes(r *gin.Engine, h *handlers.Handler, secret []byte) {
	r.GET("/health", h.Health)

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		// Catalog (no auth needed)
		public.GET("/categories", h.ListCategories)
		public.GET("/categories/:id/food", h.ListCategoryFood)
		public.GET("/food", h.ListFood)
		public.GET("/previews/:kind/:id", h.GetPreview)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(secret))
	{
		auth.GET("/profile", h.GetProfile)

		auth.GET("/addresses", h.ListAddresses)
		auth.POST("/addresses", h.AddAddress)
		auth.PUT("/addresses/:id", h.UpdateAddress)
		auth.DELETE("/addresses/:id", h.DeleteAddress)

		auth.GET("/favorites", h.ListFavorites)
		auth.GET("/favorites/:foodId", h.IsFavorite)
		auth.POST("/favorites/:foodId", h.AddFavorite)
		auth.PUT("/favorites/:foodId/toggle", h.ToggleFavorite)
		auth.DELETE("/favorites/:foodId", h.DeleteFavorite)

		auth.GET("/cart", h.GetCart)
		auth.GET("/cart/:foodId", h.IsInCart)
		auth.POST("/cart", h.AddCartItem)
		auth.PUT("/cart/:foodId", h.UpdateCartItem)
		auth.DELETE("/cart/:foodId", h.DeleteCartItem)

		auth.POST("/orders", h.PlaceOrder)
		auth.GET("/orders/mine", h.GetMyOrders)
		auth.GET("/orders/mine/:id", h.GetOrderDetail)
		auth.PUT("/orders/:id/cancel", h.CancelOrder)
		auth.POST("/orders/:id/feedback", h.AddFeedback)

		auth.GET("/notifications", h.MyNotifications)
	}

	// ── Rider and manager routes ───────────────────────────────────
	staff := r.Group("/api")
	staff.Use(middleware.AuthRequired(secret))
	{
		staff.GET("/orders", h.ListOrders)
		staff.PUT("/orders/:id/take", h.TakeOrder)
		staff.PUT("/orders/:id/complete", h.CompleteOrder)
		staff.POST("/notifications", h.SendNotification)
	}

	// ── Manager routes ─────────────────────────────────────────────
	manager := r.Group("/api/manager")
	manager.Use(middleware.AuthRequired(secret))
	{
		manager.GET("/users", h.ListUsers)
		manager.GET("/users/:id", h.GetUser)
		manager.PUT("/users/role", h.SetUserRole)

		manager.POST("/categories", h.CreateCategory)
		manager.PUT("/categories/:id", h.UpdateCategory)
		manager.DELETE("/categories/:id", h.DeleteCategory)

		manager.POST("/food", h.CreateFood)
		manager.PUT("/food/:id", h.UpdateFood)
		manager.DELETE("/food/:id", h.DeleteFood)

		manager.POST("/notifications/broadcast", h.BroadcastNotification)
	}
}
