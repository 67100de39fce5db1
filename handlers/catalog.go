package handlers

import (
	"net/http"
	"strconv"

	"gogo-delivery/middleware"
	"gogo-delivery/models"

	"github.com/gin-gonic/gin"
)

// ListCategories returns every category (public)
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.client.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(categories), "categories": categories})
}

// CreateCategory adds a category with an optional preview image (manager only)
func (h *Handler) CreateCategory(c *gin.Context) {
	var req models.CategoryInput
	preview, err := bindWithPreview(c, &req)
	if err != nil {
		badRequest(c, err)
		return
	}
	if preview != nil {
		defer preview.Close()
	}
	id, err := h.client.AddCategory(c.Request.Context(), middleware.GetUsername(c), req, preview)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "id": id})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.client.UpdateCategory(c.Request.Context(), middleware.GetUsername(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	message(c, updated, "Category updated", "Category not found")
}

// DeleteCategory removes a category and all of its food (manager only)
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.client.DeleteCategory(c.Request.Context(), middleware.GetUsername(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	message(c, deleted, "Category deleted", "Category not found")
}

func foodSorting(c *gin.Context) (models.SortFoodBy, models.SortOrder, bool) {
	by, err := models.ParseSortFoodBy(c.Query("sort_by"))
	if err != nil {
		badRequest(c, err)
		return "", "", false
	}
	order, ok := sortOrder(c)
	return by, order, ok
}

// ListCategoryFood returns the food of one category (public)
func (h *Handler) ListCategoryFood(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	by, order, ok := foodSorting(c)
	if !ok {
		return
	}
	food, err := h.client.FoodInCategory(c.Request.Context(), id, by, order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(food), "food": food})
}

// ListFood returns the catalog, optionally filtered by category, title or stock (public)
func (h *Handler) ListFood(c *gin.Context) {
	by, order, ok := foodSorting(c)
	if !ok {
		return
	}
	filter := models.FoodFilter{
		Search:      c.Query("search"),
		InStockOnly: c.Query("in_stock") == "true",
	}
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 0)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}
		categoryID := uint(id)
		filter.CategoryID = &categoryID
	}
	food, err := h.client.Foods(c.Request.Context(), filter, by, order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(food), "food": food})
}

// CreateFood adds a catalog entry with an optional preview image (manager only)
func (h *Handler) CreateFood(c *gin.Context) {
	var req models.FoodInput
	preview, err := bindWithPreview(c, &req)
	if err != nil {
		badRequest(c, err)
		return
	}
	if preview != nil {
		defer preview.Close()
	}
	id, err := h.client.AddFood(c.Request.Context(), middleware.GetUsername(c), req, preview)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Food created", "id": id})
}

func (h *Handler) UpdateFood(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req models.FoodInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := h.client.UpdateFood(c.Request.Context(), middleware.GetUsername(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	message(c, updated, "Food updated", "Food not found")
}

func (h *Handler) DeleteFood(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	deleted, err := h.client.DeleteFood(c.Request.Context(), middleware.GetUsername(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	message(c, deleted, "Food deleted", "Food not found")
}

// GetPreview streams the stored image of a category or food (public)
func (h *Handler) GetPreview(c *gin.Context) {
	of, ok := models.ParsePreviewOf(c.Param("kind"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Preview kind must be category or food"})
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	data, err := h.client.Preview(c.Request.Context(), of, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preview not found"})
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
