package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shynora-backend/internal/models"
	"shynora-backend/internal/store"
)

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		respondError(c, 500, "Error fetching categories", err)
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	respondOK(c, 200, "", categories)
}

func (h *Handler) getCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, 400, "Invalid category ID format", nil)
		return
	}
	cat, err := h.categories.ByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, 404, "Category not found", nil)
			return
		}
		respondError(c, 500, "Error fetching category", err)
		return
	}
	respondOK(c, 200, "", cat)
}

func (h *Handler) createCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body", err)
		return
	}
	if req.Name == "" || req.Image == "" {
		respondError(c, 400, "Category name and image are required", nil)
		return
	}
	cat := &models.Category{Name: req.Name, Description: req.Description, Image: req.Image}
	if err := h.categories.Create(c.Request.Context(), cat); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			respondError(c, 400, "Category with this name already exists", nil)
			return
		}
		respondError(c, 500, "Error creating category", err)
		return
	}
	respondOK(c, 201, "Category created successfully", cat)
}

func (h *Handler) updateCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, 400, "Invalid category ID format", nil)
		return
	}
	existing, err := h.categories.ByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, 404, "Category not found", nil)
			return
		}
		respondError(c, 500, "Error updating category", err)
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Image       string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body", err)
		return
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Image != "" {
		existing.Image = req.Image
	}
	if err := h.categories.Update(c.Request.Context(), existing); err != nil {
		respondError(c, 500, "Error updating category", err)
		return
	}
	respondOK(c, 200, "Category updated successfully", existing)
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, 400, "Invalid category ID format", nil)
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, 404, "Category not found", nil)
			return
		}
		respondError(c, 500, "Error deleting category", err)
		return
	}
	respondOK(c, 200, "Category deleted successfully", nil)
}
