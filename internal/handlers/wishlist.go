package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"shynora-backend/internal/store"
)

func (h *Handler) getWishlist(c *gin.Context) {
	products, err := h.wishlists.ProductsDetailed(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, 500, "Error fetching wishlist", err)
		return
	}
	respondOK(c, 200, "", gin.H{"wishlist": products})
}

func (h *Handler) addToWishlist(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		respondError(c, 400, "Product ID is required", nil)
		return
	}
	pid, ok := productID(c, req.ProductID)
	if !ok {
		return
	}
	if _, err := h.products.ByID(c.Request.Context(), pid); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, 404, "Product not found", nil)
			return
		}
		respondError(c, 500, "Error adding to wishlist", err)
		return
	}
	if _, err := h.wishlists.Add(c.Request.Context(), userID(c), pid); err != nil {
		respondError(c, 500, "Error adding to wishlist", err)
		return
	}
	products, err := h.wishlists.ProductsDetailed(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, 500, "Error adding to wishlist", err)
		return
	}
	respondOK(c, 200, "Product added to wishlist", gin.H{"wishlist": products})
}

func (h *Handler) removeFromWishlist(c *gin.Context) {
	pid, ok := productID(c, c.Param("productId"))
	if !ok {
		return
	}
	if _, err := h.wishlists.Remove(c.Request.Context(), userID(c), pid); err != nil {
		respondError(c, 500, "Error removing from wishlist", err)
		return
	}
	products, err := h.wishlists.ProductsDetailed(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, 500, "Error removing from wishlist", err)
		return
	}
	respondOK(c, 200, "Product removed from wishlist", gin.H{"wishlist": products})
}
