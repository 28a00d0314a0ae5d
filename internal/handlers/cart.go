package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shynora-backend/internal/store"
)

const invalidProductID = "Invalid product ID format. Product must exist in the database."

// productID validates the server-addressable identifier format before any
// database call; local-only identifiers never reach these handlers.
func productID(c *gin.Context, raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		respondError(c, 400, invalidProductID, nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) getCart(c *gin.Context) {
	items, err := h.carts.ItemsDetailed(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, 500, "Error fetching cart", err)
		return
	}
	respondOK(c, 200, "", gin.H{"cart": items})
}

func (h *Handler) addToCart(c *gin.Context) {
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		respondError(c, 400, "Product ID is required", nil)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		respondError(c, 400, "Quantity must be at least 1", nil)
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
		respondError(c, 500, "Error adding to cart", err)
		return
	}
	if _, err := h.carts.Add(c.Request.Context(), userID(c), pid, req.Quantity); err != nil {
		respondError(c, 500, "Error adding to cart", err)
		return
	}
	items, err := h.carts.ItemsDetailed(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, 500, "Error adding to cart", err)
		return
	}
	respondOK(c, 200, "Product added to cart", gin.H{"cart": items})
}

func (h *Handler) updateCartItem(c *gin.Context) {
	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		respondError(c, 400, "Product ID and quantity are required", nil)
		return
	}
	if *req.Quantity < 1 {
		respondError(c, 400, "Quantity must be at least 1", nil)
		return
	}
	pid, ok := productID(c, c.Param("productId"))
	if !ok {
		return
	}
	if _, err := h.carts.SetQuantity(c.Request.Context(), userID(c), pid, *req.Quantity); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, 404, "Product not found in cart", nil)
			return
		}
		respondError(c, 500, "Error updating cart", err)
		return
	}
	items, err := h.carts.ItemsDetailed(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, 500, "Error updating cart", err)
		return
	}
	respondOK(c, 200, "Cart updated", gin.H{"cart": items})
}

func (h *Handler) removeFromCart(c *gin.Context) {
	pid, ok := productID(c, c.Param("productId"))
	if !ok {
		return
	}
	if _, err := h.carts.Remove(c.Request.Context(), userID(c), pid); err != nil {
		respondError(c, 500, "Error removing from cart", err)
		return
	}
	items, err := h.carts.ItemsDetailed(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, 500, "Error removing from cart", err)
		return
	}
	respondOK(c, 200, "Product removed from cart", gin.H{"cart": items})
}

func (h *Handler) clearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), userID(c)); err != nil {
		respondError(c, 500, "Error clearing cart", err)
		return
	}
	respondOK(c, 200, "Cart cleared", gin.H{"cart": []any{}})
}
