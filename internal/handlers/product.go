package handlers

import (
	"errors"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shynora-backend/internal/models"
	"shynora-backend/internal/store"
)

func (h *Handler) listProducts(c *gin.Context) {
	f := store.ListFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.DefaultQuery("sort", "-createdAt"),
	}
	if v := c.Query("featured"); v != "" {
		b := v == "true"
		f.Featured = &b
	}
	if v := c.Query("inStock"); v != "" {
		b := v == "true"
		f.InStock = &b
	}
	if v := c.Query("minPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	f.Page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	f.Limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	products, total, err := h.products.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, 500, "Error fetching products", err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	limit := f.Limit
	if limit < 1 {
		limit = 20
	}
	c.JSON(200, gin.H{
		"success": true,
		"count":   len(products),
		"total":   total,
		"page":    f.Page,
		"pages":   int64(math.Ceil(float64(total) / float64(limit))),
		"data":    products,
	})
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, 400, "Invalid product ID format", nil)
		return
	}
	p, err := h.products.ByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, 404, "Product not found", nil)
			return
		}
		respondError(c, 500, "Error fetching product", err)
		return
	}
	respondOK(c, 200, "", p)
}

// productRequest uses pointers for fields whose zero value is meaningful,
// so a partial update can tell "omitted" apart from "set to zero/false".
type productRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Images        []string `json:"images"`
	Category      string   `json:"category"`
	Stock         *int     `json:"stock"`
	InStock       *bool    `json:"inStock"`
	Tags          []string `json:"tags"`
	Featured      *bool    `json:"featured"`
}

// applyProductUpdate merges the submitted fields onto the stored product.
// Fields absent from the request are left untouched; category is resolved
// separately by the handler.
func applyProductUpdate(existing *models.Product, req productRequest) {
	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Description != "" {
		existing.Description = req.Description
	}
	if req.Price > 0 {
		existing.Price = req.Price
	}
	if req.OriginalPrice > 0 {
		existing.OriginalPrice = req.OriginalPrice
	}
	if req.Images != nil {
		existing.Images = req.Images
	}
	if req.Stock != nil {
		existing.Stock = *req.Stock
	}
	if req.InStock != nil {
		existing.InStock = *req.InStock
	}
	if req.Tags != nil {
		existing.Tags = req.Tags
	}
	if req.Featured != nil {
		existing.Featured = *req.Featured
	}
}

// resolveCategory validates and checks existence of an optional category id.
func (h *Handler) resolveCategory(c *gin.Context, raw string) (primitive.ObjectID, bool) {
	if raw == "" {
		return primitive.NilObjectID, true
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		respondError(c, 400, "Invalid category ID format", nil)
		return primitive.NilObjectID, false
	}
	exists, err := h.products.CategoryExists(c.Request.Context(), id)
	if err != nil {
		respondError(c, 500, "Error validating category", err)
		return primitive.NilObjectID, false
	}
	if !exists {
		respondError(c, 404, "Category not found", nil)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *Handler) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body", err)
		return
	}
	if req.Name == "" || req.Price <= 0 {
		respondError(c, 400, "Product name and price are required", nil)
		return
	}
	catID, ok := h.resolveCategory(c, req.Category)
	if !ok {
		return
	}
	inStock := true
	if req.InStock != nil {
		inStock = *req.InStock
	}
	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	featured := false
	if req.Featured != nil {
		featured = *req.Featured
	}
	p := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Images:        req.Images,
		Category:      catID,
		Stock:         stock,
		InStock:       inStock,
		Tags:          req.Tags,
		Featured:      featured,
	}
	if err := h.products.Create(c.Request.Context(), p); err != nil {
		respondError(c, 500, "Error creating product", err)
		return
	}
	respondOK(c, 201, "Product created successfully", p)
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, 400, "Invalid product ID format", nil)
		return
	}
	existing, err := h.products.ByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, 404, "Product not found", nil)
			return
		}
		respondError(c, 500, "Error updating product", err)
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, 400, "Invalid request body", err)
		return
	}
	if req.Category != "" {
		catID, ok := h.resolveCategory(c, req.Category)
		if !ok {
			return
		}
		existing.Category = catID
	}
	applyProductUpdate(existing, req)

	if err := h.products.Update(c.Request.Context(), existing); err != nil {
		respondError(c, 500, "Error updating product", err)
		return
	}
	respondOK(c, 200, "Product updated successfully", existing)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, 400, "Invalid product ID format", nil)
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, 404, "Product not found", nil)
			return
		}
		respondError(c, 500, "Error deleting product", err)
		return
	}
	respondOK(c, 200, "Product deleted successfully", nil)
}
