package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/querygen/backend/internal/domain"
	"github.com/querygen/backend/internal/infrastructure/shopify"
)

// QueryGenerator is the slice of the usecase layer the handlers need.
type QueryGenerator interface {
	GenerateBatch(ctx context.Context, products []domain.Product) []domain.ProductQueries
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	generator QueryGenerator
}

// NewHandler creates a new HTTP handler
func NewHandler(generator QueryGenerator) *Handler {
	return &Handler{generator: generator}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "querygen-backend",
		"version": "1.0.0",
	})
}

// GenerateQueries accepts a list of normalized products and returns
// generated queries for each product, in input order.
func (h *Handler) GenerateQueries(c *gin.Context) {
	if h.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "query generator not configured"})
		return
	}

	var req domain.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	for i := range req.Products {
		if err := req.Products[i].Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("product at index %d is missing id or title", i),
			})
			return
		}
	}

	results := h.generator.GenerateBatch(c.Request.Context(), req.Products)
	c.JSON(http.StatusOK, domain.BatchResponse{Results: results})
}

// GenerateShopifyQueries accepts Shopify-like product objects, adapts
// them into the internal record, and returns generated queries.
func (h *Handler) GenerateShopifyQueries(c *gin.Context) {
	if h.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "query generator not configured"})
		return
	}

	var req domain.ShopifyBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	products := shopify.MapProducts(req.Products)
	results := h.generator.GenerateBatch(c.Request.Context(), products)
	c.JSON(http.StatusOK, domain.BatchResponse{Results: results})
}
