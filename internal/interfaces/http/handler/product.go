package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/merchantkit/backoffice/internal/application/catalog"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
	merchants      MerchantResolver
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, merchants MerchantResolver) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		merchants:      merchants,
	}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	Description string   `json:"description" binding:"max=2000"`
	PriceAmount int64    `json:"price_amount" binding:"required,min=0"`
	Currency    string   `json:"currency" binding:"omitempty,len=3"`
	Tags        []string `json:"tags"`
	InStock     *bool    `json:"in_stock"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name               *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description        *string    `json:"description" binding:"omitempty,max=2000"`
	PriceAmount        *int64     `json:"price_amount" binding:"omitempty,min=0"`
	Currency           *string    `json:"currency" binding:"omitempty,len=3"`
	Tags               []string   `json:"tags"`
	InStock            *bool      `json:"in_stock"`
	Active             *bool      `json:"active"`
	KnowledgeBaseID    *uuid.UUID `json:"knowledge_base_id"`
	ClearKnowledgeBase bool       `json:"clear_knowledge_base"`
}

// Create creates a product
func (h *ProductHandler) Create(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), merchant, catalogapp.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		PriceAmount: req.PriceAmount,
		Currency:    req.Currency,
		Tags:        req.Tags,
		InStock:     req.InStock,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Get returns one product
func (h *ProductHandler) Get(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	product, err := h.productService.Get(c.Request.Context(), merchant.ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List returns all of the merchant's products
func (h *ProductHandler) List(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	products, err := h.productService.List(c.Request.Context(), merchant.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Search finds products by name substring
func (h *ProductHandler) Search(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	products, err := h.productService.Search(c.Request.Context(), merchant.ID, c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Update applies a partial update to a product
func (h *ProductHandler) Update(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), merchant, id, catalogapp.UpdateProductInput{
		Name:               req.Name,
		Description:        req.Description,
		PriceAmount:        req.PriceAmount,
		Currency:           req.Currency,
		Tags:               req.Tags,
		InStock:            req.InStock,
		Active:             req.Active,
		KnowledgeBaseID:    req.KnowledgeBaseID,
		ClearKnowledgeBase: req.ClearKnowledgeBase,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.productService.Delete(c.Request.Context(), merchant, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/search", h.Search)
		products.GET(":id", h.Get)
		products.PUT(":id", h.Update)
		products.DELETE(":id", h.Delete)
	}
}
