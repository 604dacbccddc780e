package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/merchantkit/backoffice/internal/application/identity"
)

// MerchantHandler handles merchant profile endpoints
type MerchantHandler struct {
	BaseHandler
	merchantService *identityapp.MerchantService
}

// NewMerchantHandler creates a new MerchantHandler
func NewMerchantHandler(merchantService *identityapp.MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantService}
}

// CreateMerchantRequest represents a merchant signup request
type CreateMerchantRequest struct {
	BusinessName string `json:"business_name" binding:"required,min=1,max=200"`
	Country      string `json:"country" binding:"omitempty,len=2"`
}

// UpdateMerchantRequest represents a merchant profile update
type UpdateMerchantRequest struct {
	BusinessName *string `json:"business_name" binding:"omitempty,min=1,max=200"`
	Country      *string `json:"country" binding:"omitempty,len=2"`
}

// Create creates the merchant profile for the authenticated user
func (h *MerchantHandler) Create(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	merchant, err := h.merchantService.Signup(c.Request.Context(), email, identityapp.CreateMerchantInput{
		BusinessName: req.BusinessName,
		Country:      req.Country,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, merchant)
}

// Get returns the authenticated user's merchant profile
func (h *MerchantHandler) Get(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	merchant, err := h.merchantService.Get(c.Request.Context(), email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, merchant)
}

// Update applies a partial update to the merchant profile
func (h *MerchantHandler) Update(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req UpdateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	merchant, err := h.merchantService.Update(c.Request.Context(), email, identityapp.UpdateMerchantInput{
		BusinessName: req.BusinessName,
		Country:      req.Country,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, merchant)
}

// Delete offboards the merchant: the connected account is removed
// best-effort and every owned row is deleted.
func (h *MerchantHandler) Delete(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.merchantService.Offboard(c.Request.Context(), email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers merchant routes
func (h *MerchantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	merchants := rg.Group("/merchants")
	{
		merchants.POST("", h.Create)
		merchants.GET("/me", h.Get)
		merchants.PUT("/me", h.Update)
		merchants.DELETE("/me", h.Delete)
	}
}
