package handler

import (
	"github.com/gin-gonic/gin"
	paymentsapp "github.com/merchantkit/backoffice/internal/application/payments"
)

// StripeConnectHandler handles connected-account lifecycle endpoints
type StripeConnectHandler struct {
	BaseHandler
	connectService *paymentsapp.ConnectService
	merchants      MerchantResolver
}

// NewStripeConnectHandler creates a new StripeConnectHandler
func NewStripeConnectHandler(connectService *paymentsapp.ConnectService, merchants MerchantResolver) *StripeConnectHandler {
	return &StripeConnectHandler{
		connectService: connectService,
		merchants:      merchants,
	}
}

// CreateAccount creates a connected account for the merchant
func (h *StripeConnectHandler) CreateAccount(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	status, err := h.connectService.CreateAccount(c.Request.Context(), merchant)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, status)
}

// OnboardingLink returns a fresh hosted-onboarding URL
func (h *StripeConnectHandler) OnboardingLink(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	link, err := h.connectService.OnboardingLink(c.Request.Context(), merchant)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}

// Status returns the connected account's live onboarding state
func (h *StripeConnectHandler) Status(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	status, err := h.connectService.Status(c.Request.Context(), merchant)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, status)
}

// RegisterRoutes registers connected-account routes
func (h *StripeConnectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	connect := rg.Group("/stripe/connect")
	{
		connect.POST("/account", h.CreateAccount)
		connect.POST("/onboarding-link", h.OnboardingLink)
		connect.GET("/status", h.Status)
	}
}
