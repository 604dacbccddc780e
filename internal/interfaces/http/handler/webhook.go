package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	paymentsapp "github.com/merchantkit/backoffice/internal/application/payments"
)

// Stripe caps event payloads well below this.
const maxWebhookBody = 1 << 16

// WebhookHandler handles processor webhook deliveries
type WebhookHandler struct {
	BaseHandler
	webhookService *paymentsapp.WebhookService
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService *paymentsapp.WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// HandleStripe verifies and applies a webhook delivery
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.webhookService.HandleEvent(c.Request.Context(), payload, signature); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// RegisterRoutes registers webhook routes
func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	webhooks := rg.Group("/webhooks")
	{
		webhooks.POST("/stripe", h.HandleStripe)
	}
}
