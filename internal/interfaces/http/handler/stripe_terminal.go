package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	paymentsapp "github.com/merchantkit/backoffice/internal/application/payments"
)

// StripeTerminalHandler handles the card-present payment endpoints
type StripeTerminalHandler struct {
	BaseHandler
	paymentService *paymentsapp.TerminalPaymentService
	merchants      MerchantResolver
}

// NewStripeTerminalHandler creates a new StripeTerminalHandler
func NewStripeTerminalHandler(paymentService *paymentsapp.TerminalPaymentService, merchants MerchantResolver) *StripeTerminalHandler {
	return &StripeTerminalHandler{
		paymentService: paymentService,
		merchants:      merchants,
	}
}

// ConnectionTokenRequest represents a connection token request
type ConnectionTokenRequest struct {
	LocationID *uuid.UUID `json:"location_id"`
}

// DisplayCartRequest represents a reader display update
type DisplayCartRequest struct {
	TerminalID uuid.UUID         `json:"terminal_id" binding:"required"`
	Currency   string            `json:"currency" binding:"omitempty,len=3"`
	Tax        int64             `json:"tax" binding:"min=0"`
	Total      int64             `json:"total" binding:"required,min=0"`
	LineItems  []CartItemRequest `json:"line_items" binding:"required,min=1,dive"`
}

// CartItemRequest is one display line on a reader
type CartItemRequest struct {
	Description string `json:"description" binding:"required,max=200"`
	Quantity    int64  `json:"quantity" binding:"required,min=1"`
	Amount      int64  `json:"amount" binding:"min=0"`
}

// ProcessPaymentRequest starts a card-present collection
type ProcessPaymentRequest struct {
	TerminalID uuid.UUID `json:"terminal_id" binding:"required"`
	Amount     int64     `json:"amount" binding:"required,min=1"`
	Currency   string    `json:"currency" binding:"omitempty,len=3"`
}

// ConnectionToken issues a terminal SDK connection token
func (h *StripeTerminalHandler) ConnectionToken(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req ConnectionTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	token, err := h.paymentService.ConnectionToken(c.Request.Context(), merchant, req.LocationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, token)
}

// Display pushes an itemized cart onto a terminal's screen
func (h *StripeTerminalHandler) Display(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req DisplayCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := paymentsapp.DisplayCartInput{
		Currency: req.Currency,
		Tax:      req.Tax,
		Total:    req.Total,
	}
	for _, item := range req.LineItems {
		input.LineItems = append(input.LineItems, paymentsapp.CartItemInput{
			Description: item.Description,
			Quantity:    item.Quantity,
			Amount:      item.Amount,
		})
	}

	if err := h.paymentService.SetReaderDisplay(c.Request.Context(), merchant, req.TerminalID, input); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Display updated"})
}

// Process runs the synchronous card-present collection. The response
// status is "succeeded" or "timeout"; a timeout is a normal outcome,
// not an error.
func (h *StripeTerminalHandler) Process(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.CollectPayment(c.Request.Context(), merchant, paymentsapp.CollectPaymentInput{
		TerminalID: req.TerminalID,
		Amount:     req.Amount,
		Currency:   req.Currency,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers card-present payment routes
func (h *StripeTerminalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	terminal := rg.Group("/stripe/terminal")
	{
		terminal.POST("/connection-token", h.ConnectionToken)
		terminal.POST("/display", h.Display)
		terminal.POST("/process", h.Process)
	}
}
