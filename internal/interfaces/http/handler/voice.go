package handler

import (
	"github.com/gin-gonic/gin"
	voiceapp "github.com/merchantkit/backoffice/internal/application/voice"
)

// VoiceHandler handles conversational-voice session endpoints
type VoiceHandler struct {
	BaseHandler
	signedURLService *voiceapp.SignedURLService
	merchants        MerchantResolver
}

// NewVoiceHandler creates a new VoiceHandler
func NewVoiceHandler(signedURLService *voiceapp.SignedURLService, merchants MerchantResolver) *VoiceHandler {
	return &VoiceHandler{
		signedURLService: signedURLService,
		merchants:        merchants,
	}
}

// SignedURLRequest represents a signed session URL request
type SignedURLRequest struct {
	AgentID string `json:"agent_id" binding:"required,max=255"`
}

// SignedURL issues a short-lived vendor session URL for one of the
// merchant's workers.
func (h *VoiceHandler) SignedURL(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req SignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.signedURLService.SignedURL(c.Request.Context(), merchant.ID, req.AgentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RegisterRoutes registers voice routes
func (h *VoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	voice := rg.Group("/voice")
	{
		voice.POST("/signed-url", h.SignedURL)
	}
}
