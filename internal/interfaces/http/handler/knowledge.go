package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	knowledgeapp "github.com/merchantkit/backoffice/internal/application/knowledge"
)

// KnowledgeHandler handles knowledge-base endpoints
type KnowledgeHandler struct {
	BaseHandler
	knowledgeService *knowledgeapp.KnowledgeBaseService
	merchants        MerchantResolver
}

// NewKnowledgeHandler creates a new KnowledgeHandler
func NewKnowledgeHandler(knowledgeService *knowledgeapp.KnowledgeBaseService, merchants MerchantResolver) *KnowledgeHandler {
	return &KnowledgeHandler{
		knowledgeService: knowledgeService,
		merchants:        merchants,
	}
}

// AttachmentsRequest represents the candidate attachment id lists. At
// most one list may be populated, matching the entry's scope.
type AttachmentsRequest struct {
	ProductIDs  []uuid.UUID `json:"product_ids"`
	TerminalIDs []uuid.UUID `json:"terminal_ids"`
	LocationIDs []uuid.UUID `json:"location_ids"`
}

func (r AttachmentsRequest) toInput() knowledgeapp.AttachmentRequest {
	return knowledgeapp.AttachmentRequest{
		ProductIDs:  r.ProductIDs,
		TerminalIDs: r.TerminalIDs,
		LocationIDs: r.LocationIDs,
	}
}

// CreateKnowledgeRequest represents a request to create an entry
type CreateKnowledgeRequest struct {
	Title       string             `json:"title" binding:"required,min=1,max=200"`
	Content     string             `json:"content" binding:"required"`
	Scope       string             `json:"scope" binding:"required"`
	Tags        []string           `json:"tags"`
	Attachments AttachmentsRequest `json:"attachments"`
}

// UpdateKnowledgeRequest represents a partial entry update. Scope is
// accepted only when it matches the stored value.
type UpdateKnowledgeRequest struct {
	Title       *string             `json:"title" binding:"omitempty,min=1,max=200"`
	Content     *string             `json:"content"`
	Scope       *string             `json:"scope"`
	Tags        []string            `json:"tags"`
	Active      *bool               `json:"active"`
	Attachments *AttachmentsRequest `json:"attachments"`
}

// Create creates a knowledge-base entry
func (h *KnowledgeHandler) Create(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req CreateKnowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.knowledgeService.Create(c.Request.Context(), merchant.ID, knowledgeapp.CreateKnowledgeBaseInput{
		Title:       req.Title,
		Content:     req.Content,
		Scope:       req.Scope,
		Tags:        req.Tags,
		Attachments: req.Attachments.toInput(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// Get returns one entry
func (h *KnowledgeHandler) Get(c *gin.Context) {
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

	entry, err := h.knowledgeService.Get(c.Request.Context(), merchant.ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// List returns all of the merchant's entries
func (h *KnowledgeHandler) List(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	entries, err := h.knowledgeService.List(c.Request.Context(), merchant.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// Update applies a partial update to an entry
func (h *KnowledgeHandler) Update(c *gin.Context) {
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

	var req UpdateKnowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := knowledgeapp.UpdateKnowledgeBaseInput{
		Title:   req.Title,
		Content: req.Content,
		Scope:   req.Scope,
		Tags:    req.Tags,
		Active:  req.Active,
	}
	if req.Attachments != nil {
		attachments := req.Attachments.toInput()
		input.Attachments = &attachments
	}

	entry, err := h.knowledgeService.Update(c.Request.Context(), merchant.ID, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Delete removes an entry
func (h *KnowledgeHandler) Delete(c *gin.Context) {
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

	if err := h.knowledgeService.Delete(c.Request.Context(), merchant.ID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers knowledge-base routes
func (h *KnowledgeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/knowledge")
	{
		entries.POST("", h.Create)
		entries.GET("", h.List)
		entries.GET(":id", h.Get)
		entries.PUT(":id", h.Update)
		entries.DELETE(":id", h.Delete)
	}
}
