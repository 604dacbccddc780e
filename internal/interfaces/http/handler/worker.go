package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	workerapp "github.com/merchantkit/backoffice/internal/application/worker"
)

// WorkerHandler handles voice-agent profile endpoints
type WorkerHandler struct {
	BaseHandler
	workerService *workerapp.WorkerService
	merchants     MerchantResolver
}

// NewWorkerHandler creates a new WorkerHandler
func NewWorkerHandler(workerService *workerapp.WorkerService, merchants MerchantResolver) *WorkerHandler {
	return &WorkerHandler{
		workerService: workerService,
		merchants:     merchants,
	}
}

// CreateWorkerRequest represents a request to create a worker
type CreateWorkerRequest struct {
	Name         string      `json:"name" binding:"required,min=1,max=200"`
	Language     string      `json:"language" binding:"omitempty,max=10"`
	Greeting     string      `json:"greeting" binding:"max=2000"`
	SystemPrompt string      `json:"system_prompt" binding:"max=10000"`
	VoiceID      string      `json:"voice_id" binding:"max=255"`
	AgentID      *string     `json:"agent_id" binding:"omitempty,max=255"`
	LocationIDs  []uuid.UUID `json:"location_ids"`
}

// UpdateWorkerRequest represents a partial worker update
type UpdateWorkerRequest struct {
	Name         *string     `json:"name" binding:"omitempty,min=1,max=200"`
	Language     *string     `json:"language" binding:"omitempty,max=10"`
	Greeting     *string     `json:"greeting" binding:"omitempty,max=2000"`
	SystemPrompt *string     `json:"system_prompt" binding:"omitempty,max=10000"`
	VoiceID      *string     `json:"voice_id" binding:"omitempty,max=255"`
	AgentID      *string     `json:"agent_id" binding:"omitempty,max=255"`
	ClearAgent   bool        `json:"clear_agent"`
	Active       *bool       `json:"active"`
	LocationIDs  []uuid.UUID `json:"location_ids"`
}

// Create creates a worker
func (h *WorkerHandler) Create(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	worker, err := h.workerService.Create(c.Request.Context(), merchant.ID, workerapp.CreateWorkerInput{
		Name:         req.Name,
		Language:     req.Language,
		Greeting:     req.Greeting,
		SystemPrompt: req.SystemPrompt,
		VoiceID:      req.VoiceID,
		AgentID:      req.AgentID,
		LocationIDs:  req.LocationIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, worker)
}

// Get returns one worker
func (h *WorkerHandler) Get(c *gin.Context) {
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

	worker, err := h.workerService.Get(c.Request.Context(), merchant.ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, worker)
}

// List returns all of the merchant's workers
func (h *WorkerHandler) List(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	workers, err := h.workerService.List(c.Request.Context(), merchant.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, workers)
}

// Update applies a partial update to a worker
func (h *WorkerHandler) Update(c *gin.Context) {
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

	var req UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	worker, err := h.workerService.Update(c.Request.Context(), merchant.ID, id, workerapp.UpdateWorkerInput{
		Name:         req.Name,
		Language:     req.Language,
		Greeting:     req.Greeting,
		SystemPrompt: req.SystemPrompt,
		VoiceID:      req.VoiceID,
		AgentID:      req.AgentID,
		ClearAgent:   req.ClearAgent,
		Active:       req.Active,
		LocationIDs:  req.LocationIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, worker)
}

// Delete removes a worker
func (h *WorkerHandler) Delete(c *gin.Context) {
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

	if err := h.workerService.Delete(c.Request.Context(), merchant.ID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers worker routes
func (h *WorkerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	workers := rg.Group("/workers")
	{
		workers.POST("", h.Create)
		workers.GET("", h.List)
		workers.GET(":id", h.Get)
		workers.PUT(":id", h.Update)
		workers.DELETE(":id", h.Delete)
	}
}
