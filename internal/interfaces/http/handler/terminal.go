package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	fleetapp "github.com/merchantkit/backoffice/internal/application/fleet"
)

// TerminalHandler handles terminal device endpoints
type TerminalHandler struct {
	BaseHandler
	terminalService *fleetapp.TerminalService
	merchants       MerchantResolver
}

// NewTerminalHandler creates a new TerminalHandler
func NewTerminalHandler(terminalService *fleetapp.TerminalService, merchants MerchantResolver) *TerminalHandler {
	return &TerminalHandler{
		terminalService: terminalService,
		merchants:       merchants,
	}
}

// CreateTerminalRequest represents a request to register a terminal
type CreateTerminalRequest struct {
	Label            string            `json:"label" binding:"required,min=1,max=200"`
	LocationID       *uuid.UUID        `json:"location_id"`
	RegistrationCode string            `json:"registration_code" binding:"max=100"`
	Overrides        map[string]string `json:"overrides"`
}

// UpdateTerminalRequest represents a partial terminal update
type UpdateTerminalRequest struct {
	Label         *string           `json:"label" binding:"omitempty,min=1,max=200"`
	LocationID    *uuid.UUID        `json:"location_id"`
	ClearLocation bool              `json:"clear_location"`
	Overrides     map[string]string `json:"overrides"`
	Active        *bool             `json:"active"`
}

// Create registers a terminal
func (h *TerminalHandler) Create(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req CreateTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	terminal, err := h.terminalService.Create(c.Request.Context(), merchant, fleetapp.CreateTerminalInput{
		Label:            req.Label,
		LocationID:       req.LocationID,
		RegistrationCode: req.RegistrationCode,
		Overrides:        req.Overrides,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, terminal)
}

// Get returns one terminal
func (h *TerminalHandler) Get(c *gin.Context) {
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

	terminal, err := h.terminalService.Get(c.Request.Context(), merchant.ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, terminal)
}

// List returns all of the merchant's terminals
func (h *TerminalHandler) List(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	terminals, err := h.terminalService.List(c.Request.Context(), merchant.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, terminals)
}

// Update applies a partial update to a terminal
func (h *TerminalHandler) Update(c *gin.Context) {
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

	var req UpdateTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	terminal, err := h.terminalService.Update(c.Request.Context(), merchant, id, fleetapp.UpdateTerminalInput{
		Label:         req.Label,
		LocationID:    req.LocationID,
		ClearLocation: req.ClearLocation,
		Overrides:     req.Overrides,
		Active:        req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, terminal)
}

// Delete removes a terminal
func (h *TerminalHandler) Delete(c *gin.Context) {
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

	if err := h.terminalService.Delete(c.Request.Context(), merchant, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers terminal routes
func (h *TerminalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	terminals := rg.Group("/terminals")
	{
		terminals.POST("", h.Create)
		terminals.GET("", h.List)
		terminals.GET(":id", h.Get)
		terminals.PUT(":id", h.Update)
		terminals.DELETE(":id", h.Delete)
	}
}
