package handler

import (
	"github.com/gin-gonic/gin"
	fleetapp "github.com/merchantkit/backoffice/internal/application/fleet"
)

// LocationHandler handles business location endpoints
type LocationHandler struct {
	BaseHandler
	locationService *fleetapp.LocationService
	merchants       MerchantResolver
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locationService *fleetapp.LocationService, merchants MerchantResolver) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
		merchants:       merchants,
	}
}

// AddressRequest represents a street address in requests
type AddressRequest struct {
	Line1      string `json:"line1" binding:"required,max=200"`
	Line2      string `json:"line2" binding:"max=200"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"max=100"`
	PostalCode string `json:"postal_code" binding:"max=20"`
	Country    string `json:"country" binding:"omitempty,len=2"`
}

func (r AddressRequest) toInput() fleetapp.AddressInput {
	return fleetapp.AddressInput{
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
	}
}

// CreateLocationRequest represents a request to create a location
type CreateLocationRequest struct {
	DisplayName string         `json:"display_name" binding:"required,min=1,max=200"`
	Address     AddressRequest `json:"address" binding:"required"`
}

// UpdateLocationRequest represents a partial location update
type UpdateLocationRequest struct {
	DisplayName *string         `json:"display_name" binding:"omitempty,min=1,max=200"`
	Address     *AddressRequest `json:"address"`
	Active      *bool           `json:"active"`
}

// Create creates a location
func (h *LocationHandler) Create(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), merchant, fleetapp.CreateLocationInput{
		DisplayName: req.DisplayName,
		Address:     req.Address.toInput(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, location)
}

// Get returns one location
func (h *LocationHandler) Get(c *gin.Context) {
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

	location, err := h.locationService.Get(c.Request.Context(), merchant.ID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// List returns all of the merchant's locations
func (h *LocationHandler) List(c *gin.Context) {
	merchant, err := currentMerchant(c, h.merchants)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	locations, err := h.locationService.List(c.Request.Context(), merchant.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, locations)
}

// Update applies a partial update to a location
func (h *LocationHandler) Update(c *gin.Context) {
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

	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	input := fleetapp.UpdateLocationInput{
		DisplayName: req.DisplayName,
		Active:      req.Active,
	}
	if req.Address != nil {
		addr := req.Address.toInput()
		input.Address = &addr
	}

	location, err := h.locationService.Update(c.Request.Context(), merchant, id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, location)
}

// Delete removes a location
func (h *LocationHandler) Delete(c *gin.Context) {
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

	if err := h.locationService.Delete(c.Request.Context(), merchant, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers location routes
func (h *LocationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	locations := rg.Group("/locations")
	{
		locations.POST("", h.Create)
		locations.GET("", h.List)
		locations.GET(":id", h.Get)
		locations.PUT(":id", h.Update)
		locations.DELETE(":id", h.Delete)
	}
}
