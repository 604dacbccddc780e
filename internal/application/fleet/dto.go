package fleet

import (
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
)

// AddressInput is the request shape of a street address
type AddressInput struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func (a AddressInput) toDomain() fleet.Address {
	return fleet.Address{
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// CreateLocationInput contains input for location creation
type CreateLocationInput struct {
	DisplayName string
	Address     AddressInput
}

// UpdateLocationInput contains partial-update input for a location
type UpdateLocationInput struct {
	DisplayName *string
	Address     *AddressInput
	Active      *bool
}

// LocationResponse is the API shape of a location
type LocationResponse struct {
	ID               uuid.UUID `json:"id"`
	DisplayName      string    `json:"display_name"`
	Address          AddressInput `json:"address"`
	Active           bool      `json:"active"`
	StripeLocationID *string   `json:"stripe_location_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewLocationResponse converts a location entity to its API shape
func NewLocationResponse(l *fleet.Location) LocationResponse {
	return LocationResponse{
		ID:          l.ID,
		DisplayName: l.DisplayName,
		Address: AddressInput{
			Line1:      l.Address.Line1,
			Line2:      l.Address.Line2,
			City:       l.Address.City,
			State:      l.Address.State,
			PostalCode: l.Address.PostalCode,
			Country:    l.Address.Country,
		},
		Active:           l.Active,
		StripeLocationID: l.StripeLocationID,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// NewLocationResponses converts a slice of locations
func NewLocationResponses(locations []fleet.Location) []LocationResponse {
	out := make([]LocationResponse, len(locations))
	for i := range locations {
		out[i] = NewLocationResponse(&locations[i])
	}
	return out
}

// CreateTerminalInput contains input for terminal registration
type CreateTerminalInput struct {
	Label            string
	LocationID       *uuid.UUID
	RegistrationCode string
	Overrides        map[string]string
}

// UpdateTerminalInput contains partial-update input for a terminal
type UpdateTerminalInput struct {
	Label         *string
	LocationID    *uuid.UUID
	ClearLocation bool
	Overrides     map[string]string
	Active        *bool
}

// TerminalResponse is the API shape of a terminal
type TerminalResponse struct {
	ID             uuid.UUID         `json:"id"`
	Label          string            `json:"label"`
	LocationID     *uuid.UUID        `json:"location_id,omitempty"`
	Location       *LocationResponse `json:"location,omitempty"`
	Overrides      map[string]string `json:"overrides"`
	Active         bool              `json:"active"`
	StripeReaderID *string           `json:"stripe_reader_id,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewTerminalResponse converts a terminal entity to its API shape
func NewTerminalResponse(t *fleet.Terminal) TerminalResponse {
	overrides := t.Overrides
	if overrides == nil {
		overrides = map[string]string{}
	}
	resp := TerminalResponse{
		ID:             t.ID,
		Label:          t.Label,
		LocationID:     t.LocationID,
		Overrides:      overrides,
		Active:         t.Active,
		StripeReaderID: t.StripeReaderID,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.Location != nil {
		loc := NewLocationResponse(t.Location)
		resp.Location = &loc
	}
	return resp
}

// NewTerminalResponses converts a slice of terminals
func NewTerminalResponses(terminals []fleet.Terminal) []TerminalResponse {
	out := make([]TerminalResponse, len(terminals))
	for i := range terminals {
		out[i] = NewTerminalResponse(&terminals[i])
	}
	return out
}
