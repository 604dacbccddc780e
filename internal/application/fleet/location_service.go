package fleet

import (
	"context"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"github.com/merchantkit/backoffice/internal/domain/identity"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/infrastructure/stripegateway"
	"go.uber.org/zap"
)

// LocationService handles location CRUD and the processor terminal
// location mirror.
type LocationService struct {
	locationRepo fleet.LocationRepository
	terminalRepo fleet.TerminalRepository
	gateway      stripegateway.Gateway
	logger       *zap.Logger
}

// NewLocationService creates a new LocationService
func NewLocationService(
	locationRepo fleet.LocationRepository,
	terminalRepo fleet.TerminalRepository,
	gateway stripegateway.Gateway,
	logger *zap.Logger,
) *LocationService {
	return &LocationService{
		locationRepo: locationRepo,
		terminalRepo: terminalRepo,
		gateway:      gateway,
		logger:       logger,
	}
}

// Create creates a location and mirrors it as a processor terminal
// location when the merchant has a connected account.
func (s *LocationService) Create(ctx context.Context, merchant *identity.Merchant, input CreateLocationInput) (*LocationResponse, error) {
	location, err := fleet.NewLocation(merchant.ID, input.DisplayName, input.Address.toDomain())
	if err != nil {
		return nil, err
	}

	if merchant.HasStripeAccount() {
		stripeLocationID, err := s.gateway.CreateTerminalLocation(ctx, *merchant.StripeAccountID, location.DisplayName, location.Address)
		if err != nil {
			return nil, err
		}
		location.AttachStripeLocation(stripeLocationID)
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		if location.HasStripeLocation() {
			if cleanupErr := s.gateway.DeleteTerminalLocation(ctx, *merchant.StripeAccountID, *location.StripeLocationID); cleanupErr != nil {
				s.logger.Warn("Failed to delete mirror after insert failure",
					zap.String("stripe_location_id", *location.StripeLocationID),
					zap.Error(cleanupErr))
			}
		}
		return nil, err
	}

	resp := NewLocationResponse(location)
	return &resp, nil
}

// Get fetches one location by (merchant, id)
func (s *LocationService) Get(ctx context.Context, merchantID, id uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByIDForMerchant(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	resp := NewLocationResponse(location)
	return &resp, nil
}

// List fetches all locations for the merchant
func (s *LocationService) List(ctx context.Context, merchantID uuid.UUID) ([]LocationResponse, error) {
	locations, err := s.locationRepo.FindAllForMerchant(ctx, merchantID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return NewLocationResponses(locations), nil
}

// Update applies a partial update to a location
func (s *LocationService) Update(ctx context.Context, merchant *identity.Merchant, id uuid.UUID, input UpdateLocationInput) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByIDForMerchant(ctx, merchant.ID, id)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		if *input.DisplayName == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Display name must not be empty")
		}
		location.DisplayName = *input.DisplayName
	}
	if input.Address != nil {
		location.Address = input.Address.toDomain()
	}
	if input.Active != nil {
		location.Active = *input.Active
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}
	resp := NewLocationResponse(location)
	return &resp, nil
}

// Delete removes a location. Terminals assigned to it are detached
// first, and the processor mirror is deleted best-effort.
func (s *LocationService) Delete(ctx context.Context, merchant *identity.Merchant, id uuid.UUID) error {
	location, err := s.locationRepo.FindByIDForMerchant(ctx, merchant.ID, id)
	if err != nil {
		return err
	}

	terminals, err := s.terminalRepo.FindByLocation(ctx, merchant.ID, id)
	if err != nil {
		return err
	}
	for i := range terminals {
		terminals[i].AssignLocation(nil)
		if err := s.terminalRepo.Save(ctx, &terminals[i]); err != nil {
			return err
		}
	}

	if merchant.HasStripeAccount() && location.HasStripeLocation() {
		if err := s.gateway.DeleteTerminalLocation(ctx, *merchant.StripeAccountID, *location.StripeLocationID); err != nil {
			s.logger.Warn("Failed to delete terminal location mirror",
				zap.String("location_id", location.ID.String()),
				zap.Error(err))
		}
	}

	return s.locationRepo.DeleteForMerchant(ctx, merchant.ID, id)
}
