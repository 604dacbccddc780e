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

// TerminalService handles terminal CRUD and the processor reader mirror
type TerminalService struct {
	terminalRepo fleet.TerminalRepository
	locationRepo fleet.LocationRepository
	gateway      stripegateway.Gateway
	logger       *zap.Logger
}

// NewTerminalService creates a new TerminalService
func NewTerminalService(
	terminalRepo fleet.TerminalRepository,
	locationRepo fleet.LocationRepository,
	gateway stripegateway.Gateway,
	logger *zap.Logger,
) *TerminalService {
	return &TerminalService{
		terminalRepo: terminalRepo,
		locationRepo: locationRepo,
		gateway:      gateway,
		logger:       logger,
	}
}

// resolveLocation checks the optional location belongs to the merchant
// and returns its processor mirror id when present.
func (s *TerminalService) resolveLocation(ctx context.Context, merchantID uuid.UUID, locationID *uuid.UUID) (string, error) {
	if locationID == nil {
		return "", nil
	}
	location, err := s.locationRepo.FindByIDForMerchant(ctx, merchantID, *locationID)
	if err != nil {
		if err == shared.ErrNotFound {
			return "", shared.ErrForeignReference
		}
		return "", err
	}
	if location.HasStripeLocation() {
		return *location.StripeLocationID, nil
	}
	return "", nil
}

// Create registers a terminal. With a connected account and a
// registration code, the physical reader is registered with the
// processor first.
func (s *TerminalService) Create(ctx context.Context, merchant *identity.Merchant, input CreateTerminalInput) (*TerminalResponse, error) {
	stripeLocationID, err := s.resolveLocation(ctx, merchant.ID, input.LocationID)
	if err != nil {
		return nil, err
	}

	terminal, err := fleet.NewTerminal(merchant.ID, input.Label, input.LocationID)
	if err != nil {
		return nil, err
	}
	if input.Overrides != nil {
		terminal.Overrides = input.Overrides
	}

	if merchant.HasStripeAccount() && input.RegistrationCode != "" {
		readerID, err := s.gateway.RegisterReader(ctx, *merchant.StripeAccountID, input.RegistrationCode, terminal.Label, stripeLocationID)
		if err != nil {
			return nil, err
		}
		terminal.AttachStripeReader(readerID)
	}

	if err := s.terminalRepo.Save(ctx, terminal); err != nil {
		if terminal.HasStripeReader() {
			if cleanupErr := s.gateway.DeleteReader(ctx, *merchant.StripeAccountID, *terminal.StripeReaderID); cleanupErr != nil {
				s.logger.Warn("Failed to delete reader after insert failure",
					zap.String("stripe_reader_id", *terminal.StripeReaderID),
					zap.Error(cleanupErr))
			}
		}
		return nil, err
	}

	resp := NewTerminalResponse(terminal)
	return &resp, nil
}

// Get fetches one terminal by (merchant, id)
func (s *TerminalService) Get(ctx context.Context, merchantID, id uuid.UUID) (*TerminalResponse, error) {
	terminal, err := s.terminalRepo.FindByIDForMerchant(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	resp := NewTerminalResponse(terminal)
	return &resp, nil
}

// List fetches all terminals for the merchant
func (s *TerminalService) List(ctx context.Context, merchantID uuid.UUID) ([]TerminalResponse, error) {
	terminals, err := s.terminalRepo.FindAllForMerchant(ctx, merchantID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return NewTerminalResponses(terminals), nil
}

// Update applies a partial update to a terminal
func (s *TerminalService) Update(ctx context.Context, merchant *identity.Merchant, id uuid.UUID, input UpdateTerminalInput) (*TerminalResponse, error) {
	terminal, err := s.terminalRepo.FindByIDForMerchant(ctx, merchant.ID, id)
	if err != nil {
		return nil, err
	}

	if input.Label != nil {
		if *input.Label == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Terminal label must not be empty")
		}
		terminal.Label = *input.Label
	}
	if input.ClearLocation {
		terminal.AssignLocation(nil)
	} else if input.LocationID != nil {
		if _, err := s.resolveLocation(ctx, merchant.ID, input.LocationID); err != nil {
			return nil, err
		}
		terminal.AssignLocation(input.LocationID)
	}
	if input.Overrides != nil {
		terminal.Overrides = input.Overrides
	}
	if input.Active != nil {
		terminal.Active = *input.Active
	}

	if err := s.terminalRepo.Save(ctx, terminal); err != nil {
		return nil, err
	}

	// Rehydrate so the location relation reflects the change.
	updated, err := s.terminalRepo.FindByIDForMerchant(ctx, merchant.ID, id)
	if err != nil {
		return nil, err
	}
	resp := NewTerminalResponse(updated)
	return &resp, nil
}

// Delete removes a terminal, deleting the processor reader best-effort
func (s *TerminalService) Delete(ctx context.Context, merchant *identity.Merchant, id uuid.UUID) error {
	terminal, err := s.terminalRepo.FindByIDForMerchant(ctx, merchant.ID, id)
	if err != nil {
		return err
	}

	if merchant.HasStripeAccount() && terminal.HasStripeReader() {
		if err := s.gateway.DeleteReader(ctx, *merchant.StripeAccountID, *terminal.StripeReaderID); err != nil {
			s.logger.Warn("Failed to delete reader mirror",
				zap.String("terminal_id", terminal.ID.String()),
				zap.Error(err))
		}
	}

	return s.terminalRepo.DeleteForMerchant(ctx, merchant.ID, id)
}
