package identity

import (
	"context"
	"errors"

	"github.com/merchantkit/backoffice/internal/domain/identity"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/infrastructure/stripegateway"
	"go.uber.org/zap"
)

// MerchantService handles merchant profile lifecycle and tenant
// resolution. Resolution is the single cross-cutting authorization rule
// in the system: a caller owns exactly one merchant, or nothing.
type MerchantService struct {
	merchantRepo identity.MerchantRepository
	gateway      stripegateway.Gateway
	logger       *zap.Logger
}

// NewMerchantService creates a new MerchantService
func NewMerchantService(
	merchantRepo identity.MerchantRepository,
	gateway stripegateway.Gateway,
	logger *zap.Logger,
) *MerchantService {
	return &MerchantService{
		merchantRepo: merchantRepo,
		gateway:      gateway,
		logger:       logger,
	}
}

// Resolve returns the single merchant owned by the principal email.
// Callers must refuse the operation when no merchant exists.
func (s *MerchantService) Resolve(ctx context.Context, email string) (*identity.Merchant, error) {
	merchant, err := s.merchantRepo.FindByUserEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrMerchantNotFound
		}
		return nil, err
	}
	return merchant, nil
}

// Signup creates the merchant profile for the authenticated principal
func (s *MerchantService) Signup(ctx context.Context, email string, input CreateMerchantInput) (*MerchantResponse, error) {
	exists, err := s.merchantRepo.ExistsByUserEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A merchant profile already exists for this account")
	}

	merchant, err := identity.NewMerchant(email, input.BusinessName, input.Country)
	if err != nil {
		return nil, err
	}
	if err := s.merchantRepo.Save(ctx, merchant); err != nil {
		return nil, err
	}

	s.logger.Info("Merchant created",
		zap.String("merchant_id", merchant.ID.String()),
		zap.String("email", email))

	resp := NewMerchantResponse(merchant)
	return &resp, nil
}

// Get returns the caller's merchant profile
func (s *MerchantService) Get(ctx context.Context, email string) (*MerchantResponse, error) {
	merchant, err := s.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	resp := NewMerchantResponse(merchant)
	return &resp, nil
}

// Update applies a partial update to the caller's merchant profile
func (s *MerchantService) Update(ctx context.Context, email string, input UpdateMerchantInput) (*MerchantResponse, error) {
	merchant, err := s.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}

	if input.BusinessName != nil {
		if *input.BusinessName == "" {
			return nil, shared.NewDomainError("INVALID_INPUT", "Business name must not be empty")
		}
		merchant.BusinessName = *input.BusinessName
	}
	if input.Country != nil && *input.Country != "" {
		merchant.Country = *input.Country
	}

	if err := s.merchantRepo.Save(ctx, merchant); err != nil {
		return nil, err
	}
	resp := NewMerchantResponse(merchant)
	return &resp, nil
}

// Offboard tears down the merchant. The connected account is deleted
// best-effort; the local cascade delete always proceeds regardless of
// the external outcome.
func (s *MerchantService) Offboard(ctx context.Context, email string) error {
	merchant, err := s.Resolve(ctx, email)
	if err != nil {
		return err
	}

	if merchant.HasStripeAccount() {
		if err := s.gateway.DeleteAccount(ctx, *merchant.StripeAccountID); err != nil {
			s.logger.Warn("Failed to delete connected account during offboarding",
				zap.String("merchant_id", merchant.ID.String()),
				zap.String("account_id", *merchant.StripeAccountID),
				zap.Error(err))
		}
	}

	if err := s.merchantRepo.DeleteCascade(ctx, merchant.ID); err != nil {
		return err
	}

	s.logger.Info("Merchant offboarded", zap.String("merchant_id", merchant.ID.String()))
	return nil
}
