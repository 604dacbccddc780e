package payments

import (
	"context"

	"github.com/merchantkit/backoffice/internal/domain/identity"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/infrastructure/stripegateway"
	"go.uber.org/zap"
)

// ConnectService handles the connected-account lifecycle: creating the
// account, producing onboarding links and reporting onboarding state.
type ConnectService struct {
	merchantRepo identity.MerchantRepository
	gateway      stripegateway.Gateway
	logger       *zap.Logger
}

// NewConnectService creates a new ConnectService
func NewConnectService(
	merchantRepo identity.MerchantRepository,
	gateway stripegateway.Gateway,
	logger *zap.Logger,
) *ConnectService {
	return &ConnectService{
		merchantRepo: merchantRepo,
		gateway:      gateway,
		logger:       logger,
	}
}

// CreateAccount creates a connected account for the merchant and
// persists the reference. Idempotent: an already-connected merchant gets
// its existing account back.
func (s *ConnectService) CreateAccount(ctx context.Context, merchant *identity.Merchant) (*AccountStatusResponse, error) {
	if merchant.HasStripeAccount() {
		return s.Status(ctx, merchant)
	}

	accountID, err := s.gateway.CreateAccount(ctx, merchant.UserEmail, merchant.Country)
	if err != nil {
		return nil, err
	}
	if err := merchant.AttachStripeAccount(accountID); err != nil {
		return nil, err
	}
	if err := s.merchantRepo.Save(ctx, merchant); err != nil {
		// The remote account exists but the reference was not persisted;
		// remove it so a retry starts clean.
		if delErr := s.gateway.DeleteAccount(ctx, accountID); delErr != nil {
			s.logger.Warn("Failed to remove account after persist failure",
				zap.String("account_id", accountID),
				zap.Error(delErr))
		}
		return nil, err
	}

	s.logger.Info("Connected account created",
		zap.String("merchant_id", merchant.ID.String()),
		zap.String("account_id", accountID))

	return &AccountStatusResponse{AccountID: accountID}, nil
}

// OnboardingLink returns a fresh hosted-onboarding URL for the
// merchant's connected account.
func (s *ConnectService) OnboardingLink(ctx context.Context, merchant *identity.Merchant) (*OnboardingLinkResponse, error) {
	if !merchant.HasStripeAccount() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Merchant has no connected account")
	}
	url, err := s.gateway.AccountOnboardingLink(ctx, *merchant.StripeAccountID)
	if err != nil {
		return nil, err
	}
	return &OnboardingLinkResponse{URL: url}, nil
}

// Status fetches the live onboarding state from the processor and
// refreshes the local mirror when it drifted.
func (s *ConnectService) Status(ctx context.Context, merchant *identity.Merchant) (*AccountStatusResponse, error) {
	if !merchant.HasStripeAccount() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Merchant has no connected account")
	}
	status, err := s.gateway.AccountStatus(ctx, *merchant.StripeAccountID)
	if err != nil {
		return nil, err
	}

	if merchant.IsOnboarded != status.Onboarded() {
		merchant.SetOnboarded(status.Onboarded())
		if err := s.merchantRepo.Save(ctx, merchant); err != nil {
			s.logger.Warn("Failed to refresh onboarding mirror",
				zap.String("merchant_id", merchant.ID.String()),
				zap.Error(err))
		}
	}

	return &AccountStatusResponse{
		AccountID:        status.AccountID,
		ChargesEnabled:   status.ChargesEnabled,
		DetailsSubmitted: status.DetailsSubmitted,
		PayoutsEnabled:   status.PayoutsEnabled,
		Onboarded:        status.Onboarded(),
	}, nil
}
