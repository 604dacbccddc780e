package payments

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/merchantkit/backoffice/internal/domain/identity"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
)

// WebhookService verifies and applies processor webhook events. Only
// account.updated carries state we mirror; everything else is
// acknowledged and dropped so the processor stops retrying.
type WebhookService struct {
	merchantRepo  identity.MerchantRepository
	webhookSecret string
	logger        *zap.Logger
}

// NewWebhookService creates a new WebhookService
func NewWebhookService(
	merchantRepo identity.MerchantRepository,
	webhookSecret string,
	logger *zap.Logger,
) *WebhookService {
	return &WebhookService{
		merchantRepo:  merchantRepo,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleEvent verifies the payload signature and dispatches the event
func (s *WebhookService) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return shared.NewDomainError("UNAUTHORIZED", "Invalid webhook signature")
	}

	switch event.Type {
	case "account.updated":
		return s.handleAccountUpdated(ctx, event)
	default:
		s.logger.Debug("Ignoring webhook event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
		return nil
	}
}

// handleAccountUpdated refreshes the local onboarding mirror of the
// connected account named in the event.
func (s *WebhookService) handleAccountUpdated(ctx context.Context, event stripe.Event) error {
	var account stripe.Account
	if err := json.Unmarshal(event.Data.Raw, &account); err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Malformed account payload")
	}

	merchant, err := s.merchantRepo.FindByStripeAccountID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Events can race offboarding; ack so the processor stops
			// retrying.
			s.logger.Warn("Webhook for unknown account",
				zap.String("account_id", account.ID))
			return nil
		}
		return err
	}

	onboarded := account.ChargesEnabled && account.DetailsSubmitted
	if merchant.IsOnboarded == onboarded {
		return nil
	}
	merchant.SetOnboarded(onboarded)
	if err := s.merchantRepo.Save(ctx, merchant); err != nil {
		return err
	}

	s.logger.Info("Onboarding state updated",
		zap.String("merchant_id", merchant.ID.String()),
		zap.Bool("onboarded", onboarded))
	return nil
}
