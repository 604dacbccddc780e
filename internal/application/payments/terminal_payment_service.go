package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"github.com/merchantkit/backoffice/internal/domain/identity"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/infrastructure/stripegateway"
	"go.uber.org/zap"
)

// TerminalPaymentService drives the card-present flow: connection
// tokens, reader display updates and the synchronous bounded payment
// collection.
type TerminalPaymentService struct {
	terminalRepo fleet.TerminalRepository
	gateway      stripegateway.Gateway
	pollInterval time.Duration
	pollMax      int
	logger       *zap.Logger
}

// NewTerminalPaymentService creates a new TerminalPaymentService
func NewTerminalPaymentService(
	terminalRepo fleet.TerminalRepository,
	gateway stripegateway.Gateway,
	pollInterval time.Duration,
	pollMax int,
	logger *zap.Logger,
) *TerminalPaymentService {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	if pollMax <= 0 {
		pollMax = 30
	}
	return &TerminalPaymentService{
		terminalRepo: terminalRepo,
		gateway:      gateway,
		pollInterval: pollInterval,
		pollMax:      pollMax,
		logger:       logger,
	}
}

// ConnectionToken issues a terminal SDK connection token, pinned to a
// location when one is given.
func (s *TerminalPaymentService) ConnectionToken(ctx context.Context, merchant *identity.Merchant, locationID *uuid.UUID) (*ConnectionTokenResponse, error) {
	if !merchant.HasStripeAccount() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Merchant has no connected account")
	}

	var stripeLocation string
	if locationID != nil {
		terminalLocation, err := s.resolveTerminalLocation(ctx, merchant.ID, *locationID)
		if err != nil {
			return nil, err
		}
		stripeLocation = terminalLocation
	}

	secret, err := s.gateway.ConnectionToken(ctx, *merchant.StripeAccountID, stripeLocation)
	if err != nil {
		return nil, err
	}
	return &ConnectionTokenResponse{Secret: secret}, nil
}

// SetReaderDisplay pushes an itemized cart onto a terminal's screen
func (s *TerminalPaymentService) SetReaderDisplay(ctx context.Context, merchant *identity.Merchant, terminalID uuid.UUID, input DisplayCartInput) error {
	readerID, err := s.resolveReader(ctx, merchant, terminalID)
	if err != nil {
		return err
	}

	cart := stripegateway.Cart{
		Currency: input.Currency,
		Tax:      input.Tax,
		Total:    input.Total,
	}
	for _, item := range input.LineItems {
		cart.LineItems = append(cart.LineItems, stripegateway.CartLineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Amount:      item.Amount,
		})
	}

	return s.gateway.SetReaderDisplay(ctx, *merchant.StripeAccountID, readerID, cart)
}

// CollectPayment creates a payment intent, hands it to the terminal and
// polls until the payment succeeds or the attempt budget runs out. On
// timeout the reader action and the intent are both canceled and the
// outcome is reported as "timeout" rather than an error.
func (s *TerminalPaymentService) CollectPayment(ctx context.Context, merchant *identity.Merchant, input CollectPaymentInput) (*CollectPaymentResponse, error) {
	readerID, err := s.resolveReader(ctx, merchant, input.TerminalID)
	if err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Amount must be positive")
	}
	accountID := *merchant.StripeAccountID

	paymentIntentID, err := s.gateway.CreatePaymentIntent(ctx, accountID, input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}
	if err := s.gateway.ProcessPaymentIntent(ctx, accountID, readerID, paymentIntentID); err != nil {
		if cancelErr := s.gateway.CancelPaymentIntent(ctx, accountID, paymentIntentID); cancelErr != nil {
			s.logger.Warn("Failed to cancel intent after process failure",
				zap.String("payment_intent_id", paymentIntentID),
				zap.Error(cancelErr))
		}
		return nil, err
	}

	for attempt := 0; attempt < s.pollMax; attempt++ {
		select {
		case <-ctx.Done():
			s.cancelCollection(ctx, accountID, readerID, paymentIntentID)
			return nil, ctx.Err()
		case <-time.After(s.pollInterval):
		}

		status, err := s.gateway.PaymentIntentStatus(ctx, accountID, paymentIntentID)
		if err != nil {
			s.logger.Warn("Payment status poll failed",
				zap.String("payment_intent_id", paymentIntentID),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}
		if status == "succeeded" {
			return &CollectPaymentResponse{
				Status:          PaymentStatusSucceeded,
				PaymentIntentID: paymentIntentID,
			}, nil
		}
	}

	s.logger.Info("Payment collection timed out",
		zap.String("payment_intent_id", paymentIntentID),
		zap.String("reader_id", readerID))
	s.cancelCollection(ctx, accountID, readerID, paymentIntentID)

	return &CollectPaymentResponse{
		Status:          PaymentStatusTimeout,
		PaymentIntentID: paymentIntentID,
	}, nil
}

// cancelCollection unwinds an in-flight collection best-effort: the
// reader action first so the device frees up, then the intent.
func (s *TerminalPaymentService) cancelCollection(ctx context.Context, accountID, readerID, paymentIntentID string) {
	if err := s.gateway.CancelReaderAction(ctx, accountID, readerID); err != nil {
		s.logger.Warn("Failed to cancel reader action",
			zap.String("reader_id", readerID),
			zap.Error(err))
	}
	if err := s.gateway.CancelPaymentIntent(ctx, accountID, paymentIntentID); err != nil {
		s.logger.Warn("Failed to cancel payment intent",
			zap.String("payment_intent_id", paymentIntentID),
			zap.Error(err))
	}
}

// resolveReader maps a terminal id to its registered reader, checking
// merchant ownership on the way.
func (s *TerminalPaymentService) resolveReader(ctx context.Context, merchant *identity.Merchant, terminalID uuid.UUID) (string, error) {
	if !merchant.HasStripeAccount() {
		return "", shared.NewDomainError("INVALID_INPUT", "Merchant has no connected account")
	}
	terminal, err := s.terminalRepo.FindByIDForMerchant(ctx, merchant.ID, terminalID)
	if err != nil {
		return "", err
	}
	if !terminal.HasStripeReader() {
		return "", shared.NewDomainError("INVALID_INPUT", "Terminal has no registered reader")
	}
	return *terminal.StripeReaderID, nil
}

// resolveTerminalLocation maps a local location id to the processor
// location reference via any terminal assigned there.
func (s *TerminalPaymentService) resolveTerminalLocation(ctx context.Context, merchantID, locationID uuid.UUID) (string, error) {
	terminals, err := s.terminalRepo.FindByLocation(ctx, merchantID, locationID)
	if err != nil {
		return "", err
	}
	for i := range terminals {
		if terminals[i].Location != nil && terminals[i].Location.HasStripeLocation() {
			return *terminals[i].Location.StripeLocationID, nil
		}
	}
	return "", nil
}
