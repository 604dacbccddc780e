package stripegateway

import (
	"context"
	"fmt"

	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"github.com/merchantkit/backoffice/internal/infrastructure/config"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/account"
	"github.com/stripe/stripe-go/v81/accountlink"
	"github.com/stripe/stripe-go/v81/terminal/connectiontoken"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/price"
	"github.com/stripe/stripe-go/v81/product"
	terminallocation "github.com/stripe/stripe-go/v81/terminal/location"
	terminalreader "github.com/stripe/stripe-go/v81/terminal/reader"
	"go.uber.org/zap"
)

// StripeAdapter implements Gateway against the Stripe Connect and
// Terminal APIs.
type StripeAdapter struct {
	config *config.StripeConfig
	logger *zap.Logger
}

// NewStripeAdapter creates a new Stripe adapter and initializes the
// global API key.
func NewStripeAdapter(cfg *config.StripeConfig, logger *zap.Logger) (*StripeAdapter, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("stripe: secret key is required")
	}
	stripe.Key = cfg.SecretKey
	return &StripeAdapter{config: cfg, logger: logger}, nil
}

// connected returns params addressed to a connected account
func connected(accountID string) stripe.Params {
	p := stripe.Params{}
	if accountID != "" {
		p.SetStripeAccount(accountID)
	}
	return p
}

// CreateAccount creates an Express connected account
func (a *StripeAdapter) CreateAccount(ctx context.Context, email, country string) (string, error) {
	params := &stripe.AccountParams{
		Type:    stripe.String(string(stripe.AccountTypeExpress)),
		Email:   stripe.String(email),
		Country: stripe.String(country),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
			Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
		},
	}
	params.Context = ctx

	acct, err := account.New(params)
	if err != nil {
		a.logger.Error("Failed to create connected account", zap.String("email", email), zap.Error(err))
		return "", fmt.Errorf("stripe: failed to create account: %w", err)
	}

	a.logger.Info("Created connected account", zap.String("account_id", acct.ID))
	return acct.ID, nil
}

// DeleteAccount deletes a connected account
func (a *StripeAdapter) DeleteAccount(ctx context.Context, accountID string) error {
	params := &stripe.AccountParams{}
	params.Context = ctx
	if _, err := account.Del(accountID, params); err != nil {
		return fmt.Errorf("stripe: failed to delete account %s: %w", accountID, err)
	}
	return nil
}

// AccountOnboardingLink creates a hosted onboarding link
func (a *StripeAdapter) AccountOnboardingLink(ctx context.Context, accountID string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(a.config.OnboardingRefreshURL),
		ReturnURL:  stripe.String(a.config.OnboardingReturnURL),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx

	link, err := accountlink.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: failed to create onboarding link: %w", err)
	}
	return link.URL, nil
}

// AccountStatus fetches the onboarding-relevant flags of an account
func (a *StripeAdapter) AccountStatus(ctx context.Context, accountID string) (*AccountStatus, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx

	acct, err := account.GetByID(accountID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to fetch account %s: %w", accountID, err)
	}
	return &AccountStatus{
		AccountID:        acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
		PayoutsEnabled:   acct.PayoutsEnabled,
	}, nil
}

// CreateProduct mirrors a catalog product as a processor product/price
func (a *StripeAdapter) CreateProduct(ctx context.Context, accountID string, in ProductInput) (*ProductRefs, error) {
	productParams := &stripe.ProductParams{
		Params:      connected(accountID),
		Name:        stripe.String(in.Name),
		Description: stripe.String(in.Description),
		Active:      stripe.Bool(in.Active),
	}
	productParams.Context = ctx

	prod, err := product.New(productParams)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create product: %w", err)
	}

	priceParams := &stripe.PriceParams{
		Params:     connected(accountID),
		Product:    stripe.String(prod.ID),
		UnitAmount: stripe.Int64(in.Amount),
		Currency:   stripe.String(in.Currency),
	}
	priceParams.Context = ctx

	pr, err := price.New(priceParams)
	if err != nil {
		// Best-effort rollback of the half-created mirror.
		archiveParams := &stripe.ProductParams{Params: connected(accountID), Active: stripe.Bool(false)}
		if _, archiveErr := product.Update(prod.ID, archiveParams); archiveErr != nil {
			a.logger.Warn("Failed to archive orphaned product",
				zap.String("product_id", prod.ID), zap.Error(archiveErr))
		}
		return nil, fmt.Errorf("stripe: failed to create price: %w", err)
	}

	return &ProductRefs{ProductID: prod.ID, PriceID: pr.ID}, nil
}

// UpdateProduct updates the mirrored product; a changed amount or
// currency creates a replacement price (processor prices are immutable).
func (a *StripeAdapter) UpdateProduct(ctx context.Context, accountID string, refs ProductRefs, in ProductInput) (*ProductRefs, error) {
	productParams := &stripe.ProductParams{
		Params:      connected(accountID),
		Name:        stripe.String(in.Name),
		Description: stripe.String(in.Description),
		Active:      stripe.Bool(in.Active),
	}
	productParams.Context = ctx

	if _, err := product.Update(refs.ProductID, productParams); err != nil {
		return nil, fmt.Errorf("stripe: failed to update product %s: %w", refs.ProductID, err)
	}

	priceParams := &stripe.PriceParams{
		Params:     connected(accountID),
		Product:    stripe.String(refs.ProductID),
		UnitAmount: stripe.Int64(in.Amount),
		Currency:   stripe.String(in.Currency),
	}
	priceParams.Context = ctx

	pr, err := price.New(priceParams)
	if err != nil {
		return nil, fmt.Errorf("stripe: failed to create replacement price: %w", err)
	}

	if refs.PriceID != "" && refs.PriceID != pr.ID {
		deactivate := &stripe.PriceParams{Params: connected(accountID), Active: stripe.Bool(false)}
		if _, err := price.Update(refs.PriceID, deactivate); err != nil {
			a.logger.Warn("Failed to deactivate replaced price",
				zap.String("price_id", refs.PriceID), zap.Error(err))
		}
	}

	return &ProductRefs{ProductID: refs.ProductID, PriceID: pr.ID}, nil
}

// ArchiveProduct archives the mirrored product
func (a *StripeAdapter) ArchiveProduct(ctx context.Context, accountID, productID string) error {
	params := &stripe.ProductParams{
		Params: connected(accountID),
		Active: stripe.Bool(false),
	}
	params.Context = ctx
	if _, err := product.Update(productID, params); err != nil {
		return fmt.Errorf("stripe: failed to archive product %s: %w", productID, err)
	}
	return nil
}

// CreateTerminalLocation mirrors a location as a terminal location
func (a *StripeAdapter) CreateTerminalLocation(ctx context.Context, accountID, displayName string, address fleet.Address) (string, error) {
	params := &stripe.TerminalLocationParams{
		Params:      connected(accountID),
		DisplayName: stripe.String(displayName),
		Address: &stripe.AddressParams{
			Line1:      stripe.String(address.Line1),
			Line2:      stripe.String(address.Line2),
			City:       stripe.String(address.City),
			State:      stripe.String(address.State),
			PostalCode: stripe.String(address.PostalCode),
			Country:    stripe.String(address.Country),
		},
	}
	params.Context = ctx

	loc, err := terminallocation.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: failed to create terminal location: %w", err)
	}
	return loc.ID, nil
}

// DeleteTerminalLocation deletes a mirrored terminal location
func (a *StripeAdapter) DeleteTerminalLocation(ctx context.Context, accountID, locationID string) error {
	params := &stripe.TerminalLocationParams{Params: connected(accountID)}
	params.Context = ctx
	if _, err := terminallocation.Del(locationID, params); err != nil {
		return fmt.Errorf("stripe: failed to delete terminal location %s: %w", locationID, err)
	}
	return nil
}

// RegisterReader registers a physical reader by its registration code
func (a *StripeAdapter) RegisterReader(ctx context.Context, accountID, registrationCode, label, locationID string) (string, error) {
	params := &stripe.TerminalReaderParams{
		Params:           connected(accountID),
		RegistrationCode: stripe.String(registrationCode),
		Label:            stripe.String(label),
	}
	if locationID != "" {
		params.Location = stripe.String(locationID)
	}
	params.Context = ctx

	reader, err := terminalreader.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: failed to register reader: %w", err)
	}
	return reader.ID, nil
}

// DeleteReader deletes a registered reader
func (a *StripeAdapter) DeleteReader(ctx context.Context, accountID, readerID string) error {
	params := &stripe.TerminalReaderParams{Params: connected(accountID)}
	params.Context = ctx
	if _, err := terminalreader.Del(readerID, params); err != nil {
		return fmt.Errorf("stripe: failed to delete reader %s: %w", readerID, err)
	}
	return nil
}

// ConnectionToken issues a terminal SDK connection token
func (a *StripeAdapter) ConnectionToken(ctx context.Context, accountID, locationID string) (string, error) {
	params := &stripe.TerminalConnectionTokenParams{Params: connected(accountID)}
	if locationID != "" {
		params.Location = stripe.String(locationID)
	}
	params.Context = ctx

	token, err := connectiontoken.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: failed to create connection token: %w", err)
	}
	return token.Secret, nil
}

// SetReaderDisplay pushes an itemized cart to a reader screen
func (a *StripeAdapter) SetReaderDisplay(ctx context.Context, accountID, readerID string, cart Cart) error {
	items := make([]*stripe.TerminalReaderSetReaderDisplayCartLineItemParams, len(cart.LineItems))
	for i, item := range cart.LineItems {
		items[i] = &stripe.TerminalReaderSetReaderDisplayCartLineItemParams{
			Description: stripe.String(item.Description),
			Quantity:    stripe.Int64(item.Quantity),
			Amount:      stripe.Int64(item.Amount),
		}
	}

	params := &stripe.TerminalReaderSetReaderDisplayParams{
		Params: connected(accountID),
		Type:   stripe.String("cart"),
		Cart: &stripe.TerminalReaderSetReaderDisplayCartParams{
			Currency:  stripe.String(cart.Currency),
			Tax:       stripe.Int64(cart.Tax),
			Total:     stripe.Int64(cart.Total),
			LineItems: items,
		},
	}
	params.Context = ctx

	if _, err := terminalreader.SetReaderDisplay(readerID, params); err != nil {
		return fmt.Errorf("stripe: failed to set reader display: %w", err)
	}
	return nil
}

// CreatePaymentIntent creates a card-present payment intent
func (a *StripeAdapter) CreatePaymentIntent(ctx context.Context, accountID string, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:             connected(accountID),
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card_present"}),
		CaptureMethod:      stripe.String(string(stripe.PaymentIntentCaptureMethodAutomatic)),
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}
	return intent.ID, nil
}

// ProcessPaymentIntent hands a payment intent to a reader for capture
func (a *StripeAdapter) ProcessPaymentIntent(ctx context.Context, accountID, readerID, paymentIntentID string) error {
	params := &stripe.TerminalReaderProcessPaymentIntentParams{
		Params:        connected(accountID),
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx

	if _, err := terminalreader.ProcessPaymentIntent(readerID, params); err != nil {
		return fmt.Errorf("stripe: failed to process payment intent on reader: %w", err)
	}
	return nil
}

// PaymentIntentStatus fetches the current status of a payment intent
func (a *StripeAdapter) PaymentIntentStatus(ctx context.Context, accountID, paymentIntentID string) (string, error) {
	params := &stripe.PaymentIntentParams{Params: connected(accountID)}
	params.Context = ctx

	intent, err := paymentintent.Get(paymentIntentID, params)
	if err != nil {
		return "", fmt.Errorf("stripe: failed to fetch payment intent %s: %w", paymentIntentID, err)
	}
	return string(intent.Status), nil
}

// CancelReaderAction cancels whatever action a reader is performing
func (a *StripeAdapter) CancelReaderAction(ctx context.Context, accountID, readerID string) error {
	params := &stripe.TerminalReaderCancelActionParams{Params: connected(accountID)}
	params.Context = ctx
	if _, err := terminalreader.CancelAction(readerID, params); err != nil {
		return fmt.Errorf("stripe: failed to cancel reader action: %w", err)
	}
	return nil
}

// CancelPaymentIntent cancels an in-flight payment intent
func (a *StripeAdapter) CancelPaymentIntent(ctx context.Context, accountID, paymentIntentID string) error {
	params := &stripe.PaymentIntentCancelParams{Params: connected(accountID)}
	params.Context = ctx
	if _, err := paymentintent.Cancel(paymentIntentID, params); err != nil {
		return fmt.Errorf("stripe: failed to cancel payment intent: %w", err)
	}
	return nil
}
