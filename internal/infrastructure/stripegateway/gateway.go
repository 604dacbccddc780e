package stripegateway

import (
	"context"

	"github.com/merchantkit/backoffice/internal/domain/fleet"
)

// Gateway is the boundary to the external payment processor. All
// payment, terminal-device and connected-account lifecycle operations
// are delegated to it; the local code only forwards parameters and
// persists the returned ids. Per-merchant calls carry the merchant's
// connected-account id.
type Gateway interface {
	// Connected accounts
	CreateAccount(ctx context.Context, email, country string) (accountID string, err error)
	DeleteAccount(ctx context.Context, accountID string) error
	AccountOnboardingLink(ctx context.Context, accountID string) (url string, err error)
	AccountStatus(ctx context.Context, accountID string) (*AccountStatus, error)

	// Product mirror
	CreateProduct(ctx context.Context, accountID string, in ProductInput) (*ProductRefs, error)
	UpdateProduct(ctx context.Context, accountID string, refs ProductRefs, in ProductInput) (*ProductRefs, error)
	ArchiveProduct(ctx context.Context, accountID, productID string) error

	// Terminal locations and readers
	CreateTerminalLocation(ctx context.Context, accountID, displayName string, address fleet.Address) (locationID string, err error)
	DeleteTerminalLocation(ctx context.Context, accountID, locationID string) error
	RegisterReader(ctx context.Context, accountID, registrationCode, label, locationID string) (readerID string, err error)
	DeleteReader(ctx context.Context, accountID, readerID string) error

	// Card-present flow
	ConnectionToken(ctx context.Context, accountID, locationID string) (secret string, err error)
	SetReaderDisplay(ctx context.Context, accountID, readerID string, cart Cart) error
	CreatePaymentIntent(ctx context.Context, accountID string, amount int64, currency string) (paymentIntentID string, err error)
	ProcessPaymentIntent(ctx context.Context, accountID, readerID, paymentIntentID string) error
	PaymentIntentStatus(ctx context.Context, accountID, paymentIntentID string) (string, error)
	CancelReaderAction(ctx context.Context, accountID, readerID string) error
	CancelPaymentIntent(ctx context.Context, accountID, paymentIntentID string) error
}

// AccountStatus mirrors the onboarding-relevant flags of a connected
// account.
type AccountStatus struct {
	AccountID        string `json:"account_id"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
}

// Onboarded reports whether the account finished onboarding
func (s *AccountStatus) Onboarded() bool {
	return s.ChargesEnabled && s.DetailsSubmitted
}

// ProductInput carries the fields mirrored to a processor product/price
type ProductInput struct {
	Name        string
	Description string
	Active      bool
	Amount      int64
	Currency    string
}

// ProductRefs holds the processor ids of a mirrored product
type ProductRefs struct {
	ProductID string
	PriceID   string
}

// CartLineItem is one display line on a reader
type CartLineItem struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	Amount      int64  `json:"amount"`
}

// Cart is the itemized display shown on a reader screen
type Cart struct {
	Currency string         `json:"currency"`
	Tax      int64          `json:"tax"`
	Total    int64          `json:"total"`
	LineItems []CartLineItem `json:"line_items"`
}
