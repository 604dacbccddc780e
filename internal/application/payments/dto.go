package payments

import "github.com/google/uuid"

// OnboardingLinkResponse carries the hosted onboarding URL
type OnboardingLinkResponse struct {
	URL string `json:"url"`
}

// AccountStatusResponse is the API shape of a connected account's
// onboarding state.
type AccountStatusResponse struct {
	AccountID        string `json:"account_id"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	DetailsSubmitted bool   `json:"details_submitted"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
	Onboarded        bool   `json:"onboarded"`
}

// ConnectionTokenResponse carries a terminal SDK connection token
type ConnectionTokenResponse struct {
	Secret string `json:"secret"`
}

// CartItemInput is one display line pushed to a reader screen
type CartItemInput struct {
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	Amount      int64  `json:"amount"`
}

// DisplayCartInput is the itemized cart for a reader display update
type DisplayCartInput struct {
	Currency  string          `json:"currency"`
	Tax       int64           `json:"tax"`
	Total     int64           `json:"total"`
	LineItems []CartItemInput `json:"line_items"`
}

// CollectPaymentInput starts a card-present collection on a terminal
type CollectPaymentInput struct {
	TerminalID uuid.UUID
	Amount     int64
	Currency   string
}

// Payment outcome statuses of the synchronous collection flow.
const (
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusTimeout   = "timeout"
)

// CollectPaymentResponse reports how a collection attempt ended. Status
// is "succeeded" or "timeout"; the payment intent id is present either
// way so the caller can reconcile.
type CollectPaymentResponse struct {
	Status          string `json:"status"`
	PaymentIntentID string `json:"payment_intent_id"`
}
