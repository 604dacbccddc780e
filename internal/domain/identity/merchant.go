package identity

import (
	"strings"
	"time"

	"github.com/merchantkit/backoffice/internal/domain/shared"
)

// Merchant is the tenant: the owning business account and the unit of
// data isolation. Every other entity in the system carries a merchant id
// foreign key.
type Merchant struct {
	shared.BaseEntity
	UserEmail       string  `gorm:"type:varchar(255);not null;uniqueIndex"`
	BusinessName    string  `gorm:"type:varchar(200);not null"`
	Country         string  `gorm:"type:varchar(2);not null;default:'US'"`
	StripeAccountID *string `gorm:"type:varchar(255);uniqueIndex"`
	IsOnboarded     bool    `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Merchant) TableName() string {
	return "merchants"
}

// NewMerchant creates a merchant profile for the given user email
func NewMerchant(userEmail, businessName, country string) (*Merchant, error) {
	userEmail = strings.ToLower(strings.TrimSpace(userEmail))
	if userEmail == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "User email is required")
	}
	if strings.TrimSpace(businessName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Business name is required")
	}
	if country == "" {
		country = "US"
	}

	return &Merchant{
		BaseEntity:   shared.NewBaseEntity(),
		UserEmail:    userEmail,
		BusinessName: businessName,
		Country:      strings.ToUpper(country),
	}, nil
}

// AttachStripeAccount records the connected-account reference. It is set
// once; re-attaching a different account is rejected.
func (m *Merchant) AttachStripeAccount(accountID string) error {
	if m.StripeAccountID != nil && *m.StripeAccountID != accountID {
		return shared.NewDomainError("ALREADY_EXISTS", "Merchant already has a connected account")
	}
	m.StripeAccountID = &accountID
	m.UpdatedAt = time.Now()
	return nil
}

// ClearStripeAccount removes the connected-account reference on offboarding
func (m *Merchant) ClearStripeAccount() {
	m.StripeAccountID = nil
	m.IsOnboarded = false
	m.UpdatedAt = time.Now()
}

// SetOnboarded updates the onboarding-complete mirror maintained from
// processor webhook events.
func (m *Merchant) SetOnboarded(onboarded bool) {
	m.IsOnboarded = onboarded
	m.UpdatedAt = time.Now()
}

// HasStripeAccount reports whether a connected account is attached
func (m *Merchant) HasStripeAccount() bool {
	return m.StripeAccountID != nil && *m.StripeAccountID != ""
}
