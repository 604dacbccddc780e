package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"golang.org/x/text/currency"
)

// Product represents a sellable item owned by exactly one merchant.
// Prices are integer minor units plus an ISO 4217 currency code, the
// same representation the payment processor uses. A product may be
// mirrored to a processor product/price pair on the merchant's
// connected account.
type Product struct {
	shared.TenantEntity
	Name            string     `gorm:"type:varchar(200);not null"`
	Description     string     `gorm:"type:text"`
	PriceAmount     int64      `gorm:"not null;default:0"`
	Currency        string     `gorm:"type:varchar(3);not null;default:'usd'"`
	InStock         bool       `gorm:"not null;default:true"`
	Active          bool       `gorm:"not null;default:true"`
	Tags            []string   `gorm:"type:jsonb;serializer:json"`
	KnowledgeBaseID *uuid.UUID `gorm:"type:uuid;index"`
	StripeProductID *string    `gorm:"type:varchar(255);index"`
	StripePriceID   *string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(merchantID uuid.UUID, name string, priceAmount int64, currencyCode string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if priceAmount < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Price must not be negative")
	}
	code, err := normalizeCurrency(currencyCode)
	if err != nil {
		return nil, err
	}

	return &Product{
		TenantEntity: shared.NewTenantEntity(merchantID),
		Name:         name,
		PriceAmount:  priceAmount,
		Currency:     code,
		InStock:      true,
		Active:       true,
		Tags:         []string{},
	}, nil
}

// SetPrice updates the price in minor units
func (p *Product) SetPrice(amount int64, currencyCode string) error {
	if amount < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Price must not be negative")
	}
	code, err := normalizeCurrency(currencyCode)
	if err != nil {
		return err
	}
	p.PriceAmount = amount
	p.Currency = code
	p.UpdatedAt = time.Now()
	return nil
}

// Rename updates the product name
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// AttachStripeProduct records the mirrored processor product/price pair
func (p *Product) AttachStripeProduct(productID, priceID string) {
	p.StripeProductID = &productID
	p.StripePriceID = &priceID
	p.UpdatedAt = time.Now()
}

// HasStripeProduct reports whether a processor mirror exists
func (p *Product) HasStripeProduct() bool {
	return p.StripeProductID != nil && *p.StripeProductID != ""
}

func normalizeCurrency(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "usd", nil
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown currency code: "+code)
	}
	return strings.ToLower(unit.String()), nil
}
