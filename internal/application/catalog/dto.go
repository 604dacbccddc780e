package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/catalog"
)

// CreateProductInput contains input for product creation
type CreateProductInput struct {
	Name        string
	Description string
	PriceAmount int64
	Currency    string
	Tags        []string
	InStock     *bool
}

// UpdateProductInput contains partial-update input for a product.
// Only non-nil fields are applied.
type UpdateProductInput struct {
	Name            *string
	Description     *string
	PriceAmount     *int64
	Currency        *string
	Tags            []string
	InStock         *bool
	Active          *bool
	KnowledgeBaseID *uuid.UUID
	ClearKnowledgeBase bool
}

// ProductResponse is the API shape of a product
type ProductResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	PriceAmount     int64      `json:"price_amount"`
	Currency        string     `json:"currency"`
	InStock         bool       `json:"in_stock"`
	Active          bool       `json:"active"`
	Tags            []string   `json:"tags"`
	KnowledgeBaseID *uuid.UUID `json:"knowledge_base_id,omitempty"`
	StripeProductID *string    `json:"stripe_product_id,omitempty"`
	StripePriceID   *string    `json:"stripe_price_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewProductResponse converts a product entity to its API shape
func NewProductResponse(p *catalog.Product) ProductResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		PriceAmount:     p.PriceAmount,
		Currency:        p.Currency,
		InStock:         p.InStock,
		Active:          p.Active,
		Tags:            tags,
		KnowledgeBaseID: p.KnowledgeBaseID,
		StripeProductID: p.StripeProductID,
		StripePriceID:   p.StripePriceID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// NewProductResponses converts a slice of products
func NewProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = NewProductResponse(&products[i])
	}
	return out
}
