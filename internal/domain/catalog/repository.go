package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	shared.TenantRepository[Product]
	// SearchByName finds products for a merchant whose name contains the
	// query, case-insensitively.
	SearchByName(ctx context.Context, merchantID uuid.UUID, query string, filter shared.Filter) ([]Product, error)
	FindByIDs(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
}
