package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TenantRepository is a repository scoped to a merchant. Reads and
// deletes filter on (merchant_id, id) so a row owned by another merchant
// is indistinguishable from a missing one.
type TenantRepository[T any] interface {
	Repository[T]
	FindByIDForMerchant(ctx context.Context, merchantID, id uuid.UUID) (*T, error)
	FindAllForMerchant(ctx context.Context, merchantID uuid.UUID, filter Filter) ([]T, error)
	DeleteForMerchant(ctx context.Context, merchantID, id uuid.UUID) error
	CountByIDs(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) (int64, error)
}

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

// DefaultFilter returns a filter with default values. Lists order
// newest-updated-first.
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 50,
		OrderBy:  "updated_at",
		OrderDir: "desc",
	}
}
