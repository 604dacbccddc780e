package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// MerchantRepository defines persistence operations for merchants
type MerchantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Merchant, error)
	// FindByUserEmail resolves the authenticated principal to its single
	// owning merchant. Returns shared.ErrNotFound when none exists.
	FindByUserEmail(ctx context.Context, email string) (*Merchant, error)
	FindByStripeAccountID(ctx context.Context, accountID string) (*Merchant, error)
	ExistsByUserEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, merchant *Merchant) error
	// DeleteCascade removes the merchant and every owned row (products,
	// locations, terminals, workers, knowledge entries and join rows) in
	// one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}
