package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/identity"
	"github.com/merchantkit/backoffice/internal/infrastructure/auth"
)

// RegisterInput contains input for user registration
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// LoginInput contains input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the outcome of a successful login
type LoginResult struct {
	User   UserResponse    `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// UserResponse is the API shape of a user
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse converts a user entity to its API shape
func NewUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// CreateMerchantInput contains input for merchant signup
type CreateMerchantInput struct {
	BusinessName string
	Country      string
}

// UpdateMerchantInput contains partial-update input for a merchant
type UpdateMerchantInput struct {
	BusinessName *string
	Country      *string
}

// MerchantResponse is the API shape of a merchant
type MerchantResponse struct {
	ID              uuid.UUID `json:"id"`
	UserEmail       string    `json:"user_email"`
	BusinessName    string    `json:"business_name"`
	Country         string    `json:"country"`
	StripeAccountID *string   `json:"stripe_account_id,omitempty"`
	IsOnboarded     bool      `json:"is_onboarded"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewMerchantResponse converts a merchant entity to its API shape
func NewMerchantResponse(m *identity.Merchant) MerchantResponse {
	return MerchantResponse{
		ID:              m.ID,
		UserEmail:       m.UserEmail,
		BusinessName:    m.BusinessName,
		Country:         m.Country,
		StripeAccountID: m.StripeAccountID,
		IsOnboarded:     m.IsOnboarded,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
