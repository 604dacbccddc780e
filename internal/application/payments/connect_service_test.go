package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/identity"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/infrastructure/stripegateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockMerchantRepository is a mock implementation of identity.MerchantRepository
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) FindByUserEmail(ctx context.Context, email string) (*identity.Merchant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) FindByStripeAccountID(ctx context.Context, accountID string) (*identity.Merchant, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) ExistsByUserEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockMerchantRepository) Save(ctx context.Context, merchant *identity.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =============================================================================
// ConnectService Tests
// =============================================================================

func TestConnectService_CreateAccount_Success(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	gateway := new(MockGateway)
	service := NewConnectService(merchantRepo, gateway, zap.NewNop())

	ctx := context.Background()
	merchant, _ := identity.NewMerchant("owner@example.com", "Corner Espresso", "US")

	gateway.On("CreateAccount", ctx, "owner@example.com", "US").Return("acct_new", nil)
	merchantRepo.On("Save", ctx, merchant).Return(nil)

	resp, err := service.CreateAccount(ctx, merchant)

	assert.NoError(t, err)
	assert.Equal(t, "acct_new", resp.AccountID)
	assert.True(t, merchant.HasStripeAccount())
	merchantRepo.AssertExpectations(t)
}

func TestConnectService_CreateAccount_IdempotentWhenAlreadyConnected(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	gateway := new(MockGateway)
	service := NewConnectService(merchantRepo, gateway, zap.NewNop())

	ctx := context.Background()
	merchant := createConnectedMerchant()

	gateway.On("AccountStatus", ctx, "acct_test").Return(&stripegateway.AccountStatus{
		AccountID:        "acct_test",
		ChargesEnabled:   false,
		DetailsSubmitted: false,
	}, nil)

	resp, err := service.CreateAccount(ctx, merchant)

	assert.NoError(t, err)
	assert.Equal(t, "acct_test", resp.AccountID)
	gateway.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestConnectService_CreateAccount_PersistFailureRemovesRemoteAccount(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	gateway := new(MockGateway)
	service := NewConnectService(merchantRepo, gateway, zap.NewNop())

	ctx := context.Background()
	merchant, _ := identity.NewMerchant("owner@example.com", "Corner Espresso", "US")

	gateway.On("CreateAccount", ctx, "owner@example.com", "US").Return("acct_new", nil)
	merchantRepo.On("Save", ctx, merchant).Return(errors.New("db down"))
	gateway.On("DeleteAccount", ctx, "acct_new").Return(nil)

	_, err := service.CreateAccount(ctx, merchant)

	assert.Error(t, err)
	gateway.AssertCalled(t, "DeleteAccount", ctx, "acct_new")
}

func TestConnectService_OnboardingLink(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	gateway := new(MockGateway)
	service := NewConnectService(merchantRepo, gateway, zap.NewNop())

	ctx := context.Background()
	merchant := createConnectedMerchant()

	gateway.On("AccountOnboardingLink", ctx, "acct_test").Return("https://connect.example.com/setup/x", nil)

	resp, err := service.OnboardingLink(ctx, merchant)

	assert.NoError(t, err)
	assert.Equal(t, "https://connect.example.com/setup/x", resp.URL)
}

func TestConnectService_OnboardingLink_RequiresConnectedAccount(t *testing.T) {
	service := NewConnectService(new(MockMerchantRepository), new(MockGateway), zap.NewNop())

	merchant, _ := identity.NewMerchant("owner@example.com", "Corner Espresso", "US")
	_, err := service.OnboardingLink(context.Background(), merchant)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestConnectService_Status_RefreshesDriftedMirror(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	gateway := new(MockGateway)
	service := NewConnectService(merchantRepo, gateway, zap.NewNop())

	ctx := context.Background()
	merchant := createConnectedMerchant()
	assert.False(t, merchant.IsOnboarded)

	gateway.On("AccountStatus", ctx, "acct_test").Return(&stripegateway.AccountStatus{
		AccountID:        "acct_test",
		ChargesEnabled:   true,
		DetailsSubmitted: true,
		PayoutsEnabled:   true,
	}, nil)
	merchantRepo.On("Save", ctx, merchant).Return(nil)

	resp, err := service.Status(ctx, merchant)

	assert.NoError(t, err)
	assert.True(t, resp.Onboarded)
	assert.True(t, merchant.IsOnboarded)
	merchantRepo.AssertExpectations(t)
}

func TestConnectService_Status_NoSaveWhenMirrorMatches(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	gateway := new(MockGateway)
	service := NewConnectService(merchantRepo, gateway, zap.NewNop())

	ctx := context.Background()
	merchant := createConnectedMerchant()

	gateway.On("AccountStatus", ctx, "acct_test").Return(&stripegateway.AccountStatus{
		AccountID: "acct_test",
	}, nil)

	_, err := service.Status(ctx, merchant)

	assert.NoError(t, err)
	merchantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
