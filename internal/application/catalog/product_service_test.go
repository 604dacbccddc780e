package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/catalog"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"github.com/merchantkit/backoffice/internal/domain/identity"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/infrastructure/stripegateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForMerchant(ctx context.Context, merchantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, merchantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForMerchant(ctx context.Context, merchantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, merchantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteForMerchant(ctx context.Context, merchantID, id uuid.UUID) error {
	args := m.Called(ctx, merchantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountByIDs(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, merchantID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) SearchByName(ctx context.Context, merchantID uuid.UUID, query string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, merchantID, query, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, merchantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// MockKnowledgeBaseChecker is a mock implementation of KnowledgeBaseChecker
type MockKnowledgeBaseChecker struct {
	mock.Mock
}

func (m *MockKnowledgeBaseChecker) CountByIDs(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, merchantID, ids)
	return args.Get(0).(int64), args.Error(1)
}

// MockMirrorGateway is a mock implementation of stripegateway.Gateway
type MockMirrorGateway struct {
	mock.Mock
}

func (m *MockMirrorGateway) CreateAccount(ctx context.Context, email, country string) (string, error) {
	args := m.Called(ctx, email, country)
	return args.String(0), args.Error(1)
}

func (m *MockMirrorGateway) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockMirrorGateway) AccountOnboardingLink(ctx context.Context, accountID string) (string, error) {
	args := m.Called(ctx, accountID)
	return args.String(0), args.Error(1)
}

func (m *MockMirrorGateway) AccountStatus(ctx context.Context, accountID string) (*stripegateway.AccountStatus, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripegateway.AccountStatus), args.Error(1)
}

func (m *MockMirrorGateway) CreateProduct(ctx context.Context, accountID string, in stripegateway.ProductInput) (*stripegateway.ProductRefs, error) {
	args := m.Called(ctx, accountID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripegateway.ProductRefs), args.Error(1)
}

func (m *MockMirrorGateway) UpdateProduct(ctx context.Context, accountID string, refs stripegateway.ProductRefs, in stripegateway.ProductInput) (*stripegateway.ProductRefs, error) {
	args := m.Called(ctx, accountID, refs, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripegateway.ProductRefs), args.Error(1)
}

func (m *MockMirrorGateway) ArchiveProduct(ctx context.Context, accountID, productID string) error {
	args := m.Called(ctx, accountID, productID)
	return args.Error(0)
}

func (m *MockMirrorGateway) CreateTerminalLocation(ctx context.Context, accountID, displayName string, address fleet.Address) (string, error) {
	args := m.Called(ctx, accountID, displayName, address)
	return args.String(0), args.Error(1)
}

func (m *MockMirrorGateway) DeleteTerminalLocation(ctx context.Context, accountID, locationID string) error {
	args := m.Called(ctx, accountID, locationID)
	return args.Error(0)
}

func (m *MockMirrorGateway) RegisterReader(ctx context.Context, accountID, registrationCode, label, locationID string) (string, error) {
	args := m.Called(ctx, accountID, registrationCode, label, locationID)
	return args.String(0), args.Error(1)
}

func (m *MockMirrorGateway) DeleteReader(ctx context.Context, accountID, readerID string) error {
	args := m.Called(ctx, accountID, readerID)
	return args.Error(0)
}

func (m *MockMirrorGateway) ConnectionToken(ctx context.Context, accountID, locationID string) (string, error) {
	args := m.Called(ctx, accountID, locationID)
	return args.String(0), args.Error(1)
}

func (m *MockMirrorGateway) SetReaderDisplay(ctx context.Context, accountID, readerID string, cart stripegateway.Cart) error {
	args := m.Called(ctx, accountID, readerID, cart)
	return args.Error(0)
}

func (m *MockMirrorGateway) CreatePaymentIntent(ctx context.Context, accountID string, amount int64, currency string) (string, error) {
	args := m.Called(ctx, accountID, amount, currency)
	return args.String(0), args.Error(1)
}

func (m *MockMirrorGateway) ProcessPaymentIntent(ctx context.Context, accountID, readerID, paymentIntentID string) error {
	args := m.Called(ctx, accountID, readerID, paymentIntentID)
	return args.Error(0)
}

func (m *MockMirrorGateway) PaymentIntentStatus(ctx context.Context, accountID, paymentIntentID string) (string, error) {
	args := m.Called(ctx, accountID, paymentIntentID)
	return args.String(0), args.Error(1)
}

func (m *MockMirrorGateway) CancelReaderAction(ctx context.Context, accountID, readerID string) error {
	args := m.Called(ctx, accountID, readerID)
	return args.Error(0)
}

func (m *MockMirrorGateway) CancelPaymentIntent(ctx context.Context, accountID, paymentIntentID string) error {
	args := m.Called(ctx, accountID, paymentIntentID)
	return args.Error(0)
}

// =============================================================================
// Test Helper Functions
// =============================================================================

func newProductTestService() (*ProductService, *MockProductRepository, *MockKnowledgeBaseChecker, *MockMirrorGateway) {
	productRepo := new(MockProductRepository)
	knowledgeRepo := new(MockKnowledgeBaseChecker)
	gateway := new(MockMirrorGateway)
	service := NewProductService(productRepo, knowledgeRepo, gateway, zap.NewNop())
	return service, productRepo, knowledgeRepo, gateway
}

func createConnectedTestMerchant(t *testing.T) *identity.Merchant {
	t.Helper()
	merchant, err := identity.NewMerchant("owner@example.com", "Corner Espresso", "US")
	require.NoError(t, err)
	require.NoError(t, merchant.AttachStripeAccount("acct_test"))
	return merchant
}

func createUnconnectedTestMerchant(t *testing.T) *identity.Merchant {
	t.Helper()
	merchant, err := identity.NewMerchant("owner@example.com", "Corner Espresso", "US")
	require.NoError(t, err)
	return merchant
}

func createMirroredProduct(t *testing.T, merchantID uuid.UUID) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(merchantID, "Latte", 450, "usd")
	require.NoError(t, err)
	product.AttachStripeProduct("prod_test", "price_test")
	return product
}

// =============================================================================
// ProductService Tests
// =============================================================================

func TestProductService_Create_MirrorsToConnectedAccount(t *testing.T) {
	service, productRepo, _, gateway := newProductTestService()

	ctx := context.Background()
	merchant := createConnectedTestMerchant(t)

	gateway.On("CreateProduct", ctx, "acct_test", stripegateway.ProductInput{
		Name:     "Latte",
		Active:   true,
		Amount:   450,
		Currency: "usd",
	}).Return(&stripegateway.ProductRefs{ProductID: "prod_new", PriceID: "price_new"}, nil)
	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	resp, err := service.Create(ctx, merchant, CreateProductInput{
		Name:        "Latte",
		PriceAmount: 450,
		Currency:    "usd",
	})

	require.NoError(t, err)
	require.NotNil(t, resp.StripeProductID)
	assert.Equal(t, "prod_new", *resp.StripeProductID)
	gateway.AssertExpectations(t)
}

func TestProductService_Create_SkipsMirrorWithoutAccount(t *testing.T) {
	service, productRepo, _, gateway := newProductTestService()

	ctx := context.Background()
	merchant := createUnconnectedTestMerchant(t)

	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	resp, err := service.Create(ctx, merchant, CreateProductInput{
		Name:        "Latte",
		PriceAmount: 450,
		Currency:    "usd",
	})

	require.NoError(t, err)
	assert.Nil(t, resp.StripeProductID)
	gateway.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_Create_ArchivesMirrorOnInsertFailure(t *testing.T) {
	service, productRepo, _, gateway := newProductTestService()

	ctx := context.Background()
	merchant := createConnectedTestMerchant(t)

	gateway.On("CreateProduct", ctx, "acct_test", mock.AnythingOfType("stripegateway.ProductInput")).
		Return(&stripegateway.ProductRefs{ProductID: "prod_new", PriceID: "price_new"}, nil)
	productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(errors.New("insert failed"))
	gateway.On("ArchiveProduct", ctx, "acct_test", "prod_new").Return(nil)

	_, err := service.Create(ctx, merchant, CreateProductInput{
		Name:        "Latte",
		PriceAmount: 450,
		Currency:    "usd",
	})

	assert.Error(t, err)
	gateway.AssertCalled(t, "ArchiveProduct", ctx, "acct_test", "prod_new")
}

func TestProductService_Create_InvalidCurrencyRejected(t *testing.T) {
	service, productRepo, _, _ := newProductTestService()

	_, err := service.Create(context.Background(), createUnconnectedTestMerchant(t), CreateProductInput{
		Name:        "Latte",
		PriceAmount: 450,
		Currency:    "zzz",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Update_MirrorFailureDoesNotBlockLocalWrite(t *testing.T) {
	service, productRepo, _, gateway := newProductTestService()

	ctx := context.Background()
	merchant := createConnectedTestMerchant(t)
	product := createMirroredProduct(t, merchant.ID)

	productRepo.On("FindByIDForMerchant", ctx, merchant.ID, product.ID).Return(product, nil)
	gateway.On("UpdateProduct", ctx, "acct_test", mock.AnythingOfType("stripegateway.ProductRefs"), mock.AnythingOfType("stripegateway.ProductInput")).
		Return(nil, errors.New("processor unavailable"))
	productRepo.On("Save", ctx, product).Return(nil)

	newName := "Oat Latte"
	resp, err := service.Update(ctx, merchant, product.ID, UpdateProductInput{Name: &newName})

	require.NoError(t, err)
	assert.Equal(t, "Oat Latte", resp.Name)
	productRepo.AssertCalled(t, "Save", ctx, product)
}

func TestProductService_Update_ForeignKnowledgeBaseRejected(t *testing.T) {
	service, productRepo, knowledgeRepo, _ := newProductTestService()

	ctx := context.Background()
	merchant := createUnconnectedTestMerchant(t)
	product, err := catalog.NewProduct(merchant.ID, "Latte", 450, "usd")
	require.NoError(t, err)
	foreignKB := uuid.New()

	productRepo.On("FindByIDForMerchant", ctx, merchant.ID, product.ID).Return(product, nil)
	knowledgeRepo.On("CountByIDs", ctx, merchant.ID, []uuid.UUID{foreignKB}).Return(int64(0), nil)

	_, err = service.Update(ctx, merchant, product.ID, UpdateProductInput{KnowledgeBaseID: &foreignKB})

	assert.ErrorIs(t, err, shared.ErrForeignReference)
	productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Update_ClearKnowledgeBase(t *testing.T) {
	service, productRepo, knowledgeRepo, _ := newProductTestService()

	ctx := context.Background()
	merchant := createUnconnectedTestMerchant(t)
	product, err := catalog.NewProduct(merchant.ID, "Latte", 450, "usd")
	require.NoError(t, err)
	kbID := uuid.New()
	product.KnowledgeBaseID = &kbID

	productRepo.On("FindByIDForMerchant", ctx, merchant.ID, product.ID).Return(product, nil)
	productRepo.On("Save", ctx, product).Return(nil)

	resp, err := service.Update(ctx, merchant, product.ID, UpdateProductInput{ClearKnowledgeBase: true})

	require.NoError(t, err)
	assert.Nil(t, resp.KnowledgeBaseID)
	knowledgeRepo.AssertNotCalled(t, "CountByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_Delete_ArchivesMirrorBestEffort(t *testing.T) {
	service, productRepo, _, gateway := newProductTestService()

	ctx := context.Background()
	merchant := createConnectedTestMerchant(t)
	product := createMirroredProduct(t, merchant.ID)

	productRepo.On("FindByIDForMerchant", ctx, merchant.ID, product.ID).Return(product, nil)
	gateway.On("ArchiveProduct", ctx, "acct_test", "prod_test").Return(errors.New("processor unavailable"))
	productRepo.On("DeleteForMerchant", ctx, merchant.ID, product.ID).Return(nil)

	err := service.Delete(ctx, merchant, product.ID)

	assert.NoError(t, err)
	productRepo.AssertCalled(t, "DeleteForMerchant", ctx, merchant.ID, product.ID)
}

func TestProductService_Get_NotFoundPassesThrough(t *testing.T) {
	service, productRepo, _, _ := newProductTestService()

	ctx := context.Background()
	merchantID := uuid.New()
	productID := uuid.New()
	productRepo.On("FindByIDForMerchant", ctx, merchantID, productID).Return(nil, shared.ErrNotFound)

	_, err := service.Get(ctx, merchantID, productID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
