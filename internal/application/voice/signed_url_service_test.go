package voice

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockWorkerRepository is a mock implementation of worker.WorkerRepository
type MockWorkerRepository struct {
	mock.Mock
}

func (m *MockWorkerRepository) FindByID(ctx context.Context, id uuid.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) FindByIDForMerchant(ctx context.Context, merchantID, id uuid.UUID) (*worker.Worker, error) {
	args := m.Called(ctx, merchantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) FindAllForMerchant(ctx context.Context, merchantID uuid.UUID, filter shared.Filter) ([]worker.Worker, error) {
	args := m.Called(ctx, merchantID, filter)
	return args.Get(0).([]worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) FindByAgentID(ctx context.Context, merchantID uuid.UUID, agentID string) (*worker.Worker, error) {
	args := m.Called(ctx, merchantID, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*worker.Worker), args.Error(1)
}

func (m *MockWorkerRepository) Save(ctx context.Context, w *worker.Worker) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockWorkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkerRepository) DeleteForMerchant(ctx context.Context, merchantID, id uuid.UUID) error {
	args := m.Called(ctx, merchantID, id)
	return args.Error(0)
}

func (m *MockWorkerRepository) CountByIDs(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, merchantID, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWorkerRepository) UpdateLocations(ctx context.Context, w *worker.Worker, connect, disconnect []uuid.UUID) error {
	args := m.Called(ctx, w, connect, disconnect)
	return args.Error(0)
}

// MockSignedURLIssuer is a mock implementation of voice.SignedURLIssuer
type MockSignedURLIssuer struct {
	mock.Mock
}

func (m *MockSignedURLIssuer) SignedURL(ctx context.Context, agentID string) (string, error) {
	args := m.Called(ctx, agentID)
	return args.String(0), args.Error(1)
}

// =============================================================================
// SignedURLService Tests
// =============================================================================

func TestSignedURLService_Success(t *testing.T) {
	workerRepo := new(MockWorkerRepository)
	issuer := new(MockSignedURLIssuer)
	service := NewSignedURLService(workerRepo, issuer, zap.NewNop())

	ctx := context.Background()
	merchantID := uuid.New()
	w, _ := worker.NewWorker(merchantID, "Front desk agent", "en")
	w.AttachAgent("agent_123")

	workerRepo.On("FindByAgentID", ctx, merchantID, "agent_123").Return(w, nil)
	issuer.On("SignedURL", ctx, "agent_123").Return("wss://voice.example.com/session?token=x", nil)

	resp, err := service.SignedURL(ctx, merchantID, "agent_123")

	assert.NoError(t, err)
	assert.Equal(t, "wss://voice.example.com/session?token=x", resp.SignedURL)
}

func TestSignedURLService_EmptyAgentIDRejected(t *testing.T) {
	service := NewSignedURLService(new(MockWorkerRepository), new(MockSignedURLIssuer), zap.NewNop())

	_, err := service.SignedURL(context.Background(), uuid.New(), "   ")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestSignedURLService_UnknownAgentRejected(t *testing.T) {
	workerRepo := new(MockWorkerRepository)
	issuer := new(MockSignedURLIssuer)
	service := NewSignedURLService(workerRepo, issuer, zap.NewNop())

	ctx := context.Background()
	merchantID := uuid.New()

	workerRepo.On("FindByAgentID", ctx, merchantID, "agent_other").Return(nil, shared.ErrNotFound)

	_, err := service.SignedURL(ctx, merchantID, "agent_other")

	assert.ErrorIs(t, err, shared.ErrForeignReference)
	issuer.AssertNotCalled(t, "SignedURL", mock.Anything, mock.Anything)
}

func TestSignedURLService_VendorFailureIsExternalServiceError(t *testing.T) {
	workerRepo := new(MockWorkerRepository)
	issuer := new(MockSignedURLIssuer)
	service := NewSignedURLService(workerRepo, issuer, zap.NewNop())

	ctx := context.Background()
	merchantID := uuid.New()
	w, _ := worker.NewWorker(merchantID, "Front desk agent", "en")
	w.AttachAgent("agent_123")

	workerRepo.On("FindByAgentID", ctx, merchantID, "agent_123").Return(w, nil)
	issuer.On("SignedURL", ctx, "agent_123").Return("", errors.New("vendor 500"))

	_, err := service.SignedURL(ctx, merchantID, "agent_123")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXTERNAL_SERVICE", domainErr.Code)
}

func TestSignedURLService_NilIssuerIsExternalServiceError(t *testing.T) {
	service := NewSignedURLService(new(MockWorkerRepository), nil, zap.NewNop())

	_, err := service.SignedURL(context.Background(), uuid.New(), "agent_123")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXTERNAL_SERVICE", domainErr.Code)
}
