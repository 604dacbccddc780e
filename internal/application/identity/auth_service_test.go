package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/identity"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/infrastructure/auth"
	"github.com/merchantkit/backoffice/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenBlacklist is a mock implementation of auth.TokenBlacklist
type MockTokenBlacklist struct {
	mock.Mock
}

func (m *MockTokenBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

func (m *MockTokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// =============================================================================
// Test Helper Functions
// =============================================================================

func newAuthTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-auth-service",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "backoffice-test",
	})
}

func createTestUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("owner@example.com", "Owner", "correct-horse")
	require.NoError(t, err)
	return user
}

// =============================================================================
// AuthService Tests
// =============================================================================

func TestAuthService_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewAuthService(userRepo, newAuthTestJWTService(), nil, zap.NewNop())

	ctx := context.Background()
	userRepo.On("ExistsByEmail", ctx, "owner@example.com").Return(false, nil)
	userRepo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

	resp, err := service.Register(ctx, RegisterInput{
		Email:    "owner@example.com",
		Name:     "Owner",
		Password: "correct-horse",
	})

	assert.NoError(t, err)
	assert.Equal(t, "owner@example.com", resp.Email)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmailRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewAuthService(userRepo, newAuthTestJWTService(), nil, zap.NewNop())

	ctx := context.Background()
	userRepo.On("ExistsByEmail", ctx, "owner@example.com").Return(true, nil)

	_, err := service.Register(ctx, RegisterInput{
		Email:    "owner@example.com",
		Name:     "Owner",
		Password: "correct-horse",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewAuthService(userRepo, newAuthTestJWTService(), nil, zap.NewNop())

	ctx := context.Background()
	user := createTestUser(t)
	userRepo.On("FindByEmail", ctx, "owner@example.com").Return(user, nil)

	result, err := service.Login(ctx, LoginInput{
		Email:    "owner@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.Equal(t, user.Email, result.User.Email)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
}

func TestAuthService_Login_WrongPasswordRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewAuthService(userRepo, newAuthTestJWTService(), nil, zap.NewNop())

	ctx := context.Background()
	userRepo.On("FindByEmail", ctx, "owner@example.com").Return(createTestUser(t), nil)

	_, err := service.Login(ctx, LoginInput{
		Email:    "owner@example.com",
		Password: "wrong-password",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_UnknownEmailUsesSameError(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewAuthService(userRepo, newAuthTestJWTService(), nil, zap.NewNop())

	ctx := context.Background()
	userRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

	_, err := service.Login(ctx, LoginInput{
		Email:    "nobody@example.com",
		Password: "correct-horse",
	})

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	jwtService := newAuthTestJWTService()
	service := NewAuthService(userRepo, jwtService, nil, zap.NewNop())

	ctx := context.Background()
	user := createTestUser(t)
	tokens, err := jwtService.GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	userRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)

	fresh, err := service.Refresh(ctx, tokens.RefreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)
}

func TestAuthService_Refresh_InvalidTokenRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewAuthService(userRepo, newAuthTestJWTService(), nil, zap.NewNop())

	_, err := service.Refresh(context.Background(), "not-a-token")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_RevokedTokenRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	blacklist := new(MockTokenBlacklist)
	jwtService := newAuthTestJWTService()
	service := NewAuthService(userRepo, jwtService, blacklist, zap.NewNop())

	ctx := context.Background()
	user := createTestUser(t)
	tokens, err := jwtService.GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	blacklist.On("IsBlacklisted", ctx, mock.AnythingOfType("string")).Return(true, nil)

	_, err = service.Refresh(ctx, tokens.RefreshToken)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	userRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_DeletedAccountRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	jwtService := newAuthTestJWTService()
	service := NewAuthService(userRepo, jwtService, nil, zap.NewNop())

	ctx := context.Background()
	user := createTestUser(t)
	tokens, err := jwtService.GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)

	userRepo.On("FindByEmail", ctx, user.Email).Return(nil, shared.ErrNotFound)

	_, err = service.Refresh(ctx, tokens.RefreshToken)

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_Logout_RevokesUntilExpiry(t *testing.T) {
	blacklist := new(MockTokenBlacklist)
	jwtService := newAuthTestJWTService()
	service := NewAuthService(new(MockUserRepository), jwtService, blacklist, zap.NewNop())

	ctx := context.Background()
	user := createTestUser(t)
	tokens, err := jwtService.GenerateTokenPair(user.ID, user.Email)
	require.NoError(t, err)
	claims, err := jwtService.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)

	blacklist.On("Add", ctx, claims.ID, mock.AnythingOfType("time.Duration")).Return(nil)

	err = service.Logout(ctx, claims)

	assert.NoError(t, err)
	blacklist.AssertExpectations(t)
}

func TestAuthService_Logout_NoBlacklistIsNoop(t *testing.T) {
	service := NewAuthService(new(MockUserRepository), newAuthTestJWTService(), nil, zap.NewNop())

	err := service.Logout(context.Background(), nil)

	assert.NoError(t, err)
}
