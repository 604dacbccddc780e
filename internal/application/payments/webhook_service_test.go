package payments

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"
)

func accountUpdatedEvent(t *testing.T, accountID string, chargesEnabled, detailsSubmitted bool) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"id":                accountID,
		"charges_enabled":   chargesEnabled,
		"details_submitted": detailsSubmitted,
	})
	assert.NoError(t, err)
	return stripe.Event{
		ID:   "evt_test",
		Type: "account.updated",
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestWebhookService_HandleEvent_RejectsBadSignature(t *testing.T) {
	service := NewWebhookService(new(MockMerchantRepository), "whsec_test", zap.NewNop())

	err := service.HandleEvent(context.Background(), []byte(`{}`), "t=1,v1=bogus")

	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestWebhookService_AccountUpdated_MarksOnboarded(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	service := NewWebhookService(merchantRepo, "whsec_test", zap.NewNop())

	ctx := context.Background()
	merchant := createConnectedMerchant()

	merchantRepo.On("FindByStripeAccountID", ctx, "acct_test").Return(merchant, nil)
	merchantRepo.On("Save", ctx, merchant).Return(nil)

	err := service.handleAccountUpdated(ctx, accountUpdatedEvent(t, "acct_test", true, true))

	assert.NoError(t, err)
	assert.True(t, merchant.IsOnboarded)
	merchantRepo.AssertExpectations(t)
}

func TestWebhookService_AccountUpdated_ClearsOnboardedWhenCapabilitiesDrop(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	service := NewWebhookService(merchantRepo, "whsec_test", zap.NewNop())

	ctx := context.Background()
	merchant := createConnectedMerchant()
	merchant.SetOnboarded(true)

	merchantRepo.On("FindByStripeAccountID", ctx, "acct_test").Return(merchant, nil)
	merchantRepo.On("Save", ctx, merchant).Return(nil)

	err := service.handleAccountUpdated(ctx, accountUpdatedEvent(t, "acct_test", false, true))

	assert.NoError(t, err)
	assert.False(t, merchant.IsOnboarded)
}

func TestWebhookService_AccountUpdated_UnchangedStateSkipsSave(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	service := NewWebhookService(merchantRepo, "whsec_test", zap.NewNop())

	ctx := context.Background()
	merchant := createConnectedMerchant()

	merchantRepo.On("FindByStripeAccountID", ctx, "acct_test").Return(merchant, nil)

	err := service.handleAccountUpdated(ctx, accountUpdatedEvent(t, "acct_test", false, false))

	assert.NoError(t, err)
	merchantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestWebhookService_AccountUpdated_UnknownAccountIsAcked(t *testing.T) {
	merchantRepo := new(MockMerchantRepository)
	service := NewWebhookService(merchantRepo, "whsec_test", zap.NewNop())

	ctx := context.Background()

	merchantRepo.On("FindByStripeAccountID", ctx, "acct_gone").Return(nil, shared.ErrNotFound)

	err := service.handleAccountUpdated(ctx, accountUpdatedEvent(t, "acct_gone", true, true))

	assert.NoError(t, err)
	merchantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
