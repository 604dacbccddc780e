package voice

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/domain/worker"
	"github.com/merchantkit/backoffice/internal/infrastructure/voice"
	"go.uber.org/zap"
)

// SignedURLResponse carries a short-lived vendor session URL
type SignedURLResponse struct {
	SignedURL string `json:"signed_url"`
}

// SignedURLService brokers voice session access: the vendor API key
// never leaves the server, and an agent id is only accepted when one of
// the caller's workers references it.
type SignedURLService struct {
	workerRepo worker.WorkerRepository
	issuer     voice.SignedURLIssuer
	logger     *zap.Logger
}

// NewSignedURLService creates a new SignedURLService
func NewSignedURLService(
	workerRepo worker.WorkerRepository,
	issuer voice.SignedURLIssuer,
	logger *zap.Logger,
) *SignedURLService {
	return &SignedURLService{
		workerRepo: workerRepo,
		issuer:     issuer,
		logger:     logger,
	}
}

// SignedURL issues a session URL for the given agent after checking it
// belongs to one of the merchant's workers.
func (s *SignedURLService) SignedURL(ctx context.Context, merchantID uuid.UUID, agentID string) (*SignedURLResponse, error) {
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Agent id is required")
	}

	if s.issuer == nil {
		return nil, shared.NewDomainError("EXTERNAL_SERVICE", "Voice vendor is not configured")
	}

	if _, err := s.workerRepo.FindByAgentID(ctx, merchantID, agentID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrForeignReference
		}
		return nil, err
	}

	url, err := s.issuer.SignedURL(ctx, agentID)
	if err != nil {
		s.logger.Error("Failed to issue signed session URL",
			zap.String("agent_id", agentID),
			zap.Error(err))
		return nil, shared.NewDomainError("EXTERNAL_SERVICE", "Voice vendor request failed")
	}

	return &SignedURLResponse{SignedURL: url}, nil
}
