package worker

import (
	"context"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/domain/worker"
	"go.uber.org/zap"
)

// LocationChecker verifies location ids belong to a merchant
type LocationChecker interface {
	CountByIDs(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) (int64, error)
}

// WorkerService handles voice-agent profiles and their location
// deployments.
type WorkerService struct {
	workerRepo   worker.WorkerRepository
	locationRepo LocationChecker
	logger       *zap.Logger
}

// NewWorkerService creates a new WorkerService
func NewWorkerService(
	workerRepo worker.WorkerRepository,
	locationRepo LocationChecker,
	logger *zap.Logger,
) *WorkerService {
	return &WorkerService{
		workerRepo:   workerRepo,
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// Create creates a worker and deploys it at the given locations. Every
// referenced location must belong to the merchant.
func (s *WorkerService) Create(ctx context.Context, merchantID uuid.UUID, input CreateWorkerInput) (*WorkerResponse, error) {
	w, err := worker.NewWorker(merchantID, input.Name, input.Language)
	if err != nil {
		return nil, err
	}
	w.Greeting = input.Greeting
	w.SystemPrompt = input.SystemPrompt
	w.VoiceID = input.VoiceID
	if input.AgentID != nil {
		w.AttachAgent(*input.AgentID)
	}

	ids, err := s.checkLocations(ctx, merchantID, input.LocationIDs)
	if err != nil {
		return nil, err
	}

	if err := s.workerRepo.Save(ctx, w); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		if err := s.workerRepo.UpdateLocations(ctx, w, ids, nil); err != nil {
			return nil, err
		}
	}

	return s.respond(ctx, merchantID, w.ID)
}

// Get fetches one worker by (merchant, id)
func (s *WorkerService) Get(ctx context.Context, merchantID, id uuid.UUID) (*WorkerResponse, error) {
	w, err := s.workerRepo.FindByIDForMerchant(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	resp := NewWorkerResponse(w)
	return &resp, nil
}

// List fetches all workers for the merchant, newest-updated first
func (s *WorkerService) List(ctx context.Context, merchantID uuid.UUID) ([]WorkerResponse, error) {
	workers, err := s.workerRepo.FindAllForMerchant(ctx, merchantID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return NewWorkerResponses(workers), nil
}

// Update applies a partial update. When LocationIDs is non-nil the
// deployment set is reconciled against it; an identical set is a no-op.
func (s *WorkerService) Update(ctx context.Context, merchantID, id uuid.UUID, input UpdateWorkerInput) (*WorkerResponse, error) {
	w, err := s.workerRepo.FindByIDForMerchant(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}

	// Validate the deployment set before touching the row so a rejected
	// list leaves the worker unchanged.
	var desired []uuid.UUID
	if input.LocationIDs != nil {
		desired, err = s.checkLocations(ctx, merchantID, input.LocationIDs)
		if err != nil {
			return nil, err
		}
	}

	if input.Name != nil {
		w.Name = *input.Name
	}
	if input.Language != nil {
		w.Language = *input.Language
	}
	if input.Greeting != nil {
		w.Greeting = *input.Greeting
	}
	if input.SystemPrompt != nil {
		w.SystemPrompt = *input.SystemPrompt
	}
	if input.VoiceID != nil {
		w.VoiceID = *input.VoiceID
	}
	if input.ClearAgent {
		w.AgentID = nil
	} else if input.AgentID != nil {
		w.AttachAgent(*input.AgentID)
	}
	if input.Active != nil {
		w.Active = *input.Active
	}

	if err := s.workerRepo.Save(ctx, w); err != nil {
		return nil, err
	}

	if input.LocationIDs != nil {
		connect, disconnect := shared.ReconcileIDs(w.LocationIDs(), desired)
		if len(connect) > 0 || len(disconnect) > 0 {
			if err := s.workerRepo.UpdateLocations(ctx, w, connect, disconnect); err != nil {
				return nil, err
			}
		}
	}

	return s.respond(ctx, merchantID, w.ID)
}

// Delete removes a worker. Deployment join rows go with it; the vendor
// agent, if any, is left as is.
func (s *WorkerService) Delete(ctx context.Context, merchantID, id uuid.UUID) error {
	return s.workerRepo.DeleteForMerchant(ctx, merchantID, id)
}

// checkLocations dedupes the ids and verifies they all belong to the
// merchant.
func (s *WorkerService) checkLocations(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) ([]uuid.UUID, error) {
	ids = shared.UniqueIDs(ids)
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}
	count, err := s.locationRepo.CountByIDs(ctx, merchantID, ids)
	if err != nil {
		return nil, err
	}
	if count != int64(len(ids)) {
		return nil, shared.ErrForeignReference
	}
	return ids, nil
}

func (s *WorkerService) respond(ctx context.Context, merchantID, id uuid.UUID) (*WorkerResponse, error) {
	w, err := s.workerRepo.FindByIDForMerchant(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	resp := NewWorkerResponse(w)
	return &resp, nil
}
