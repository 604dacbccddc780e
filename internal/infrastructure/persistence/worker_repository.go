package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/domain/worker"
	"gorm.io/gorm"
)

// GormWorkerRepository implements worker.WorkerRepository using GORM
type GormWorkerRepository struct {
	gormTenantRepository[worker.Worker]
}

// NewGormWorkerRepository creates a new GormWorkerRepository
func NewGormWorkerRepository(db *gorm.DB) *GormWorkerRepository {
	return &GormWorkerRepository{
		gormTenantRepository: newGormTenantRepository[worker.Worker](db, "Locations"),
	}
}

// FindByAgentID looks a worker up by its vendor agent reference
func (r *GormWorkerRepository) FindByAgentID(ctx context.Context, merchantID uuid.UUID, agentID string) (*worker.Worker, error) {
	var w worker.Worker
	if err := r.db.WithContext(ctx).
		Preload("Locations").
		Where("merchant_id = ? AND agent_id = ?", merchantID, agentID).
		First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// UpdateLocations applies a reconciled connect/disconnect pair to the
// worker's location deployments.
func (r *GormWorkerRepository) UpdateLocations(ctx context.Context, w *worker.Worker, connect, disconnect []uuid.UUID) error {
	if len(connect) == 0 && len(disconnect) == 0 {
		return nil
	}

	assoc := r.db.WithContext(ctx).Model(w).Association("Locations")

	if len(connect) > 0 {
		refs := make([]fleet.Location, len(connect))
		for i, id := range connect {
			refs[i].ID = id
		}
		if err := assoc.Append(refs); err != nil {
			return err
		}
	}
	if len(disconnect) > 0 {
		refs := make([]fleet.Location, len(disconnect))
		for i, id := range disconnect {
			refs[i].ID = id
		}
		if err := assoc.Delete(refs); err != nil {
			return err
		}
	}
	return nil
}
