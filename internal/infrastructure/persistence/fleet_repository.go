package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"gorm.io/gorm"
)

// GormLocationRepository implements fleet.LocationRepository using GORM
type GormLocationRepository struct {
	gormTenantRepository[fleet.Location]
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{
		gormTenantRepository: newGormTenantRepository[fleet.Location](db),
	}
}

// GormTerminalRepository implements fleet.TerminalRepository using GORM
type GormTerminalRepository struct {
	gormTenantRepository[fleet.Terminal]
}

// NewGormTerminalRepository creates a new GormTerminalRepository
func NewGormTerminalRepository(db *gorm.DB) *GormTerminalRepository {
	return &GormTerminalRepository{
		gormTenantRepository: newGormTenantRepository[fleet.Terminal](db, "Location"),
	}
}

// FindByLocation returns all terminals assigned to a location
func (r *GormTerminalRepository) FindByLocation(ctx context.Context, merchantID, locationID uuid.UUID) ([]fleet.Terminal, error) {
	var terminals []fleet.Terminal
	if err := r.withPreloads(r.db.WithContext(ctx)).
		Where("merchant_id = ? AND location_id = ?", merchantID, locationID).
		Find(&terminals).Error; err != nil {
		return nil, err
	}
	return terminals, nil
}
