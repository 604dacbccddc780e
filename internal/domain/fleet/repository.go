package fleet

import (
	"context"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/shared"
)

// LocationRepository defines persistence operations for locations
type LocationRepository interface {
	shared.TenantRepository[Location]
}

// TerminalRepository defines persistence operations for terminals
type TerminalRepository interface {
	shared.TenantRepository[Terminal]
	// FindByLocation returns all terminals assigned to a location.
	FindByLocation(ctx context.Context, merchantID, locationID uuid.UUID) ([]Terminal, error)
}
