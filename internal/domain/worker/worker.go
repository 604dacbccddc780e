package worker

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"github.com/merchantkit/backoffice/internal/domain/shared"
)

// Worker is a configured voice-agent profile. The heavy lifting (speech,
// conversation state) lives with the external voice vendor; this row
// holds the configuration and the vendor agent reference. A worker can
// be deployed at several locations.
type Worker struct {
	shared.TenantEntity
	Name         string `gorm:"type:varchar(200);not null"`
	Language     string `gorm:"type:varchar(10);not null;default:'en'"`
	Greeting     string `gorm:"type:text"`
	SystemPrompt string `gorm:"type:text"`
	VoiceID      string `gorm:"type:varchar(255)"`
	AgentID      *string `gorm:"type:varchar(255);index"`
	Active       bool    `gorm:"not null;default:true"`
	Locations    []fleet.Location `gorm:"many2many:worker_locations"`
}

// TableName returns the table name for GORM
func (Worker) TableName() string {
	return "workers"
}

// NewWorker creates a new voice-agent profile
func NewWorker(merchantID uuid.UUID, name, language string) (*Worker, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Worker name is required")
	}
	if language == "" {
		language = "en"
	}

	return &Worker{
		TenantEntity: shared.NewTenantEntity(merchantID),
		Name:         name,
		Language:     strings.ToLower(language),
		Active:       true,
	}, nil
}

// AttachAgent records the vendor agent reference
func (w *Worker) AttachAgent(agentID string) {
	w.AgentID = &agentID
	w.UpdatedAt = time.Now()
}

// LocationIDs returns the ids of locations this worker is deployed at
func (w *Worker) LocationIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(w.Locations))
	for i := range w.Locations {
		ids = append(ids, w.Locations[i].ID)
	}
	return ids
}

// WorkerRepository defines persistence operations for workers
type WorkerRepository interface {
	shared.TenantRepository[Worker]
	// FindByAgentID looks a worker up by its vendor agent reference,
	// still merchant-filtered.
	FindByAgentID(ctx context.Context, merchantID uuid.UUID, agentID string) (*Worker, error)
	// UpdateLocations applies a reconciled connect/disconnect pair to the
	// location deployment relation.
	UpdateLocations(ctx context.Context, w *Worker, connect, disconnect []uuid.UUID) error
}
