package worker

import (
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/worker"
)

// CreateWorkerInput contains input for worker creation
type CreateWorkerInput struct {
	Name         string
	Language     string
	Greeting     string
	SystemPrompt string
	VoiceID      string
	AgentID      *string
	LocationIDs  []uuid.UUID
}

// UpdateWorkerInput contains partial-update input for a worker. A nil
// LocationIDs leaves the deployment set untouched; an empty non-nil
// slice clears it.
type UpdateWorkerInput struct {
	Name         *string
	Language     *string
	Greeting     *string
	SystemPrompt *string
	VoiceID      *string
	AgentID      *string
	Active       *bool
	LocationIDs  []uuid.UUID
	ClearAgent   bool
}

// WorkerLocationRef is a compact reference to a deployment location
type WorkerLocationRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// WorkerResponse is the API shape of a worker
type WorkerResponse struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Language     string              `json:"language"`
	Greeting     string              `json:"greeting"`
	SystemPrompt string              `json:"system_prompt"`
	VoiceID      string              `json:"voice_id"`
	AgentID      *string             `json:"agent_id"`
	Active       bool                `json:"active"`
	Locations    []WorkerLocationRef `json:"locations"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// NewWorkerResponse converts a worker to its API shape
func NewWorkerResponse(w *worker.Worker) WorkerResponse {
	resp := WorkerResponse{
		ID:           w.ID,
		Name:         w.Name,
		Language:     w.Language,
		Greeting:     w.Greeting,
		SystemPrompt: w.SystemPrompt,
		VoiceID:      w.VoiceID,
		AgentID:      w.AgentID,
		Active:       w.Active,
		Locations:    []WorkerLocationRef{},
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
	for i := range w.Locations {
		resp.Locations = append(resp.Locations, WorkerLocationRef{
			ID:   w.Locations[i].ID,
			Name: w.Locations[i].DisplayName,
		})
	}
	return resp
}

// NewWorkerResponses converts a slice of workers
func NewWorkerResponses(workers []worker.Worker) []WorkerResponse {
	out := make([]WorkerResponse, len(workers))
	for i := range workers {
		out[i] = NewWorkerResponse(&workers[i])
	}
	return out
}
