package knowledge

import (
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/knowledge"
)

// AttachmentRequest carries the three candidate relation-id lists of a
// create or update request. At most one may be populated, and it must be
// the one the entry's scope permits.
type AttachmentRequest struct {
	ProductIDs  []uuid.UUID
	TerminalIDs []uuid.UUID
	LocationIDs []uuid.UUID
}

// CreateKnowledgeBaseInput contains input for entry creation
type CreateKnowledgeBaseInput struct {
	Title       string
	Content     string
	Scope       string
	Tags        []string
	Attachments AttachmentRequest
}

// UpdateKnowledgeBaseInput contains partial-update input for an entry.
// Scope, when present, must match the stored value; it is immutable.
type UpdateKnowledgeBaseInput struct {
	Title       *string
	Content     *string
	Scope       *string
	Tags        []string
	Active      *bool
	Attachments *AttachmentRequest
}

// AttachmentRef is a compact reference to an attached entity
type AttachmentRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// KnowledgeBaseResponse is the API shape of an entry with its relation
// graph expanded.
type KnowledgeBaseResponse struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	Scope     knowledge.Scope `json:"scope"`
	Tags      []string        `json:"tags"`
	Active    bool            `json:"active"`
	Products  []AttachmentRef `json:"products"`
	Terminals []AttachmentRef `json:"terminals"`
	Locations []AttachmentRef `json:"locations"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewKnowledgeBaseResponse converts an entry to its API shape
func NewKnowledgeBaseResponse(k *knowledge.KnowledgeBase) KnowledgeBaseResponse {
	tags := k.Tags
	if tags == nil {
		tags = []string{}
	}

	resp := KnowledgeBaseResponse{
		ID:        k.ID,
		Title:     k.Title,
		Content:   k.Content,
		Scope:     k.Scope,
		Tags:      tags,
		Active:    k.Active,
		Products:  []AttachmentRef{},
		Terminals: []AttachmentRef{},
		Locations: []AttachmentRef{},
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
	for i := range k.Products {
		resp.Products = append(resp.Products, AttachmentRef{ID: k.Products[i].ID, Name: k.Products[i].Name})
	}
	for i := range k.Terminals {
		resp.Terminals = append(resp.Terminals, AttachmentRef{ID: k.Terminals[i].ID, Name: k.Terminals[i].Label})
	}
	for i := range k.Locations {
		resp.Locations = append(resp.Locations, AttachmentRef{ID: k.Locations[i].ID, Name: k.Locations[i].DisplayName})
	}
	return resp
}

// NewKnowledgeBaseResponses converts a slice of entries
func NewKnowledgeBaseResponses(entries []knowledge.KnowledgeBase) []KnowledgeBaseResponse {
	out := make([]KnowledgeBaseResponse, len(entries))
	for i := range entries {
		out[i] = NewKnowledgeBaseResponse(&entries[i])
	}
	return out
}
