package knowledge

import (
	"context"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/shared"
)

// KnowledgeBaseRepository defines persistence operations for
// knowledge-base entries. Finders preload the attachment relations.
type KnowledgeBaseRepository interface {
	shared.TenantRepository[KnowledgeBase]
	// UpdateAttachments applies a reconciled connect/disconnect pair to
	// one attachment relation, touching only what changed.
	UpdateAttachments(ctx context.Context, entry *KnowledgeBase, relation Relation, connect, disconnect []uuid.UUID) error
}
