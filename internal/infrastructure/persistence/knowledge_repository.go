package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/catalog"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"github.com/merchantkit/backoffice/internal/domain/knowledge"
	"gorm.io/gorm"
)

// GormKnowledgeBaseRepository implements
// knowledge.KnowledgeBaseRepository using GORM. All finders preload the
// three attachment relations.
type GormKnowledgeBaseRepository struct {
	gormTenantRepository[knowledge.KnowledgeBase]
}

// NewGormKnowledgeBaseRepository creates a new GormKnowledgeBaseRepository
func NewGormKnowledgeBaseRepository(db *gorm.DB) *GormKnowledgeBaseRepository {
	return &GormKnowledgeBaseRepository{
		gormTenantRepository: newGormTenantRepository[knowledge.KnowledgeBase](db, "Products", "Terminals", "Locations"),
	}
}

// UpdateAttachments applies a reconciled connect/disconnect pair to one
// attachment relation. Only the delta is touched, so re-applying the
// same desired set is a no-op.
func (r *GormKnowledgeBaseRepository) UpdateAttachments(ctx context.Context, entry *knowledge.KnowledgeBase, relation knowledge.Relation, connect, disconnect []uuid.UUID) error {
	if len(connect) == 0 && len(disconnect) == 0 {
		return nil
	}

	assoc := r.db.WithContext(ctx).Model(entry).Association(string(relation))

	if len(connect) > 0 {
		if err := assoc.Append(relationRefs(relation, connect)); err != nil {
			return err
		}
	}
	if len(disconnect) > 0 {
		if err := assoc.Delete(relationRefs(relation, disconnect)); err != nil {
			return err
		}
	}
	return nil
}

// relationRefs builds id-only association targets for Append/Delete
func relationRefs(relation knowledge.Relation, ids []uuid.UUID) any {
	switch relation {
	case knowledge.RelationProducts:
		refs := make([]catalog.Product, len(ids))
		for i, id := range ids {
			refs[i].ID = id
		}
		return refs
	case knowledge.RelationTerminals:
		refs := make([]fleet.Terminal, len(ids))
		for i, id := range ids {
			refs[i].ID = id
		}
		return refs
	default:
		refs := make([]fleet.Location, len(ids))
		for i, id := range ids {
			refs[i].ID = id
		}
		return refs
	}
}
