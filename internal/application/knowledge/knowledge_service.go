package knowledge

import (
	"context"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/knowledge"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// KnowledgeBaseService handles scoped knowledge-base entries and their
// attachment relations.
type KnowledgeBaseService struct {
	repo      knowledge.KnowledgeBaseRepository
	validator *AttachmentValidator
	logger    *zap.Logger
}

// NewKnowledgeBaseService creates a new KnowledgeBaseService
func NewKnowledgeBaseService(
	repo knowledge.KnowledgeBaseRepository,
	validator *AttachmentValidator,
	logger *zap.Logger,
) *KnowledgeBaseService {
	return &KnowledgeBaseService{
		repo:      repo,
		validator: validator,
		logger:    logger,
	}
}

// Create creates an entry and connects its initial attachments. The
// attachment lists must match the scope and belong to the merchant.
func (s *KnowledgeBaseService) Create(ctx context.Context, merchantID uuid.UUID, input CreateKnowledgeBaseInput) (*KnowledgeBaseResponse, error) {
	scope, err := knowledge.ParseScope(input.Scope)
	if err != nil {
		return nil, err
	}

	ids, err := s.validator.Validate(ctx, merchantID, scope, input.Attachments)
	if err != nil {
		return nil, err
	}

	entry, err := knowledge.NewKnowledgeBase(merchantID, input.Title, input.Content, scope)
	if err != nil {
		return nil, err
	}
	if input.Tags != nil {
		entry.Tags = input.Tags
	}

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, err
	}

	if relation, ok := knowledge.RelationFor(scope); ok && len(ids) > 0 {
		if err := s.repo.UpdateAttachments(ctx, entry, relation, ids, nil); err != nil {
			return nil, err
		}
	}

	return s.respond(ctx, merchantID, entry.ID)
}

// Get fetches one entry by (merchant, id) with attachments expanded
func (s *KnowledgeBaseService) Get(ctx context.Context, merchantID, id uuid.UUID) (*KnowledgeBaseResponse, error) {
	entry, err := s.repo.FindByIDForMerchant(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	resp := NewKnowledgeBaseResponse(entry)
	return &resp, nil
}

// List fetches all entries for the merchant, newest-updated first
func (s *KnowledgeBaseService) List(ctx context.Context, merchantID uuid.UUID) ([]KnowledgeBaseResponse, error) {
	entries, err := s.repo.FindAllForMerchant(ctx, merchantID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return NewKnowledgeBaseResponses(entries), nil
}

// Update applies a partial update. Scope is immutable; when attachments
// are present the stored relation is reconciled against the desired set
// so an identical list is a no-op.
func (s *KnowledgeBaseService) Update(ctx context.Context, merchantID, id uuid.UUID, input UpdateKnowledgeBaseInput) (*KnowledgeBaseResponse, error) {
	entry, err := s.repo.FindByIDForMerchant(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}

	if input.Scope != nil {
		scope, err := knowledge.ParseScope(*input.Scope)
		if err != nil {
			return nil, err
		}
		if scope != entry.Scope {
			return nil, shared.ErrImmutableField
		}
	}

	// Validate attachments before touching the row so a rejected list
	// leaves the entry unchanged.
	var desired []uuid.UUID
	if input.Attachments != nil {
		desired, err = s.validator.Validate(ctx, merchantID, entry.Scope, *input.Attachments)
		if err != nil {
			return nil, err
		}
	}

	if input.Title != nil {
		entry.Title = *input.Title
	}
	if input.Content != nil {
		entry.Content = *input.Content
	}
	if input.Tags != nil {
		entry.Tags = input.Tags
	}
	if input.Active != nil {
		entry.Active = *input.Active
	}
	entry.Touch()

	if err := s.repo.Save(ctx, entry); err != nil {
		return nil, err
	}

	if input.Attachments != nil {
		if relation, ok := knowledge.RelationFor(entry.Scope); ok {
			connect, disconnect := shared.ReconcileIDs(entry.AttachedIDs(), desired)
			if len(connect) > 0 || len(disconnect) > 0 {
				if err := s.repo.UpdateAttachments(ctx, entry, relation, connect, disconnect); err != nil {
					return nil, err
				}
			}
		}
	}

	return s.respond(ctx, merchantID, entry.ID)
}

// Delete removes an entry. Join rows go with it; attached entities are
// untouched.
func (s *KnowledgeBaseService) Delete(ctx context.Context, merchantID, id uuid.UUID) error {
	return s.repo.DeleteForMerchant(ctx, merchantID, id)
}

// respond re-reads the entry so the response reflects the attachment
// state after reconciliation.
func (s *KnowledgeBaseService) respond(ctx context.Context, merchantID, id uuid.UUID) (*KnowledgeBaseResponse, error) {
	entry, err := s.repo.FindByIDForMerchant(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	resp := NewKnowledgeBaseResponse(entry)
	return &resp, nil
}
