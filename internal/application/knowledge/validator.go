package knowledge

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/knowledge"
	"github.com/merchantkit/backoffice/internal/domain/shared"
)

// OwnershipCounter counts how many of the given ids belong to a
// merchant. One exists per attachable entity type.
type OwnershipCounter interface {
	CountByIDs(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) (int64, error)
}

// AttachmentValidator decides whether the attachment id lists of a
// create or update are consistent with an entry's scope, and that every
// referenced id belongs to the caller's merchant.
type AttachmentValidator struct {
	products  OwnershipCounter
	terminals OwnershipCounter
	locations OwnershipCounter
}

// NewAttachmentValidator creates a new AttachmentValidator
func NewAttachmentValidator(products, terminals, locations OwnershipCounter) *AttachmentValidator {
	return &AttachmentValidator{
		products:  products,
		terminals: terminals,
		locations: locations,
	}
}

// scopeMismatch names the relation that may not be populated under the
// given scope.
func scopeMismatch(scope knowledge.Scope, relation string) error {
	return shared.NewDomainError("SCOPE_MISMATCH",
		fmt.Sprintf("Scope %s does not permit %s attachments", scope, relation))
}

// Validate checks the request against the scope and returns the single
// accepted id list (deduplicated). GLOBAL accepts no attachments and
// returns an empty list.
func (v *AttachmentValidator) Validate(ctx context.Context, merchantID uuid.UUID, scope knowledge.Scope, req AttachmentRequest) ([]uuid.UUID, error) {
	relation, _ := knowledge.RelationFor(scope)

	if len(req.ProductIDs) > 0 && relation != knowledge.RelationProducts {
		return nil, scopeMismatch(scope, "product")
	}
	if len(req.TerminalIDs) > 0 && relation != knowledge.RelationTerminals {
		return nil, scopeMismatch(scope, "terminal")
	}
	if len(req.LocationIDs) > 0 && relation != knowledge.RelationLocations {
		return nil, scopeMismatch(scope, "location")
	}

	var ids []uuid.UUID
	var counter OwnershipCounter
	switch relation {
	case knowledge.RelationProducts:
		ids, counter = req.ProductIDs, v.products
	case knowledge.RelationTerminals:
		ids, counter = req.TerminalIDs, v.terminals
	case knowledge.RelationLocations:
		ids, counter = req.LocationIDs, v.locations
	default:
		return []uuid.UUID{}, nil
	}

	ids = shared.UniqueIDs(ids)
	if len(ids) == 0 {
		return []uuid.UUID{}, nil
	}

	count, err := counter.CountByIDs(ctx, merchantID, ids)
	if err != nil {
		return nil, err
	}
	if count != int64(len(ids)) {
		// Missing and foreign rows are indistinguishable.
		return nil, shared.ErrForeignReference
	}

	return ids, nil
}
