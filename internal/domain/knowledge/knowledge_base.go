package knowledge

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/catalog"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"github.com/merchantkit/backoffice/internal/domain/shared"
)

// Scope fixes which relation a knowledge-base entry may attach to.
// It is immutable after creation.
type Scope string

const (
	ScopeGlobal   Scope = "GLOBAL"
	ScopeProduct  Scope = "PRODUCT"
	ScopeReader   Scope = "READER"
	ScopeLocation Scope = "LOCATION"
)

// ParseScope validates and normalizes a scope value
func ParseScope(value string) (Scope, error) {
	switch Scope(strings.ToUpper(strings.TrimSpace(value))) {
	case ScopeGlobal:
		return ScopeGlobal, nil
	case ScopeProduct:
		return ScopeProduct, nil
	case ScopeReader:
		return ScopeReader, nil
	case ScopeLocation:
		return ScopeLocation, nil
	default:
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown scope: "+value)
	}
}

// Relation names a knowledge-base attachment relation. The value doubles
// as the GORM association name.
type Relation string

const (
	RelationProducts  Relation = "Products"
	RelationTerminals Relation = "Terminals"
	RelationLocations Relation = "Locations"
)

// RelationFor returns the single relation a scope permits, or false for
// GLOBAL which permits none.
func RelationFor(scope Scope) (Relation, bool) {
	switch scope {
	case ScopeProduct:
		return RelationProducts, true
	case ScopeReader:
		return RelationTerminals, true
	case ScopeLocation:
		return RelationLocations, true
	default:
		return "", false
	}
}

// KnowledgeBase is a scoped article of reference content. The populated
// attachment relation must match Scope exactly: GLOBAL attaches nothing,
// PRODUCT only products, READER only terminals, LOCATION only locations.
type KnowledgeBase struct {
	shared.TenantEntity
	Title     string   `gorm:"type:varchar(200);not null"`
	Content   string   `gorm:"type:text;not null"`
	Tags      []string `gorm:"type:jsonb;serializer:json"`
	Active    bool     `gorm:"not null;default:true"`
	Scope     Scope    `gorm:"type:varchar(20);not null"`
	Products  []catalog.Product `gorm:"many2many:knowledge_base_products"`
	Terminals []fleet.Terminal  `gorm:"many2many:knowledge_base_terminals"`
	Locations []fleet.Location  `gorm:"many2many:knowledge_base_locations"`
}

// TableName returns the table name for GORM
func (KnowledgeBase) TableName() string {
	return "knowledge_bases"
}

// NewKnowledgeBase creates a new knowledge-base entry
func NewKnowledgeBase(merchantID uuid.UUID, title, content string, scope Scope) (*KnowledgeBase, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Title is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Content is required")
	}

	return &KnowledgeBase{
		TenantEntity: shared.NewTenantEntity(merchantID),
		Title:        title,
		Content:      content,
		Tags:         []string{},
		Active:       true,
		Scope:        scope,
	}, nil
}

// AttachedIDs returns the ids currently connected on the relation the
// entry's scope permits. GLOBAL entries always return an empty set.
func (k *KnowledgeBase) AttachedIDs() []uuid.UUID {
	rel, ok := RelationFor(k.Scope)
	if !ok {
		return nil
	}
	switch rel {
	case RelationProducts:
		ids := make([]uuid.UUID, 0, len(k.Products))
		for i := range k.Products {
			ids = append(ids, k.Products[i].ID)
		}
		return ids
	case RelationTerminals:
		ids := make([]uuid.UUID, 0, len(k.Terminals))
		for i := range k.Terminals {
			ids = append(ids, k.Terminals[i].ID)
		}
		return ids
	case RelationLocations:
		ids := make([]uuid.UUID, 0, len(k.Locations))
		for i := range k.Locations {
			ids = append(ids, k.Locations[i].ID)
		}
		return ids
	}
	return nil
}

// Touch bumps the updated timestamp after a field change
func (k *KnowledgeBase) Touch() {
	k.UpdatedAt = time.Now()
}
