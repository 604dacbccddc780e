package knowledge

import (
	"testing"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/catalog"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		input    string
		expected Scope
		wantErr  bool
	}{
		{"GLOBAL", ScopeGlobal, false},
		{"PRODUCT", ScopeProduct, false},
		{"READER", ScopeReader, false},
		{"LOCATION", ScopeLocation, false},
		{"global", ScopeGlobal, false},
		{"  reader  ", ScopeReader, false},
		{"TERMINAL", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		scope, err := ParseScope(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			var domainErr *shared.DomainError
			assert.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		} else {
			assert.NoError(t, err, "input %q", tt.input)
			assert.Equal(t, tt.expected, scope)
		}
	}
}

func TestRelationFor(t *testing.T) {
	rel, ok := RelationFor(ScopeProduct)
	assert.True(t, ok)
	assert.Equal(t, RelationProducts, rel)

	rel, ok = RelationFor(ScopeReader)
	assert.True(t, ok)
	assert.Equal(t, RelationTerminals, rel)

	rel, ok = RelationFor(ScopeLocation)
	assert.True(t, ok)
	assert.Equal(t, RelationLocations, rel)

	_, ok = RelationFor(ScopeGlobal)
	assert.False(t, ok)
}

func TestNewKnowledgeBase_Validation(t *testing.T) {
	merchantID := uuid.New()

	entry, err := NewKnowledgeBase(merchantID, "Opening hours", "Open 9-5 weekdays.", ScopeGlobal)
	assert.NoError(t, err)
	assert.Equal(t, merchantID, entry.MerchantID)
	assert.True(t, entry.Active)
	assert.NotEqual(t, uuid.Nil, entry.ID)

	_, err = NewKnowledgeBase(merchantID, "   ", "content", ScopeGlobal)
	assert.Error(t, err)

	_, err = NewKnowledgeBase(merchantID, "title", "", ScopeGlobal)
	assert.Error(t, err)
}

func TestKnowledgeBase_AttachedIDs(t *testing.T) {
	merchantID := uuid.New()

	global, _ := NewKnowledgeBase(merchantID, "Global", "Applies everywhere.", ScopeGlobal)
	assert.Empty(t, global.AttachedIDs())

	productID := uuid.New()
	entry, _ := NewKnowledgeBase(merchantID, "Product notes", "Details.", ScopeProduct)
	entry.Products = []catalog.Product{{Name: "Widget"}}
	entry.Products[0].ID = productID
	assert.Equal(t, []uuid.UUID{productID}, entry.AttachedIDs())

	terminalID := uuid.New()
	readerEntry, _ := NewKnowledgeBase(merchantID, "Reader notes", "Details.", ScopeReader)
	readerEntry.Terminals = []fleet.Terminal{{Label: "Front desk"}}
	readerEntry.Terminals[0].ID = terminalID
	assert.Equal(t, []uuid.UUID{terminalID}, readerEntry.AttachedIDs())
}
