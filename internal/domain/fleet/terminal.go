package fleet

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/shared"
)

// Terminal is a physical card-reading device. It belongs to exactly one
// merchant, optionally one location, and mirrors a processor reader
// object. Overrides is a free-form device metadata bag.
type Terminal struct {
	shared.TenantEntity
	Label          string            `gorm:"type:varchar(200);not null"`
	LocationID     *uuid.UUID        `gorm:"type:uuid;index"`
	Location       *Location         `gorm:"foreignKey:LocationID"`
	Overrides      map[string]string `gorm:"type:jsonb;serializer:json"`
	Active         bool              `gorm:"not null;default:true"`
	StripeReaderID *string           `gorm:"type:varchar(255);index"`
}

// TableName returns the table name for GORM
func (Terminal) TableName() string {
	return "terminals"
}

// NewTerminal creates a new terminal
func NewTerminal(merchantID uuid.UUID, label string, locationID *uuid.UUID) (*Terminal, error) {
	if strings.TrimSpace(label) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Terminal label is required")
	}

	return &Terminal{
		TenantEntity: shared.NewTenantEntity(merchantID),
		Label:        label,
		LocationID:   locationID,
		Overrides:    map[string]string{},
		Active:       true,
	}, nil
}

// AttachStripeReader records the mirrored processor reader reference
func (t *Terminal) AttachStripeReader(readerID string) {
	t.StripeReaderID = &readerID
	t.UpdatedAt = time.Now()
}

// HasStripeReader reports whether a processor mirror exists
func (t *Terminal) HasStripeReader() bool {
	return t.StripeReaderID != nil && *t.StripeReaderID != ""
}

// AssignLocation moves the terminal to a location (or detaches it when nil)
func (t *Terminal) AssignLocation(locationID *uuid.UUID) {
	t.LocationID = locationID
	t.UpdatedAt = time.Now()
}

// SetOverride stores a single device metadata override
func (t *Terminal) SetOverride(key, value string) {
	if t.Overrides == nil {
		t.Overrides = map[string]string{}
	}
	t.Overrides[key] = value
	t.UpdatedAt = time.Now()
}
