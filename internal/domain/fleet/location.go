package fleet

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/shared"
)

// Address is a physical street address embedded in a location row
type Address struct {
	Line1      string `gorm:"column:address_line1;type:varchar(255)"`
	Line2      string `gorm:"column:address_line2;type:varchar(255)"`
	City       string `gorm:"column:address_city;type:varchar(100)"`
	State      string `gorm:"column:address_state;type:varchar(100)"`
	PostalCode string `gorm:"column:address_postal_code;type:varchar(20)"`
	Country    string `gorm:"column:address_country;type:varchar(2)"`
}

// Location is a physical place of business. It owns zero or more
// terminals and mirrors a processor terminal location so readers can be
// registered against it.
type Location struct {
	shared.TenantEntity
	DisplayName      string `gorm:"type:varchar(200);not null"`
	Address          Address `gorm:"embedded"`
	Active           bool    `gorm:"not null;default:true"`
	StripeLocationID *string `gorm:"type:varchar(255);index"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new location
func NewLocation(merchantID uuid.UUID, displayName string, address Address) (*Location, error) {
	if strings.TrimSpace(displayName) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Display name is required")
	}
	if strings.TrimSpace(address.Line1) == "" || strings.TrimSpace(address.City) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Address line1 and city are required")
	}
	if address.Country == "" {
		address.Country = "US"
	}
	address.Country = strings.ToUpper(address.Country)

	return &Location{
		TenantEntity: shared.NewTenantEntity(merchantID),
		DisplayName:  displayName,
		Address:      address,
		Active:       true,
	}, nil
}

// AttachStripeLocation records the mirrored processor location reference
func (l *Location) AttachStripeLocation(locationID string) {
	l.StripeLocationID = &locationID
	l.UpdatedAt = time.Now()
}

// HasStripeLocation reports whether a processor mirror exists
func (l *Location) HasStripeLocation() bool {
	return l.StripeLocationID != nil && *l.StripeLocationID != ""
}
