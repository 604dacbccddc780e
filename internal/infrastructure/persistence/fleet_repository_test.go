package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// LocationModelSQLite is a SQLite-compatible version of the locations table for testing
type LocationModelSQLite struct {
	ID                string `gorm:"primaryKey"`
	MerchantID        string `gorm:"not null;index"`
	DisplayName       string `gorm:"not null"`
	AddressLine1      string `gorm:"column:address_line1"`
	AddressLine2      string `gorm:"column:address_line2"`
	AddressCity       string `gorm:"column:address_city"`
	AddressState      string `gorm:"column:address_state"`
	AddressPostalCode string `gorm:"column:address_postal_code"`
	AddressCountry    string `gorm:"column:address_country"`
	Active            bool   `gorm:"not null;default:true"`
	StripeLocationID  *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (LocationModelSQLite) TableName() string {
	return "locations"
}

// TerminalModelSQLite is a SQLite-compatible version of the terminals table for testing
type TerminalModelSQLite struct {
	ID             string `gorm:"primaryKey"`
	MerchantID     string `gorm:"not null;index"`
	Label          string `gorm:"not null"`
	LocationID     *string
	Overrides      string
	Active         bool `gorm:"not null;default:true"`
	StripeReaderID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (TerminalModelSQLite) TableName() string {
	return "terminals"
}

func setupFleetTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&LocationModelSQLite{}, &TerminalModelSQLite{})
	require.NoError(t, err)

	return db
}

func createPersistedLocation(t *testing.T, repo *GormLocationRepository, merchantID uuid.UUID, name string) *fleet.Location {
	t.Helper()
	location, err := fleet.NewLocation(merchantID, name, fleet.Address{
		Line1: "1 Main St",
		City:  "Springfield",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), location))
	return location
}

func createPersistedTerminal(t *testing.T, repo *GormTerminalRepository, merchantID uuid.UUID, locationID *uuid.UUID) *fleet.Terminal {
	t.Helper()
	terminal, err := fleet.NewTerminal(merchantID, "Counter reader", locationID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), terminal))
	return terminal
}

func TestGormTerminalRepository_FindByLocation(t *testing.T) {
	db := setupFleetTestDB(t)
	locations := NewGormLocationRepository(db)
	terminals := NewGormTerminalRepository(db)
	ctx := context.Background()

	merchantID := uuid.New()
	location := createPersistedLocation(t, locations, merchantID, "Front Counter")
	location.AttachStripeLocation("tml_123")
	require.NoError(t, locations.Save(ctx, location))

	assigned := createPersistedTerminal(t, terminals, merchantID, &location.ID)
	createPersistedTerminal(t, terminals, merchantID, nil)

	t.Run("returns assigned terminals with their location", func(t *testing.T) {
		found, err := terminals.FindByLocation(ctx, merchantID, location.ID)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, assigned.ID, found[0].ID)

		require.NotNil(t, found[0].Location)
		require.NotNil(t, found[0].Location.StripeLocationID)
		assert.Equal(t, "tml_123", *found[0].Location.StripeLocationID)
	})

	t.Run("is scoped to the merchant", func(t *testing.T) {
		found, err := terminals.FindByLocation(ctx, uuid.New(), location.ID)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestGormTerminalRepository_FindByIDForMerchant_PreloadsLocation(t *testing.T) {
	db := setupFleetTestDB(t)
	locations := NewGormLocationRepository(db)
	terminals := NewGormTerminalRepository(db)
	ctx := context.Background()

	merchantID := uuid.New()
	location := createPersistedLocation(t, locations, merchantID, "Front Counter")
	terminal := createPersistedTerminal(t, terminals, merchantID, &location.ID)

	found, err := terminals.FindByIDForMerchant(ctx, merchantID, terminal.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Location)
	assert.Equal(t, "Front Counter", found.Location.DisplayName)
}

func TestGormLocationRepository_TenantIsolation(t *testing.T) {
	db := setupFleetTestDB(t)
	repo := NewGormLocationRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	location := createPersistedLocation(t, repo, ownerID, "Front Counter")

	found, err := repo.FindByIDForMerchant(ctx, uuid.New(), location.ID)
	assert.Nil(t, found)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
