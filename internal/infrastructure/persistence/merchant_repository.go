package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/catalog"
	"github.com/merchantkit/backoffice/internal/domain/fleet"
	"github.com/merchantkit/backoffice/internal/domain/identity"
	"github.com/merchantkit/backoffice/internal/domain/knowledge"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/domain/worker"
	"gorm.io/gorm"
)

// GormMerchantRepository implements identity.MerchantRepository using GORM
type GormMerchantRepository struct {
	db *gorm.DB
}

// NewGormMerchantRepository creates a new GormMerchantRepository
func NewGormMerchantRepository(db *gorm.DB) *GormMerchantRepository {
	return &GormMerchantRepository{db: db}
}

// FindByID finds a merchant by id
func (r *GormMerchantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Merchant, error) {
	var merchant identity.Merchant
	if err := r.db.WithContext(ctx).First(&merchant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

// FindByUserEmail resolves a principal email to its single merchant
func (r *GormMerchantRepository) FindByUserEmail(ctx context.Context, email string) (*identity.Merchant, error) {
	var merchant identity.Merchant
	if err := r.db.WithContext(ctx).
		Where("user_email = ?", strings.ToLower(email)).
		First(&merchant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

// FindByStripeAccountID looks a merchant up by its connected-account id.
// Used by the webhook dispatcher.
func (r *GormMerchantRepository) FindByStripeAccountID(ctx context.Context, accountID string) (*identity.Merchant, error) {
	var merchant identity.Merchant
	if err := r.db.WithContext(ctx).
		Where("stripe_account_id = ?", accountID).
		First(&merchant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &merchant, nil
}

// ExistsByUserEmail reports whether a merchant exists for the email
func (r *GormMerchantRepository) ExistsByUserEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&identity.Merchant{}).
		Where("user_email = ?", strings.ToLower(email)).
		Count(&count).Error
	return count > 0, err
}

// Save inserts or updates a merchant
func (r *GormMerchantRepository) Save(ctx context.Context, merchant *identity.Merchant) error {
	return r.db.WithContext(ctx).Save(merchant).Error
}

// DeleteCascade removes the merchant and every owned row in one
// transaction: join rows first, then owned entities, then the merchant
// itself. External processor cleanup is the caller's concern and never
// blocks this delete.
func (r *GormMerchantRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		kbIDs := tx.Model(&knowledge.KnowledgeBase{}).Select("id").Where("merchant_id = ?", id)
		for _, join := range []string{"knowledge_base_products", "knowledge_base_terminals", "knowledge_base_locations"} {
			if err := tx.Exec("DELETE FROM "+join+" WHERE knowledge_base_id IN (?)", kbIDs).Error; err != nil {
				return err
			}
		}

		workerIDs := tx.Model(&worker.Worker{}).Select("id").Where("merchant_id = ?", id)
		if err := tx.Exec("DELETE FROM worker_locations WHERE worker_id IN (?)", workerIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("merchant_id = ?", id).Delete(&knowledge.KnowledgeBase{}).Error; err != nil {
			return err
		}
		if err := tx.Where("merchant_id = ?", id).Delete(&worker.Worker{}).Error; err != nil {
			return err
		}
		if err := tx.Where("merchant_id = ?", id).Delete(&fleet.Terminal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("merchant_id = ?", id).Delete(&fleet.Location{}).Error; err != nil {
			return err
		}
		if err := tx.Where("merchant_id = ?", id).Delete(&catalog.Product{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&identity.Merchant{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}
