package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/catalog"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	gormTenantRepository[catalog.Product]
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{
		gormTenantRepository: newGormTenantRepository[catalog.Product](db),
	}
}

// SearchByName finds products whose name contains the query,
// case-insensitively, within a merchant.
func (r *GormProductRepository) SearchByName(ctx context.Context, merchantID uuid.UUID, query string, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	q := applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Product{}).
			Where("merchant_id = ?", merchantID).
			Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%"),
		filter,
	)
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByIDs returns the merchant's products among the given ids
func (r *GormProductRepository) FindByIDs(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).
		Where("merchant_id = ? AND id IN ?", merchantID, ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
