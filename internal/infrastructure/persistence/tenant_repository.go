package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormTenantRepository implements the merchant-scoped repository pattern
// once, instead of re-deriving the fetch-by-id-and-merchant logic per
// entity. Concrete repositories embed it and add entity-specific
// finders.
type gormTenantRepository[T any] struct {
	db       *gorm.DB
	preloads []string
}

func newGormTenantRepository[T any](db *gorm.DB, preloads ...string) gormTenantRepository[T] {
	return gormTenantRepository[T]{db: db, preloads: preloads}
}

func (r *gormTenantRepository[T]) withPreloads(db *gorm.DB) *gorm.DB {
	for _, p := range r.preloads {
		db = db.Preload(p)
	}
	return db
}

// FindByID finds an entity by id without merchant filtering. Reserved
// for internal wiring; handlers go through FindByIDForMerchant.
func (r *gormTenantRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.withPreloads(r.db.WithContext(ctx)).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindByIDForMerchant finds an entity by (merchant_id, id). A row owned
// by another merchant yields the same ErrNotFound as a missing row.
func (r *gormTenantRepository[T]) FindByIDForMerchant(ctx context.Context, merchantID, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.withPreloads(r.db.WithContext(ctx)).
		Where("merchant_id = ? AND id = ?", merchantID, id).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAllForMerchant finds all entities for a merchant
func (r *gormTenantRepository[T]) FindAllForMerchant(ctx context.Context, merchantID uuid.UUID, filter shared.Filter) ([]T, error) {
	var entities []T
	query := applyFilter(
		r.withPreloads(r.db.WithContext(ctx).Model(new(T))).Where("merchant_id = ?", merchantID),
		filter,
	)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Save inserts or updates an entity
func (r *gormTenantRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(entity).Error
}

// Delete removes an entity by id
func (r *gormTenantRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForMerchant removes an entity by (merchant_id, id), clearing
// association join rows.
func (r *gormTenantRepository[T]) DeleteForMerchant(ctx context.Context, merchantID, id uuid.UUID) error {
	entity, err := r.FindByIDForMerchant(ctx, merchantID, id)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(entity).Error
}

// CountByIDs counts how many of the given ids belong to the merchant.
// Callers compare the count to the number of requested ids to detect
// foreign references.
func (r *gormTenantRepository[T]) CountByIDs(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(new(T)).
		Where("merchant_id = ? AND id IN ?", merchantID, ids).
		Count(&count).Error
	return count, err
}

// applyFilter applies ordering and pagination. The order column is
// allowlisted to avoid SQL injection through query parameters.
func applyFilter(db *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	switch orderBy {
	case "created_at", "updated_at", "name", "title":
	default:
		orderBy = "updated_at"
	}
	orderDir := strings.ToLower(filter.OrderDir)
	if orderDir != "asc" {
		orderDir = "desc"
	}
	db = db.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	return db
}
