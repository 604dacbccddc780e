package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/merchantkit/backoffice/internal/domain/catalog"
	"github.com/merchantkit/backoffice/internal/domain/identity"
	"github.com/merchantkit/backoffice/internal/domain/shared"
	"github.com/merchantkit/backoffice/internal/infrastructure/stripegateway"
	"go.uber.org/zap"
)

// KnowledgeBaseChecker verifies knowledge-base ids belong to a merchant
type KnowledgeBaseChecker interface {
	CountByIDs(ctx context.Context, merchantID uuid.UUID, ids []uuid.UUID) (int64, error)
}

// ProductService handles product CRUD and the processor product mirror
type ProductService struct {
	productRepo   catalog.ProductRepository
	knowledgeRepo KnowledgeBaseChecker
	gateway       stripegateway.Gateway
	logger        *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(
	productRepo catalog.ProductRepository,
	knowledgeRepo KnowledgeBaseChecker,
	gateway stripegateway.Gateway,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		knowledgeRepo: knowledgeRepo,
		gateway:       gateway,
		logger:        logger,
	}
}

// Create creates a product for the merchant. When the merchant has a
// connected account the product is mirrored to the processor; a mirror
// failure fails the create since the row is not yet persisted.
func (s *ProductService) Create(ctx context.Context, merchant *identity.Merchant, input CreateProductInput) (*ProductResponse, error) {
	product, err := catalog.NewProduct(merchant.ID, input.Name, input.PriceAmount, input.Currency)
	if err != nil {
		return nil, err
	}
	product.Description = input.Description
	if input.Tags != nil {
		product.Tags = input.Tags
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}

	if merchant.HasStripeAccount() {
		refs, err := s.gateway.CreateProduct(ctx, *merchant.StripeAccountID, stripegateway.ProductInput{
			Name:        product.Name,
			Description: product.Description,
			Active:      product.Active,
			Amount:      product.PriceAmount,
			Currency:    product.Currency,
		})
		if err != nil {
			return nil, err
		}
		product.AttachStripeProduct(refs.ProductID, refs.PriceID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		if product.HasStripeProduct() && merchant.HasStripeAccount() {
			// Local insert failed after the mirror was created; archive
			// the remote object best-effort.
			if archiveErr := s.gateway.ArchiveProduct(ctx, *merchant.StripeAccountID, *product.StripeProductID); archiveErr != nil {
				s.logger.Warn("Failed to archive mirror after insert failure",
					zap.String("product_id", *product.StripeProductID),
					zap.Error(archiveErr))
			}
		}
		return nil, err
	}

	resp := NewProductResponse(product)
	return &resp, nil
}

// Get fetches one product by (merchant, id)
func (s *ProductService) Get(ctx context.Context, merchantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForMerchant(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}
	resp := NewProductResponse(product)
	return &resp, nil
}

// List fetches all products for the merchant, newest-updated first
func (s *ProductService) List(ctx context.Context, merchantID uuid.UUID) ([]ProductResponse, error) {
	products, err := s.productRepo.FindAllForMerchant(ctx, merchantID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return NewProductResponses(products), nil
}

// Search finds products by name substring within the merchant
func (s *ProductService) Search(ctx context.Context, merchantID uuid.UUID, query string) ([]ProductResponse, error) {
	products, err := s.productRepo.SearchByName(ctx, merchantID, query, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return NewProductResponses(products), nil
}

// Update applies a partial update. The processor mirror is refreshed
// best-effort; a mirror failure does not fail the local write.
func (s *ProductService) Update(ctx context.Context, merchant *identity.Merchant, id uuid.UUID, input UpdateProductInput) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForMerchant(ctx, merchant.ID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := product.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceAmount != nil || input.Currency != nil {
		amount := product.PriceAmount
		currency := product.Currency
		if input.PriceAmount != nil {
			amount = *input.PriceAmount
		}
		if input.Currency != nil {
			currency = *input.Currency
		}
		if err := product.SetPrice(amount, currency); err != nil {
			return nil, err
		}
	}
	if input.Tags != nil {
		product.Tags = input.Tags
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	if input.ClearKnowledgeBase {
		product.KnowledgeBaseID = nil
	} else if input.KnowledgeBaseID != nil {
		count, err := s.knowledgeRepo.CountByIDs(ctx, merchant.ID, []uuid.UUID{*input.KnowledgeBaseID})
		if err != nil {
			return nil, err
		}
		if count != 1 {
			return nil, shared.ErrForeignReference
		}
		product.KnowledgeBaseID = input.KnowledgeBaseID
	}

	if merchant.HasStripeAccount() && product.HasStripeProduct() {
		refs, err := s.gateway.UpdateProduct(ctx, *merchant.StripeAccountID,
			stripegateway.ProductRefs{ProductID: *product.StripeProductID, PriceID: derefOrEmpty(product.StripePriceID)},
			stripegateway.ProductInput{
				Name:        product.Name,
				Description: product.Description,
				Active:      product.Active,
				Amount:      product.PriceAmount,
				Currency:    product.Currency,
			})
		if err != nil {
			s.logger.Warn("Failed to refresh product mirror",
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
		} else {
			product.AttachStripeProduct(refs.ProductID, refs.PriceID)
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := NewProductResponse(product)
	return &resp, nil
}

// Delete removes a product. The processor mirror is archived
// best-effort first; its failure never blocks the local delete.
func (s *ProductService) Delete(ctx context.Context, merchant *identity.Merchant, id uuid.UUID) error {
	product, err := s.productRepo.FindByIDForMerchant(ctx, merchant.ID, id)
	if err != nil {
		return err
	}

	if merchant.HasStripeAccount() && product.HasStripeProduct() {
		if err := s.gateway.ArchiveProduct(ctx, *merchant.StripeAccountID, *product.StripeProductID); err != nil {
			s.logger.Warn("Failed to archive product mirror",
				zap.String("product_id", product.ID.String()),
				zap.Error(err))
		}
	}

	return s.productRepo.DeleteForMerchant(ctx, merchant.ID, id)
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
