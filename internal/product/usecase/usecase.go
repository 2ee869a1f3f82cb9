package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/craftmarket/catalog-service/internal/apperrors"
	"github.com/craftmarket/catalog-service/internal/assets"
	"github.com/craftmarket/catalog-service/internal/model"
	"github.com/craftmarket/catalog-service/internal/product"
	"github.com/craftmarket/catalog-service/internal/product/dto"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

type productUseCase struct {
	repo       product.Repository
	reconciler *assets.Reconciler
	logger     logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, reconciler *assets.Reconciler, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:       repo,
		reconciler: reconciler,
		logger:     log,
	}
}

func (uc *productUseCase) GetProductsByCategory(ctx context.Context, category1ID int64, baseURL string) ([]model.Product, error) {
	products, err := uc.repo.FindByCategory1(ctx, category1ID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].ImageURLs = uc.reconciler.ResolveImageURLs(&products[i], baseURL)
	}
	return products, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64, baseURL string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &apperrors.NotFoundError{Resource: "product"}
	}
	p.ImageURLs = uc.reconciler.ResolveImageURLs(p, baseURL)
	return p, nil
}

func (uc *productUseCase) AddProduct(ctx context.Context, input *dto.ProductDetails, uploads [][]byte, baseURL string) (*model.Product, [assets.SlotCount]error, error) {
	var slotErrs [assets.SlotCount]error

	p := &model.Product{
		ProductName:        input.ProductName,
		ProductDescription: input.ProductDescription,
		ProductPrice:       input.ProductPrice,
		ProductFeatured:    input.ProductFeatured,
		Category1ID:        input.Category1ID,
		Category2ID:        normalizeCategoryID(input.Category2ID),
		Category3ID:        normalizeCategoryID(input.Category3ID),
	}

	// The row goes in first: image slots are named after the productID, so the
	// insert has to happen before any file is written.
	id, err := uc.repo.Create(ctx, p)
	if err != nil {
		return nil, slotErrs, err
	}
	p.ProductID = id

	return uc.applyAndReload(ctx, p, uploads, baseURL)
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.ProductDetails, uploads [][]byte, baseURL string) (*model.Product, [assets.SlotCount]error, error) {
	var slotErrs [assets.SlotCount]error

	if input.ProductID <= 0 {
		return nil, slotErrs, &apperrors.ValidationError{Field: "productID", Reason: "must be a positive number"}
	}

	p := &model.Product{
		ProductID:          input.ProductID,
		ProductName:        input.ProductName,
		ProductDescription: input.ProductDescription,
		ProductPrice:       input.ProductPrice,
		ProductFeatured:    input.ProductFeatured,
		Category1ID:        input.Category1ID,
		Category2ID:        normalizeCategoryID(input.Category2ID),
		Category3ID:        normalizeCategoryID(input.Category3ID),
	}

	updated, err := uc.repo.Update(ctx, p)
	if err != nil {
		return nil, slotErrs, err
	}
	if !updated {
		return nil, slotErrs, &apperrors.NotFoundError{Resource: "product"}
	}

	return uc.applyAndReload(ctx, p, uploads, baseURL)
}

// applyAndReload runs the asset side effect after a successful row write, then
// rereads the row so the response reflects the persisted filenames. Roll
// forward only: an asset failure after the DB write leaves the row in place
// and comes back as an error next to the (already stored) product.
func (uc *productUseCase) applyAndReload(ctx context.Context, p *model.Product, uploads [][]byte, baseURL string) (*model.Product, [assets.SlotCount]error, error) {
	var slotErrs [assets.SlotCount]error

	if hasUploads(uploads) {
		_, errs, err := uc.reconciler.ApplyImages(ctx, p.ProductID, uploads)
		slotErrs = errs
		if err != nil {
			uc.logger.Error("image side effect failed after row write",
				zap.Int64("productID", p.ProductID), zap.Error(err))
			return p, slotErrs, err
		}
	}

	stored, err := uc.repo.FindByID(ctx, p.ProductID)
	if err != nil {
		return p, slotErrs, err
	}
	if stored == nil {
		return nil, slotErrs, &apperrors.NotFoundError{Resource: "product"}
	}
	stored.ImageURLs = uc.reconciler.ResolveImageURLs(stored, baseURL)
	return stored, slotErrs, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id int64) error {
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return &apperrors.NotFoundError{Resource: "product"}
	}

	// Missing directory is benign: a product that never had images.
	if _, err := uc.reconciler.PurgeProduct(id); err != nil {
		uc.logger.Error("failed to purge product images after delete",
			zap.Int64("productID", id), zap.Error(err))
		return err
	}
	return nil
}

func hasUploads(uploads [][]byte) bool {
	for _, u := range uploads {
		if u != nil {
			return true
		}
	}
	return false
}

// normalizeCategoryID maps the client's "absent" encodings (missing field or
// zero) to NULL.
func normalizeCategoryID(id *int64) *int64 {
	if id == nil || *id <= 0 {
		return nil
	}
	return id
}
