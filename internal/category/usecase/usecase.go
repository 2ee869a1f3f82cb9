package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/craftmarket/catalog-service/internal/apperrors"
	"github.com/craftmarket/catalog-service/internal/assets"
	"github.com/craftmarket/catalog-service/internal/category"
	"github.com/craftmarket/catalog-service/internal/category/dto"
	"github.com/craftmarket/catalog-service/internal/model"
	"github.com/craftmarket/catalog-service/internal/product"
	"github.com/craftmarket/catalog-service/pkg/cache"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

const (
	treeCacheKey = "categories:tree"
	treeCacheTTL = 5 * time.Minute
)

type categoryUseCase struct {
	repo       category.Repository
	products   product.Repository
	reconciler *assets.Reconciler
	cache      *cache.RedisClient
	logger     logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, products product.Repository, reconciler *assets.Reconciler, cacheClient *cache.RedisClient, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:       repo,
		products:   products,
		reconciler: reconciler,
		cache:      cacheClient,
		logger:     log,
	}
}

// GetCategoryTree serves the nested navigation structure, cached briefly in
// Redis since the tree changes rarely and carries no filesystem side effects.
func (uc *categoryUseCase) GetCategoryTree(ctx context.Context) ([]model.CategoryNode, error) {
	if uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, treeCacheKey).Result(); err == nil {
			var tree []model.CategoryNode
			if err := json.Unmarshal([]byte(val), &tree); err == nil {
				return tree, nil
			}
		}
	}

	rows, err := uc.repo.FindAllRows(ctx)
	if err != nil {
		return nil, err
	}
	tree := BuildCategoryTree(rows)

	if uc.cache != nil {
		if data, err := json.Marshal(tree); err == nil {
			uc.cache.Client.Set(ctx, treeCacheKey, data, treeCacheTTL)
		}
	}
	return tree, nil
}

func (uc *categoryUseCase) GetAllRows(ctx context.Context) ([]model.CategoryRow, error) {
	return uc.repo.FindAllRows(ctx)
}

// GetFeaturedProducts is deliberately uncached: resolving image URLs is also
// the read path's self-healing sweep and has to run against the live
// directory state.
func (uc *categoryUseCase) GetFeaturedProducts(ctx context.Context, baseURL string) ([]model.Product, error) {
	products, err := uc.products.FindFeatured(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].ImageURLs = uc.reconciler.ResolveImageURLs(&products[i], baseURL)
	}
	return products, nil
}

func (uc *categoryUseCase) RenameCategory(ctx context.Context, input *dto.RenameCategoryInput) error {
	renamed, err := uc.repo.Rename(ctx, input.CategoryLevel, input.CategoryID, input.CategoryName)
	if err != nil {
		return err
	}
	if !renamed {
		return &apperrors.NotFoundError{Resource: "category"}
	}
	uc.invalidateTree(ctx)
	return nil
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (int64, error) {
	if input.CategoryLevel == 1 && input.ParentID != nil {
		return 0, &apperrors.ValidationError{Field: "parentId", Reason: "must be absent for level 1"}
	}
	if input.CategoryLevel != 1 && (input.ParentID == nil || *input.ParentID <= 0) {
		return 0, &apperrors.ValidationError{Field: "parentId", Reason: "must be a positive number for levels 2 and 3"}
	}

	id, err := uc.repo.Create(ctx, input.CategoryLevel, input.CategoryName, input.ParentID)
	if err != nil {
		return 0, err
	}
	uc.invalidateTree(ctx)

	// Row first, directory second; no compensation if the directory fails.
	if err := uc.reconciler.EnsureCategoryDir(input.CategoryPath); err != nil {
		uc.logger.Error("category row created but directory creation failed",
			zap.Int64("categoryID", id), zap.String("path", input.CategoryPath), zap.Error(err))
		return id, err
	}
	return id, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, input *dto.DeleteCategoryInput) error {
	deleted, err := uc.repo.Delete(ctx, input.CategoryLevel, input.CategoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return &apperrors.NotFoundError{Resource: "category"}
	}
	uc.invalidateTree(ctx)

	if _, err := uc.reconciler.RemoveCategoryDir(input.CategoryPath); err != nil {
		uc.logger.Error("category row deleted but directory removal failed",
			zap.Int64("categoryID", input.CategoryID), zap.String("path", input.CategoryPath), zap.Error(err))
		return err
	}
	return nil
}

func (uc *categoryUseCase) invalidateTree(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Client.Del(ctx, treeCacheKey).Err(); err != nil {
		uc.logger.Warn("failed to invalidate category tree cache", zap.Error(err))
	}
}
