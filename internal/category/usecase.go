package category

import (
	"context"

	"github.com/craftmarket/catalog-service/internal/category/dto"
	"github.com/craftmarket/catalog-service/internal/model"
)

type UseCase interface {
	GetCategoryTree(ctx context.Context) ([]model.CategoryNode, error)
	GetAllRows(ctx context.Context) ([]model.CategoryRow, error)
	// GetFeaturedProducts backs the storefront landing strip: featured
	// products with their image URLs resolved.
	GetFeaturedProducts(ctx context.Context, baseURL string) ([]model.Product, error)
	RenameCategory(ctx context.Context, input *dto.RenameCategoryInput) error
	CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (int64, error)
	DeleteCategory(ctx context.Context, input *dto.DeleteCategoryInput) error
}
