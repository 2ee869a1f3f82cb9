package product

import (
	"context"

	"github.com/craftmarket/catalog-service/internal/assets"
	"github.com/craftmarket/catalog-service/internal/model"
	"github.com/craftmarket/catalog-service/internal/product/dto"
)

// UseCase is the product mutation façade: it sequences the database write,
// the asset side effect and the response assembly. There is no compensation
// step; when the database write succeeds and the filesystem step fails, the
// returned product is non-nil alongside the error so the handler can surface
// a partial failure distinct from a total one.
type UseCase interface {
	GetProductsByCategory(ctx context.Context, category1ID int64, baseURL string) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64, baseURL string) (*model.Product, error)
	AddProduct(ctx context.Context, input *dto.ProductDetails, uploads [][]byte, baseURL string) (*model.Product, [assets.SlotCount]error, error)
	UpdateProduct(ctx context.Context, input *dto.ProductDetails, uploads [][]byte, baseURL string) (*model.Product, [assets.SlotCount]error, error)
	DeleteProduct(ctx context.Context, id int64) error
}
