package product

import (
	"context"

	"github.com/craftmarket/catalog-service/internal/assets"
	"github.com/craftmarket/catalog-service/internal/model"
)

type Repository interface {
	FindByCategory1(ctx context.Context, category1ID int64) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	FindFeatured(ctx context.Context) ([]model.Product, error)
	Create(ctx context.Context, p *model.Product) (int64, error)
	Update(ctx context.Context, p *model.Product) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// UpdateProductImages persists the canonical slot filenames written by the
	// reconciliation engine. Satisfies assets.ImageRecorder.
	UpdateProductImages(ctx context.Context, productID int64, names [assets.SlotCount]string) error
}
