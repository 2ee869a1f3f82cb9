package category

import (
	"context"

	"github.com/craftmarket/catalog-service/internal/model"
)

type Repository interface {
	// FindAllRows returns the flat three-way join the tree is built from.
	FindAllRows(ctx context.Context) ([]model.CategoryRow, error)
	Rename(ctx context.Context, level int, id int64, name string) (bool, error)
	Create(ctx context.Context, level int, name string, parentID *int64) (int64, error)
	Delete(ctx context.Context, level int, id int64) (bool, error)
}
