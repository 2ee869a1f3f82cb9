package auth

import (
	"context"

	"github.com/craftmarket/catalog-service/internal/model"
)

type Repository interface {
	// FindByEmail returns nil, nil when no administrator has that email.
	FindByEmail(ctx context.Context, email string) (*model.Administrator, error)
}
