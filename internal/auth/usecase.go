package auth

import (
	"context"
	"errors"

	"github.com/craftmarket/catalog-service/internal/model"
)

// ErrInvalidCredentials covers both unknown email and wrong password; the
// login response never says which.
var ErrInvalidCredentials = errors.New("invalid email or password")

type UseCase interface {
	Login(ctx context.Context, email, password string) (string, *model.Administrator, error)
}
