package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/craftmarket/catalog-service/internal/auth"
	"github.com/craftmarket/catalog-service/internal/model"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

type repoStub struct {
	admin *model.Administrator
	err   error
}

func (r *repoStub) FindByEmail(context.Context, string) (*model.Administrator, error) {
	return r.admin, r.err
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	admin := &model.Administrator{
		AdministratorID:       7,
		AdministratorEmail:    "admin@example.com",
		AdministratorPassword: hashPassword(t, "correct horse"),
	}
	uc := NewAuthUseCase(&repoStub{admin: admin}, "secret", logger.NewNop())

	token, got, err := uc.Login(context.Background(), "admin@example.com", "correct horse")
	require.NoError(t, err)
	assert.Same(t, admin, got)

	id, email, err := auth.ValidateToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "admin@example.com", email)
}

func TestLogin_WrongPassword(t *testing.T) {
	admin := &model.Administrator{
		AdministratorID:       7,
		AdministratorEmail:    "admin@example.com",
		AdministratorPassword: hashPassword(t, "correct horse"),
	}
	uc := NewAuthUseCase(&repoStub{admin: admin}, "secret", logger.NewNop())

	_, _, err := uc.Login(context.Background(), "admin@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc := NewAuthUseCase(&repoStub{}, "secret", logger.NewNop())

	_, _, err := uc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_RepositoryError(t *testing.T) {
	uc := NewAuthUseCase(&repoStub{err: assert.AnError}, "secret", logger.NewNop())

	_, _, err := uc.Login(context.Background(), "admin@example.com", "pw")
	assert.ErrorIs(t, err, assert.AnError)
}
