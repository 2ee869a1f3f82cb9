package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/craftmarket/catalog-service/internal/auth"
	"github.com/craftmarket/catalog-service/internal/model"
	"github.com/craftmarket/catalog-service/pkg/logger"
)

type authUseCase struct {
	repo      auth.Repository
	jwtSecret string
	logger    logger.ZapLogger
}

func NewAuthUseCase(repo auth.Repository, jwtSecret string, log logger.ZapLogger) auth.UseCase {
	return &authUseCase{
		repo:      repo,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (string, *model.Administrator, error) {
	admin, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if admin == nil {
		return "", nil, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.AdministratorPassword), []byte(password)); err != nil {
		uc.logger.Info("password comparison failed", zap.String("email", email))
		return "", nil, auth.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(uc.jwtSecret, admin.AdministratorID, admin.AdministratorEmail)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}
