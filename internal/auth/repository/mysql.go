package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/craftmarket/catalog-service/internal/apperrors"
	"github.com/craftmarket/catalog-service/internal/model"
	"github.com/craftmarket/catalog-service/pkg/database/mysql"
)

type MySQLRepository struct {
	DB *sqlx.DB
}

func NewMySQLRepository(db *sqlx.DB) *MySQLRepository {
	return &MySQLRepository{DB: db}
}

func (r *MySQLRepository) FindByEmail(ctx context.Context, email string) (*model.Administrator, error) {
	query := `
        SELECT administratorID, administratorName, administratorEmail, administratorPassword
        FROM administrator
        WHERE administratorEmail = ?`

	var admin model.Administrator
	err := mysql.Do(ctx, func() error {
		return r.DB.GetContext(ctx, &admin, query, email)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &apperrors.DataAccessError{Op: "auth.FindByEmail", Err: err}
	}
	return &admin, nil
}
