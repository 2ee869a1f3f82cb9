package repository

import (
	"context"

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

func (r *MySQLRepository) FindAllRows(ctx context.Context) ([]model.CategoryRow, error) {
	query := `
        SELECT
            c1.category1ID, c1.category1Name,
            c2.category2ID, c2.category2Name,
            c3.category3ID, c3.category3Name
        FROM category1 c1
        LEFT JOIN category2 c2 ON c2.category1ID = c1.category1ID
        LEFT JOIN category3 c3 ON c3.category2ID = c2.category2ID`

	var rows []model.CategoryRow
	err := mysql.Do(ctx, func() error {
		rows = rows[:0]
		return r.DB.SelectContext(ctx, &rows, query)
	})
	if err != nil {
		return nil, &apperrors.DataAccessError{Op: "category.FindAllRows", Err: err}
	}
	return rows, nil
}

// The three levels live in separate tables, so every mutation switches on the
// level to pick its table.

func (r *MySQLRepository) Rename(ctx context.Context, level int, id int64, name string) (bool, error) {
	var query string
	switch level {
	case 1:
		query = `UPDATE category1 SET category1Name = ? WHERE category1ID = ?`
	case 2:
		query = `UPDATE category2 SET category2Name = ? WHERE category2ID = ?`
	case 3:
		query = `UPDATE category3 SET category3Name = ? WHERE category3ID = ?`
	default:
		return false, &apperrors.ValidationError{Field: "categoryLevel", Reason: "must be 1, 2, or 3"}
	}

	var affected int64
	err := mysql.Do(ctx, func() error {
		res, err := r.DB.ExecContext(ctx, query, name, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, &apperrors.DataAccessError{Op: "category.Rename", Err: err}
	}
	return affected > 0, nil
}

func (r *MySQLRepository) Create(ctx context.Context, level int, name string, parentID *int64) (int64, error) {
	var query string
	var args []interface{}
	switch level {
	case 1:
		query = `INSERT INTO category1 (category1Name) VALUES (?)`
		args = []interface{}{name}
	case 2:
		query = `INSERT INTO category2 (category2Name, category1ID) VALUES (?, ?)`
		args = []interface{}{name, parentID}
	case 3:
		query = `INSERT INTO category3 (category3Name, category2ID) VALUES (?, ?)`
		args = []interface{}{name, parentID}
	default:
		return 0, &apperrors.ValidationError{Field: "categoryLevel", Reason: "must be 1, 2, or 3"}
	}

	var id int64
	err := mysql.Do(ctx, func() error {
		res, err := r.DB.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, &apperrors.DataAccessError{Op: "category.Create", Err: err}
	}
	return id, nil
}

func (r *MySQLRepository) Delete(ctx context.Context, level int, id int64) (bool, error) {
	var query string
	switch level {
	case 1:
		query = `DELETE FROM category1 WHERE category1ID = ?`
	case 2:
		query = `DELETE FROM category2 WHERE category2ID = ?`
	case 3:
		query = `DELETE FROM category3 WHERE category3ID = ?`
	default:
		return false, &apperrors.ValidationError{Field: "categoryLevel", Reason: "must be 1, 2, or 3"}
	}

	var affected int64
	err := mysql.Do(ctx, func() error {
		res, err := r.DB.ExecContext(ctx, query, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, &apperrors.DataAccessError{Op: "category.Delete", Err: err}
	}
	return affected > 0, nil
}
