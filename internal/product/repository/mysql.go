package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/craftmarket/catalog-service/internal/apperrors"
	"github.com/craftmarket/catalog-service/internal/assets"
	"github.com/craftmarket/catalog-service/internal/model"
	"github.com/craftmarket/catalog-service/pkg/database/mysql"
)

type MySQLRepository struct {
	DB *sqlx.DB
}

func NewMySQLRepository(db *sqlx.DB) *MySQLRepository {
	return &MySQLRepository{DB: db}
}

// Explicit column list: the joined category tables repeat ID columns, so a
// bare product.* join would produce ambiguous scans.
const productColumns = `
    product.productID, product.productName, product.productDescription,
    product.productPrice, product.productFeatured, product.productFileName,
    product.productImage0, product.productImage1, product.productImage2, product.productImage3,
    product.category1ID, product.category2ID, product.category3ID,
    category1.category1Name, category2.category2Name, category3.category3Name`

const productJoins = `
    FROM product
    LEFT OUTER JOIN category1 ON category1.category1ID = product.category1ID
    LEFT OUTER JOIN category2 ON category2.category2ID = product.category2ID
    LEFT OUTER JOIN category3 ON category3.category3ID = product.category3ID`

func (r *MySQLRepository) FindByCategory1(ctx context.Context, category1ID int64) ([]model.Product, error) {
	query := `SELECT` + productColumns + productJoins + ` WHERE product.category1ID = ?`

	var products []model.Product
	err := mysql.Do(ctx, func() error {
		products = products[:0]
		return r.DB.SelectContext(ctx, &products, query, category1ID)
	})
	if err != nil {
		return nil, &apperrors.DataAccessError{Op: "product.FindByCategory1", Err: err}
	}
	return products, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT` + productColumns + productJoins + ` WHERE product.productID = ?`

	var p model.Product
	err := mysql.Do(ctx, func() error {
		return r.DB.GetContext(ctx, &p, query, id)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, &apperrors.DataAccessError{Op: "product.FindByID", Err: err}
	}
	return &p, nil
}

func (r *MySQLRepository) FindFeatured(ctx context.Context) ([]model.Product, error) {
	query := `SELECT` + productColumns + productJoins + ` WHERE product.productFeatured = 1`

	var products []model.Product
	err := mysql.Do(ctx, func() error {
		products = products[:0]
		return r.DB.SelectContext(ctx, &products, query)
	})
	if err != nil {
		return nil, &apperrors.DataAccessError{Op: "product.FindFeatured", Err: err}
	}
	return products, nil
}

func (r *MySQLRepository) Create(ctx context.Context, p *model.Product) (int64, error) {
	query := `
        INSERT INTO product (
            productName, productDescription, productPrice, productFeatured,
            productFileName, productImage0, productImage1, productImage2, productImage3,
            category1ID, category2ID, category3ID
        ) VALUES (?, ?, ?, ?, '', '', '', '', '', ?, ?, ?)`

	var id int64
	err := mysql.Do(ctx, func() error {
		res, err := r.DB.ExecContext(ctx, query,
			p.ProductName, p.ProductDescription, p.ProductPrice, p.ProductFeatured,
			p.Category1ID, p.Category2ID, p.Category3ID)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, &apperrors.DataAccessError{Op: "product.Create", Err: err}
	}
	return id, nil
}

func (r *MySQLRepository) Update(ctx context.Context, p *model.Product) (bool, error) {
	query := `
        UPDATE product SET
            productName = ?, productDescription = ?, productPrice = ?, productFeatured = ?,
            category1ID = ?, category2ID = ?, category3ID = ?
        WHERE productID = ?`

	var affected int64
	err := mysql.Do(ctx, func() error {
		res, err := r.DB.ExecContext(ctx, query,
			p.ProductName, p.ProductDescription, p.ProductPrice, p.ProductFeatured,
			p.Category1ID, p.Category2ID, p.Category3ID, p.ProductID)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, &apperrors.DataAccessError{Op: "product.Update", Err: err}
	}
	return affected > 0, nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id int64) (bool, error) {
	var affected int64
	err := mysql.Do(ctx, func() error {
		res, err := r.DB.ExecContext(ctx, `DELETE FROM product WHERE productID = ?`, id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, &apperrors.DataAccessError{Op: "product.Delete", Err: err}
	}
	return affected > 0, nil
}

// UpdateProductImages writes the canonical slot filenames back onto the row.
// The legacy productFileName column is cleared at the same time: once a row
// carries slot filenames the canonical layout owns it.
func (r *MySQLRepository) UpdateProductImages(ctx context.Context, productID int64, names [assets.SlotCount]string) error {
	query := `
        UPDATE product SET
            productImage0 = ?, productImage1 = ?, productImage2 = ?, productImage3 = ?,
            productFileName = ''
        WHERE productID = ?`

	err := mysql.Do(ctx, func() error {
		_, err := r.DB.ExecContext(ctx, query, names[0], names[1], names[2], names[3], productID)
		return err
	})
	if err != nil {
		return &apperrors.DataAccessError{Op: "product.UpdateProductImages", Err: err}
	}
	return nil
}
