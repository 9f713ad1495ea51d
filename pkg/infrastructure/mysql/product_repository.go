package mysql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"shopservice/pkg/domain/model"
)

type productRepository struct {
	tx *sqlx.Tx
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	const query = `
		INSERT INTO products (product_id, name, description, price, stock_quantity, product_status)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.tx.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.StockQuantity, product.Status)
	if err != nil {
		return errors.Wrap(translateError(err), "insert product")
	}
	return nil
}

func (r *productRepository) Find(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	const query = `
		SELECT product_id, name, description, price, stock_quantity, product_status
		FROM products
		WHERE product_id = ? AND product_status <> 'DELETED'`

	var product model.Product
	if err := r.tx.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "select product")
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `
		SELECT product_id, name, description, price, stock_quantity, product_status
		FROM products
		WHERE product_status <> 'DELETED'`

	products := make([]model.Product, 0)
	if err := r.tx.SelectContext(ctx, &products, query); err != nil {
		return nil, errors.Wrap(err, "select products")
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (uuid.UUID, error) {
	const query = `
		UPDATE products
		SET name = COALESCE(?, name),
		    description = COALESCE(?, description),
		    price = COALESCE(?, price)
		WHERE product_id = ? AND product_status <> 'DELETED'`

	res, err := r.tx.ExecContext(ctx, query, patch.Name, patch.Description, patch.Price, id)
	if err != nil {
		return uuid.Nil, errors.Wrap(translateError(err), "update product")
	}
	return affectedID(res, id, model.ErrProductNotFound)
}

func (r *productRepository) MarkDeleted(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	const query = `
		UPDATE products
		SET product_status = 'DELETED'
		WHERE product_id = ? AND product_status <> 'DELETED'`

	res, err := r.tx.ExecContext(ctx, query, id)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "mark product deleted")
	}
	return affectedID(res, id, model.ErrProductNotFound)
}

// AdjustStock is the only statement in the system that writes
// stock_quantity. The guard and the write form one conditional UPDATE, so
// concurrent adjustments cannot drive the quantity negative. The
// discriminating read below runs only after the update matched nothing.
func (r *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	const query = `
		UPDATE products
		SET stock_quantity = stock_quantity + ?
		WHERE product_id = ? AND stock_quantity + ? >= 0 AND product_status <> 'DELETED'`

	res, err := r.tx.ExecContext(ctx, query, delta, id, delta)
	if err != nil {
		return 0, errors.Wrap(err, "adjust stock")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		var exists bool
		const existsQuery = `
			SELECT EXISTS (
				SELECT 1 FROM products
				WHERE product_id = ? AND product_status <> 'DELETED'
			)`
		if err := r.tx.GetContext(ctx, &exists, existsQuery, id); err != nil {
			return 0, errors.Wrap(err, "check product exists")
		}
		if !exists {
			return 0, model.ErrProductNotFound
		}
		return 0, model.ErrInsufficientStock
	}

	var quantity int
	const quantityQuery = `SELECT stock_quantity FROM products WHERE product_id = ?`
	if err := r.tx.GetContext(ctx, &quantity, quantityQuery, id); err != nil {
		return 0, errors.Wrap(err, "read adjusted stock")
	}
	return quantity, nil
}
