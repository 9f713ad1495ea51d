package mysql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"shopservice/pkg/domain/model"
)

type orderRepository struct {
	tx *sqlx.Tx
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	const query = `
		INSERT INTO orders (order_id, user_id, product_id, quantity, total_price, description, order_status, order_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.tx.ExecContext(ctx, query,
		order.ID, order.UserID, order.ProductID, order.Quantity,
		order.TotalPrice, order.Description, order.Status, order.OrderDate)
	if err != nil {
		return errors.Wrap(translateError(err), "insert order")
	}
	return nil
}

func (r *orderRepository) Find(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	const query = `
		SELECT order_id, user_id, product_id, quantity, total_price, description, order_status, order_date
		FROM orders
		WHERE order_id = ?`

	var order model.Order
	if err := r.tx.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, errors.Wrap(err, "select order")
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.OrderWithUser, error) {
	const query = `
		SELECT o.order_id, o.user_id, o.product_id, o.quantity, o.total_price,
		       o.description, o.order_status, o.order_date,
		       u.user_id AS "user.user_id", u.name AS "user.name",
		       u.surname AS "user.surname", u.email AS "user.email",
		       u.is_active AS "user.is_active", u.hashed_password AS "user.hashed_password"
		FROM orders o
		JOIN users u ON u.user_id = o.user_id
		ORDER BY o.order_date DESC`

	orders := make([]model.OrderWithUser, 0)
	if err := r.tx.SelectContext(ctx, &orders, query); err != nil {
		return nil, errors.Wrap(err, "select orders")
	}
	return orders, nil
}

// Update is a single parametrized statement over the live row: absent patch
// fields arrive as NULL and COALESCE keeps the stored value. The status
// column is intentionally not part of this statement.
func (r *orderRepository) Update(ctx context.Context, id uuid.UUID, patch model.OrderPatch) (uuid.UUID, error) {
	const query = `
		UPDATE orders
		SET quantity = COALESCE(?, quantity),
		    total_price = COALESCE(?, total_price),
		    description = COALESCE(?, description)
		WHERE order_id = ? AND order_status <> 'DELETED'`

	res, err := r.tx.ExecContext(ctx, query, patch.Quantity, patch.TotalPrice, patch.Description, id)
	if err != nil {
		return uuid.Nil, errors.Wrap(translateError(err), "update order")
	}
	return affectedID(res, id, model.ErrOrderNotFound)
}

func (r *orderRepository) MarkDeleted(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	const query = `
		UPDATE orders
		SET order_status = 'DELETED'
		WHERE order_id = ? AND order_status <> 'DELETED'`

	res, err := r.tx.ExecContext(ctx, query, id)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "mark order deleted")
	}
	return affectedID(res, id, model.ErrOrderNotFound)
}

func (r *orderRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (uuid.UUID, error) {
	const query = `
		UPDATE orders
		SET order_status = ?
		WHERE order_id = ? AND order_status <> 'DELETED'`

	res, err := r.tx.ExecContext(ctx, query, status, id)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "set order status")
	}
	return affectedID(res, id, model.ErrOrderNotFound)
}

func (r *orderRepository) SummarizeForUser(ctx context.Context, userID uuid.UUID) (model.OrderSummary, error) {
	const query = `
		SELECT COUNT(order_id) AS total_orders,
		       COALESCE(SUM(total_price), 0) AS total_amount
		FROM orders
		WHERE user_id = ? AND order_status <> 'DELETED'`

	var summary model.OrderSummary
	if err := r.tx.GetContext(ctx, &summary, query, userID); err != nil {
		return model.OrderSummary{}, errors.Wrap(err, "summarize orders")
	}
	return summary, nil
}
