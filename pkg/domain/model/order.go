package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
	OrderStatusDeleted   OrderStatus = "DELETED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCanceled, OrderStatusDeleted:
		return true
	}
	return false
}

// orderTransitions is the order state machine. DELETED is terminal:
// it has no outgoing edges and every live status may reach it.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusShipped, OrderStatusCanceled, OrderStatusDeleted},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusDeleted},
	OrderStatusDelivered: {OrderStatusDeleted},
	OrderStatusCanceled:  {OrderStatusDeleted},
	OrderStatusDeleted:   {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID          uuid.UUID   `db:"order_id"`
	UserID      uuid.UUID   `db:"user_id"`
	ProductID   uuid.UUID   `db:"product_id"`
	Quantity    int         `db:"quantity"`
	TotalPrice  float64     `db:"total_price"`
	Description *string     `db:"description"`
	Status      OrderStatus `db:"order_status"`
	OrderDate   time.Time   `db:"order_date"`
}

// OrderPatch carries the optional fields of a partial order update.
// Status is accepted on the wire but stripped before the update reaches
// storage; status changes go through the dedicated status-change path.
type OrderPatch struct {
	Quantity    *int
	TotalPrice  *float64
	Description *string
	Status      *OrderStatus
}

func (p OrderPatch) IsEmpty() bool {
	return p.Quantity == nil && p.TotalPrice == nil && p.Description == nil
}

// OrderSummary aggregates a user's non-deleted orders.
type OrderSummary struct {
	TotalOrders int     `db:"total_orders"`
	TotalAmount float64 `db:"total_amount"`
}

// OrderWithUser is the list view: an order joined with its owning user.
type OrderWithUser struct {
	Order
	User User
}

// OrderWithUserSummary is the composite detail view: an order plus the
// owning user's aggregate summary.
type OrderWithUserSummary struct {
	Order
	User UserWithOrderSummary
}

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	// Find returns the order regardless of its status; callers decide how
	// to treat tombstoned rows.
	Find(ctx context.Context, id uuid.UUID) (*Order, error)
	List(ctx context.Context) ([]OrderWithUser, error)
	// Update applies the patch to a non-deleted order and returns the
	// updated order id, or ErrOrderNotFound if no live row matched.
	Update(ctx context.Context, id uuid.UUID, patch OrderPatch) (uuid.UUID, error)
	// MarkDeleted tombstones a non-deleted order. A second call on the same
	// order returns ErrOrderNotFound.
	MarkDeleted(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	// SetStatus updates the status of a non-deleted order.
	SetStatus(ctx context.Context, id uuid.UUID, status OrderStatus) (uuid.UUID, error)
	SummarizeForUser(ctx context.Context, userID uuid.UUID) (OrderSummary, error)
}
