package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"shopservice/pkg/domain/model"
)

var (
	ErrInvalidQuantity         = errors.New("quantity must be greater than zero")
	ErrInvalidTotalPrice       = errors.New("total price must be greater than zero")
	ErrNoFieldsProvided        = errors.New("no fields provided for update")
	ErrInvalidOrderStatus      = errors.New("unknown order status")
	ErrInvalidStatusTransition = errors.New("order status transition is not allowed")
)

type CreateOrderInput struct {
	UserID      uuid.UUID
	ProductID   uuid.UUID
	Quantity    int
	TotalPrice  float64
	Description *string
}

type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, patch model.OrderPatch) (uuid.UUID, error)
	ChangeOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus model.OrderStatus) (uuid.UUID, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*model.OrderWithUserSummary, error)
	ListOrders(ctx context.Context) ([]model.OrderWithUser, error)
}

func NewOrderService(uow model.UnitOfWork) OrderService {
	return &orderService{uow: uow}
}

type orderService struct {
	uow model.UnitOfWork
}

// CreateOrder inserts a PENDING order and reserves its quantity from the
// product's stock in one transaction. Either both effects commit or
// neither does: an order never exists without the stock having been
// reserved, and stock is never reserved without an order.
func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*model.Order, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if input.TotalPrice <= 0 {
		return nil, ErrInvalidTotalPrice
	}

	var created *model.Order
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		product, err := provider.ProductRepository().Find(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if product.StockQuantity < input.Quantity {
			return model.ErrInsufficientStock
		}

		order := &model.Order{
			ID:          uuid.New(),
			UserID:      input.UserID,
			ProductID:   input.ProductID,
			Quantity:    input.Quantity,
			TotalPrice:  input.TotalPrice,
			Description: input.Description,
			Status:      model.OrderStatusPending,
			OrderDate:   time.Now().UTC(),
		}
		if err := provider.OrderRepository().Create(ctx, order); err != nil {
			return err
		}
		if _, err := provider.ProductRepository().AdjustStock(ctx, input.ProductID, -input.Quantity); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CancelOrder restores the order's quantity to the product's stock and
// tombstones the order in one transaction. Cancelling an already deleted
// order fails with ErrOrderNotFound so stock is never restored twice.
func (s *orderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error) {
	var deletedID uuid.UUID
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		order, err := provider.OrderRepository().Find(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status == model.OrderStatusDeleted {
			return model.ErrOrderNotFound
		}

		if _, err := provider.ProductRepository().AdjustStock(ctx, order.ProductID, order.Quantity); err != nil {
			return err
		}

		deletedID, err = provider.OrderRepository().MarkDeleted(ctx, orderID)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return deletedID, nil
}

// UpdateOrder applies a partial update to a non-deleted order. The status
// field is stripped before the patch reaches storage; status changes must
// go through ChangeOrderStatus. Stock is not reconciled here even when
// quantity changes.
func (s *orderService) UpdateOrder(ctx context.Context, orderID uuid.UUID, patch model.OrderPatch) (uuid.UUID, error) {
	patch.Status = nil
	if patch.IsEmpty() {
		return uuid.Nil, ErrNoFieldsProvided
	}
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return uuid.Nil, ErrInvalidQuantity
	}
	if patch.TotalPrice != nil && *patch.TotalPrice <= 0 {
		return uuid.Nil, ErrInvalidTotalPrice
	}

	var updatedID uuid.UUID
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		var err error
		updatedID, err = provider.OrderRepository().Update(ctx, orderID, patch)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return updatedID, nil
}

// ChangeOrderStatus moves the order along the state machine. Illegal edges
// are rejected; DELETED is terminal and unreachable through this path other
// than from a live status.
func (s *orderService) ChangeOrderStatus(ctx context.Context, orderID uuid.UUID, newStatus model.OrderStatus) (uuid.UUID, error) {
	if !newStatus.Valid() {
		return uuid.Nil, ErrInvalidOrderStatus
	}

	var updatedID uuid.UUID
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		order, err := provider.OrderRepository().Find(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status == model.OrderStatusDeleted {
			return model.ErrOrderNotFound
		}
		if !order.Status.CanTransitionTo(newStatus) {
			return ErrInvalidStatusTransition
		}

		updatedID, err = provider.OrderRepository().SetStatus(ctx, orderID, newStatus)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return updatedID, nil
}

// GetOrder returns the order together with the owning user and that user's
// order summary. The reads are separate statements under read-committed
// visibility, not a snapshot.
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.OrderWithUserSummary, error) {
	var view *model.OrderWithUserSummary
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		order, err := provider.OrderRepository().Find(ctx, orderID)
		if err != nil {
			return err
		}
		user, err := provider.UserRepository().Find(ctx, order.UserID)
		if err != nil {
			return err
		}
		summary, err := provider.OrderRepository().SummarizeForUser(ctx, order.UserID)
		if err != nil {
			return err
		}

		view = &model.OrderWithUserSummary{
			Order: *order,
			User: model.UserWithOrderSummary{
				User:        *user,
				TotalOrders: summary.TotalOrders,
				TotalAmount: summary.TotalAmount,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *orderService) ListOrders(ctx context.Context) ([]model.OrderWithUser, error) {
	var orders []model.OrderWithUser
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		var err error
		orders, err = provider.OrderRepository().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
