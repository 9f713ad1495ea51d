package tests

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"shopservice/pkg/domain/model"
)

// mockStorage is an in-memory stand-in for the transactional store. Execute
// serializes transactions with a mutex (mirroring row-lock behavior) and
// restores a snapshot when the closure fails, so partial effects are never
// observed — the same contract the MySQL unit of work provides.
type mockStorage struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*model.User
	products map[uuid.UUID]*model.Product
	orders   map[uuid.UUID]*model.Order
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		users:    make(map[uuid.UUID]*model.User),
		products: make(map[uuid.UUID]*model.Product),
		orders:   make(map[uuid.UUID]*model.Order),
	}
}

var _ model.UnitOfWork = &mockStorage{}
var _ model.RepositoryProvider = &mockStorage{}

func (s *mockStorage) Execute(_ context.Context, fn func(provider model.RepositoryProvider) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, products, orders := s.snapshot()
	if err := fn(s); err != nil {
		s.users, s.products, s.orders = users, products, orders
		return err
	}
	return nil
}

func (s *mockStorage) snapshot() (map[uuid.UUID]*model.User, map[uuid.UUID]*model.Product, map[uuid.UUID]*model.Order) {
	users := make(map[uuid.UUID]*model.User, len(s.users))
	for id, user := range s.users {
		clone := *user
		users[id] = &clone
	}
	products := make(map[uuid.UUID]*model.Product, len(s.products))
	for id, product := range s.products {
		clone := *product
		products[id] = &clone
	}
	orders := make(map[uuid.UUID]*model.Order, len(s.orders))
	for id, order := range s.orders {
		clone := *order
		orders[id] = &clone
	}
	return users, products, orders
}

func (s *mockStorage) UserRepository() model.UserRepository {
	return &mockUserRepository{storage: s}
}

func (s *mockStorage) ProductRepository() model.ProductRepository {
	return &mockProductRepository{storage: s}
}

func (s *mockStorage) OrderRepository() model.OrderRepository {
	return &mockOrderRepository{storage: s}
}

type mockUserRepository struct {
	storage *mockStorage
}

func (r *mockUserRepository) Create(_ context.Context, user *model.User) error {
	for _, existing := range r.storage.users {
		if existing.Email == user.Email {
			return model.ErrStorageConflict
		}
	}
	clone := *user
	r.storage.users[user.ID] = &clone
	return nil
}

func (r *mockUserRepository) Find(_ context.Context, id uuid.UUID) (*model.User, error) {
	user, ok := r.storage.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *mockUserRepository) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, user := range r.storage.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *mockUserRepository) Update(_ context.Context, id uuid.UUID, patch model.UserPatch) (uuid.UUID, error) {
	user, ok := r.storage.users[id]
	if !ok || !user.IsActive {
		return uuid.Nil, model.ErrUserNotFound
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Surname != nil {
		user.Surname = *patch.Surname
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	return id, nil
}

func (r *mockUserRepository) Deactivate(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	user, ok := r.storage.users[id]
	if !ok || !user.IsActive {
		return uuid.Nil, model.ErrUserNotFound
	}
	user.IsActive = false
	return id, nil
}

type mockProductRepository struct {
	storage *mockStorage
}

func (r *mockProductRepository) Create(_ context.Context, product *model.Product) error {
	clone := *product
	r.storage.products[product.ID] = &clone
	return nil
}

func (r *mockProductRepository) Find(_ context.Context, id uuid.UUID) (*model.Product, error) {
	product, ok := r.storage.products[id]
	if !ok || product.Status == model.ProductStatusDeleted {
		return nil, model.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *mockProductRepository) List(_ context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0, len(r.storage.products))
	for _, product := range r.storage.products {
		if product.Status != model.ProductStatusDeleted {
			products = append(products, *product)
		}
	}
	return products, nil
}

func (r *mockProductRepository) Update(_ context.Context, id uuid.UUID, patch model.ProductPatch) (uuid.UUID, error) {
	product, ok := r.storage.products[id]
	if !ok || product.Status == model.ProductStatusDeleted {
		return uuid.Nil, model.ErrProductNotFound
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	return id, nil
}

func (r *mockProductRepository) MarkDeleted(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	product, ok := r.storage.products[id]
	if !ok || product.Status == model.ProductStatusDeleted {
		return uuid.Nil, model.ErrProductNotFound
	}
	product.Status = model.ProductStatusDeleted
	return id, nil
}

// AdjustStock mirrors the conditional-update contract: the check and the
// write happen under the storage lock as one step.
func (r *mockProductRepository) AdjustStock(_ context.Context, id uuid.UUID, delta int) (int, error) {
	product, ok := r.storage.products[id]
	if !ok || product.Status == model.ProductStatusDeleted {
		return 0, model.ErrProductNotFound
	}
	if product.StockQuantity+delta < 0 {
		return 0, model.ErrInsufficientStock
	}
	product.StockQuantity += delta
	return product.StockQuantity, nil
}

type mockOrderRepository struct {
	storage *mockStorage
}

func (r *mockOrderRepository) Create(_ context.Context, order *model.Order) error {
	if _, ok := r.storage.users[order.UserID]; !ok {
		return model.ErrStorageConflict
	}
	if _, ok := r.storage.products[order.ProductID]; !ok {
		return model.ErrStorageConflict
	}
	clone := *order
	r.storage.orders[order.ID] = &clone
	return nil
}

func (r *mockOrderRepository) Find(_ context.Context, id uuid.UUID) (*model.Order, error) {
	order, ok := r.storage.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *mockOrderRepository) List(_ context.Context) ([]model.OrderWithUser, error) {
	orders := make([]model.OrderWithUser, 0, len(r.storage.orders))
	for _, order := range r.storage.orders {
		user, ok := r.storage.users[order.UserID]
		if !ok {
			return nil, model.ErrUserNotFound
		}
		orders = append(orders, model.OrderWithUser{Order: *order, User: *user})
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders, nil
}

func (r *mockOrderRepository) Update(_ context.Context, id uuid.UUID, patch model.OrderPatch) (uuid.UUID, error) {
	order, ok := r.storage.orders[id]
	if !ok || order.Status == model.OrderStatusDeleted {
		return uuid.Nil, model.ErrOrderNotFound
	}
	if patch.Quantity != nil {
		order.Quantity = *patch.Quantity
	}
	if patch.TotalPrice != nil {
		order.TotalPrice = *patch.TotalPrice
	}
	if patch.Description != nil {
		order.Description = patch.Description
	}
	return id, nil
}

func (r *mockOrderRepository) MarkDeleted(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	order, ok := r.storage.orders[id]
	if !ok || order.Status == model.OrderStatusDeleted {
		return uuid.Nil, model.ErrOrderNotFound
	}
	order.Status = model.OrderStatusDeleted
	return id, nil
}

func (r *mockOrderRepository) SetStatus(_ context.Context, id uuid.UUID, status model.OrderStatus) (uuid.UUID, error) {
	order, ok := r.storage.orders[id]
	if !ok || order.Status == model.OrderStatusDeleted {
		return uuid.Nil, model.ErrOrderNotFound
	}
	order.Status = status
	return id, nil
}

func (r *mockOrderRepository) SummarizeForUser(_ context.Context, userID uuid.UUID) (model.OrderSummary, error) {
	var summary model.OrderSummary
	for _, order := range r.storage.orders {
		if order.UserID == userID && order.Status != model.OrderStatusDeleted {
			summary.TotalOrders++
			summary.TotalAmount += order.TotalPrice
		}
	}
	return summary, nil
}

var _ model.PasswordManager = stubPasswordManager{}

type stubPasswordManager struct{}

func (stubPasswordManager) Hash(plainTextPassword string) (string, error) {
	return "hashed:" + plainTextPassword, nil
}

func (stubPasswordManager) Check(hashedPassword, plainTextPassword string) (bool, error) {
	return hashedPassword == "hashed:"+plainTextPassword, nil
}

func seedUser(t *testing.T, storage *mockStorage, email string) *model.User {
	t.Helper()
	user := &model.User{
		ID:             uuid.New(),
		Name:           "Ivan",
		Surname:        "Petrov",
		Email:          email,
		IsActive:       true,
		HashedPassword: "hashed:qwerty123",
	}
	storage.users[user.ID] = user
	return user
}

func seedProduct(t *testing.T, storage *mockStorage, stockQuantity int) *model.Product {
	t.Helper()
	product := &model.Product{
		ID:            uuid.New(),
		Name:          "Widget",
		Description:   "A widget",
		Price:         19.99,
		StockQuantity: stockQuantity,
		Status:        model.ProductStatusActive,
	}
	storage.products[product.ID] = product
	return product
}

func seedOrder(t *testing.T, storage *mockStorage, user *model.User, product *model.Product, quantity int, totalPrice float64, status model.OrderStatus) *model.Order {
	t.Helper()
	order := &model.Order{
		ID:         uuid.New(),
		UserID:     user.ID,
		ProductID:  product.ID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
		Status:     status,
		OrderDate:  time.Now().UTC(),
	}
	storage.orders[order.ID] = order
	return order
}

// The unit-of-work contract: a failed transaction leaves no trace.
func TestUnitOfWorkRollback(t *testing.T) {
	storage := newMockStorage()
	user := seedUser(t, storage, "ivan@example.com")
	product := seedProduct(t, storage, 10)

	wantErr := model.ErrStorageConflict
	err := storage.Execute(context.Background(), func(provider model.RepositoryProvider) error {
		order := &model.Order{
			ID:        uuid.New(),
			UserID:    user.ID,
			ProductID: product.ID,
			Quantity:  2,
			Status:    model.OrderStatusPending,
			OrderDate: time.Now().UTC(),
		}
		if err := provider.OrderRepository().Create(context.Background(), order); err != nil {
			return err
		}
		if _, err := provider.ProductRepository().AdjustStock(context.Background(), product.ID, -2); err != nil {
			return err
		}
		return wantErr
	})

	require.ErrorIs(t, err, wantErr)
	require.Empty(t, storage.orders)
	require.Equal(t, 10, storage.products[product.ID].StockQuantity)
}
