package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"shopservice/pkg/domain/model"
)

var (
	ErrInvalidPrice         = errors.New("price must be greater than zero")
	ErrInvalidStockQuantity = errors.New("stock quantity cannot be negative")
)

type ProductService interface {
	CreateProduct(ctx context.Context, name, description string, price float64, stockQuantity int) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, patch model.ProductPatch) (uuid.UUID, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) (uuid.UUID, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
}

func NewProductService(uow model.UnitOfWork) ProductService {
	return &productService{uow: uow}
}

type productService struct {
	uow model.UnitOfWork
}

func (s *productService) CreateProduct(ctx context.Context, name, description string, price float64, stockQuantity int) (*model.Product, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if stockQuantity < 0 {
		return nil, ErrInvalidStockQuantity
	}

	product := &model.Product{
		ID:            uuid.New(),
		Name:          name,
		Description:   description,
		Price:         price,
		StockQuantity: stockQuantity,
		Status:        model.ProductStatusActive,
	}
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		return provider.ProductRepository().Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID uuid.UUID, patch model.ProductPatch) (uuid.UUID, error) {
	if patch.IsEmpty() {
		return uuid.Nil, ErrNoFieldsProvided
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return uuid.Nil, ErrInvalidPrice
	}

	var updatedID uuid.UUID
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		var err error
		updatedID, err = provider.ProductRepository().Update(ctx, productID, patch)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return updatedID, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID uuid.UUID) (uuid.UUID, error) {
	var deletedID uuid.UUID
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		var err error
		deletedID, err = provider.ProductRepository().MarkDeleted(ctx, productID)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return deletedID, nil
}

func (s *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	var product *model.Product
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		var err error
		product, err = provider.ProductRepository().Find(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		var err error
		products, err = provider.ProductRepository().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}
