package model

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock quantity")
)

type ProductStatus string

const (
	ProductStatusActive     ProductStatus = "ACTIVE"
	ProductStatusOutOfStock ProductStatus = "OUT_OF_STOCK"
	ProductStatusDeleted    ProductStatus = "DELETED"
)

type Product struct {
	ID            uuid.UUID     `db:"product_id"`
	Name          string        `db:"name"`
	Description   string        `db:"description"`
	Price         float64       `db:"price"`
	StockQuantity int           `db:"stock_quantity"`
	Status        ProductStatus `db:"product_status"`
}

// ProductPatch carries the optional fields of a partial product update.
// Stock is deliberately absent: stock_quantity changes only through
// ProductRepository.AdjustStock.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *float64
}

func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil
}

type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Find(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id uuid.UUID, patch ProductPatch) (uuid.UUID, error)
	// MarkDeleted transitions the product to DELETED. A second call on the
	// same product returns ErrProductNotFound.
	MarkDeleted(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	// AdjustStock atomically applies delta to stock_quantity, conditioned
	// on the result staying non-negative and the product not being deleted.
	// The check and the write are a single conditional statement; callers
	// must never read-then-write stock around it. Returns the new quantity,
	// ErrProductNotFound if no live product row matched, or
	// ErrInsufficientStock if the condition failed on an existing product.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error)
}
