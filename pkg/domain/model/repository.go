package model

import (
	"context"
	"errors"
)

// ErrStorageConflict surfaces unique/foreign-key violations from the
// transactional store. It is retryable from the caller's point of view.
var ErrStorageConflict = errors.New("storage constraint violated")

// RepositoryProvider hands out repositories bound to one transaction.
type RepositoryProvider interface {
	UserRepository() UserRepository
	ProductRepository() ProductRepository
	OrderRepository() OrderRepository
}

// UnitOfWork runs fn inside a single storage transaction. The transaction
// commits when fn returns nil and rolls back otherwise; partial effects are
// never visible. The provider, and every repository obtained from it, is
// only valid until fn returns.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(provider RepositoryProvider) error) error
}
