package model

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email is already taken")
)

type User struct {
	ID             uuid.UUID `db:"user_id"`
	Name           string    `db:"name"`
	Surname        string    `db:"surname"`
	Email          string    `db:"email"`
	IsActive       bool      `db:"is_active"`
	HashedPassword string    `db:"hashed_password"`
}

// UserPatch carries the optional fields of a partial user update. A nil
// field is left untouched by the update statement.
type UserPatch struct {
	Name    *string
	Surname *string
	Email   *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Surname == nil && p.Email == nil
}

// UserWithOrderSummary is a derived view: the user row plus count/sum
// aggregates over the user's non-deleted orders. It is never persisted.
type UserWithOrderSummary struct {
	User
	TotalOrders int
	TotalAmount float64
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Find(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// Update applies the patch to an active user and returns the updated
	// user id, or ErrUserNotFound if no active row matched.
	Update(ctx context.Context, id uuid.UUID, patch UserPatch) (uuid.UUID, error)
	// Deactivate soft-deletes an active user. Deactivating an already
	// inactive user returns ErrUserNotFound.
	Deactivate(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type PasswordManager interface {
	Hash(plainTextPassword string) (string, error)
	Check(hashedPassword, plainTextPassword string) (bool, error)
}
