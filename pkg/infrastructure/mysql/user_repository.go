package mysql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"shopservice/pkg/domain/model"
)

type userRepository struct {
	tx *sqlx.Tx
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	const query = `
		INSERT INTO users (user_id, name, surname, email, is_active, hashed_password)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.tx.ExecContext(ctx, query,
		user.ID, user.Name, user.Surname, user.Email, user.IsActive, user.HashedPassword)
	if err != nil {
		return errors.Wrap(translateError(err), "insert user")
	}
	return nil
}

func (r *userRepository) Find(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const query = `
		SELECT user_id, name, surname, email, is_active, hashed_password
		FROM users
		WHERE user_id = ?`

	var user model.User
	if err := r.tx.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "select user")
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `
		SELECT user_id, name, surname, email, is_active, hashed_password
		FROM users
		WHERE email = ?`

	var user model.User
	if err := r.tx.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "select user by email")
	}
	return &user, nil
}

// Update is a single parametrized statement: absent patch fields arrive as
// NULL and COALESCE keeps the stored value. Only active users match.
func (r *userRepository) Update(ctx context.Context, id uuid.UUID, patch model.UserPatch) (uuid.UUID, error) {
	const query = `
		UPDATE users
		SET name = COALESCE(?, name),
		    surname = COALESCE(?, surname),
		    email = COALESCE(?, email)
		WHERE user_id = ? AND is_active = 1`

	res, err := r.tx.ExecContext(ctx, query, patch.Name, patch.Surname, patch.Email, id)
	if err != nil {
		return uuid.Nil, errors.Wrap(translateError(err), "update user")
	}
	return affectedID(res, id, model.ErrUserNotFound)
}

func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	const query = `
		UPDATE users
		SET is_active = 0
		WHERE user_id = ? AND is_active = 1`

	res, err := r.tx.ExecContext(ctx, query, id)
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "deactivate user")
	}
	return affectedID(res, id, model.ErrUserNotFound)
}

// affectedID reports id when the statement matched a row and notFound
// otherwise. Relies on clientFoundRows=true in the DSN.
func affectedID(res sql.Result, id uuid.UUID, notFound error) (uuid.UUID, error) {
	affected, err := res.RowsAffected()
	if err != nil {
		return uuid.Nil, errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return uuid.Nil, notFound
	}
	return id, nil
}
