package mysql

import (
	"context"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"shopservice/pkg/domain/model"
)

const (
	maxOpenConns    = 16
	maxIdleConns    = 8
	connMaxLifetime = 10 * time.Minute
)

// NewClient opens a MySQL connection pool. The DSN must carry
// parseTime=true (DATETIME scanning) and clientFoundRows=true so that
// conditional updates report matched rows rather than changed rows.
func NewClient(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect to mysql")
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}

func NewUnitOfWork(db *sqlx.DB) model.UnitOfWork {
	return &unitOfWork{db: db}
}

type unitOfWork struct {
	db *sqlx.DB
}

func (u *unitOfWork) Execute(ctx context.Context, fn func(provider model.RepositoryProvider) error) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}

	if err := fn(&repositoryProvider{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "commit transaction")
}

type repositoryProvider struct {
	tx *sqlx.Tx
}

func (p *repositoryProvider) UserRepository() model.UserRepository {
	return &userRepository{tx: p.tx}
}

func (p *repositoryProvider) ProductRepository() model.ProductRepository {
	return &productRepository{tx: p.tx}
}

func (p *repositoryProvider) OrderRepository() model.OrderRepository {
	return &orderRepository{tx: p.tx}
}
