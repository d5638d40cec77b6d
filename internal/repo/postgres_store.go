package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type postgresRepositories struct {
	q querier
}

func (r postgresRepositories) Products() ProductRepository {
	return &PostgresProductRepository{db: r.q}
}

func (r postgresRepositories) Orders() OrderRepository {
	return &PostgresOrderRepository{db: r.q}
}

func (r postgresRepositories) Users() UserRepository {
	return &PostgresUserRepository{db: r.q}
}

func (r postgresRepositories) Movements() MovementRepository {
	return &PostgresMovementRepository{db: r.q}
}

type PostgresStore struct {
	postgresRepositories
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{postgresRepositories: postgresRepositories{q: db}, db: db}
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(tx Repositories) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
			}
		}
	}()

	if err = fn(postgresRepositories{q: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
