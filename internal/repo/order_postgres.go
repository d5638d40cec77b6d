package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

const orderColumns = `o.id, o.user_id, o.product_id, o.quantity, o.total_price, o.status, o.deleted_at, o.created_at, o.updated_at`

const orderUserColumns = `u.id, u.name, u.email, u.role, u.is_active, u.created_at, u.updated_at`

type PostgresOrderRepository struct {
	db querier
}

func (r *PostgresOrderRepository) Create(ctx context.Context, o models.Order) (models.Order, error) {
	query := `
		INSERT INTO orders (user_id, product_id, quantity, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id, created_at, updated_at
	`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, o.UserID, o.ProductID, o.Quantity, o.TotalPrice, o.Status, time.Now().UTC()).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}
	return o, nil
}

func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int) (models.Order, error) {
	query := `
		SELECT ` + orderColumns + `, ` + orderUserColumns + `
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1 AND o.deleted_at IS NULL
	`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		o         models.Order
		u         models.User
		deletedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.Status, &deletedAt, &o.CreatedAt, &o.UpdatedAt,
		&u.ID, &u.Name, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}
	if deletedAt.Valid {
		o.DeletedAt = &deletedAt.Time
	}
	o.User = &u
	return o, nil
}

func (r *PostgresOrderRepository) Update(ctx context.Context, o models.Order) (models.Order, error) {
	query := `
		UPDATE orders SET quantity = $1, total_price = $2, updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL
		RETURNING updated_at
	`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, o.Quantity, o.TotalPrice, time.Now().UTC(), o.ID).Scan(&o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, ErrOrderNotFound
	}
	return o, err
}

func (r *PostgresOrderRepository) SoftDelete(ctx context.Context, id int, at time.Time) error {
	query := `UPDATE orders SET deleted_at = $1, updated_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, at.UTC(), id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *PostgresOrderRepository) List(ctx context.Context, f OrderFilter) ([]models.Order, int, error) {
	whereClause, args := r.buildWhereClause(f)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders o "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}
	if total == 0 || f.Offset >= total {
		return []models.Order{}, total, nil
	}

	query := fmt.Sprintf("SELECT %s, %s FROM orders o JOIN users u ON u.id = o.user_id %s ORDER BY o.id LIMIT $%d OFFSET $%d",
		orderColumns, orderUserColumns, whereClause, len(args)+1, len(args)+2)
	var limit any
	if f.Limit > 0 {
		limit = f.Limit
	}
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var (
			o         models.Order
			u         models.User
			deletedAt sql.NullTime
		)
		err := rows.Scan(
			&o.ID, &o.UserID, &o.ProductID, &o.Quantity, &o.TotalPrice, &o.Status, &deletedAt, &o.CreatedAt, &o.UpdatedAt,
			&u.ID, &u.Name, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		if deletedAt.Valid {
			o.DeletedAt = &deletedAt.Time
		}
		o.User = &u
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *PostgresOrderRepository) buildWhereClause(f OrderFilter) (string, []any) {
	whereClause := "WHERE 1=1"
	args := []any{}

	if !f.IncludeDeleted {
		whereClause += " AND o.deleted_at IS NULL"
	}
	if f.UserID != nil {
		args = append(args, *f.UserID)
		whereClause += fmt.Sprintf(" AND o.user_id = $%d", len(args))
	}

	return whereClause, args
}
