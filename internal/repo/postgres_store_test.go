package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/db"
	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to DATABASE_URL and skips when it is not set.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbUrl := os.Getenv("DATABASE_URL")
	if dbUrl == "" {
		t.Skip("DATABASE_URL not set, skipping postgres tests")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, dbUrl)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, database))
	t.Cleanup(func() { database.Close() })
	return database
}

func seedPostgres(t *testing.T, s *PostgresStore, stock int) (models.User, models.Product) {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().UnixNano()

	u, err := s.Users().CreateUser(ctx, models.User{
		Name:         "Tester",
		Email:        fmt.Sprintf("tester-%d@example.com", suffix),
		PasswordHash: "x",
		Role:         models.RoleUser,
		IsActive:     true,
	})
	require.NoError(t, err)

	p, err := s.Products().Create(ctx, models.Product{
		Name:  fmt.Sprintf("Widget %d", suffix),
		Price: decimal.RequireFromString("12.50"),
		Stock: stock,
	})
	require.NoError(t, err)
	return u, p
}

func TestPostgresStore_OrderLifecycle(t *testing.T) {
	s := NewPostgresStore(openTestDB(t))
	u, p := seedPostgres(t, s, 10)
	ctx := context.Background()

	var created models.Order
	err := s.WithinTx(ctx, func(tx Repositories) error {
		if _, err := tx.Products().GetForUpdate(ctx, p.ID); err != nil {
			return err
		}
		if _, err := tx.Products().AdjustStock(ctx, p.ID, -4); err != nil {
			return err
		}
		var err error
		created, err = tx.Orders().Create(ctx, models.Order{
			UserID: u.ID, ProductID: p.ID, Quantity: 4,
			TotalPrice: p.Price.Mul(decimal.NewFromInt(4)), Status: true,
		})
		return err
	})
	require.NoError(t, err)

	got, err := s.Orders().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("50.00")))
	require.NotNil(t, got.User)
	assert.Equal(t, u.Email, got.User.Email)

	product, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, product.Stock)

	require.NoError(t, s.Orders().SoftDelete(ctx, created.ID, time.Now()))
	_, err = s.Orders().GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	orders, _, err := s.Orders().List(ctx, OrderFilter{UserID: &u.ID, IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.NotNil(t, orders[0].DeletedAt)
	require.NotNil(t, orders[0].User)
	assert.Equal(t, u.Email, orders[0].User.Email)
}

func TestPostgresStore_RollbackAndGuard(t *testing.T) {
	s := NewPostgresStore(openTestDB(t))
	_, p := seedPostgres(t, s, 2)
	ctx := context.Background()

	_, err := s.Products().AdjustStock(ctx, p.ID, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantityChange)

	boom := errors.New("boom")
	err = s.WithinTx(ctx, func(tx Repositories) error {
		if _, err := tx.Products().AdjustStock(ctx, p.ID, -2); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	product, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, product.Stock)
}

func TestPostgresUserRepository_SetActive(t *testing.T) {
	s := NewPostgresStore(openTestDB(t))
	u, _ := seedPostgres(t, s, 1)
	ctx := context.Background()

	got, err := s.Users().SetActive(ctx, u.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = s.Users().CreateUser(ctx, models.User{Name: "Dup", Email: u.Email, PasswordHash: "x", Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)
}
