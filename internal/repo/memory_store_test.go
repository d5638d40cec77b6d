package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMemory(t *testing.T) (*InMemoryStore, models.User, models.Product) {
	t.Helper()
	ctx := context.Background()
	s := NewInMemoryStore()

	u, err := s.Users().CreateUser(ctx, models.User{Name: "Ann", Email: "ann@example.com", Role: models.RoleUser, IsActive: true})
	require.NoError(t, err)

	p, err := s.Products().Create(ctx, models.Product{Name: "Widget", Price: decimal.RequireFromString("9.99"), Stock: 10})
	require.NoError(t, err)

	return s, u, p
}

func TestInMemoryStore_WithinTxCommits(t *testing.T) {
	s, u, p := seedMemory(t)
	ctx := context.Background()

	err := s.WithinTx(ctx, func(tx Repositories) error {
		if _, err := tx.Products().AdjustStock(ctx, p.ID, -3); err != nil {
			return err
		}
		_, err := tx.Orders().Create(ctx, models.Order{UserID: u.ID, ProductID: p.ID, Quantity: 3, Status: true})
		return err
	})
	require.NoError(t, err)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)

	orders, total, err := s.Orders().List(ctx, OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, orders, 1)
}

func TestInMemoryStore_WithinTxRollsBack(t *testing.T) {
	s, u, p := seedMemory(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(tx Repositories) error {
		if _, err := tx.Products().AdjustStock(ctx, p.ID, -3); err != nil {
			return err
		}
		if _, err := tx.Orders().Create(ctx, models.Order{UserID: u.ID, ProductID: p.ID, Quantity: 3}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)

	_, total, err := s.Orders().List(ctx, OrderFilter{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestInMemoryStore_WithinTxRollsBackOnPanic(t *testing.T) {
	s, _, p := seedMemory(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.WithinTx(ctx, func(tx Repositories) error {
			_, _ = tx.Products().AdjustStock(ctx, p.ID, 5)
			panic("unexpected")
		})
	})

	got, err := s.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
}

func TestInMemoryStore_WithinTxCanceledContext(t *testing.T) {
	s, _, _ := seedMemory(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.WithinTx(ctx, func(Repositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestInMemoryProductRepository_AdjustStock(t *testing.T) {
	s, _, p := seedMemory(t)
	ctx := context.Background()

	_, err := s.Products().AdjustStock(ctx, p.ID, -11)
	assert.ErrorIs(t, err, ErrInvalidQuantityChange)

	got, err := s.Products().AdjustStock(ctx, p.ID, -10)
	require.NoError(t, err)
	assert.Zero(t, got.Stock)

	_, err = s.Products().AdjustStock(ctx, 999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestInMemoryProductRepository_DeleteCascadesOrders(t *testing.T) {
	s, u, p := seedMemory(t)
	ctx := context.Background()

	o, err := s.Orders().Create(ctx, models.Order{UserID: u.ID, ProductID: p.ID, Quantity: 1})
	require.NoError(t, err)

	products := s.Products().(*InMemoryProductRepository)
	require.NoError(t, products.Delete(p.ID))

	_, err = s.Orders().GetByID(ctx, o.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.ErrorIs(t, products.Delete(p.ID), ErrProductNotFound)
}

func TestInMemoryOrderRepository_SoftDeleteAndList(t *testing.T) {
	s, u, p := seedMemory(t)
	ctx := context.Background()

	var ids []int
	for range 3 {
		o, err := s.Orders().Create(ctx, models.Order{UserID: u.ID, ProductID: p.ID, Quantity: 1})
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}

	require.NoError(t, s.Orders().SoftDelete(ctx, ids[1], time.Now()))
	assert.ErrorIs(t, s.Orders().SoftDelete(ctx, ids[1], time.Now()), ErrOrderNotFound)

	_, err := s.Orders().GetByID(ctx, ids[1])
	assert.ErrorIs(t, err, ErrOrderNotFound)

	active, total, err := s.Orders().List(ctx, OrderFilter{UserID: &u.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, ids[0], active[0].ID)
	assert.Equal(t, ids[2], active[1].ID)
	for _, o := range active {
		require.NotNil(t, o.User)
		assert.Equal(t, u.Email, o.User.Email)
	}

	all, total, err := s.Orders().List(ctx, OrderFilter{IncludeDeleted: true, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 1)
	assert.Equal(t, ids[1], all[0].ID)
	assert.True(t, all[0].IsDeleted())
}

func TestInMemoryOrderRepository_GetByIDLoadsUser(t *testing.T) {
	s, u, p := seedMemory(t)
	ctx := context.Background()

	o, err := s.Orders().Create(ctx, models.Order{UserID: u.ID, ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	got, err := s.Orders().GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "ann@example.com", got.User.Email)
}

func TestInMemoryUserRepository(t *testing.T) {
	s, u, _ := seedMemory(t)
	ctx := context.Background()

	_, err := s.Users().CreateUser(ctx, models.User{Email: "ANN@example.com"})
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)

	got, err := s.Users().GetByEmail(ctx, "Ann@Example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = s.Users().SetActive(ctx, u.ID, false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	_, err = s.Users().SetActive(ctx, 42, true)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestInMemoryMovementRepository_GetByProductID(t *testing.T) {
	s, _, p := seedMemory(t)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, delta := range []int{-1, -2, 5} {
		require.NoError(t, s.Movements().Log(ctx, models.Movement{
			ProductID: p.ID,
			Delta:     delta,
			Reason:    models.MovementRestock,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, s.Movements().Log(ctx, models.Movement{ProductID: p.ID + 1, Delta: 1}))

	all, total, err := s.Movements().GetByProductID(ctx, p.ID, MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	assert.Equal(t, 5, all[0].Delta)

	since := base.Add(30 * time.Minute)
	limit := 1
	page, total, err := s.Movements().GetByProductID(ctx, p.ID, MovementFilter{Since: &since, Limit: &limit})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, page, 1)
	assert.Equal(t, 5, page[0].Delta)

	negative := -1
	_, _, err = s.Movements().GetByProductID(ctx, p.ID, MovementFilter{Offset: &negative})
	assert.Error(t, err)
}
