package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store   *repo.InMemoryStore
	orders  *OrderManager
	catalog *Catalog
	users   *UserStatus

	alice   models.User
	bob     models.User
	admin   models.User
	product models.Product
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T, stock int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := repo.NewInMemoryStore()
	logger := discardLogger()

	f := &fixture{
		store:   store,
		orders:  NewOrderManager(store, logger),
		catalog: NewCatalog(store, logger),
		users:   NewUserStatus(store, logger),
	}

	var err error
	f.alice, err = store.Users().CreateUser(ctx, models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleUser, IsActive: true})
	require.NoError(t, err)
	f.bob, err = store.Users().CreateUser(ctx, models.User{Name: "Bob", Email: "bob@example.com", Role: models.RoleUser, IsActive: true})
	require.NoError(t, err)
	f.admin, err = store.Users().CreateUser(ctx, models.User{Name: "Root", Email: "admin@example.com", Role: models.RoleAdmin, IsActive: true})
	require.NoError(t, err)

	f.product, err = store.Products().Create(ctx, models.Product{Name: "Keyboard", Price: decimal.RequireFromString("19.99"), Stock: stock})
	require.NoError(t, err)
	return f
}

func (f *fixture) principal(u models.User) Principal {
	return Principal{UserID: u.ID, Role: u.Role}
}

func (f *fixture) stock(t *testing.T) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	return p.Stock
}
