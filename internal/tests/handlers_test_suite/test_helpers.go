package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/auth"
	handler "github.com/rogerio-castellano/order-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/order-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/order-tracker/internal/http/router"
	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
	"github.com/rogerio-castellano/order-tracker/internal/service"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

const password = "secret123"

type testEnv struct {
	router http.Handler
	store  *repo.InMemoryStore

	admin   models.User
	alice   models.User
	bob     models.User
	idle    models.User
	product models.Product
}

func newTestEnv(t *testing.T, stock int) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repo.NewInMemoryStore()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	createUser := func(name, email, role string, active bool) models.User {
		u, err := store.Users().CreateUser(ctx, models.User{
			Name: name, Email: email, PasswordHash: string(hash), Role: role, IsActive: active,
		})
		if err != nil {
			t.Fatalf("creating user %s: %v", email, err)
		}
		return u
	}

	env := &testEnv{store: store}
	env.admin = createUser("Admin", "admin@example.com", models.RoleAdmin, true)
	env.alice = createUser("Alice", "alice@example.com", models.RoleUser, true)
	env.bob = createUser("Bob", "bob@example.com", models.RoleUser, true)
	env.idle = createUser("Idle", "idle@example.com", models.RoleUser, false)

	env.product, err = store.Products().Create(ctx, models.Product{
		Name: "Monitor", Price: decimal.RequireFromString("150.25"), Stock: stock,
	})
	if err != nil {
		t.Fatalf("creating product: %v", err)
	}

	authSvc := auth.NewAuthService(store.Users(), auth.NewTokenIssuer("test-secret", time.Hour), auth.NewMemoryTokenStore(), logger)
	srv := handler.NewServer(
		authSvc,
		service.NewOrderManager(store, logger),
		service.NewCatalog(store, logger),
		service.NewUserStatus(store, logger),
		logger,
	)
	env.router = router.NewRouter(router.Deps{
		Server:        srv,
		Authenticator: authSvc,
		LoginLimiter:  rl.NewRateLimiter(1000, 1000),
		Logger:        logger,
	})
	return env
}

func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()
	w := e.do(http.MethodPost, "/login", "", handler.LoginRequest{Email: email, Password: password})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, w.Code, w.Body.String())
	}

	var resp handler.StatusResponse[handler.LoginResult]
	decode(t, w, &resp)
	return resp.Data.Token
}

func (e *testEnv) stock(t *testing.T) int {
	t.Helper()
	p, err := e.store.Products().GetByID(context.Background(), e.product.ID)
	if err != nil {
		t.Fatalf("reading product: %v", err)
	}
	return p.Stock
}

func (e *testEnv) createOrder(t *testing.T, token string, quantity int) handler.OrderResponse {
	t.Helper()
	w := e.do(http.MethodPost, "/orders", token, map[string]any{"product_id": e.product.ID, "quantity": quantity})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.DataResponse[handler.OrderResponse]
	decode(t, w, &resp)
	return resp.Data
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
}

func orderPath(id int) string {
	return fmt.Sprintf("/orders/%d", id)
}
