package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/auth"
	"github.com/rogerio-castellano/order-tracker/internal/db"
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

var (
	database *sql.DB
	store    *repo.PostgresStore
	api      http.Handler
)

func TestMain(m *testing.M) {
	dbUrl := os.Getenv("DATABASE_URL")
	if dbUrl == "" {
		fmt.Println("DATABASE_URL not set, skipping integrated handler tests")
		os.Exit(0)
	}

	ctx := context.Background()
	var err error
	database, err = db.Connect(ctx, dbUrl)
	if err != nil {
		fmt.Println("could not connect to database:", err)
		os.Exit(1)
	}
	if err := db.Migrate(ctx, database); err != nil {
		fmt.Println("could not migrate database:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store = repo.NewPostgresStore(database)
	authSvc := auth.NewAuthService(store.Users(), auth.NewTokenIssuer("integration-secret", time.Hour), auth.NewMemoryTokenStore(), logger)
	srv := handler.NewServer(
		authSvc,
		service.NewOrderManager(store, logger),
		service.NewCatalog(store, logger),
		service.NewUserStatus(store, logger),
		logger,
	)
	api = router.NewRouter(router.Deps{
		Server:        srv,
		Authenticator: authSvc,
		LoginLimiter:  rl.NewRateLimiter(1000, 1000),
		Logger:        logger,
	})

	code := m.Run()
	database.Close()
	os.Exit(code)
}

// unique returns a suffix that keeps rows from different runs apart.
func unique() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

func createUser(t *testing.T, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	u, err := store.Users().CreateUser(context.Background(), models.User{
		Name:         "Integration " + role,
		Email:        fmt.Sprintf("%s-%s@example.com", role, unique()),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return u
}

func createProduct(t *testing.T, price string, stock int) models.Product {
	t.Helper()
	p, err := store.Products().Create(context.Background(), models.Product{
		Name:  "Product " + unique(),
		Price: decimal.RequireFromString(price),
		Stock: stock,
	})
	if err != nil {
		t.Fatalf("creating product: %v", err)
	}
	return p
}

func stockOf(t *testing.T, productID int) int {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), productID)
	if err != nil {
		t.Fatalf("reading product: %v", err)
	}
	return p.Stock
}

func do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, email string) string {
	t.Helper()
	w := do(http.MethodPost, "/login", "", handler.LoginRequest{Email: email, Password: password})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.StatusResponse[handler.LoginResult]
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("token decoding failed: %v", err)
	}
	return resp.Data.Token
}
