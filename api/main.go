package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/rogerio-castellano/order-tracker/api/docs"
	"github.com/rogerio-castellano/order-tracker/internal/auth"
	"github.com/rogerio-castellano/order-tracker/internal/config"
	"github.com/rogerio-castellano/order-tracker/internal/db"
	"github.com/rogerio-castellano/order-tracker/internal/http/handlers"
	rl "github.com/rogerio-castellano/order-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/order-tracker/internal/http/router"
	"github.com/rogerio-castellano/order-tracker/internal/redissvc"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
	"github.com/rogerio-castellano/order-tracker/internal/service"
)

//go:generate swag init -g main.go -o docs --parseDependency --parseInternal

// @title Order Tracker API
// @version 1.0
// @description REST API for placing orders against a product catalog and managing stock.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("could not load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store repo.Store
	switch cfg.Store {
	case config.StorePostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := db.Migrate(ctx, database); err != nil {
			return err
		}
		store = repo.NewPostgresStore(database)
	default:
		logger.Warn("using in-memory store, data is lost on restart")
		store = repo.NewInMemoryStore()
	}

	var tokens auth.TokenStore
	rdb, err := redissvc.Connect(ctx, redissvc.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	switch {
	case err == nil:
		defer rdb.Close()
		tokens = auth.NewRedisTokenStore(rdb)
	case cfg.Store == config.StoreMemory:
		logger.Warn("redis unavailable, keeping revoked tokens in memory", "error", err)
		tokens = auth.NewMemoryTokenStore()
	default:
		return err
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		admin, err := auth.EnsureAdmin(ctx, store.Users(), cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return err
		}
		logger.Info("admin account ready", "user_id", admin.ID)
	}

	authSvc := auth.NewAuthService(store.Users(), auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL), tokens, logger)
	srv := handlers.NewServer(
		authSvc,
		service.NewOrderManager(store, logger),
		service.NewCatalog(store, logger),
		service.NewUserStatus(store, logger),
		logger,
	)

	limiter := rl.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst)
	go limiter.StartVisitorCleanupLoop(ctx, time.Minute)

	httpServer := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: router.NewRouter(router.Deps{
			Server:        srv,
			Authenticator: authSvc,
			LoginLimiter:  limiter,
			Logger:        logger,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", "addr", httpServer.Addr, "store", cfg.Store)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
