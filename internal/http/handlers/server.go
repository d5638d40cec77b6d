package handlers

import (
	"log/slog"

	"github.com/rogerio-castellano/order-tracker/internal/auth"
	"github.com/rogerio-castellano/order-tracker/internal/service"
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	auth    *auth.AuthService
	orders  *service.OrderManager
	catalog *service.Catalog
	users   *service.UserStatus
	logger  *slog.Logger
}

func NewServer(authSvc *auth.AuthService, orders *service.OrderManager, catalog *service.Catalog, users *service.UserStatus, logger *slog.Logger) *Server {
	return &Server{
		auth:    authSvc,
		orders:  orders,
		catalog: catalog,
		users:   users,
		logger:  logger,
	}
}
