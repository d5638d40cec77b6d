package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rogerio-castellano/order-tracker/internal/http/handlers"
	mw "github.com/rogerio-castellano/order-tracker/internal/http/middleware"
	rl "github.com/rogerio-castellano/order-tracker/internal/http/rate_limiter"
	"github.com/rogerio-castellano/order-tracker/internal/models"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Deps struct {
	Server        *handlers.Server
	Authenticator mw.Authenticator
	LoginLimiter  *rl.RateLimiter
	Logger        *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(d.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	s := d.Server
	r.With(d.LoginLimiter.Middleware).Post("/login", s.LoginHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(d.Authenticator))

		r.Post("/logout", s.LogoutHandler)
		r.Post("/refresh-token", s.RefreshTokenHandler)

		r.Route("/orders", func(r chi.Router) {
			r.Use(mw.RequireRole(models.RoleUser))
			r.Post("/", s.CreateOrderHandler)
			r.Get("/", s.ListOrdersHandler)
			r.Patch("/{id}", s.UpdateOrderHandler)
			r.Delete("/{id}", s.DeleteOrderHandler)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.RequireRole(models.RoleAdmin))
			r.Patch("/users/{id}/status", s.ToggleUserStatusHandler)
			r.Get("/orders", s.ListAllOrdersHandler)
			r.Get("/orders/{id}", s.GetOrderHandler)
			r.Delete("/orders/{id}", s.DeleteOrderHandler)
			r.Get("/products/{id}", s.GetProductHandler)
			r.Patch("/products/{id}/stock", s.UpdateProductStockHandler)
			r.Get("/products/{id}/movements", s.GetMovementsHandler)
		})
	})

	return r
}
