package handlers

import (
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/pagination"
	"github.com/shopspring/decimal"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type DataResponse[T any] struct {
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

type ListResponse[T any] struct {
	Message    string          `json:"message"`
	Data       []T             `json:"data"`
	Pagination pagination.Meta `json:"pagination"`
}

// StatusResponse is the envelope of the authentication endpoints.
type StatusResponse[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type TokenResult struct {
	Token string `json:"token"`
}

// OrderRequest fields are untyped so that non-integer input can be reported
// as a validation error instead of a decoding error.
type OrderRequest struct {
	ProductID any `json:"product_id" swaggertype:"integer"`
	Quantity  any `json:"quantity" swaggertype:"integer"`
}

type StockRequest struct {
	Quantity any `json:"quantity" swaggertype:"integer"`
}

type UserSummary struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderResponse struct {
	ID         int             `json:"id"`
	UserID     int             `json:"user_id"`
	ProductID  int             `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price" swaggertype:"string" example:"59.97"`
	Status     bool            `json:"status"`
	DeletedAt  *time.Time      `json:"deleted_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	User       *UserSummary    `json:"user,omitempty"`
}

type OrderUpdateResult struct {
	OrderID    int             `json:"order_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price" swaggertype:"string" example:"99.95"`
}

type ProductResponse struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" swaggertype:"string" example:"19.99"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type MovementResponse struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	OrderID   *int   `json:"order_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"created_at"`
}

func toUserSummary(u models.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func toOrderResponse(o models.Order) OrderResponse {
	resp := OrderResponse{
		ID:         o.ID,
		UserID:     o.UserID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
		DeletedAt:  o.DeletedAt,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if o.User != nil {
		u := toUserSummary(*o.User)
		resp.User = &u
	}
	return resp
}

func toOrderResponses(orders []models.Order) []OrderResponse {
	resp := make([]OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	return resp
}

func toProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
