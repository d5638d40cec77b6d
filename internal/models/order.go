package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a single-product purchase. TotalPrice is a snapshot taken when the
// order is created or its quantity changes; later price changes do not touch it.
type Order struct {
	ID         int             `json:"id"`
	UserID     int             `json:"user_id"`
	ProductID  int             `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     bool            `json:"status"`
	DeletedAt  *time.Time      `json:"deleted_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	User *User `json:"user,omitempty"`
}

func (o Order) IsDeleted() bool {
	return o.DeletedAt != nil
}
