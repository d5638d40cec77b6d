package models

import "time"

const (
	MovementOrderCreated = "order_created"
	MovementOrderUpdated = "order_updated"
	MovementOrderDeleted = "order_deleted"
	MovementRestock      = "restock"
)

// Movement records one signed change to a product's stock.
type Movement struct {
	ID        int       `json:"id"`
	ProductID int       `json:"product_id"`
	OrderID   *int      `json:"order_id,omitempty"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
