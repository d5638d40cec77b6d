package repo

import (
	"context"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

type MovementRepository interface {
	Log(ctx context.Context, m models.Movement) error
	GetByProductID(ctx context.Context, productID int, mf MovementFilter) ([]models.Movement, int, error)
}
