package repo

import (
	"context"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	SetActive(ctx context.Context, id int, active bool) (models.User, error)
}
