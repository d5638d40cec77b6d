package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
)

type UserStatus struct {
	store  repo.Store
	logger *slog.Logger
}

func NewUserStatus(store repo.Store, logger *slog.Logger) *UserStatus {
	return &UserStatus{store: store, logger: logger}
}

// ToggleActive flips the user's active flag and returns the updated user.
func (s *UserStatus) ToggleActive(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := s.store.WithinTx(ctx, func(tx repo.Repositories) error {
		current, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user, err = tx.Users().SetActive(ctx, userID, !current.IsActive)
		if err != nil {
			return fmt.Errorf("failed to update user status: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	s.logger.Info("user status changed", "user_id", userID, "is_active", user.IsActive)
	return user, nil
}
