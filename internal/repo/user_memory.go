package repo

import (
	"context"
	"strings"
	"time"

	"github.com/rogerio-castellano/order-tracker/internal/models"
)

type InMemoryUserRepository struct {
	m memoryRepos
}

func (r *InMemoryUserRepository) GetByID(_ context.Context, id int) (models.User, error) {
	defer r.m.lock()()

	u, ok := r.m.data().users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

func (r *InMemoryUserRepository) GetByEmail(_ context.Context, email string) (models.User, error) {
	defer r.m.lock()()

	for _, user := range r.m.data().users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) CreateUser(_ context.Context, u models.User) (models.User, error) {
	defer r.m.lock()()
	d := r.m.data()

	for _, user := range d.users {
		if strings.EqualFold(user.Email, u.Email) {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}

	now := time.Now().UTC()
	u.ID = d.nextUserID
	u.CreatedAt, u.UpdatedAt = now, now
	d.nextUserID++
	d.users[u.ID] = u
	return u, nil
}

func (r *InMemoryUserRepository) SetActive(_ context.Context, id int, active bool) (models.User, error) {
	defer r.m.lock()()
	d := r.m.data()

	u, ok := d.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	u.IsActive = active
	u.UpdatedAt = time.Now().UTC()
	d.users[id] = u
	return u, nil
}
