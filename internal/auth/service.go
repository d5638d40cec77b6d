package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rogerio-castellano/order-tracker/internal/models"
	"github.com/rogerio-castellano/order-tracker/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotFound      = errors.New("email does not exist")
	ErrInactiveAccount    = errors.New("account is inactive")
)

type AuthService struct {
	users  repo.UserRepository
	issuer *TokenIssuer
	tokens TokenStore
	logger *slog.Logger
}

func NewAuthService(users repo.UserRepository, issuer *TokenIssuer, tokens TokenStore, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, issuer: issuer, tokens: tokens, logger: logger}
}

// Login checks the credentials and issues a token. Unknown emails fail with
// ErrEmailNotFound; inactive accounts are rejected only after the password
// matched.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := a.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return "", models.User{}, ErrEmailNotFound
		}
		return "", models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		a.logger.Info("login rejected", "user_id", user.ID, "reason", "bad password")
		return "", models.User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		a.logger.Info("login rejected", "user_id", user.ID, "reason", "inactive")
		return "", models.User{}, ErrInactiveAccount
	}

	token, _, err := a.issuer.Generate(user)
	if err != nil {
		return "", models.User{}, err
	}

	a.logger.Info("user logged in", "user_id", user.ID)
	return token, user, nil
}

// Authenticate validates a bearer token and rejects revoked ones.
func (a *AuthService) Authenticate(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, err := a.issuer.Parse(tokenStr)
	if err != nil {
		return nil, err
	}

	revoked, err := a.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (a *AuthService) Logout(ctx context.Context, claims *Claims) error {
	if err := a.tokens.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return err
	}
	a.logger.Info("user logged out", "sub", claims.Subject)
	return nil
}

// Refresh revokes the presented token and issues a new one with the
// user's current role.
func (a *AuthService) Refresh(ctx context.Context, claims *Claims) (string, error) {
	userID, err := claims.UserID()
	if err != nil {
		return "", err
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	if !user.IsActive {
		return "", ErrInactiveAccount
	}

	if err := a.tokens.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return "", err
	}

	token, _, err := a.issuer.Generate(user)
	if err != nil {
		return "", err
	}
	a.logger.Info("token refreshed", "user_id", user.ID)
	return token, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// EnsureAdmin creates an active administrator unless the email is taken.
func EnsureAdmin(ctx context.Context, users repo.UserRepository, email, password string) (models.User, error) {
	existing, err := users.GetByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repo.ErrUserNotFound) {
		return models.User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	return users.CreateUser(ctx, models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	})
}
