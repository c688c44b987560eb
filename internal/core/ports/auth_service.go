package ports

import (
	"context"

	"github.com/nutrition5k/nutrition-api/internal/core/domain"
)

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// TokenService issues and verifies stateless signed identity tokens.
type TokenService interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (*domain.Identity, error)
}
