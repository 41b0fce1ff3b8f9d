package ports

import (
	"context"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// TokenPair is the access/refresh pair returned on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterClientInput carries validated registration fields.
type RegisterClientInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
	Address  string
}

// AuthService implements the client token lifecycle: issue, refresh, rotate,
// invalidate. Exactly one refresh token is valid per client at any time.
type AuthService interface {
	Register(ctx context.Context, in RegisterClientInput) (*domain.Client, error)
	// Login verifies credentials, issues a fresh token pair and persists the
	// refresh token, invalidating any previously issued one.
	Login(ctx context.Context, email, password string) (*domain.Client, *TokenPair, error)
	// Refresh rotates the pair. A refresh token presented twice fails with
	// domain.ErrRefreshTokenReused on the second attempt.
	Refresh(ctx context.Context, refreshToken string) (*domain.Client, *TokenPair, error)
	// Logout clears the stored refresh token, invalidating all outstanding
	// refresh tokens immediately regardless of their signature validity.
	Logout(ctx context.Context, clientID string) error
	Me(ctx context.Context, clientID string) (*domain.Client, error)
	ChangePassword(ctx context.Context, clientID, current, next string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}
