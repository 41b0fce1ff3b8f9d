package ports

import (
	"context"
	"time"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// ListClientsFilter carries query parameters for the admin client listing.
type ListClientsFilter struct {
	Status string // optional: filter by account status
	Search string // optional: partial match on full_name or email
	Page   int    // 1-based
	Limit  int    // capped at 100 by the service
}

// ClientRepository defines persistence operations for client principals.
type ClientRepository interface {
	// Create inserts a new client. A duplicate email, phone or full name
	// fails with domain.ErrClientExists.
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id string) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	// FindByResetToken looks up a client by the stored reset-token hash.
	FindByResetToken(ctx context.Context, tokenHash string) (*domain.Client, error)
	List(ctx context.Context, filter ListClientsFilter) ([]*domain.Client, int64, error)

	// SetRefreshToken overwrites the single stored refresh token. An empty
	// value clears it, invalidating every outstanding refresh token.
	SetRefreshToken(ctx context.Context, id, token string) error
	// SetPassword stores a new hash and clears refresh and reset state.
	SetPassword(ctx context.Context, id, passwordHash string) error
	SetResetToken(ctx context.Context, id, tokenHash string, expiry time.Time) error
	UpdateStatus(ctx context.Context, id string, status domain.ClientStatus) error

	PushBlogID(ctx context.Context, clientID, blogID string) error
	PullBlogID(ctx context.Context, clientID, blogID string) error
	PushRequestID(ctx context.Context, clientID, requestID string) error
	PullRequestID(ctx context.Context, clientID, requestID string) error

	Delete(ctx context.Context, id string) error
}
