package ports

import (
	"context"
	"time"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// AdminRepository defines persistence operations for admin principals.
type AdminRepository interface {
	// Create inserts a new admin. A duplicate email fails with
	// domain.ErrAdminExists.
	Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error)
	FindByID(ctx context.Context, id string) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	List(ctx context.Context) ([]*domain.Admin, error)

	SetRefreshToken(ctx context.Context, id, token string) error
	SetPassword(ctx context.Context, id, passwordHash string) error
	UpdatePermissions(ctx context.Context, id string, perms domain.PermissionSet) error
	SetActive(ctx context.Context, id string, active bool) error
	// RecordLogin stamps last_login and login_ip after a successful login.
	RecordLogin(ctx context.Context, id string, at time.Time, ip string) error

	Delete(ctx context.Context, id string) error
}
