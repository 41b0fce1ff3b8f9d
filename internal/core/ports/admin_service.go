package ports

import (
	"context"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// AdminAuthService implements the admin token lifecycle. It mirrors the
// client lifecycle with independent secrets-in-claims state and additionally
// records login metadata.
type AdminAuthService interface {
	Login(ctx context.Context, email, password, ip string) (*domain.Admin, *TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.Admin, *TokenPair, error)
	Logout(ctx context.Context, adminID string) error
	Me(ctx context.Context, adminID string) (*domain.Admin, error)
	ChangePassword(ctx context.Context, adminID, current, next string) error
}

// CreateAdminInput carries validated fields for creating an admin account.
type CreateAdminInput struct {
	FullName    string
	Email       string
	Password    string
	Role        string
	Permissions domain.PermissionSet
}

// DirectoryService manages admin and client accounts. Every method receives
// the acting admin and evaluates its permission matrix; superadmin bypasses
// all checks.
type DirectoryService interface {
	CreateAdmin(ctx context.Context, actor *domain.Admin, in CreateAdminInput) (*domain.Admin, error)
	ListAdmins(ctx context.Context, actor *domain.Admin) ([]*domain.Admin, error)
	UpdateAdminPermissions(ctx context.Context, actor *domain.Admin, adminID string, perms domain.PermissionSet) error
	SetAdminActive(ctx context.Context, actor *domain.Admin, adminID string, active bool) error
	DeleteAdmin(ctx context.Context, actor *domain.Admin, adminID string) error

	ListClients(ctx context.Context, actor *domain.Admin, filter ListClientsFilter) ([]*domain.Client, int64, error)
	UpdateClientStatus(ctx context.Context, actor *domain.Admin, clientID string, status domain.ClientStatus) error
	DeleteClient(ctx context.Context, actor *domain.Admin, clientID string) error
}
