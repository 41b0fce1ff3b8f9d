package domain

import "time"

// Admin roles. Superadmin bypasses the permission matrix entirely; every
// other role is bound by its explicit flags.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
	RoleClient     = "client"
)

// ValidAdminRole reports whether role is assignable to an admin account.
func ValidAdminRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleModerator, RoleClient:
		return true
	}
	return false
}

// Admin is a back-office principal with an explicit permission matrix.
// Admin credential and token state is fully independent of Client state.
type Admin struct {
	ID           string        `json:"id"`
	FullName     string        `json:"full_name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Role         string        `json:"role"`
	Permissions  PermissionSet `json:"permissions"`
	IsActive     bool          `json:"is_active"`
	LastLogin    time.Time     `json:"last_login,omitempty"`
	LoginIP      string        `json:"login_ip,omitempty"`

	RefreshToken string `json:"-"`

	ResetPasswordToken  string    `json:"-"`
	ResetPasswordExpiry time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPermission is the permission evaluator: superadmin always passes, every
// other role resolves to exactly the stored flag.
func (a *Admin) HasPermission(p Permission) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	return a.Permissions.Allows(p)
}
