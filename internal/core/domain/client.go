package domain

import "time"

// ClientStatus is the account lifecycle state of a client.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientBanned   ClientStatus = "banned"
	ClientPending  ClientStatus = "pending"
)

// ValidClientStatus reports whether s is a known client status.
func ValidClientStatus(s ClientStatus) bool {
	switch s {
	case ClientActive, ClientInactive, ClientBanned, ClientPending:
		return true
	}
	return false
}

// Client is a customer principal. It owns blogs and service requests and
// carries its own token state, independent of any Admin account sharing the
// same browser.
type Client struct {
	ID              string       `json:"id"`
	FullName        string       `json:"full_name"`
	Email           string       `json:"email"`
	Phone           string       `json:"phone"`
	PasswordHash    string       `json:"-"`
	Role            string       `json:"role"` // "client" or "admin"
	Address         string       `json:"address,omitempty"`
	IsEmailVerified bool         `json:"is_email_verified"`
	IsPhoneVerified bool         `json:"is_phone_verified"`
	Status          ClientStatus `json:"status"`

	// RefreshToken is the single currently valid refresh token. Empty means
	// no outstanding session; overwriting it invalidates the previous one.
	RefreshToken string `json:"-"`

	ResetPasswordToken  string    `json:"-"`
	ResetPasswordExpiry time.Time `json:"-"`

	BlogIDs           []string `json:"blog_ids,omitempty"`
	ServiceRequestIDs []string `json:"service_request_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CanAuthenticate reports whether the account may establish or continue a
// session. Banned and inactive accounts keep their records but lose access.
func (c *Client) CanAuthenticate() bool {
	return c.Status == ClientActive || c.Status == ClientPending
}
