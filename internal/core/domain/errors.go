package domain

import "errors"

// Sentinel errors form the taxonomy every layer maps against. Services wrap
// them with context via %w; the HTTP error handler resolves them to status
// codes with errors.Is.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrRefreshTokenReused   = errors.New("refresh token already used")
	ErrWeakCredential       = errors.New("password does not meet strength requirements")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrForbidden            = errors.New("access forbidden")
	ErrPermissionDenied     = errors.New("insufficient permissions")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrDuplicateSubmission  = errors.New("duplicate submission")
	ErrResetTokenInvalid    = errors.New("password reset token invalid or expired")

	ErrClientNotFound  = errors.New("client not found")
	ErrClientExists    = errors.New("client already exists")
	ErrAdminNotFound   = errors.New("admin not found")
	ErrAdminExists     = errors.New("admin already exists")
	ErrBlogNotFound    = errors.New("blog not found")
	ErrBlogExists      = errors.New("blog slug already taken")
	ErrServiceNotFound = errors.New("service not found")
	ErrServiceExists   = errors.New("service slug already taken")
	ErrPlanNotFound    = errors.New("pricing plan not found")
	ErrContactNotFound = errors.New("contact submission not found")
	ErrCareerNotFound  = errors.New("career application not found")
	ErrRequestNotFound = errors.New("service request not found")
)
