package service

import (
	"strings"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// normalizePage clamps pagination parameters to sane bounds.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// slugify derives a URL slug from a title: lowercase ASCII alphanumerics with
// single dashes between words.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// verifyOwnership is the ownership guard's comparison step. Existence is
// checked first by the caller (a missing resource is NotFound, never
// Forbidden), then identity equality of the owner reference.
func verifyOwnership(ownerID, requesterID string) error {
	if ownerID == "" || ownerID != requesterID {
		return domain.ErrForbidden
	}
	return nil
}

// requirePermission evaluates the acting admin's permission matrix for p.
// Superadmin always passes; a nil or inactive actor never does.
func requirePermission(actor *domain.Admin, p domain.Permission) error {
	if actor == nil || !actor.IsActive {
		return domain.ErrPermissionDenied
	}
	if !actor.HasPermission(p) {
		return domain.ErrPermissionDenied
	}
	return nil
}
