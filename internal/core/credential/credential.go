// Package credential wraps password hashing and the strength predicate.
// Admin secrets are treated as higher-value: larger bcrypt cost and a longer
// minimum length.
package credential

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

const (
	ClientCost = 10
	AdminCost  = 12

	ClientMinLength = 6
	AdminMinLength  = 8
)

// HashSecret hashes a plaintext secret with the given bcrypt cost.
func HashSecret(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(b), nil
}

// CompareSecret reports whether plain matches the stored bcrypt hash.
func CompareSecret(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CheckStrength enforces the password policy: minimum length plus at least
// one uppercase letter, one lowercase letter, one digit, and one symbol.
// Violations return domain.ErrWeakCredential.
func CheckStrength(plain string, minLength int) error {
	if len(plain) < minLength {
		return fmt.Errorf("password shorter than %d characters: %w", minLength, domain.ErrWeakCredential)
	}

	var upper, lower, digit, symbol bool
	for _, r := range plain {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	if !upper || !lower || !digit || !symbol {
		return fmt.Errorf("password must mix upper, lower, digit and symbol: %w", domain.ErrWeakCredential)
	}
	return nil
}
