// Package token implements stateless issuance and verification of the two
// token classes (access, refresh) for both principal types (client, admin).
// Each class is signed with its own secret, so an access token can never be
// presented as a refresh token or vice versa. Statefulness (the single stored
// refresh token per principal) lives in the services, not here.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// Kind selects the token class and therefore the signing secret and TTL.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// PrincipalType distinguishes client tokens from admin tokens in the payload.
type PrincipalType string

const (
	PrincipalClient PrincipalType = "client"
	PrincipalAdmin  PrincipalType = "admin"
)

// Claims is the signed token payload. Subject carries the principal id.
// Role and Email are denormalized onto access tokens only, so per-request
// authorization does not need a lookup.
type Claims struct {
	PrincipalType PrincipalType `json:"ptype"`
	Role          string        `json:"role,omitempty"`
	Email         string        `json:"email,omitempty"`
	jwt.RegisteredClaims
}

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Issuer signs and verifies tokens with per-kind secrets.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewIssuer builds an Issuer. Non-positive TTLs fall back to the defaults.
func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue signs a token of the given kind for the principal. Role and email are
// included only on access tokens; refresh tokens carry the minimum needed to
// look the principal back up.
func (i *Issuer) Issue(principalID string, ptype PrincipalType, role, email string, kind Kind) (string, error) {
	secret, ttl, err := i.kindParams(kind)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	claims := Claims{
		PrincipalType: ptype,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if kind == KindAccess {
		claims.Role = role
		claims.Email = email
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Verify parses and validates a token against the secret for kind. Any
// failure (bad signature, wrong kind's secret, expiry, malformed input)
// resolves to domain.ErrInvalidToken.
func (i *Issuer) Verify(tokenStr string, kind Kind) (*Claims, error) {
	secret, _, err := i.kindParams(kind)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("verify %s token: %w", kind, domain.ErrInvalidToken)
	}
	if claims.Subject == "" || claims.PrincipalType == "" {
		return nil, fmt.Errorf("verify %s token: missing claims: %w", kind, domain.ErrInvalidToken)
	}
	return claims, nil
}

func (i *Issuer) kindParams(kind Kind) ([]byte, time.Duration, error) {
	switch kind {
	case KindAccess:
		return i.accessSecret, i.accessTTL, nil
	case KindRefresh:
		return i.refreshSecret, i.refreshTTL, nil
	}
	return nil, 0, errors.New("token: unknown kind " + string(kind))
}
