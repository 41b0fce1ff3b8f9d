package token

import (
	"errors"
	"testing"
	"time"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

func newTestIssuer() *Issuer {
	return NewIssuer("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func TestIssuer_RoundTrip(t *testing.T) {
	iss := newTestIssuer()

	signed, err := iss.Issue("client-1", PrincipalClient, "client", "alice@example.com", KindAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := iss.Verify(signed, KindAccess)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "client-1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.PrincipalType != PrincipalClient {
		t.Fatalf("unexpected principal type: %s", claims.PrincipalType)
	}
	if claims.Role != "client" || claims.Email != "alice@example.com" {
		t.Fatalf("role/email not carried on access token: %+v", claims)
	}
}

func TestIssuer_RefreshOmitsRoleAndEmail(t *testing.T) {
	iss := newTestIssuer()

	signed, err := iss.Issue("admin-1", PrincipalAdmin, "admin", "root@example.com", KindRefresh)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := iss.Verify(signed, KindRefresh)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Role != "" || claims.Email != "" {
		t.Fatalf("refresh token must not carry role/email: %+v", claims)
	}
	if claims.PrincipalType != PrincipalAdmin {
		t.Fatalf("unexpected principal type: %s", claims.PrincipalType)
	}
}

func TestIssuer_KindSecretsAreIndependent(t *testing.T) {
	iss := newTestIssuer()

	access, err := iss.Issue("client-1", PrincipalClient, "client", "a@example.com", KindAccess)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, err := iss.Issue("client-1", PrincipalClient, "", "", KindRefresh)
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	if _, err := iss.Verify(access, KindRefresh); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
	if _, err := iss.Verify(refresh, KindAccess); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
}

func TestIssuer_Expired(t *testing.T) {
	iss := newTestIssuer()
	// NewIssuer replaces non-positive TTLs with defaults, so backdate the
	// field directly.
	iss.accessTTL = -time.Minute

	signed, err := iss.Issue("client-1", PrincipalClient, "client", "", KindAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := iss.Verify(signed, KindAccess); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestIssuer_WrongSecret(t *testing.T) {
	iss := newTestIssuer()
	other := NewIssuer("different", "secrets", time.Minute, time.Hour)

	signed, err := iss.Issue("client-1", PrincipalClient, "client", "", KindAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(signed, KindAccess); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestIssuer_Malformed(t *testing.T) {
	iss := newTestIssuer()
	for _, in := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := iss.Verify(in, KindAccess); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("input %q: expected ErrInvalidToken, got %v", in, err)
		}
	}
}

func TestIssuer_UnknownKind(t *testing.T) {
	iss := newTestIssuer()
	if _, err := iss.Issue("client-1", PrincipalClient, "", "", Kind("session")); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
