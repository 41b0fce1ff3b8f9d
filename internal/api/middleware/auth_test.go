package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/token"
)

type stubAdminRepo struct {
	admins map[string]*domain.Admin
}

func (r *stubAdminRepo) Create(_ context.Context, a *domain.Admin) (*domain.Admin, error) {
	return a, nil
}

func (r *stubAdminRepo) FindByID(_ context.Context, id string) (*domain.Admin, error) {
	a, ok := r.admins[id]
	if !ok {
		return nil, domain.ErrAdminNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAdminRepo) FindByEmail(_ context.Context, email string) (*domain.Admin, error) {
	return nil, domain.ErrAdminNotFound
}

func (r *stubAdminRepo) List(_ context.Context) ([]*domain.Admin, error) { return nil, nil }

func (r *stubAdminRepo) SetRefreshToken(_ context.Context, id, tok string) error { return nil }

func (r *stubAdminRepo) SetPassword(_ context.Context, id, hash string) error { return nil }

func (r *stubAdminRepo) UpdatePermissions(_ context.Context, id string, perms domain.PermissionSet) error {
	return nil
}

func (r *stubAdminRepo) SetActive(_ context.Context, id string, active bool) error { return nil }

func (r *stubAdminRepo) RecordLogin(_ context.Context, id string, at time.Time, ip string) error {
	return nil
}

func (r *stubAdminRepo) Delete(_ context.Context, id string) error { return nil }

func testIssuer() *token.Issuer {
	return token.NewIssuer("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func issueAccess(t *testing.T, iss *token.Issuer, id string, ptype token.PrincipalType, role, email string) string {
	t.Helper()
	signed, err := iss.Issue(id, ptype, role, email, token.KindAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return signed
}

func newRequestContext(withCookie, cookieName, value, bearer string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if withCookie == "cookie" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: value})
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestClientAuth_ValidCookieToken(t *testing.T) {
	iss := testIssuer()
	signed := issueAccess(t, iss, "client-1", token.PrincipalClient, "client", "alice@example.com")

	c, _ := newRequestContext("cookie", "accessToken", signed, "")
	called := false
	h := ClientAuth(iss)(func(c echo.Context) error {
		called = true
		if c.Get("client_id") != "client-1" {
			t.Fatalf("client_id not set")
		}
		if c.Get("role") != "client" || c.Get("email") != "alice@example.com" {
			t.Fatalf("claims not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestClientAuth_BearerFallback(t *testing.T) {
	iss := testIssuer()
	signed := issueAccess(t, iss, "client-1", token.PrincipalClient, "client", "")

	c, _ := newRequestContext("", "", "", signed)
	h := ClientAuth(iss)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestClientAuth_MissingToken(t *testing.T) {
	c, _ := newRequestContext("", "", "", "")
	h := ClientAuth(testIssuer())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := h(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestClientAuth_RejectsAdminToken(t *testing.T) {
	iss := testIssuer()
	signed := issueAccess(t, iss, "admin-1", token.PrincipalAdmin, "admin", "")

	c, _ := newRequestContext("cookie", "accessToken", signed, "")
	h := ClientAuth(iss)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := h(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("admin token on client route: expected 401, got %v", err)
	}
}

func TestClientAuth_RejectsRefreshToken(t *testing.T) {
	iss := testIssuer()
	refresh, err := iss.Issue("client-1", token.PrincipalClient, "", "", token.KindRefresh)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, _ := newRequestContext("cookie", "accessToken", refresh, "")
	h := ClientAuth(iss)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	herr := h(c)
	var he *echo.HTTPError
	if !errors.As(herr, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token as access: expected 401, got %v", herr)
	}
}

func TestOptionalClientAuth(t *testing.T) {
	iss := testIssuer()

	// Without a token the request passes with no claims.
	c, _ := newRequestContext("", "", "", "")
	h := OptionalClientAuth(iss)(func(c echo.Context) error {
		if c.Get("client_id") != nil {
			t.Fatalf("claims set without a token")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// With a valid token the client id rides along.
	signed := issueAccess(t, iss, "client-1", token.PrincipalClient, "client", "")
	c, _ = newRequestContext("cookie", "accessToken", signed, "")
	h = OptionalClientAuth(iss)(func(c echo.Context) error {
		if c.Get("client_id") != "client-1" {
			t.Fatalf("client_id not set")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAdminAuth(t *testing.T) {
	iss := testIssuer()
	repo := &stubAdminRepo{admins: map[string]*domain.Admin{
		"admin-1": {ID: "admin-1", Role: domain.RoleAdmin, IsActive: true},
		"admin-2": {ID: "admin-2", Role: domain.RoleAdmin, IsActive: false},
	}}

	// Active admin passes and is loaded into context.
	signed := issueAccess(t, iss, "admin-1", token.PrincipalAdmin, "admin", "")
	c, _ := newRequestContext("cookie", "adminAccessToken", signed, "")
	h := AdminAuth(iss, repo)(func(c echo.Context) error {
		admin, _ := c.Get("admin").(*domain.Admin)
		if admin == nil || admin.ID != "admin-1" {
			t.Fatalf("admin not loaded into context")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// Deactivated admin is rejected despite a valid token.
	signed = issueAccess(t, iss, "admin-2", token.PrincipalAdmin, "admin", "")
	c, _ = newRequestContext("cookie", "adminAccessToken", signed, "")
	h = AdminAuth(iss, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})
	err := h(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("inactive admin: expected 403, got %v", err)
	}

	// Token for an account that no longer exists.
	signed = issueAccess(t, iss, "ghost", token.PrincipalAdmin, "admin", "")
	c, _ = newRequestContext("cookie", "adminAccessToken", signed, "")
	err = AdminAuth(iss, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("unknown admin: expected 401, got %v", err)
	}

	// Client token on an admin route.
	signed = issueAccess(t, iss, "client-1", token.PrincipalClient, "client", "")
	c, _ = newRequestContext("cookie", "adminAccessToken", signed, "")
	err = AdminAuth(iss, repo)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})(c)
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("client token on admin route: expected 401, got %v", err)
	}
}
