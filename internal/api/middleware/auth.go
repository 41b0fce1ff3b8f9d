package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/core/ports"
	"github.com/studiozeta/agency-api/internal/core/token"
)

const (
	clientAccessCookie = "accessToken"
	adminAccessCookie  = "adminAccessToken"
)

// ClientAuth validates a client access token and injects the claims into
// context. Tokens are read from the session cookie first, then the
// Authorization header for non-browser clients.
func ClientAuth(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := verifyRequest(c, issuer, clientAccessCookie, token.PrincipalClient)
			if err != nil {
				return err
			}

			c.Set("client_id", claims.Subject)
			c.Set("role", claims.Role)
			c.Set("email", claims.Email)
			return next(c)
		}
	}
}

// OptionalClientAuth injects client claims when a valid token rides along and
// lets the request through untouched otherwise. Used on public routes that
// link submissions to an account when one is present.
func OptionalClientAuth(issuer *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := verifyRequest(c, issuer, clientAccessCookie, token.PrincipalClient)
			if err == nil {
				c.Set("client_id", claims.Subject)
			}
			return next(c)
		}
	}
}

// AdminAuth validates an admin access token, loads the account and injects it
// into context. Deactivated accounts are rejected even while their access
// token is still inside its TTL.
func AdminAuth(issuer *token.Issuer, admins ports.AdminRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := verifyRequest(c, issuer, adminAccessCookie, token.PrincipalAdmin)
			if err != nil {
				return err
			}

			admin, err := admins.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown admin account")
			}
			if !admin.IsActive {
				return echo.NewHTTPError(http.StatusForbidden, "account is disabled")
			}

			c.Set("admin", admin)
			return next(c)
		}
	}
}

func verifyRequest(c echo.Context, issuer *token.Issuer, cookieName string, want token.PrincipalType) (*token.Claims, error) {
	raw := extractToken(c, cookieName)
	if raw == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
	}

	claims, err := issuer.Verify(raw, token.KindAccess)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	if claims.PrincipalType != want {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "wrong token type")
	}
	return claims, nil
}

func extractToken(c echo.Context, cookieName string) string {
	if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
		return ck.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
