package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/api/metrics"
	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// Admin session cookies are named apart from the client ones so both
// principals can stay signed in from the same browser.
const (
	adminAccessCookie  = "adminAccessToken"
	adminRefreshCookie = "adminRefreshToken"
)

type AdminAuthHandler struct {
	auth       ports.AdminAuthService
	accessTTL  time.Duration
	refreshTTL time.Duration
	secure     bool
}

func NewAdminAuthHandler(auth ports.AdminAuthService, accessTTL, refreshTTL time.Duration, secureCookies bool) *AdminAuthHandler {
	return &AdminAuthHandler{auth: auth, accessTTL: accessTTL, refreshTTL: refreshTTL, secure: secureCookies}
}

type adminSessionData struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	Admin        *domain.Admin `json:"admin"`
}

// Login authenticates an admin and issues a token pair. The client IP is
// recorded on the account.
func (h *AdminAuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, pair, err := h.auth.Login(c.Request().Context(), req.Email, req.Password, c.RealIP())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("admin", loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("admin", "success").Inc()

	h.setSessionCookies(c, pair)
	return respond(c, http.StatusOK, adminSessionData{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Admin:        admin,
	}, "logged in")
}

// Refresh rotates the admin token pair.
func (h *AdminAuthHandler) Refresh(c echo.Context) error {
	raw := cookieValue(c, adminRefreshCookie)
	if raw == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			raw = req.RefreshToken
		}
	}
	if raw == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	admin, pair, err := h.auth.Refresh(c.Request().Context(), raw)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("admin", refreshResult(err)).Inc()
		return err
	}
	metrics.TokenRefreshTotal.WithLabelValues("admin", "success").Inc()

	h.setSessionCookies(c, pair)
	return respond(c, http.StatusOK, adminSessionData{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Admin:        admin,
	}, "tokens refreshed")
}

// Logout clears the stored refresh token and expires the session cookies.
func (h *AdminAuthHandler) Logout(c echo.Context) error {
	admin, err := ctxAdmin(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), admin.ID); err != nil {
		return err
	}

	expireCookie(c, adminAccessCookie, h.secure)
	expireCookie(c, adminRefreshCookie, h.secure)
	return respond(c, http.StatusOK, nil, "logged out")
}

// Me returns the acting admin's account, permissions included.
func (h *AdminAuthHandler) Me(c echo.Context) error {
	admin, err := ctxAdmin(c)
	if err != nil {
		return err
	}
	out, err := h.auth.Me(c.Request().Context(), admin.ID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, out, "")
}

// ChangePassword verifies the current password, stores the new hash and
// invalidates every outstanding admin session.
func (h *AdminAuthHandler) ChangePassword(c echo.Context) error {
	admin, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ChangePassword(c.Request().Context(), admin.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	expireCookie(c, adminAccessCookie, h.secure)
	expireCookie(c, adminRefreshCookie, h.secure)
	return respond(c, http.StatusOK, nil, "password changed")
}

func (h *AdminAuthHandler) setSessionCookies(c echo.Context, pair *ports.TokenPair) {
	setCookie(c, adminAccessCookie, pair.AccessToken, h.accessTTL, h.secure)
	setCookie(c, adminRefreshCookie, pair.RefreshToken, h.refreshTTL, h.secure)
}
