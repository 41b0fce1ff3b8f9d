package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/api/metrics"
	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

const (
	clientAccessCookie  = "accessToken"
	clientRefreshCookie = "refreshToken"
)

type AuthHandler struct {
	auth       ports.AuthService
	accessTTL  time.Duration
	refreshTTL time.Duration
	secure     bool
}

func NewAuthHandler(auth ports.AuthService, accessTTL, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, accessTTL: accessTTL, refreshTTL: refreshTTL, secure: secureCookies}
}

type registerRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7"`
	Password string `json:"password" validate:"required"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionData struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Client       *domain.Client `json:"client"`
}

// Register creates a new client account.
//
// @Summary      Register a new client
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.auth.Register(c.Request().Context(), ports.RegisterClientInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, client, "account created")
}

// Login authenticates a client and issues a token pair.
//
// @Summary      Client login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, pair, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("client", loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("client", "success").Inc()

	h.setSessionCookies(c, pair)
	return respond(c, http.StatusOK, sessionData{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Client:       client,
	}, "logged in")
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates the token pair. The refresh token is read from the cookie
// when present, falling back to the request body for non-browser clients.
//
// @Summary      Refresh client tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  false  "Refresh token (optional when cookie is set)"
// @Success      200   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	raw := cookieValue(c, clientRefreshCookie)
	if raw == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			raw = req.RefreshToken
		}
	}
	if raw == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	client, pair, err := h.auth.Refresh(c.Request().Context(), raw)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("client", refreshResult(err)).Inc()
		return err
	}
	metrics.TokenRefreshTotal.WithLabelValues("client", "success").Inc()

	h.setSessionCookies(c, pair)
	return respond(c, http.StatusOK, sessionData{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Client:       client,
	}, "tokens refreshed")
}

// Logout clears the stored refresh token and expires the session cookies.
func (h *AuthHandler) Logout(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Request().Context(), clientID); err != nil {
		return err
	}

	expireCookie(c, clientAccessCookie, h.secure)
	expireCookie(c, clientRefreshCookie, h.secure)
	return respond(c, http.StatusOK, nil, "logged out")
}

// Me returns the authenticated client's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	client, err := h.auth.Me(c.Request().Context(), clientID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, client, "")
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// ChangePassword verifies the current password, stores the new hash and
// invalidates every outstanding session.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	clientID, err := ctxClientID(c)
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

	if err := h.auth.ChangePassword(c.Request().Context(), clientID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	expireCookie(c, clientAccessCookie, h.secure)
	expireCookie(c, clientRefreshCookie, h.secure)
	return respond(c, http.StatusOK, nil, "password changed")
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword schedules a reset email. The response is identical whether
// or not the address exists.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "if the address exists, a reset link has been sent")
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// ResetPassword consumes a reset token and stores the new password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "password reset")
}

func (h *AuthHandler) setSessionCookies(c echo.Context, pair *ports.TokenPair) {
	setCookie(c, clientAccessCookie, pair.AccessToken, h.accessTTL, h.secure)
	setCookie(c, clientRefreshCookie, pair.RefreshToken, h.refreshTTL, h.secure)
}

func setCookie(c echo.Context, name, value string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: cookieSameSite(secure),
	})
}

func expireCookie(c echo.Context, name string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: cookieSameSite(secure),
	})
}

// cookieSameSite is Strict in production. Development frontends run on a
// different port, so cross-site navigation must still carry the cookie.
func cookieSameSite(secure bool) http.SameSite {
	if secure {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

func cookieValue(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil || ck == nil {
		return ""
	}
	return ck.Value
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	default:
		return "invalid_credentials"
	}
}

func refreshResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrRefreshTokenReused):
		return "reused"
	default:
		return "invalid"
	}
}
