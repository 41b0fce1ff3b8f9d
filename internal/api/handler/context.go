package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// ctxClientID extracts the authenticated client's id injected by the
// ClientAuth middleware. Presence proves the middleware ran; without it the
// route is misconfigured and the request must not reach a service.
func ctxClientID(c echo.Context) (string, error) {
	id, _ := c.Get("client_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// ctxAdmin extracts the acting admin loaded by the AdminAuth middleware.
func ctxAdmin(c echo.Context) (*domain.Admin, error) {
	admin, _ := c.Get("admin").(*domain.Admin)
	if admin == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return admin, nil
}

// queryInt parses an integer query parameter, returning 0 when absent or
// malformed; services normalize paging bounds.
func queryInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	return n
}
