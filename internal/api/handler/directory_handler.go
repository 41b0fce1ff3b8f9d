package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// DirectoryHandler exposes admin and client account management. Every route
// sits behind AdminAuth; fine-grained checks run in the service against the
// acting admin's permission matrix.
type DirectoryHandler struct {
	directory ports.DirectoryService
}

func NewDirectoryHandler(directory ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

type createAdminRequest struct {
	FullName    string               `json:"full_name" validate:"required,min=2"`
	Email       string               `json:"email" validate:"required,email"`
	Password    string               `json:"password" validate:"required"`
	Role        string               `json:"role" validate:"required,oneof=superadmin admin moderator"`
	Permissions domain.PermissionSet `json:"permissions"`
}

func (h *DirectoryHandler) CreateAdmin(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	admin, err := h.directory.CreateAdmin(c.Request().Context(), actor, ports.CreateAdminInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, admin, "admin created")
}

func (h *DirectoryHandler) ListAdmins(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}
	admins, err := h.directory.ListAdmins(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, admins, "")
}

type updatePermissionsRequest struct {
	Permissions domain.PermissionSet `json:"permissions"`
}

func (h *DirectoryHandler) UpdateAdminPermissions(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req updatePermissionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.directory.UpdateAdminPermissions(c.Request().Context(), actor, c.Param("id"), req.Permissions); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "permissions updated")
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (h *DirectoryHandler) SetAdminActive(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.directory.SetAdminActive(c.Request().Context(), actor, c.Param("id"), req.Active); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "admin updated")
}

func (h *DirectoryHandler) DeleteAdmin(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}
	if err := h.directory.DeleteAdmin(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "admin deleted")
}

func (h *DirectoryHandler) ListClients(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	filter := ports.ListClientsFilter{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
	clients, total, err := h.directory.ListClients(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listData{Items: clients, Total: total, Page: filter.Page, Limit: filter.Limit}, "")
}

type updateClientStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive banned pending"`
}

func (h *DirectoryHandler) UpdateClientStatus(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req updateClientStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.directory.UpdateClientStatus(c.Request().Context(), actor, c.Param("id"), domain.ClientStatus(req.Status)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "client status updated")
}

func (h *DirectoryHandler) DeleteClient(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}
	if err := h.directory.DeleteClient(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "client deleted")
}
