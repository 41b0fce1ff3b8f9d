package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// CareerHandler exposes the public job-application form and its admin review
// surface. Applications arrive as multipart forms carrying the resume file.
type CareerHandler struct {
	careers ports.CareerService
	media   ports.MediaStore
	notify  ports.Notifier
}

func NewCareerHandler(careers ports.CareerService, media ports.MediaStore, notify ports.Notifier) *CareerHandler {
	return &CareerHandler{careers: careers, media: media, notify: notify}
}

func (h *CareerHandler) Apply(c echo.Context) error {
	fullName := strings.TrimSpace(c.FormValue("full_name"))
	email := strings.TrimSpace(c.FormValue("email"))
	position := strings.TrimSpace(c.FormValue("position"))
	if fullName == "" || email == "" || position == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "full_name, email and position are required")
	}

	fh, err := formFile(c, "resume")
	if err != nil {
		return err
	}
	if fh == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "resume file is required")
	}

	resume, err := saveToMediaStore(c.Request().Context(), h.media, fh, "resumes")
	if err != nil {
		return err
	}

	app, err := h.careers.Apply(c.Request().Context(), ports.ApplyCareerInput{
		FullName:    fullName,
		Email:       email,
		Phone:       c.FormValue("phone"),
		Position:    position,
		CoverLetter: c.FormValue("cover_letter"),
		Resume:      resume,
	})
	if err != nil {
		// The resume already reached the media store; don't leave it orphaned.
		discardUploads(h.notify, resume)
		return err
	}
	return respond(c, http.StatusCreated, app, "application received")
}

func (h *CareerHandler) List(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	filter := ports.ListCareersFilter{
		Status:   c.QueryParam("status"),
		Position: c.QueryParam("position"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}
	res, err := h.careers.List(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listData{Items: res.Items, Total: res.Total, Page: filter.Page, Limit: filter.Limit}, "")
}

type updateCareerStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed shortlisted rejected"`
}

func (h *CareerHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req updateCareerStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.careers.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.CareerStatus(req.Status)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "application status updated")
}

func (h *CareerHandler) Delete(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}
	if err := h.careers.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "application deleted")
}
