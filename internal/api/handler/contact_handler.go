package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/api/metrics"
	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// ContactHandler exposes the public contact form and the admin inbox.
type ContactHandler struct {
	contacts ports.ContactService
}

func NewContactHandler(contacts ports.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type submitContactRequest struct {
	FullName string `json:"full_name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject" validate:"required,min=3"`
	Message  string `json:"message" validate:"required,min=10"`
}

// Submit accepts a contact-form submission. When a logged-in client calls it
// the submission is linked to their account; anonymous visitors are accepted
// too.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req submitContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Optional identity: the route runs without auth, but the middleware sets
	// client_id when a valid session cookie rides along.
	clientID, _ := c.Get("client_id").(string)

	contact, err := h.contacts.Submit(c.Request().Context(), ports.SubmitContactInput{
		FullName: req.FullName,
		Email:    req.Email,
		Subject:  req.Subject,
		Message:  req.Message,
		ClientID: clientID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSubmission) {
			metrics.ContactSubmissionsTotal.WithLabelValues("duplicate").Inc()
		}
		return err
	}
	metrics.ContactSubmissionsTotal.WithLabelValues("accepted").Inc()

	return respond(c, http.StatusCreated, contact, "message received")
}

func (h *ContactHandler) List(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	filter := ports.ListContactsFilter{
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
	res, err := h.contacts.List(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listData{Items: res.Items, Total: res.Total, Page: filter.Page, Limit: filter.Limit}, "")
}

type respondContactRequest struct {
	Response string `json:"response" validate:"required,min=2"`
}

func (h *ContactHandler) Respond(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req respondContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.contacts.Respond(c.Request().Context(), actor, c.Param("id"), req.Response); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "response sent")
}

type updateContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending resolved closed"`
}

func (h *ContactHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req updateContactStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.contacts.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.ContactStatus(req.Status)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "contact status updated")
}
