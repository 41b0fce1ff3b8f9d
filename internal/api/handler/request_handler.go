package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/api/metrics"
	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// maxRequestAttachments bounds how many files a single request may carry.
const maxRequestAttachments = 5

// RequestHandler exposes the client service-request lifecycle and its admin
// review surface.
type RequestHandler struct {
	requests ports.RequestService
	media    ports.MediaStore
	notify   ports.Notifier
}

func NewRequestHandler(requests ports.RequestService, media ports.MediaStore, notify ports.Notifier) *RequestHandler {
	return &RequestHandler{requests: requests, media: media, notify: notify}
}

// Create accepts a multipart form: service_id, title, description, budget,
// plus up to maxRequestAttachments files under "attachments".
func (h *RequestHandler) Create(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	serviceID := strings.TrimSpace(c.FormValue("service_id"))
	title := strings.TrimSpace(c.FormValue("title"))
	if serviceID == "" || title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "service_id and title are required")
	}

	in := ports.CreateRequestInput{
		ServiceID:   serviceID,
		Title:       title,
		Description: c.FormValue("description"),
	}
	if v := c.FormValue("budget"); v != "" {
		budget, err := strconv.ParseFloat(v, 64)
		if err != nil || budget < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid budget")
		}
		in.Budget = budget
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["attachments"]
		if len(files) > maxRequestAttachments {
			return echo.NewHTTPError(http.StatusBadRequest, "too many attachments")
		}
		for _, fh := range files {
			att, err := saveToMediaStore(c.Request().Context(), h.media, fh, "requests")
			if err != nil {
				// Earlier files in the batch are already stored.
				discardUploads(h.notify, in.Attachments...)
				return err
			}
			in.Attachments = append(in.Attachments, att)
		}
	}

	req, err := h.requests.Create(c.Request().Context(), clientID, in)
	if err != nil {
		discardUploads(h.notify, in.Attachments...)
		return err
	}
	metrics.RequestsCreatedTotal.Inc()

	return respond(c, http.StatusCreated, req, "service request created")
}

func (h *RequestHandler) Get(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	req, err := h.requests.Get(c.Request().Context(), clientID, c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, req, "")
}

func (h *RequestHandler) ListOwn(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	filter := ports.ListRequestsFilter{
		Status: c.QueryParam("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
	res, err := h.requests.ListOwn(c.Request().Context(), clientID, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listData{Items: res.Items, Total: res.Total, Page: filter.Page, Limit: filter.Limit}, "")
}

func (h *RequestHandler) AdminList(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	filter := ports.ListRequestsFilter{
		ClientID:  c.QueryParam("client_id"),
		ServiceID: c.QueryParam("service_id"),
		Status:    c.QueryParam("status"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}
	res, err := h.requests.AdminList(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listData{Items: res.Items, Total: res.Total, Page: filter.Page, Limit: filter.Limit}, "")
}

type reviewRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=under_review approved declined completed"`
	Notes  string `json:"notes"`
}

func (h *RequestHandler) Review(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req reviewRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.requests.Review(c.Request().Context(), actor, c.Param("id"), domain.RequestStatus(req.Status), req.Notes); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "request reviewed")
}
