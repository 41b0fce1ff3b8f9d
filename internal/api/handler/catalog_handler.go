package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// CatalogHandler serves the public service/pricing catalog and its admin
// management surface.
type CatalogHandler struct {
	catalog ports.CatalogService
	media   ports.MediaStore
	notify  ports.Notifier
}

func NewCatalogHandler(catalog ports.CatalogService, media ports.MediaStore, notify ports.Notifier) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, media: media, notify: notify}
}

func (h *CatalogHandler) ListServices(c echo.Context) error {
	services, err := h.catalog.ListServices(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, services, "")
}

func (h *CatalogHandler) GetService(c echo.Context) error {
	svc, err := h.catalog.GetService(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, svc, "")
}

func (h *CatalogHandler) CreateService(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	in := ports.CreateServiceInput{
		Name:        name,
		Description: c.FormValue("description"),
		Features:    splitTags(c.FormValue("features")),
	}

	if fh, err := formFile(c, "thumbnail"); err != nil {
		return err
	} else if fh != nil {
		in.Thumbnail, err = saveToMediaStore(c.Request().Context(), h.media, fh, "services")
		if err != nil {
			return err
		}
	}

	svc, err := h.catalog.CreateService(c.Request().Context(), actor, in)
	if err != nil {
		// The thumbnail already reached the media store; don't leave it orphaned.
		discardUploads(h.notify, in.Thumbnail)
		return err
	}
	return respond(c, http.StatusCreated, svc, "service created")
}

func (h *CatalogHandler) UpdateService(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var in ports.UpdateServiceInput
	if v := c.FormValue("name"); v != "" {
		in.Name = &v
	}
	if v := c.FormValue("description"); v != "" {
		in.Description = &v
	}
	if v := c.FormValue("features"); v != "" {
		in.Features = splitTags(v)
	}
	if v := c.FormValue("status"); v != "" {
		status := domain.CatalogStatus(v)
		if status != domain.CatalogActive && status != domain.CatalogInactive {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		in.Status = &status
	}

	if fh, err := formFile(c, "thumbnail"); err != nil {
		return err
	} else if fh != nil {
		thumb, err := saveToMediaStore(c.Request().Context(), h.media, fh, "services")
		if err != nil {
			return err
		}
		in.Thumbnail = &thumb
	}

	svc, err := h.catalog.UpdateService(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		if in.Thumbnail != nil {
			discardUploads(h.notify, *in.Thumbnail)
		}
		return err
	}
	return respond(c, http.StatusOK, svc, "service updated")
}

func (h *CatalogHandler) DeleteService(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteService(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "service deleted")
}

func (h *CatalogHandler) ListPlans(c echo.Context) error {
	plans, err := h.catalog.ListPlans(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, plans, "")
}

type createPlanRequest struct {
	Name          string   `json:"name" validate:"required"`
	Price         float64  `json:"price" validate:"gte=0"`
	Currency      string   `json:"currency" validate:"required,len=3"`
	BillingPeriod string   `json:"billing_period" validate:"required,oneof=monthly yearly one_time"`
	Features      []string `json:"features"`
	Popular       bool     `json:"popular"`
}

func (h *CatalogHandler) CreatePlan(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req createPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := h.catalog.CreatePlan(c.Request().Context(), actor, ports.CreatePlanInput{
		Name:          req.Name,
		Price:         req.Price,
		Currency:      strings.ToUpper(req.Currency),
		BillingPeriod: domain.BillingPeriod(req.BillingPeriod),
		Features:      req.Features,
		Popular:       req.Popular,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, plan, "pricing plan created")
}

type updatePlanRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Features []string `json:"features"`
	Popular  *bool    `json:"popular"`
	Status   *string  `json:"status"`
}

func (h *CatalogHandler) UpdatePlan(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req updatePlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	in := ports.UpdatePlanInput{
		Name:     req.Name,
		Price:    req.Price,
		Features: req.Features,
		Popular:  req.Popular,
	}
	if req.Status != nil {
		status := domain.CatalogStatus(*req.Status)
		if status != domain.CatalogActive && status != domain.CatalogInactive {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		in.Status = &status
	}

	plan, err := h.catalog.UpdatePlan(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, plan, "pricing plan updated")
}

func (h *CatalogHandler) DeletePlan(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}
	if err := h.catalog.DeletePlan(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "pricing plan deleted")
}
