package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// CatalogService implements the public service and pricing catalog. Reads
// are public and show only active entries; mutations go through the acting
// admin's permission matrix.
type CatalogService struct {
	catalog ports.CatalogRepository
	notify  ports.Notifier
	logger  zerolog.Logger
}

func NewCatalogService(catalog ports.CatalogRepository, notify ports.Notifier, logger zerolog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, notify: notify, logger: logger}
}

func (s *CatalogService) ListServices(ctx context.Context) ([]*domain.Service, error) {
	return s.catalog.ListServices(ctx, domain.CatalogActive)
}

func (s *CatalogService) GetService(ctx context.Context, slug string) (*domain.Service, error) {
	svc, err := s.catalog.FindServiceBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if svc.Status != domain.CatalogActive {
		return nil, domain.ErrServiceNotFound
	}
	return svc, nil
}

func (s *CatalogService) CreateService(ctx context.Context, actor *domain.Admin, in ports.CreateServiceInput) (*domain.Service, error) {
	if err := requirePermission(actor, domain.PermManageServices); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	svc := &domain.Service{
		Name:        in.Name,
		Slug:        slugify(in.Name),
		Description: in.Description,
		Thumbnail:   in.Thumbnail,
		Features:    in.Features,
		Status:      domain.CatalogActive,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	created, err := s.catalog.CreateService(ctx, svc)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("service_id", created.ID).Str("created_by", actor.ID).Msg("service created")
	return created, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, actor *domain.Admin, id string, in ports.UpdateServiceInput) (*domain.Service, error) {
	if err := requirePermission(actor, domain.PermManageServices); err != nil {
		return nil, err
	}

	svc, err := s.catalog.FindServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var replaced domain.Attachment
	if in.Name != nil {
		svc.Name = *in.Name
		svc.Slug = slugify(*in.Name)
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.Features != nil {
		svc.Features = in.Features
	}
	if in.Thumbnail != nil {
		replaced = svc.Thumbnail
		svc.Thumbnail = *in.Thumbnail
	}
	if in.Status != nil {
		svc.Status = *in.Status
	}
	svc.UpdatedAt = time.Now().UTC()

	if err := s.catalog.UpdateService(ctx, svc); err != nil {
		return nil, err
	}
	if !replaced.IsZero() {
		s.notify.EnqueueMediaDelete(replaced.PublicID, replaced.Kind)
	}
	return svc, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, actor *domain.Admin, id string) error {
	if err := requirePermission(actor, domain.PermManageServices); err != nil {
		return err
	}
	svc, err := s.catalog.FindServiceByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.catalog.DeleteService(ctx, id); err != nil {
		return err
	}
	if !svc.Thumbnail.IsZero() {
		s.notify.EnqueueMediaDelete(svc.Thumbnail.PublicID, svc.Thumbnail.Kind)
	}
	s.logger.Info().Str("service_id", id).Str("deleted_by", actor.ID).Msg("service deleted")
	return nil
}

func (s *CatalogService) ListPlans(ctx context.Context) ([]*domain.PricingPlan, error) {
	return s.catalog.ListPlans(ctx, domain.CatalogActive)
}

func (s *CatalogService) CreatePlan(ctx context.Context, actor *domain.Admin, in ports.CreatePlanInput) (*domain.PricingPlan, error) {
	if err := requirePermission(actor, domain.PermManagePricing); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	plan := &domain.PricingPlan{
		Name:          in.Name,
		Price:         in.Price,
		Currency:      in.Currency,
		BillingPeriod: in.BillingPeriod,
		Features:      in.Features,
		Popular:       in.Popular,
		Status:        domain.CatalogActive,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.catalog.CreatePlan(ctx, plan)
}

func (s *CatalogService) UpdatePlan(ctx context.Context, actor *domain.Admin, id string, in ports.UpdatePlanInput) (*domain.PricingPlan, error) {
	if err := requirePermission(actor, domain.PermManagePricing); err != nil {
		return nil, err
	}

	plan, err := s.catalog.FindPlanByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		plan.Name = *in.Name
	}
	if in.Price != nil {
		plan.Price = *in.Price
	}
	if in.Features != nil {
		plan.Features = in.Features
	}
	if in.Popular != nil {
		plan.Popular = *in.Popular
	}
	if in.Status != nil {
		plan.Status = *in.Status
	}
	plan.UpdatedAt = time.Now().UTC()

	if err := s.catalog.UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *CatalogService) DeletePlan(ctx context.Context, actor *domain.Admin, id string) error {
	if err := requirePermission(actor, domain.PermManagePricing); err != nil {
		return err
	}
	if _, err := s.catalog.FindPlanByID(ctx, id); err != nil {
		return err
	}
	return s.catalog.DeletePlan(ctx, id)
}
