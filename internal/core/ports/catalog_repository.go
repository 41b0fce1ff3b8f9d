package ports

import (
	"context"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// CatalogRepository defines persistence for the public catalog: services and
// pricing plans. Both are small collections; listings are unpaginated.
type CatalogRepository interface {
	// CreateService inserts a new service. A duplicate slug fails with
	// domain.ErrServiceExists.
	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	FindServiceByID(ctx context.Context, id string) (*domain.Service, error)
	FindServiceBySlug(ctx context.Context, slug string) (*domain.Service, error)
	// ListServices returns services, optionally filtered by status.
	ListServices(ctx context.Context, status domain.CatalogStatus) ([]*domain.Service, error)
	UpdateService(ctx context.Context, s *domain.Service) error
	DeleteService(ctx context.Context, id string) error

	CreatePlan(ctx context.Context, p *domain.PricingPlan) (*domain.PricingPlan, error)
	FindPlanByID(ctx context.Context, id string) (*domain.PricingPlan, error)
	ListPlans(ctx context.Context, status domain.CatalogStatus) ([]*domain.PricingPlan, error)
	UpdatePlan(ctx context.Context, p *domain.PricingPlan) error
	DeletePlan(ctx context.Context, id string) error
}
