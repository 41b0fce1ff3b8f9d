package ports

import (
	"context"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// CreateServiceInput carries validated fields for a new catalog service.
type CreateServiceInput struct {
	Name        string
	Description string
	Features    []string
	Thumbnail   domain.Attachment
}

// UpdateServiceInput carries partial updates; nil pointers mean "unchanged".
type UpdateServiceInput struct {
	Name        *string
	Description *string
	Features    []string
	Thumbnail   *domain.Attachment
	Status      *domain.CatalogStatus
}

// CreatePlanInput carries validated fields for a new pricing plan.
type CreatePlanInput struct {
	Name          string
	Price         float64
	Currency      string
	BillingPeriod domain.BillingPeriod
	Features      []string
	Popular       bool
}

// UpdatePlanInput carries partial updates; nil pointers mean "unchanged".
type UpdatePlanInput struct {
	Name     *string
	Price    *float64
	Features []string
	Popular  *bool
	Status   *domain.CatalogStatus
}

// CatalogService implements the public service/pricing catalog. Reads are
// public; every mutation evaluates the acting admin's permission matrix.
type CatalogService interface {
	ListServices(ctx context.Context) ([]*domain.Service, error)
	GetService(ctx context.Context, slug string) (*domain.Service, error)
	CreateService(ctx context.Context, actor *domain.Admin, in CreateServiceInput) (*domain.Service, error)
	UpdateService(ctx context.Context, actor *domain.Admin, id string, in UpdateServiceInput) (*domain.Service, error)
	DeleteService(ctx context.Context, actor *domain.Admin, id string) error

	ListPlans(ctx context.Context) ([]*domain.PricingPlan, error)
	CreatePlan(ctx context.Context, actor *domain.Admin, in CreatePlanInput) (*domain.PricingPlan, error)
	UpdatePlan(ctx context.Context, actor *domain.Admin, id string, in UpdatePlanInput) (*domain.PricingPlan, error)
	DeletePlan(ctx context.Context, actor *domain.Admin, id string) error
}
