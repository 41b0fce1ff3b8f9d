package ports

import (
	"context"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// ListContactsFilter carries query parameters for the admin contact listing.
type ListContactsFilter struct {
	Status string
	Page   int
	Limit  int
}

// ContactRepository defines persistence for contact-form submissions.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context, filter ListContactsFilter) ([]*domain.Contact, int64, error)
	// SetResponse stores the admin's reply and marks the submission resolved.
	SetResponse(ctx context.Context, id, response, adminID string) error
	UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) error
}

// ListCareersFilter carries query parameters for the career listing.
type ListCareersFilter struct {
	Status   string
	Position string
	Page     int
	Limit    int
}

// CareerRepository defines persistence for career applications.
type CareerRepository interface {
	Create(ctx context.Context, a *domain.CareerApplication) (*domain.CareerApplication, error)
	FindByID(ctx context.Context, id string) (*domain.CareerApplication, error)
	List(ctx context.Context, filter ListCareersFilter) ([]*domain.CareerApplication, int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.CareerStatus) error
	Delete(ctx context.Context, id string) error
}
