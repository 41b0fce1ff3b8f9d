package ports

import (
	"context"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// ListRequestsFilter carries query parameters for service-request listings.
// ClientID scopes the listing for non-admin callers.
type ListRequestsFilter struct {
	ClientID  string
	ServiceID string
	Status    string
	Page      int
	Limit     int
}

// RequestRepository defines persistence operations for service requests.
type RequestRepository interface {
	Create(ctx context.Context, r *domain.ServiceRequest) (*domain.ServiceRequest, error)
	FindByID(ctx context.Context, id string) (*domain.ServiceRequest, error)
	List(ctx context.Context, filter ListRequestsFilter) ([]*domain.ServiceRequest, int64, error)
	// UpdateReview sets the new status, admin notes and reviewer in one write.
	UpdateReview(ctx context.Context, id string, status domain.RequestStatus, notes, reviewedBy string) error
	Delete(ctx context.Context, id string) error
}
