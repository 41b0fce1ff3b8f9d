package ports

import (
	"context"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// CreateRequestInput carries a validated service request. Attachments have
// already been moved to the media store by the transport layer.
type CreateRequestInput struct {
	ServiceID   string
	Title       string
	Description string
	Budget      float64
	Attachments []domain.Attachment
}

// RequestListResult is a page of service requests.
type RequestListResult struct {
	Items []*domain.ServiceRequest
	Total int64
}

// RequestService implements the client service-request lifecycle. Creation
// and deletion span the request document and the owning client's reference
// list, so both run inside a transaction.
type RequestService interface {
	Create(ctx context.Context, clientID string, in CreateRequestInput) (*domain.ServiceRequest, error)
	// Get enforces the ownership guard: NotFound if absent, Forbidden when
	// the requester is not the owner.
	Get(ctx context.Context, clientID, requestID string) (*domain.ServiceRequest, error)
	ListOwn(ctx context.Context, clientID string, filter ListRequestsFilter) (*RequestListResult, error)

	AdminList(ctx context.Context, actor *domain.Admin, filter ListRequestsFilter) (*RequestListResult, error)
	// Review transitions the request status. The required permission depends
	// on the target status (approve/decline/complete); the transition is
	// validated against the request state machine, and the client is notified
	// by email best-effort.
	Review(ctx context.Context, actor *domain.Admin, requestID string, next domain.RequestStatus, notes string) error
}
