package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// RequestService implements the client service-request lifecycle. Creation
// spans the request document and the owning client's reference list, so it
// runs inside a transaction; review transitions are permission-gated per
// target status.
type RequestService struct {
	requests ports.RequestRepository
	clients  ports.ClientRepository
	catalog  ports.CatalogRepository
	txn      ports.TxnRunner
	notify   ports.Notifier
	logger   zerolog.Logger
}

func NewRequestService(
	requests ports.RequestRepository,
	clients ports.ClientRepository,
	catalog ports.CatalogRepository,
	txn ports.TxnRunner,
	notify ports.Notifier,
	logger zerolog.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		clients:  clients,
		catalog:  catalog,
		txn:      txn,
		notify:   notify,
		logger:   logger,
	}
}

func (s *RequestService) Create(ctx context.Context, clientID string, in ports.CreateRequestInput) (*domain.ServiceRequest, error) {
	svc, err := s.catalog.FindServiceByID(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.Status != domain.CatalogActive {
		return nil, domain.ErrServiceNotFound
	}

	now := time.Now().UTC()
	req := &domain.ServiceRequest{
		ClientID:    clientID,
		ServiceID:   in.ServiceID,
		Title:       in.Title,
		Description: in.Description,
		Budget:      in.Budget,
		Attachments: in.Attachments,
		Status:      domain.RequestPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var created *domain.ServiceRequest
	err = s.txn.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.requests.Create(ctx, req)
		if err != nil {
			return err
		}
		return s.clients.PushRequestID(ctx, clientID, created.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("request_id", created.ID).Str("client_id", clientID).Str("service_id", in.ServiceID).Msg("service request created")
	return created, nil
}

// Get enforces the ownership guard: existence first (NotFound), then owner
// identity (Forbidden).
func (s *RequestService) Get(ctx context.Context, clientID, requestID string) (*domain.ServiceRequest, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := verifyOwnership(req.ClientID, clientID); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RequestService) ListOwn(ctx context.Context, clientID string, filter ports.ListRequestsFilter) (*ports.RequestListResult, error) {
	filter.ClientID = clientID
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.RequestListResult{Items: items, Total: total}, nil
}

func (s *RequestService) AdminList(ctx context.Context, actor *domain.Admin, filter ports.ListRequestsFilter) (*ports.RequestListResult, error) {
	if err := requirePermission(actor, domain.PermManageRequests); err != nil {
		return nil, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.RequestListResult{Items: items, Total: total}, nil
}

// reviewPermissions maps each reviewable target status to the capability
// that authorizes it.
var reviewPermissions = map[domain.RequestStatus]domain.Permission{
	domain.RequestUnderReview: domain.PermManageRequests,
	domain.RequestApproved:    domain.PermApproveRequests,
	domain.RequestDeclined:    domain.PermDeclineRequests,
	domain.RequestCompleted:   domain.PermCompleteRequests,
}

func (s *RequestService) Review(ctx context.Context, actor *domain.Admin, requestID string, next domain.RequestStatus, notes string) error {
	perm, ok := reviewPermissions[next]
	if !ok {
		return domain.ErrInvalidTransition
	}
	if err := requirePermission(actor, perm); err != nil {
		return err
	}

	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	if !req.Status.CanTransitionTo(next) {
		return fmt.Errorf("review request: %w (from %s to %s)", domain.ErrInvalidTransition, req.Status, next)
	}

	if err := s.requests.UpdateReview(ctx, requestID, next, notes, actor.ID); err != nil {
		return err
	}

	// Status notification is best-effort; a missing client record only means
	// nobody to notify.
	if client, err := s.clients.FindByID(ctx, req.ClientID); err == nil {
		s.notify.EnqueueEmail(client.Email, "Update on your service request",
			fmt.Sprintf("<p>Hi %s,</p><p>Your request %q is now <b>%s</b>.</p>", client.FullName, req.Title, next))
	}

	s.logger.Info().Str("request_id", requestID).Str("status", string(next)).Str("reviewed_by", actor.ID).Msg("service request reviewed")
	return nil
}
