package service

import (
	"context"
	"errors"
	"testing"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

type requestFixture struct {
	svc      *RequestService
	requests *stubRequestRepo
	clients  *stubClientRepo
	catalog  *stubCatalogRepo
	txn      *stubTxnRunner
	notifier *stubNotifier
	client   *domain.Client
	service  *domain.Service
}

func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()
	requests := newStubRequestRepo()
	clients := newStubClientRepo()
	catalog := newStubCatalogRepo()
	txn := &stubTxnRunner{}
	notifier := &stubNotifier{}

	client, err := clients.Create(context.Background(), &domain.Client{
		FullName: "Alice Doe",
		Email:    "alice@example.com",
		Status:   domain.ClientActive,
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	svcDoc, err := catalog.CreateService(context.Background(), &domain.Service{
		Name:   "Web Development",
		Slug:   "web-development",
		Status: domain.CatalogActive,
	})
	if err != nil {
		t.Fatalf("seed service: %v", err)
	}

	return &requestFixture{
		svc:      NewRequestService(requests, clients, catalog, txn, notifier, testLogger),
		requests: requests,
		clients:  clients,
		catalog:  catalog,
		txn:      txn,
		notifier: notifier,
		client:   client,
		service:  svcDoc,
	}
}

func (f *requestFixture) create(t *testing.T) *domain.ServiceRequest {
	t.Helper()
	req, err := f.svc.Create(context.Background(), f.client.ID, ports.CreateRequestInput{
		ServiceID: f.service.ID,
		Title:     "New storefront",
		Budget:    5000,
	})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	return req
}

func TestRequestService_Create(t *testing.T) {
	f := newRequestFixture(t)

	req := f.create(t)
	if req.Status != domain.RequestPending {
		t.Fatalf("new request must start pending, got %s", req.Status)
	}
	if !f.txn.committed {
		t.Fatalf("creation must run inside a committed transaction")
	}
	owner := f.clients.clients[f.client.ID]
	if len(owner.ServiceRequestIDs) != 1 || owner.ServiceRequestIDs[0] != req.ID {
		t.Fatalf("request id not appended to client: %v", owner.ServiceRequestIDs)
	}
}

func TestRequestService_Create_RequiresActiveService(t *testing.T) {
	f := newRequestFixture(t)

	if _, err := f.svc.Create(context.Background(), f.client.ID, ports.CreateRequestInput{
		ServiceID: "missing", Title: "x",
	}); !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}

	f.catalog.services[f.service.ID].Status = domain.CatalogInactive
	if _, err := f.svc.Create(context.Background(), f.client.ID, ports.CreateRequestInput{
		ServiceID: f.service.ID, Title: "x",
	}); !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("inactive service must read as not found, got %v", err)
	}
}

func TestRequestService_Create_RollsBackOnReferenceFailure(t *testing.T) {
	f := newRequestFixture(t)
	f.clients.pushErr = errors.New("write conflict")

	if _, err := f.svc.Create(context.Background(), f.client.ID, ports.CreateRequestInput{
		ServiceID: f.service.ID, Title: "x",
	}); err == nil {
		t.Fatalf("expected error")
	}
	if f.txn.committed {
		t.Fatalf("transaction must not commit when the reference write fails")
	}
}

func TestRequestService_Get_OwnershipGuard(t *testing.T) {
	f := newRequestFixture(t)
	req := f.create(t)

	// Existence first: a missing request is NotFound even for a stranger.
	if _, err := f.svc.Get(context.Background(), "stranger", "missing"); !errors.Is(err, domain.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
	if _, err := f.svc.Get(context.Background(), "stranger", req.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	got, err := f.svc.Get(context.Background(), f.client.ID, req.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != req.ID {
		t.Fatalf("unexpected request: %s", got.ID)
	}
}

func TestRequestService_ListOwn_ScopesToClient(t *testing.T) {
	f := newRequestFixture(t)
	f.create(t)

	other, err := f.clients.Create(context.Background(), &domain.Client{
		FullName: "Bob",
		Email:    "bob@example.com",
		Status:   domain.ClientActive,
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	if _, err := f.svc.Create(context.Background(), other.ID, ports.CreateRequestInput{
		ServiceID: f.service.ID, Title: "other work",
	}); err != nil {
		t.Fatalf("create for other: %v", err)
	}

	res, err := f.svc.ListOwn(context.Background(), f.client.ID, ports.ListRequestsFilter{ClientID: other.ID})
	if err != nil {
		t.Fatalf("list own: %v", err)
	}
	if res.Total != 1 || res.Items[0].ClientID != f.client.ID {
		t.Fatalf("listing leaked another client's requests: %+v", res.Items)
	}
}

func TestRequestService_Review_PermissionPerTargetStatus(t *testing.T) {
	f := newRequestFixture(t)

	approver := activeAdmin("admin-1", domain.RoleAdmin, domain.PermissionSet{ApproveRequests: true})
	cases := []struct {
		next    domain.RequestStatus
		wantErr error
	}{
		{domain.RequestApproved, nil},
		{domain.RequestUnderReview, domain.ErrPermissionDenied},
		{domain.RequestDeclined, domain.ErrPermissionDenied},
		{domain.RequestCompleted, domain.ErrPermissionDenied},
	}
	for _, tc := range cases {
		req := f.create(t)
		if tc.next == domain.RequestCompleted {
			f.requests.requests[req.ID].Status = domain.RequestApproved
		}
		err := f.svc.Review(context.Background(), approver, req.ID, tc.next, "")
		if tc.wantErr == nil && err != nil {
			t.Fatalf("review to %s: %v", tc.next, err)
		}
		if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
			t.Fatalf("review to %s: expected %v, got %v", tc.next, tc.wantErr, err)
		}
	}

	// Pending is never a review target.
	req := f.create(t)
	super := activeAdmin("admin-2", domain.RoleSuperAdmin, domain.PermissionSet{})
	if err := f.svc.Review(context.Background(), super, req.ID, domain.RequestPending, ""); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRequestService_Review_StateMachine(t *testing.T) {
	f := newRequestFixture(t)
	super := activeAdmin("admin-1", domain.RoleSuperAdmin, domain.PermissionSet{})

	req := f.create(t)
	if err := f.svc.Review(context.Background(), super, req.ID, domain.RequestUnderReview, "checking"); err != nil {
		t.Fatalf("to under_review: %v", err)
	}
	// under_review -> completed skips approval.
	if err := f.svc.Review(context.Background(), super, req.ID, domain.RequestCompleted, ""); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := f.svc.Review(context.Background(), super, req.ID, domain.RequestApproved, "go"); err != nil {
		t.Fatalf("to approved: %v", err)
	}
	if err := f.svc.Review(context.Background(), super, req.ID, domain.RequestCompleted, "shipped"); err != nil {
		t.Fatalf("to completed: %v", err)
	}
	// Completed is terminal.
	if err := f.svc.Review(context.Background(), super, req.ID, domain.RequestApproved, ""); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("completed must be terminal, got %v", err)
	}

	stored := f.requests.requests[req.ID]
	if stored.AdminNotes != "shipped" || stored.ReviewedBy != super.ID {
		t.Fatalf("review metadata not stored: %+v", stored)
	}
}

func TestRequestService_Review_DeclinedIsTerminal(t *testing.T) {
	f := newRequestFixture(t)
	super := activeAdmin("admin-1", domain.RoleSuperAdmin, domain.PermissionSet{})
	req := f.create(t)

	if err := f.svc.Review(context.Background(), super, req.ID, domain.RequestDeclined, "no budget"); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if err := f.svc.Review(context.Background(), super, req.ID, domain.RequestApproved, ""); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("declined must be terminal, got %v", err)
	}
}

func TestRequestService_Review_NotifiesClient(t *testing.T) {
	f := newRequestFixture(t)
	super := activeAdmin("admin-1", domain.RoleSuperAdmin, domain.PermissionSet{})
	req := f.create(t)

	if err := f.svc.Review(context.Background(), super, req.ID, domain.RequestApproved, ""); err != nil {
		t.Fatalf("review: %v", err)
	}
	if len(f.notifier.emails) != 1 || f.notifier.emails[0] != "alice@example.com" {
		t.Fatalf("client not notified: %v", f.notifier.emails)
	}
}

func TestRequestService_AdminList_RequiresPermission(t *testing.T) {
	f := newRequestFixture(t)
	f.create(t)

	nobody := activeAdmin("admin-1", domain.RoleModerator, domain.PermissionSet{})
	if _, err := f.svc.AdminList(context.Background(), nobody, ports.ListRequestsFilter{}); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	manager := activeAdmin("admin-2", domain.RoleAdmin, domain.PermissionSet{ManageRequests: true})
	res, err := f.svc.AdminList(context.Background(), manager, ports.ListRequestsFilter{})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if res.Total != 1 {
		t.Fatalf("expected 1 request, got %d", res.Total)
	}
}
