package service

import (
	"context"
	"errors"
	"testing"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

type directoryFixture struct {
	svc      *DirectoryService
	admins   *stubAdminRepo
	clients  *stubClientRepo
	blogs    *stubBlogRepo
	requests *stubRequestRepo
	txn      *stubTxnRunner
	notifier *stubNotifier
}

func newDirectoryFixture() *directoryFixture {
	admins := newStubAdminRepo()
	clients := newStubClientRepo()
	blogs := newStubBlogRepo()
	requests := newStubRequestRepo()
	txn := &stubTxnRunner{}
	notifier := &stubNotifier{}
	return &directoryFixture{
		svc:      NewDirectoryService(admins, clients, blogs, requests, txn, notifier, testLogger),
		admins:   admins,
		clients:  clients,
		blogs:    blogs,
		requests: requests,
		txn:      txn,
		notifier: notifier,
	}
}

func (f *directoryFixture) seedAdmin(t *testing.T, id, role string, perms domain.PermissionSet) *domain.Admin {
	t.Helper()
	a := activeAdmin(id, role, perms)
	created, err := f.admins.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return created
}

func TestDirectoryService_CreateAdmin(t *testing.T) {
	f := newDirectoryFixture()
	super := activeAdmin("root", domain.RoleSuperAdmin, domain.PermissionSet{})

	created, err := f.svc.CreateAdmin(context.Background(), super, ports.CreateAdminInput{
		FullName:    "New Admin",
		Email:       "new@example.com",
		Password:    "S3cure!pass",
		Role:        domain.RoleAdmin,
		Permissions: domain.PermissionSet{ManageBlogs: true},
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if !created.IsActive {
		t.Fatalf("new admin must start active")
	}
	if !created.Permissions.ManageBlogs {
		t.Fatalf("permissions not stored")
	}
}

func TestDirectoryService_CreateAdmin_Denials(t *testing.T) {
	f := newDirectoryFixture()
	super := activeAdmin("root", domain.RoleSuperAdmin, domain.PermissionSet{})
	manager := activeAdmin("mgr", domain.RoleAdmin, domain.PermissionSet{ManageAdmins: true})
	nobody := activeAdmin("nobody", domain.RoleAdmin, domain.PermissionSet{})

	in := ports.CreateAdminInput{
		FullName: "X", Email: "x@example.com", Password: "S3cure!pass", Role: domain.RoleAdmin,
	}

	if _, err := f.svc.CreateAdmin(context.Background(), nobody, in); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	in.Role = "owner"
	if _, err := f.svc.CreateAdmin(context.Background(), super, in); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("unknown role: expected ErrInvalidTransition, got %v", err)
	}

	// Only a superadmin may mint another superadmin.
	in.Role = domain.RoleSuperAdmin
	if _, err := f.svc.CreateAdmin(context.Background(), manager, in); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	in.Role = domain.RoleAdmin
	in.Password = "weak"
	if _, err := f.svc.CreateAdmin(context.Background(), super, in); !errors.Is(err, domain.ErrWeakCredential) {
		t.Fatalf("expected ErrWeakCredential, got %v", err)
	}
}

func TestDirectoryService_UpdateAdminPermissions(t *testing.T) {
	f := newDirectoryFixture()
	roleManager := f.seedAdmin(t, "mgr", domain.RoleAdmin, domain.PermissionSet{ManageRoles: true})
	target := f.seedAdmin(t, "tgt", domain.RoleModerator, domain.PermissionSet{})
	superTarget := f.seedAdmin(t, "sup", domain.RoleSuperAdmin, domain.PermissionSet{})

	if err := f.svc.UpdateAdminPermissions(context.Background(), roleManager, target.ID, domain.PermissionSet{ManageBlogs: true}); err != nil {
		t.Fatalf("update permissions: %v", err)
	}
	if !f.admins.admins[target.ID].Permissions.ManageBlogs {
		t.Fatalf("permissions not persisted")
	}

	// Non-superadmins cannot touch a superadmin's matrix.
	if err := f.svc.UpdateAdminPermissions(context.Background(), roleManager, superTarget.ID, domain.PermissionSet{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	adminManager := activeAdmin("am", domain.RoleAdmin, domain.PermissionSet{ManageAdmins: true})
	if err := f.svc.UpdateAdminPermissions(context.Background(), adminManager, target.ID, domain.PermissionSet{}); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("manageAdmins must not imply manageRoles, got %v", err)
	}
}

func TestDirectoryService_SetAdminActive(t *testing.T) {
	f := newDirectoryFixture()
	manager := f.seedAdmin(t, "mgr", domain.RoleAdmin, domain.PermissionSet{ManageAdmins: true})
	target := f.seedAdmin(t, "tgt", domain.RoleModerator, domain.PermissionSet{})
	f.admins.admins[target.ID].RefreshToken = "live-session"

	// Self-deactivation is blocked.
	if err := f.svc.SetAdminActive(context.Background(), manager, manager.ID, false); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := f.svc.SetAdminActive(context.Background(), manager, target.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	stored := f.admins.admins[target.ID]
	if stored.IsActive {
		t.Fatalf("target still active")
	}
	if stored.RefreshToken != "" {
		t.Fatalf("deactivation must kill the session")
	}

	if err := f.svc.SetAdminActive(context.Background(), manager, target.ID, true); err != nil {
		t.Fatalf("reactivate: %v", err)
	}
	if !f.admins.admins[target.ID].IsActive {
		t.Fatalf("target not reactivated")
	}
}

func TestDirectoryService_DeleteAdmin(t *testing.T) {
	f := newDirectoryFixture()
	manager := f.seedAdmin(t, "mgr", domain.RoleAdmin, domain.PermissionSet{ManageAdmins: true})
	target := f.seedAdmin(t, "tgt", domain.RoleModerator, domain.PermissionSet{})
	superTarget := f.seedAdmin(t, "sup", domain.RoleSuperAdmin, domain.PermissionSet{})

	if err := f.svc.DeleteAdmin(context.Background(), manager, manager.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("self-delete must be blocked, got %v", err)
	}
	if err := f.svc.DeleteAdmin(context.Background(), manager, superTarget.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("superadmin must be protected, got %v", err)
	}
	if err := f.svc.DeleteAdmin(context.Background(), manager, "missing"); !errors.Is(err, domain.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
	if err := f.svc.DeleteAdmin(context.Background(), manager, target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := f.admins.admins[target.ID]; ok {
		t.Fatalf("target not deleted")
	}
}

func TestDirectoryService_UpdateClientStatus(t *testing.T) {
	f := newDirectoryFixture()
	client, err := f.clients.Create(context.Background(), &domain.Client{
		FullName: "Alice", Email: "alice@example.com", Status: domain.ClientActive,
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	f.clients.clients[client.ID].RefreshToken = "live-session"

	manager := activeAdmin("mgr", domain.RoleAdmin, domain.PermissionSet{ManageClients: true})

	// Banning is a separate capability.
	if err := f.svc.UpdateClientStatus(context.Background(), manager, client.ID, domain.ClientBanned); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("manageClients must not imply banClients, got %v", err)
	}
	if err := f.svc.UpdateClientStatus(context.Background(), manager, client.ID, domain.ClientStatus("frozen")); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if err := f.svc.UpdateClientStatus(context.Background(), manager, "missing", domain.ClientInactive); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	if err := f.svc.UpdateClientStatus(context.Background(), manager, client.ID, domain.ClientInactive); err != nil {
		t.Fatalf("deactivate client: %v", err)
	}
	stored := f.clients.clients[client.ID]
	if stored.Status != domain.ClientInactive {
		t.Fatalf("status not updated: %s", stored.Status)
	}
	if stored.RefreshToken != "" {
		t.Fatalf("disabling must clear the session")
	}

	banner := activeAdmin("ban", domain.RoleAdmin, domain.PermissionSet{BanClients: true})
	if err := f.svc.UpdateClientStatus(context.Background(), banner, client.ID, domain.ClientBanned); err != nil {
		t.Fatalf("ban client: %v", err)
	}
	if f.clients.clients[client.ID].Status != domain.ClientBanned {
		t.Fatalf("ban not applied")
	}
}

func TestDirectoryService_DeleteClient_Cascades(t *testing.T) {
	f := newDirectoryFixture()
	ctx := context.Background()

	client, err := f.clients.Create(ctx, &domain.Client{
		FullName: "Alice", Email: "alice@example.com", Status: domain.ClientActive,
	})
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	blog, err := f.blogs.Create(ctx, &domain.Blog{
		Title: "Post", Slug: "post", AuthorID: client.ID,
		CoverImage: domain.Attachment{URL: "https://cdn/c", PublicID: "cover-1", Kind: domain.KindImage},
	})
	if err != nil {
		t.Fatalf("seed blog: %v", err)
	}
	req, err := f.requests.Create(ctx, &domain.ServiceRequest{
		ClientID: client.ID, Title: "Work",
		Attachments: []domain.Attachment{{URL: "https://cdn/a", PublicID: "att-1", Kind: domain.KindRaw}},
	})
	if err != nil {
		t.Fatalf("seed request: %v", err)
	}
	f.clients.clients[client.ID].BlogIDs = []string{blog.ID, "dangling-ref"}
	f.clients.clients[client.ID].ServiceRequestIDs = []string{req.ID}

	manager := activeAdmin("mgr", domain.RoleAdmin, domain.PermissionSet{ManageClients: true})
	if err := f.svc.DeleteClient(ctx, manager, client.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}

	if !f.txn.committed {
		t.Fatalf("cascade must run inside a committed transaction")
	}
	if _, ok := f.clients.clients[client.ID]; ok {
		t.Fatalf("client not deleted")
	}
	if len(f.blogs.blogs) != 0 {
		t.Fatalf("owned blog not deleted")
	}
	if len(f.requests.requests) != 0 {
		t.Fatalf("owned request not deleted")
	}
	if len(f.notifier.mediaDeletes) != 2 {
		t.Fatalf("expected 2 media cleanups, got %v", f.notifier.mediaDeletes)
	}
}

func TestDirectoryService_ListClients_RequiresPermission(t *testing.T) {
	f := newDirectoryFixture()
	if _, err := f.clients.Create(context.Background(), &domain.Client{
		FullName: "Alice", Email: "alice@example.com", Status: domain.ClientActive,
	}); err != nil {
		t.Fatalf("seed client: %v", err)
	}

	nobody := activeAdmin("nobody", domain.RoleModerator, domain.PermissionSet{})
	if _, _, err := f.svc.ListClients(context.Background(), nobody, ports.ListClientsFilter{}); !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	manager := activeAdmin("mgr", domain.RoleAdmin, domain.PermissionSet{ManageClients: true})
	items, total, err := f.svc.ListClients(context.Background(), manager, ports.ListClientsFilter{})
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("expected 1 client, got %d", total)
	}
}
