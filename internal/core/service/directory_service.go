package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiozeta/agency-api/internal/core/credential"
	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// DirectoryService manages admin and client accounts. Fine-grained rules
// (superadmin protection, ban vs. manage split) live here rather than in
// route middleware.
type DirectoryService struct {
	admins   ports.AdminRepository
	clients  ports.ClientRepository
	blogs    ports.BlogRepository
	requests ports.RequestRepository
	txn      ports.TxnRunner
	notify   ports.Notifier
	logger   zerolog.Logger
}

func NewDirectoryService(
	admins ports.AdminRepository,
	clients ports.ClientRepository,
	blogs ports.BlogRepository,
	requests ports.RequestRepository,
	txn ports.TxnRunner,
	notify ports.Notifier,
	logger zerolog.Logger,
) *DirectoryService {
	return &DirectoryService{
		admins:   admins,
		clients:  clients,
		blogs:    blogs,
		requests: requests,
		txn:      txn,
		notify:   notify,
		logger:   logger,
	}
}

func (s *DirectoryService) CreateAdmin(ctx context.Context, actor *domain.Admin, in ports.CreateAdminInput) (*domain.Admin, error) {
	if err := requirePermission(actor, domain.PermManageAdmins); err != nil {
		return nil, err
	}
	if !domain.ValidAdminRole(in.Role) {
		return nil, domain.ErrInvalidTransition
	}
	// Only a superadmin may mint another superadmin.
	if in.Role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrForbidden
	}
	if err := credential.CheckStrength(in.Password, credential.AdminMinLength); err != nil {
		return nil, err
	}

	hash, err := credential.HashSecret(in.Password, credential.AdminCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	admin := &domain.Admin{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Permissions:  in.Permissions,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.admins.Create(ctx, admin)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("admin_id", created.ID).Str("role", created.Role).Str("created_by", actor.ID).Msg("admin created")
	return created, nil
}

func (s *DirectoryService) ListAdmins(ctx context.Context, actor *domain.Admin) ([]*domain.Admin, error) {
	if err := requirePermission(actor, domain.PermManageAdmins); err != nil {
		return nil, err
	}
	return s.admins.List(ctx)
}

func (s *DirectoryService) UpdateAdminPermissions(ctx context.Context, actor *domain.Admin, adminID string, perms domain.PermissionSet) error {
	if err := requirePermission(actor, domain.PermManageRoles); err != nil {
		return err
	}
	target, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	return s.admins.UpdatePermissions(ctx, adminID, perms)
}

func (s *DirectoryService) SetAdminActive(ctx context.Context, actor *domain.Admin, adminID string, active bool) error {
	if err := requirePermission(actor, domain.PermManageAdmins); err != nil {
		return err
	}
	if actor.ID == adminID {
		return domain.ErrForbidden
	}
	target, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	if err := s.admins.SetActive(ctx, adminID, active); err != nil {
		return err
	}
	if !active {
		// Deactivation must also kill the session.
		return s.admins.SetRefreshToken(ctx, adminID, "")
	}
	return nil
}

func (s *DirectoryService) DeleteAdmin(ctx context.Context, actor *domain.Admin, adminID string) error {
	if err := requirePermission(actor, domain.PermManageAdmins); err != nil {
		return err
	}
	if actor.ID == adminID {
		return domain.ErrForbidden
	}
	target, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return err
	}
	if target.Role == domain.RoleSuperAdmin && actor.Role != domain.RoleSuperAdmin {
		return domain.ErrForbidden
	}
	return s.admins.Delete(ctx, adminID)
}

func (s *DirectoryService) ListClients(ctx context.Context, actor *domain.Admin, filter ports.ListClientsFilter) ([]*domain.Client, int64, error) {
	if err := requirePermission(actor, domain.PermManageClients); err != nil {
		return nil, 0, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.clients.List(ctx, filter)
}

func (s *DirectoryService) UpdateClientStatus(ctx context.Context, actor *domain.Admin, clientID string, status domain.ClientStatus) error {
	// Banning is a separate capability from routine status management.
	perm := domain.PermManageClients
	if status == domain.ClientBanned {
		perm = domain.PermBanClients
	}
	if err := requirePermission(actor, perm); err != nil {
		return err
	}
	if !domain.ValidClientStatus(status) {
		return domain.ErrInvalidTransition
	}
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return err
	}
	if err := s.clients.UpdateStatus(ctx, clientID, status); err != nil {
		return err
	}
	if status == domain.ClientBanned || status == domain.ClientInactive {
		// Disabling an account terminates its sessions.
		return s.clients.SetRefreshToken(ctx, clientID, "")
	}
	return nil
}

// DeleteClient hard-deletes the client together with its owned blogs and
// service requests, all inside one transaction. Media objects referenced by
// the deleted documents are cleaned up best-effort afterwards.
func (s *DirectoryService) DeleteClient(ctx context.Context, actor *domain.Admin, clientID string) error {
	if err := requirePermission(actor, domain.PermManageClients); err != nil {
		return err
	}

	var orphaned []domain.Attachment

	err := s.txn.WithinTransaction(ctx, func(ctx context.Context) error {
		client, err := s.clients.FindByID(ctx, clientID)
		if err != nil {
			return err
		}

		for _, blogID := range client.BlogIDs {
			blog, err := s.blogs.FindByID(ctx, blogID)
			if err != nil {
				continue // reference without a document; nothing to delete
			}
			if !blog.CoverImage.IsZero() {
				orphaned = append(orphaned, blog.CoverImage)
			}
			if err := s.blogs.Delete(ctx, blogID); err != nil {
				return err
			}
		}
		for _, reqID := range client.ServiceRequestIDs {
			req, err := s.requests.FindByID(ctx, reqID)
			if err != nil {
				continue
			}
			orphaned = append(orphaned, req.Attachments...)
			if err := s.requests.Delete(ctx, reqID); err != nil {
				return err
			}
		}

		return s.clients.Delete(ctx, clientID)
	})
	if err != nil {
		return err
	}

	for _, att := range orphaned {
		s.notify.EnqueueMediaDelete(att.PublicID, att.Kind)
	}
	s.logger.Info().Str("client_id", clientID).Str("deleted_by", actor.ID).Int("media_cleanups", len(orphaned)).Msg("client deleted")
	return nil
}
