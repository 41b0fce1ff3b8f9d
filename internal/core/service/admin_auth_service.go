package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiozeta/agency-api/internal/core/credential"
	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
	"github.com/studiozeta/agency-api/internal/core/token"
)

// AdminAuthService implements the admin token lifecycle. It mirrors the
// client lifecycle with its own cost factor and records login metadata.
type AdminAuthService struct {
	admins ports.AdminRepository
	tokens *token.Issuer
	logger zerolog.Logger
}

func NewAdminAuthService(admins ports.AdminRepository, tokens *token.Issuer, logger zerolog.Logger) *AdminAuthService {
	return &AdminAuthService{admins: admins, tokens: tokens, logger: logger}
}

func (s *AdminAuthService) Login(ctx context.Context, email, password, ip string) (*domain.Admin, *ports.TokenPair, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !credential.CompareSecret(password, admin.PasswordHash) {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !admin.IsActive {
		return nil, nil, domain.ErrAccountDisabled
	}

	pair, err := s.issuePair(admin)
	if err != nil {
		return nil, nil, err
	}
	if err := s.admins.SetRefreshToken(ctx, admin.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	if err := s.admins.RecordLogin(ctx, admin.ID, now, ip); err != nil {
		// Login metadata is informational; the session is already valid.
		s.logger.Warn().Err(err).Str("admin_id", admin.ID).Msg("failed to record login metadata")
	}
	admin.LastLogin = now
	admin.LoginIP = ip

	s.logger.Info().Str("admin_id", admin.ID).Str("ip", ip).Msg("admin logged in")
	return admin, pair, nil
}

func (s *AdminAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.Admin, *ports.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, nil, err
	}
	if claims.PrincipalType != token.PrincipalAdmin {
		return nil, nil, fmt.Errorf("refresh: wrong principal type: %w", domain.ErrInvalidToken)
	}

	admin, err := s.admins.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, nil, domain.ErrInvalidToken
		}
		return nil, nil, err
	}
	if admin.RefreshToken == "" || admin.RefreshToken != refreshToken {
		return nil, nil, domain.ErrRefreshTokenReused
	}
	if !admin.IsActive {
		return nil, nil, domain.ErrAccountDisabled
	}

	pair, err := s.issuePair(admin)
	if err != nil {
		return nil, nil, err
	}
	if err := s.admins.SetRefreshToken(ctx, admin.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}
	return admin, pair, nil
}

func (s *AdminAuthService) Logout(ctx context.Context, adminID string) error {
	return s.admins.SetRefreshToken(ctx, adminID, "")
}

func (s *AdminAuthService) Me(ctx context.Context, adminID string) (*domain.Admin, error) {
	return s.admins.FindByID(ctx, adminID)
}

func (s *AdminAuthService) ChangePassword(ctx context.Context, adminID, current, next string) error {
	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		return err
	}
	if !credential.CompareSecret(current, admin.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	if err := credential.CheckStrength(next, credential.AdminMinLength); err != nil {
		return err
	}

	hash, err := credential.HashSecret(next, credential.AdminCost)
	if err != nil {
		return err
	}
	return s.admins.SetPassword(ctx, adminID, hash)
}

func (s *AdminAuthService) issuePair(a *domain.Admin) (*ports.TokenPair, error) {
	access, err := s.tokens.Issue(a.ID, token.PrincipalAdmin, a.Role, a.Email, token.KindAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(a.ID, token.PrincipalAdmin, "", "", token.KindRefresh)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
