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

const resetTokenTTL = 15 * time.Minute

// AuthService implements the client token lifecycle against the credential
// store. The single stored refresh token per client makes rotation and
// logout-wide invalidation possible: verification always checks equality
// against the stored value, not just the signature.
type AuthService struct {
	clients  ports.ClientRepository
	tokens   *token.Issuer
	notify   ports.Notifier
	resetURL string
	logger   zerolog.Logger
}

func NewAuthService(clients ports.ClientRepository, tokens *token.Issuer, notify ports.Notifier, resetURL string, logger zerolog.Logger) *AuthService {
	return &AuthService{clients: clients, tokens: tokens, notify: notify, resetURL: resetURL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterClientInput) (*domain.Client, error) {
	if err := credential.CheckStrength(in.Password, credential.ClientMinLength); err != nil {
		return nil, err
	}

	hash, err := credential.HashSecret(in.Password, credential.ClientCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	client := &domain.Client{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         "client",
		Address:      in.Address,
		Status:       domain.ClientActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", created.ID).Str("email", created.Email).Msg("client registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Client, *ports.TokenPair, error) {
	client, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !credential.CompareSecret(password, client.PasswordHash) {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if !client.CanAuthenticate() {
		return nil, nil, domain.ErrAccountDisabled
	}

	pair, err := s.issuePair(client)
	if err != nil {
		return nil, nil, err
	}
	// Overwriting the stored value implicitly invalidates any previously
	// issued refresh token.
	if err := s.clients.SetRefreshToken(ctx, client.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("client_id", client.ID).Msg("client logged in")
	return client, pair, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.Client, *ports.TokenPair, error) {
	claims, err := s.tokens.Verify(refreshToken, token.KindRefresh)
	if err != nil {
		return nil, nil, err
	}
	if claims.PrincipalType != token.PrincipalClient {
		return nil, nil, fmt.Errorf("refresh: wrong principal type: %w", domain.ErrInvalidToken)
	}

	client, err := s.clients.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, nil, domain.ErrInvalidToken
		}
		return nil, nil, err
	}
	// Signature validity is not enough: the presented token must equal the
	// single stored value. A rotated-away token lands here.
	if client.RefreshToken == "" || client.RefreshToken != refreshToken {
		return nil, nil, domain.ErrRefreshTokenReused
	}
	if !client.CanAuthenticate() {
		return nil, nil, domain.ErrAccountDisabled
	}

	pair, err := s.issuePair(client)
	if err != nil {
		return nil, nil, err
	}
	if err := s.clients.SetRefreshToken(ctx, client.ID, pair.RefreshToken); err != nil {
		return nil, nil, err
	}

	return client, pair, nil
}

func (s *AuthService) Logout(ctx context.Context, clientID string) error {
	return s.clients.SetRefreshToken(ctx, clientID, "")
}

func (s *AuthService) Me(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, clientID)
}

func (s *AuthService) ChangePassword(ctx context.Context, clientID, current, next string) error {
	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return err
	}
	if !credential.CompareSecret(current, client.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	if err := credential.CheckStrength(next, credential.ClientMinLength); err != nil {
		return err
	}

	hash, err := credential.HashSecret(next, credential.ClientCost)
	if err != nil {
		return err
	}
	// SetPassword also clears the stored refresh token: a password change
	// terminates every outstanding session.
	return s.clients.SetPassword(ctx, clientID, hash)
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	client, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			// Do not reveal whether the address exists.
			s.logger.Debug().Str("email", email).Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	raw, hash, err := credential.NewResetToken()
	if err != nil {
		return err
	}
	expiry := time.Now().UTC().Add(resetTokenTTL)
	if err := s.clients.SetResetToken(ctx, client.ID, hash, expiry); err != nil {
		return err
	}

	link := s.resetURL + "?token=" + raw
	s.notify.EnqueueEmail(client.Email, "Reset your password",
		fmt.Sprintf("<p>Hi %s,</p><p>Use the link below to reset your password. It expires in 15 minutes.</p><p><a href=%q>Reset password</a></p>", client.FullName, link))

	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	client, err := s.clients.FindByResetToken(ctx, credential.HashResetToken(rawToken))
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}
	if time.Now().UTC().After(client.ResetPasswordExpiry) {
		return domain.ErrResetTokenInvalid
	}
	if err := credential.CheckStrength(newPassword, credential.ClientMinLength); err != nil {
		return err
	}

	hash, err := credential.HashSecret(newPassword, credential.ClientCost)
	if err != nil {
		return err
	}
	return s.clients.SetPassword(ctx, client.ID, hash)
}

func (s *AuthService) issuePair(c *domain.Client) (*ports.TokenPair, error) {
	access, err := s.tokens.Issue(c.ID, token.PrincipalClient, c.Role, c.Email, token.KindAccess)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.Issue(c.ID, token.PrincipalClient, "", "", token.KindRefresh)
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
