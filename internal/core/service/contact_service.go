package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// DedupChecker abstracts the duplicate-submission store (Redis). A repeated
// email+subject pair inside the TTL window is treated as a duplicate.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, email, subject string) (bool, error)
	Mark(ctx context.Context, email, subject string) error
}

// ContactService implements contact-form intake. Submissions may be
// anonymous; ClientID stays empty then.
type ContactService struct {
	contacts ports.ContactRepository
	dedup    DedupChecker
	notify   ports.Notifier
	logger   zerolog.Logger
}

func NewContactService(contacts ports.ContactRepository, dedup DedupChecker, notify ports.Notifier, logger zerolog.Logger) *ContactService {
	return &ContactService{contacts: contacts, dedup: dedup, notify: notify, logger: logger}
}

func (s *ContactService) Submit(ctx context.Context, in ports.SubmitContactInput) (*domain.Contact, error) {
	isDup, err := s.dedup.IsDuplicate(ctx, in.Email, in.Subject)
	if err != nil {
		// An unavailable dedup store must not block intake.
		s.logger.Warn().Err(err).Str("email", in.Email).Msg("contact dedup check failed, accepting submission")
	} else if isDup {
		return nil, domain.ErrDuplicateSubmission
	}

	now := time.Now().UTC()
	contact := &domain.Contact{
		FullName:  in.FullName,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		ClientID:  in.ClientID,
		Status:    domain.ContactPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.contacts.Create(ctx, contact)
	if err != nil {
		return nil, err
	}

	if markErr := s.dedup.Mark(ctx, in.Email, in.Subject); markErr != nil {
		s.logger.Warn().Err(markErr).Str("contact_id", created.ID).Msg("failed to set contact dedup key")
	}

	s.notify.EnqueueEmail(in.Email, "We received your message",
		fmt.Sprintf("<p>Hi %s,</p><p>Thanks for reaching out about %q. We will get back to you shortly.</p>", in.FullName, in.Subject))

	s.logger.Info().Str("contact_id", created.ID).Bool("anonymous", in.ClientID == "").Msg("contact submitted")
	return created, nil
}

func (s *ContactService) List(ctx context.Context, actor *domain.Admin, filter ports.ListContactsFilter) (*ports.ContactListResult, error) {
	if err := requirePermission(actor, domain.PermManageContacts); err != nil {
		return nil, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.contacts.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ContactListResult{Items: items, Total: total}, nil
}

func (s *ContactService) Respond(ctx context.Context, actor *domain.Admin, contactID, response string) error {
	if err := requirePermission(actor, domain.PermRespondContacts); err != nil {
		return err
	}
	contact, err := s.contacts.FindByID(ctx, contactID)
	if err != nil {
		return err
	}
	if err := s.contacts.SetResponse(ctx, contactID, response, actor.ID); err != nil {
		return err
	}

	s.notify.EnqueueEmail(contact.Email, "Re: "+contact.Subject,
		fmt.Sprintf("<p>Hi %s,</p><p>%s</p>", contact.FullName, response))

	s.logger.Info().Str("contact_id", contactID).Str("responded_by", actor.ID).Msg("contact responded")
	return nil
}

func (s *ContactService) UpdateStatus(ctx context.Context, actor *domain.Admin, contactID string, status domain.ContactStatus) error {
	if err := requirePermission(actor, domain.PermManageContacts); err != nil {
		return err
	}
	if !domain.ValidContactStatus(status) {
		return domain.ErrInvalidTransition
	}
	if _, err := s.contacts.FindByID(ctx, contactID); err != nil {
		return err
	}
	return s.contacts.UpdateStatus(ctx, contactID, status)
}
