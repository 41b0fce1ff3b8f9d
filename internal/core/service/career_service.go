package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// CareerService implements career-application intake and review. The resume
// lives in the media store; deleting an application schedules its removal
// best-effort.
type CareerService struct {
	careers ports.CareerRepository
	notify  ports.Notifier
	logger  zerolog.Logger
}

func NewCareerService(careers ports.CareerRepository, notify ports.Notifier, logger zerolog.Logger) *CareerService {
	return &CareerService{careers: careers, notify: notify, logger: logger}
}

func (s *CareerService) Apply(ctx context.Context, in ports.ApplyCareerInput) (*domain.CareerApplication, error) {
	now := time.Now().UTC()
	app := &domain.CareerApplication{
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		Position:    in.Position,
		CoverLetter: in.CoverLetter,
		Resume:      in.Resume,
		Status:      domain.CareerPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.careers.Create(ctx, app)
	if err != nil {
		return nil, err
	}

	s.notify.EnqueueEmail(in.Email, "Application received",
		fmt.Sprintf("<p>Hi %s,</p><p>We received your application for the %s position and will review it soon.</p>", in.FullName, in.Position))

	s.logger.Info().Str("application_id", created.ID).Str("position", in.Position).Msg("career application received")
	return created, nil
}

func (s *CareerService) List(ctx context.Context, actor *domain.Admin, filter ports.ListCareersFilter) (*ports.CareerListResult, error) {
	if err := requirePermission(actor, domain.PermManageCareers); err != nil {
		return nil, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.careers.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.CareerListResult{Items: items, Total: total}, nil
}

func (s *CareerService) UpdateStatus(ctx context.Context, actor *domain.Admin, id string, status domain.CareerStatus) error {
	if err := requirePermission(actor, domain.PermManageCareers); err != nil {
		return err
	}
	if !domain.ValidCareerStatus(status) {
		return domain.ErrInvalidTransition
	}
	if _, err := s.careers.FindByID(ctx, id); err != nil {
		return err
	}
	return s.careers.UpdateStatus(ctx, id, status)
}

func (s *CareerService) Delete(ctx context.Context, actor *domain.Admin, id string) error {
	if err := requirePermission(actor, domain.PermManageCareers); err != nil {
		return err
	}
	app, err := s.careers.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.careers.Delete(ctx, id); err != nil {
		return err
	}
	if !app.Resume.IsZero() {
		s.notify.EnqueueMediaDelete(app.Resume.PublicID, app.Resume.Kind)
	}
	return nil
}
