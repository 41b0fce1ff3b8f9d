package ports

import (
	"context"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// SubmitContactInput carries a validated contact-form submission. ClientID
// is empty for anonymous visitors.
type SubmitContactInput struct {
	FullName string
	Email    string
	Subject  string
	Message  string
	ClientID string
}

// ContactListResult is a page of contact submissions.
type ContactListResult struct {
	Items []*domain.Contact
	Total int64
}

// ContactService implements contact-form intake and admin handling.
type ContactService interface {
	// Submit records a submission. A repeated email+subject within the dedup
	// window fails with domain.ErrDuplicateSubmission.
	Submit(ctx context.Context, in SubmitContactInput) (*domain.Contact, error)
	List(ctx context.Context, actor *domain.Admin, filter ListContactsFilter) (*ContactListResult, error)
	// Respond stores the reply, emails it to the submitter and marks the
	// submission resolved.
	Respond(ctx context.Context, actor *domain.Admin, contactID, response string) error
	UpdateStatus(ctx context.Context, actor *domain.Admin, contactID string, status domain.ContactStatus) error
}

// ApplyCareerInput carries a validated career application with the uploaded
// resume already moved to the media store.
type ApplyCareerInput struct {
	FullName    string
	Email       string
	Phone       string
	Position    string
	CoverLetter string
	Resume      domain.Attachment
}

// CareerListResult is a page of career applications.
type CareerListResult struct {
	Items []*domain.CareerApplication
	Total int64
}

// CareerService implements career-application intake and admin review.
type CareerService interface {
	Apply(ctx context.Context, in ApplyCareerInput) (*domain.CareerApplication, error)
	List(ctx context.Context, actor *domain.Admin, filter ListCareersFilter) (*CareerListResult, error)
	UpdateStatus(ctx context.Context, actor *domain.Admin, id string, status domain.CareerStatus) error
	// Delete removes the application and schedules best-effort deletion of
	// the stored resume.
	Delete(ctx context.Context, actor *domain.Admin, id string) error
}
