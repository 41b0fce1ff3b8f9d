package ports

import (
	"context"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// Mailer sends a single HTML email synchronously.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Notifier enqueues best-effort background work. Jobs never fail the request
// that scheduled them; failures are logged and counted by the dispatcher.
type Notifier interface {
	EnqueueEmail(to, subject, htmlBody string)
	EnqueueMediaDelete(publicID string, kind domain.ResourceKind)
}
