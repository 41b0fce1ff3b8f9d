package ports

import (
	"context"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// MediaStore is the external object-storage boundary. Upload moves a local
// file into the store; Delete removes a stored object. Delete failures on
// cleanup paths are logged, never escalated.
type MediaStore interface {
	Upload(ctx context.Context, localPath, folder string) (domain.Attachment, error)
	Delete(ctx context.Context, publicID string, kind domain.ResourceKind) error
}
