package ports

import (
	"context"
	"time"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// ListBlogsFilter carries query parameters for blog listings. An empty
// Status lists all states (admin view); public listings pass "published".
type ListBlogsFilter struct {
	AuthorID string
	Status   string
	Tag      string
	Page     int
	Limit    int
}

// BlogRepository defines persistence operations for blogs.
type BlogRepository interface {
	// Create inserts a new blog. A duplicate slug fails with domain.ErrBlogExists.
	Create(ctx context.Context, b *domain.Blog) (*domain.Blog, error)
	FindByID(ctx context.Context, id string) (*domain.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Blog, error)
	List(ctx context.Context, filter ListBlogsFilter) ([]*domain.Blog, int64, error)
	Update(ctx context.Context, b *domain.Blog) error
	UpdateStatus(ctx context.Context, id string, status domain.BlogStatus, publishedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
