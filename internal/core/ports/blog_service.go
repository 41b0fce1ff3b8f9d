package ports

import (
	"context"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

// CreateBlogInput carries validated fields for a new blog post.
type CreateBlogInput struct {
	Title      string
	Content    string
	Tags       []string
	CoverImage domain.Attachment
}

// UpdateBlogInput carries partial updates; nil pointers mean "unchanged".
type UpdateBlogInput struct {
	Title      *string
	Content    *string
	Tags       []string
	CoverImage *domain.Attachment
}

// BlogListResult is a page of blogs with the total match count.
type BlogListResult struct {
	Items []*domain.Blog
	Total int64
}

// BlogService implements blog authoring, publication and the ownership guard.
// Client-facing mutations verify the requester owns the blog; Admin* variants
// pass via the acting admin's permission matrix instead.
type BlogService interface {
	Create(ctx context.Context, authorID string, in CreateBlogInput) (*domain.Blog, error)
	GetPublished(ctx context.Context, slug string) (*domain.Blog, error)
	ListPublished(ctx context.Context, filter ListBlogsFilter) (*BlogListResult, error)
	Update(ctx context.Context, requesterID, blogID string, in UpdateBlogInput) (*domain.Blog, error)
	Delete(ctx context.Context, requesterID, blogID string) error
	ChangeStatus(ctx context.Context, requesterID, blogID string, next domain.BlogStatus) error

	AdminList(ctx context.Context, actor *domain.Admin, filter ListBlogsFilter) (*BlogListResult, error)
	AdminChangeStatus(ctx context.Context, actor *domain.Admin, blogID string, next domain.BlogStatus) error
	AdminDelete(ctx context.Context, actor *domain.Admin, blogID string) error
}
