package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// BlogService implements blog authoring with the ownership guard. The guard
// runs inside the same transaction as the mutation it protects, so a
// concurrent owner change cannot slip between check and write.
type BlogService struct {
	blogs   ports.BlogRepository
	clients ports.ClientRepository
	txn     ports.TxnRunner
	notify  ports.Notifier
	logger  zerolog.Logger
}

func NewBlogService(blogs ports.BlogRepository, clients ports.ClientRepository, txn ports.TxnRunner, notify ports.Notifier, logger zerolog.Logger) *BlogService {
	return &BlogService{blogs: blogs, clients: clients, txn: txn, notify: notify, logger: logger}
}

// Create inserts the blog and appends its id to the author's blog list in
// one transaction.
func (s *BlogService) Create(ctx context.Context, authorID string, in ports.CreateBlogInput) (*domain.Blog, error) {
	now := time.Now().UTC()
	blog := &domain.Blog{
		Title:      in.Title,
		Slug:       slugify(in.Title),
		Content:    in.Content,
		AuthorID:   authorID,
		CoverImage: in.CoverImage,
		Tags:       in.Tags,
		Status:     domain.BlogDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var created *domain.Blog
	err := s.txn.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.blogs.Create(ctx, blog)
		if err != nil {
			return err
		}
		return s.clients.PushBlogID(ctx, authorID, created.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("blog_id", created.ID).Str("author_id", authorID).Msg("blog created")
	return created, nil
}

func (s *BlogService) GetPublished(ctx context.Context, slug string) (*domain.Blog, error) {
	blog, err := s.blogs.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	// Unpublished posts are invisible to the public, indistinguishable from
	// absent ones.
	if blog.Status != domain.BlogPublished {
		return nil, domain.ErrBlogNotFound
	}
	return blog, nil
}

func (s *BlogService) ListPublished(ctx context.Context, filter ports.ListBlogsFilter) (*ports.BlogListResult, error) {
	filter.Status = string(domain.BlogPublished)
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.blogs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.BlogListResult{Items: items, Total: total}, nil
}

func (s *BlogService) Update(ctx context.Context, requesterID, blogID string, in ports.UpdateBlogInput) (*domain.Blog, error) {
	var updated *domain.Blog
	var replaced domain.Attachment

	err := s.txn.WithinTransaction(ctx, func(ctx context.Context) error {
		blog, err := s.blogs.FindByID(ctx, blogID)
		if err != nil {
			return err
		}
		if err := verifyOwnership(blog.AuthorID, requesterID); err != nil {
			return err
		}

		if in.Title != nil {
			blog.Title = *in.Title
			blog.Slug = slugify(*in.Title)
		}
		if in.Content != nil {
			blog.Content = *in.Content
		}
		if in.Tags != nil {
			blog.Tags = in.Tags
		}
		if in.CoverImage != nil {
			replaced = blog.CoverImage
			blog.CoverImage = *in.CoverImage
		}
		blog.UpdatedAt = time.Now().UTC()

		if err := s.blogs.Update(ctx, blog); err != nil {
			return err
		}
		updated = blog
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !replaced.IsZero() {
		s.notify.EnqueueMediaDelete(replaced.PublicID, replaced.Kind)
	}
	return updated, nil
}

// Delete removes the blog and pulls its id from the author's blog list in
// one transaction, then schedules best-effort cover image cleanup.
func (s *BlogService) Delete(ctx context.Context, requesterID, blogID string) error {
	return s.delete(ctx, blogID, func(b *domain.Blog) error {
		return verifyOwnership(b.AuthorID, requesterID)
	})
}

func (s *BlogService) ChangeStatus(ctx context.Context, requesterID, blogID string, next domain.BlogStatus) error {
	return s.changeStatus(ctx, blogID, next, func(b *domain.Blog) error {
		return verifyOwnership(b.AuthorID, requesterID)
	})
}

func (s *BlogService) AdminList(ctx context.Context, actor *domain.Admin, filter ports.ListBlogsFilter) (*ports.BlogListResult, error) {
	if err := requirePermission(actor, domain.PermManageBlogs); err != nil {
		return nil, err
	}
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.blogs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.BlogListResult{Items: items, Total: total}, nil
}

func (s *BlogService) AdminChangeStatus(ctx context.Context, actor *domain.Admin, blogID string, next domain.BlogStatus) error {
	return s.changeStatus(ctx, blogID, next, func(*domain.Blog) error {
		return requirePermission(actor, domain.PermPublishBlogs)
	})
}

func (s *BlogService) AdminDelete(ctx context.Context, actor *domain.Admin, blogID string) error {
	return s.delete(ctx, blogID, func(*domain.Blog) error {
		return requirePermission(actor, domain.PermDeleteBlogs)
	})
}

// delete is the shared transactional deletion path. authorize runs after the
// existence check, so a missing blog is NotFound even for callers who would
// have been Forbidden.
func (s *BlogService) delete(ctx context.Context, blogID string, authorize func(*domain.Blog) error) error {
	var cover domain.Attachment

	err := s.txn.WithinTransaction(ctx, func(ctx context.Context) error {
		blog, err := s.blogs.FindByID(ctx, blogID)
		if err != nil {
			return err
		}
		if err := authorize(blog); err != nil {
			return err
		}
		cover = blog.CoverImage

		if err := s.blogs.Delete(ctx, blogID); err != nil {
			return err
		}
		return s.clients.PullBlogID(ctx, blog.AuthorID, blogID)
	})
	if err != nil {
		return err
	}

	if !cover.IsZero() {
		s.notify.EnqueueMediaDelete(cover.PublicID, cover.Kind)
	}
	s.logger.Info().Str("blog_id", blogID).Msg("blog deleted")
	return nil
}

func (s *BlogService) changeStatus(ctx context.Context, blogID string, next domain.BlogStatus, authorize func(*domain.Blog) error) error {
	return s.txn.WithinTransaction(ctx, func(ctx context.Context) error {
		blog, err := s.blogs.FindByID(ctx, blogID)
		if err != nil {
			return err
		}
		if err := authorize(blog); err != nil {
			return err
		}
		if !blog.Status.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}

		publishedAt := blog.PublishedAt
		if next == domain.BlogPublished {
			publishedAt = time.Now().UTC()
		}
		return s.blogs.UpdateStatus(ctx, blogID, next, publishedAt)
	})
}
