package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// BlogHandler exposes blog authoring for clients, public reads, and the
// admin moderation surface. Create and update accept multipart form data so
// the cover image can ride along; the file is moved to the media store before
// the service is called.
type BlogHandler struct {
	blogs  ports.BlogService
	media  ports.MediaStore
	notify ports.Notifier
}

func NewBlogHandler(blogs ports.BlogService, media ports.MediaStore, notify ports.Notifier) *BlogHandler {
	return &BlogHandler{blogs: blogs, media: media, notify: notify}
}

func (h *BlogHandler) Create(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	title := strings.TrimSpace(c.FormValue("title"))
	content := c.FormValue("content")
	if title == "" || content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title and content are required")
	}

	in := ports.CreateBlogInput{
		Title:   title,
		Content: content,
		Tags:    splitTags(c.FormValue("tags")),
	}

	if fh, err := formFile(c, "cover"); err != nil {
		return err
	} else if fh != nil {
		in.CoverImage, err = saveToMediaStore(c.Request().Context(), h.media, fh, "blogs")
		if err != nil {
			return err
		}
	}

	blog, err := h.blogs.Create(c.Request().Context(), clientID, in)
	if err != nil {
		// The cover already reached the media store; don't leave it orphaned.
		discardUploads(h.notify, in.CoverImage)
		return err
	}
	return respond(c, http.StatusCreated, blog, "blog created")
}

// GetPublished serves a single published post by slug. Drafts and archived
// posts are indistinguishable from missing ones.
func (h *BlogHandler) GetPublished(c echo.Context) error {
	blog, err := h.blogs.GetPublished(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, blog, "")
}

func (h *BlogHandler) ListPublished(c echo.Context) error {
	filter := ports.ListBlogsFilter{
		Tag:   c.QueryParam("tag"),
		Page:  queryInt(c, "page"),
		Limit: queryInt(c, "limit"),
	}
	res, err := h.blogs.ListPublished(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listData{Items: res.Items, Total: res.Total, Page: filter.Page, Limit: filter.Limit}, "")
}

func (h *BlogHandler) Update(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var in ports.UpdateBlogInput
	if v := c.FormValue("title"); v != "" {
		in.Title = &v
	}
	if v := c.FormValue("content"); v != "" {
		in.Content = &v
	}
	if v := c.FormValue("tags"); v != "" {
		in.Tags = splitTags(v)
	}

	if fh, err := formFile(c, "cover"); err != nil {
		return err
	} else if fh != nil {
		cover, err := saveToMediaStore(c.Request().Context(), h.media, fh, "blogs")
		if err != nil {
			return err
		}
		in.CoverImage = &cover
	}

	blog, err := h.blogs.Update(c.Request().Context(), clientID, c.Param("id"), in)
	if err != nil {
		if in.CoverImage != nil {
			discardUploads(h.notify, *in.CoverImage)
		}
		return err
	}
	return respond(c, http.StatusOK, blog, "blog updated")
}

func (h *BlogHandler) Delete(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}
	if err := h.blogs.Delete(c.Request().Context(), clientID, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "blog deleted")
}

type changeBlogStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published archived"`
}

func (h *BlogHandler) ChangeStatus(c echo.Context) error {
	clientID, err := ctxClientID(c)
	if err != nil {
		return err
	}

	var req changeBlogStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.blogs.ChangeStatus(c.Request().Context(), clientID, c.Param("id"), domain.BlogStatus(req.Status)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "blog status updated")
}

func (h *BlogHandler) AdminList(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	filter := ports.ListBlogsFilter{
		AuthorID: c.QueryParam("author_id"),
		Status:   c.QueryParam("status"),
		Tag:      c.QueryParam("tag"),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}
	res, err := h.blogs.AdminList(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, listData{Items: res.Items, Total: res.Total, Page: filter.Page, Limit: filter.Limit}, "")
}

func (h *BlogHandler) AdminChangeStatus(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}

	var req changeBlogStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.blogs.AdminChangeStatus(c.Request().Context(), actor, c.Param("id"), domain.BlogStatus(req.Status)); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "blog status updated")
}

func (h *BlogHandler) AdminDelete(c echo.Context) error {
	actor, err := ctxAdmin(c)
	if err != nil {
		return err
	}
	if err := h.blogs.AdminDelete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "blog deleted")
}

// splitTags parses a comma-separated tag list, dropping empties.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
