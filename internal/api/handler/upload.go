package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/studiozeta/agency-api/internal/core/domain"
	"github.com/studiozeta/agency-api/internal/core/ports"
)

// maxUploadSize bounds a single uploaded file.
const maxUploadSize = 10 << 20 // 10 MiB

// saveToMediaStore spools an uploaded form file to a temp file and moves it
// into the media store. The temp file is always removed before returning.
func saveToMediaStore(ctx context.Context, store ports.MediaStore, fh *multipart.FileHeader, folder string) (domain.Attachment, error) {
	if fh.Size > maxUploadSize {
		return domain.Attachment{}, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	src, err := fh.Open()
	if err != nil {
		return domain.Attachment{}, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(fh.Filename))
	if err != nil {
		return domain.Attachment{}, err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, io.LimitReader(src, maxUploadSize)); err != nil {
		tmp.Close()
		return domain.Attachment{}, err
	}
	if err := tmp.Close(); err != nil {
		return domain.Attachment{}, err
	}

	return store.Upload(ctx, tmp.Name(), folder)
}

// discardUploads schedules deletion of attachments that reached the media
// store but whose owning record was never persisted. Best effort: the
// dispatcher logs and counts failures.
func discardUploads(notify ports.Notifier, atts ...domain.Attachment) {
	for _, att := range atts {
		if !att.IsZero() {
			notify.EnqueueMediaDelete(att.PublicID, att.Kind)
		}
	}
}

// formFile fetches an optional form file; a missing field returns nil without
// error so handlers can treat attachments as optional.
func formFile(c echo.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		// echo wraps missing multipart sections in a bad-request HTTPError.
		if he, ok := err.(*echo.HTTPError); ok && he.Code == http.StatusBadRequest {
			return nil, nil
		}
		return nil, err
	}
	return fh, nil
}
