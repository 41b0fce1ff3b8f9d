// Package storage implements the external media-store boundary over its HTTP
// upload API.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/studiozeta/agency-api/internal/core/domain"
)

const defaultTimeout = 30 * time.Second

// Config captures the media-store API settings.
type Config struct {
	// BaseURL is the store's API root, e.g. https://media.example.com/v1.
	BaseURL string
	APIKey  string
	// Folder is the top-level folder uploads are placed under.
	Folder string
	Timeout time.Duration
}

// HTTPStore uploads and deletes objects through the store's REST API. It
// implements ports.MediaStore.
type HTTPStore struct {
	cfg    Config
	client *http.Client
}

func NewHTTPStore(cfg Config) *HTTPStore {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPStore{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type uploadResponse struct {
	URL          string `json:"secure_url"`
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
}

// Upload streams the local file to the store as multipart form data and
// returns the stored object's reference. The temp file is the caller's to
// remove.
func (s *HTTPStore) Upload(ctx context.Context, localPath, folder string) (domain.Attachment, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		defer pw.Close()
		defer mw.Close()

		if s.cfg.Folder != "" {
			folder = s.cfg.Folder + "/" + folder
		}
		if err := mw.WriteField("folder", folder); err != nil {
			pw.CloseWithError(err)
			return
		}
		part, err := mw.CreateFormFile("file", filepath.Base(localPath))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/upload", pr)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.Attachment{}, fmt.Errorf("upload: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.Attachment{}, fmt.Errorf("decode upload response: %w", err)
	}

	return domain.Attachment{
		URL:      out.URL,
		PublicID: out.PublicID,
		Kind:     resourceKind(out.ResourceType),
	}, nil
}

// Delete removes a stored object by its public ID.
func (s *HTTPStore) Delete(ctx context.Context, publicID string, kind domain.ResourceKind) error {
	endpoint := fmt.Sprintf("%s/resources/%s/%s", s.cfg.BaseURL, kind, url.PathEscape(publicID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	defer resp.Body.Close()

	// A missing object is a successful delete as far as cleanup is concerned.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete media: status %d", resp.StatusCode)
	}
	return nil
}

func resourceKind(s string) domain.ResourceKind {
	switch s {
	case "image":
		return domain.KindImage
	case "video":
		return domain.KindVideo
	default:
		return domain.KindRaw
	}
}
