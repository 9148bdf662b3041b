// AngelaMos | 2026
// local.go

package storage

import (
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/lalonstore/lalon-store-api/internal/config"
	"github.com/lalonstore/lalon-store-api/internal/core"
)

const multipartMemory = 32 << 20

// allowedExtensions mirrors the media types the CDN pipeline accepts.
var allowedExtensions = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".webp": {},
	".mp4":  {},
	".mov":  {},
	".avi":  {},
}

// TempStore spools incoming multipart files to disk before the CDN
// upload. Every file it writes must be removed by the upload step or by
// RemoveLocalFiles when the request is rejected.
type TempStore struct {
	dir         string
	maxFileSize int64
	maxFiles    int
}

func NewTempStore(cfg config.UploadConfig) (*TempStore, error) {
	if err := os.MkdirAll(cfg.TempDir, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	return &TempStore{
		dir:         cfg.TempDir,
		maxFileSize: cfg.MaxFileSize,
		maxFiles:    cfg.MaxFiles,
	}, nil
}

// File saves a single optional upload from the named form field.
// Returns "" when the field carries no file.
func (t *TempStore) File(r *http.Request, field string) (string, error) {
	if err := t.parseForm(r); err != nil {
		return "", err
	}

	headers := t.fileHeaders(r, field)
	if len(headers) == 0 {
		return "", nil
	}

	return t.save(headers[0])
}

// Files saves every upload from the named form field. On any rejected
// file the already-saved ones are removed before the error returns.
func (t *TempStore) Files(r *http.Request, field string) ([]string, error) {
	if err := t.parseForm(r); err != nil {
		return nil, err
	}

	headers := t.fileHeaders(r, field)
	if len(headers) == 0 {
		return nil, nil
	}

	if len(headers) > t.maxFiles {
		return nil, core.BadRequestError(fmt.Sprintf(
			"Too many files, at most %d are allowed",
			t.maxFiles,
		))
	}

	paths := make([]string, 0, len(headers))
	for _, fh := range headers {
		path, err := t.save(fh)
		if err != nil {
			RemoveLocalFiles(paths)
			return nil, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func (t *TempStore) parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return core.BadRequestError("Invalid multipart form data")
	}
	return nil
}

func (t *TempStore) fileHeaders(
	r *http.Request,
	field string,
) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

func (t *TempStore) save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", core.BadRequestError("Only images and videos are allowed")
	}

	if fh.Size > t.maxFileSize {
		return "", core.BadRequestError(fmt.Sprintf(
			"File %s exceeds the %dMB size limit",
			fh.Filename,
			t.maxFileSize>>20,
		))
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close() //nolint:errcheck // read-only handle

	path := filepath.Join(t.dir, uuid.NewString()+ext)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()     //nolint:errcheck // cleanup on copy failure
		_ = os.Remove(path) //nolint:errcheck // cleanup on copy failure
		return "", fmt.Errorf("write temp file: %w", err)
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(path) //nolint:errcheck // cleanup on close failure
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return path, nil
}

// RemoveLocalFiles deletes temp files that never made it to the CDN.
func RemoveLocalFiles(paths []string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("remove temp file", "path", path, "error", err)
		}
	}
}
