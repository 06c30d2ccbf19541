package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	errs "news-events-api/internal/errors"
)

// Upload limits
const (
	MaxUploadSize    = 5 * 1024 * 1024 // 5MB
	MaxGalleryImages = 10
)

// allowedImageTypes maps accepted MIME types to the stored file extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SaveUpload validates one uploaded image and stores it under the given
// uploads subdirectory with a generated name, returning the canonical
// relative reference for the stored file.
func (r *Resolver) SaveUpload(fh *multipart.FileHeader, subdir string) (string, error) {
	if fh.Size > MaxUploadSize {
		return "", errs.Ef(errs.KindValidation, "File %s exceeds the maximum size of 5MB", fh.Filename)
	}

	mimeType := fh.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[mimeType]
	if !ok {
		return "", errs.Ef(errs.KindValidation, "Only JPEG, PNG, GIF and WebP images are allowed, got %q", mimeType)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(r.uploadsDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	name := uuid.New().String() + ext
	dstPath := filepath.Join(dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/" + subdir + "/" + name, nil
}
