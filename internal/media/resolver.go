// Package media handles image references for news and events items: the
// canonical relative form rows store, upload persistence under the uploads
// directory, and reconciliation of stored galleries against submitted ones.
package media

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"

	"news-events-api/internal/util"
)

const (
	// CoverImageDir is the uploads subdirectory for cover images.
	CoverImageDir = "cover-images"
	// GalleryImageDir is the uploads subdirectory for gallery images.
	GalleryImageDir = "news-images"

	// publicPrefix is the URL prefix the uploads directory is served under.
	publicPrefix = "/uploads"
)

// Resolver translates between the image reference forms clients submit, the
// canonical relative form rows store, and file locations on disk. A reference
// that does not reduce to one of the known upload directories is treated as
// external: stored verbatim and never unlinked.
type Resolver struct {
	uploadsDir string
	baseURL    string
	baseHost   string
}

// NewResolver creates a resolver rooted at uploadsDir. publicBaseURL
// determines which absolute URLs count as our own host.
func NewResolver(uploadsDir, publicBaseURL string) *Resolver {
	baseURL := strings.TrimRight(publicBaseURL, "/")
	host := ""
	if u, err := url.Parse(baseURL); err == nil {
		host = u.Host
	}
	return &Resolver{
		uploadsDir: uploadsDir,
		baseURL:    baseURL,
		baseHost:   host,
	}
}

// Canonicalize reduces a submitted image reference to its canonical relative
// form: "/cover-images/<file>" or "/news-images/<file>". Absolute URLs on our
// own host lose scheme and host, a leading "/uploads" segment is dropped and
// the path is cleaned. Anything that does not land in a known upload
// directory comes back verbatim.
func (r *Resolver) Canonicalize(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	p := ref
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		u, err := url.Parse(ref)
		if err != nil || u.Host == "" || u.Host != r.baseHost {
			return ref
		}
		p = u.Path
	}

	p = path.Clean("/" + strings.TrimPrefix(p, "/"))
	if p == publicPrefix {
		return ref
	}
	if strings.HasPrefix(p, publicPrefix+"/") {
		p = strings.TrimPrefix(p, publicPrefix)
	}

	dir, file := path.Split(p)
	if file == "" {
		return ref
	}
	switch strings.Trim(dir, "/") {
	case CoverImageDir, GalleryImageDir:
		return "/" + strings.Trim(dir, "/") + "/" + file
	}
	return ref
}

// IsLocal reports whether ref is a canonical reference into one of the known
// upload directories.
func (r *Resolver) IsLocal(ref string) bool {
	if !strings.HasPrefix(ref, "/") {
		return false
	}
	dir, file := path.Split(ref)
	if file == "" {
		return false
	}
	d := strings.Trim(dir, "/")
	return d == CoverImageDir || d == GalleryImageDir
}

// AbsolutePath resolves a canonical reference to its location on disk.
func (r *Resolver) AbsolutePath(ref string) (string, error) {
	if !r.IsLocal(ref) {
		return "", fmt.Errorf("not a local upload reference: %q", ref)
	}
	return util.SafeJoinPath(r.uploadsDir, strings.TrimPrefix(ref, "/"))
}

// PublicURL renders the absolute URL for a stored reference. External
// references pass through verbatim.
func (r *Resolver) PublicURL(ref string) string {
	if ref == "" || !r.IsLocal(ref) {
		return ref
	}
	return r.baseURL + publicPrefix + ref
}

// DeleteFile unlinks the backing file of a local reference. External
// references and already-missing files are skipped without error.
func (r *Resolver) DeleteFile(ref string) error {
	if !r.IsLocal(ref) {
		return nil
	}
	abs, err := r.AbsolutePath(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// DeleteFiles unlinks a batch of references concurrently and waits for every
// attempt to settle before returning. Each reference gets exactly one
// attempt; failures are logged and returned, never retried and never fatal.
func (r *Resolver) DeleteFiles(refs []string) []string {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed []string
	)
	for _, ref := range refs {
		if !r.IsLocal(ref) {
			continue
		}
		wg.Add(1)
		go func(ref string) {
			defer wg.Done()
			if err := r.DeleteFile(ref); err != nil {
				slog.Error("deleting upload file", "ref", ref, "error", err)
				mu.Lock()
				failed = append(failed, ref)
				mu.Unlock()
			}
		}(ref)
	}
	wg.Wait()
	return failed
}
