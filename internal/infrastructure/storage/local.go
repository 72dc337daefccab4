// Package storage implements the content store for uploaded files on the
// local filesystem. Files are written under generated collision-resistant
// names, so concurrent uploads never need locking.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/numerisys/document-system/internal/core/ports"
)

// publicPrefix is the route the upload directory is served from.
const publicPrefix = "/uploads"

// LocalStore saves uploaded files into a single content directory.
type LocalStore struct {
	dir string
}

// NewLocalStore ensures dir exists and returns a store rooted there.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save streams the upload to disk under a generated unique name and returns
// the stored file's name, public URL and size.
func (s *LocalStore) Save(ctx context.Context, upload ports.FileUpload) (*ports.StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := generateName(upload.Name)
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create upload file: %w", err)
	}

	written, err := io.Copy(dst, upload.Reader)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write upload file: %w", err)
	}

	return &ports.StoredFile{
		StoredName: name,
		URL:        publicPrefix + "/" + name,
		Size:       written,
	}, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *LocalStore) Remove(_ context.Context, storedName string) error {
	// Refuse anything that escapes the content directory.
	if storedName == "" || storedName != filepath.Base(storedName) {
		return fmt.Errorf("invalid stored name %q", storedName)
	}

	err := os.Remove(filepath.Join(s.dir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	return nil
}

// generateName builds a collision-resistant file name from the current time,
// a random suffix and a sanitized version of the original name.
func generateName(original string) string {
	base := filepath.Base(strings.TrimSpace(original))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "file"
	}
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString(), base)
}
