package storage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotImage is returned when an upload's content type is not image/*.
var ErrNotImage = errors.New("only image files are allowed")

// Upload is a file received from a multipart request, already read into
// memory by the handler.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageStore persists tour images and returns the relative URL path the
// record should carry. Implementations must generate collision-resistant
// names; concurrent stores never overwrite each other.
type ImageStore interface {
	Store(upload *Upload) (string, error)
}

// DiskImageStore writes images under a local directory served statically.
type DiskImageStore struct {
	dir       string
	urlPrefix string
}

func NewDiskImageStore(dir, urlPrefix string) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory %s: %w", dir, err)
	}
	return &DiskImageStore{dir: dir, urlPrefix: urlPrefix}, nil
}

func (s *DiskImageStore) Store(upload *Upload) (string, error) {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return "", ErrNotImage
	}

	name := generateFilename(upload.Filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), upload.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image %s: %w", name, err)
	}

	return path.Join(s.urlPrefix, name), nil
}

// generateFilename builds tour-<unix ms>-<uuid><ext>. The timestamp keeps
// directory listings roughly chronological; the uuid makes concurrent
// uploads collision-free.
func generateFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("tour-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}
