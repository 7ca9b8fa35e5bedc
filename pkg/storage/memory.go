package storage

import (
	"path"
	"strings"
	"sync"
)

// MemoryImageStore keeps uploads in memory. Used by service tests so they
// never touch a filesystem.
type MemoryImageStore struct {
	mu        sync.Mutex
	urlPrefix string
	files     map[string][]byte
}

func NewMemoryImageStore(urlPrefix string) *MemoryImageStore {
	return &MemoryImageStore{
		urlPrefix: urlPrefix,
		files:     make(map[string][]byte),
	}
}

func (s *MemoryImageStore) Store(upload *Upload) (string, error) {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return "", ErrNotImage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := generateFilename(upload.Filename)
	s.files[name] = upload.Data
	return path.Join(s.urlPrefix, name), nil
}

// Len reports how many uploads were stored.
func (s *MemoryImageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
