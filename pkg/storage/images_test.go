package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestDiskStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskImageStore(dir, "/images/tours")
	if err != nil {
		t.Fatalf("NewDiskImageStore() error = %v", err)
	}

	url, err := store.Store(&Upload{
		Filename:    "beach.JPG",
		ContentType: "image/jpeg",
		Data:        []byte("not really a jpeg"),
	})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if !strings.HasPrefix(url, "/images/tours/tour-") {
		t.Errorf("url = %q, want /images/tours/tour-* prefix", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("url = %q, want lowercased .jpg extension", url)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("stored files = %d, want 1", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "not really a jpeg" {
		t.Error("stored bytes differ from upload")
	}
}

func TestDiskStoreRejectsNonImage(t *testing.T) {
	store, err := NewDiskImageStore(t.TempDir(), "/images/tours")
	if err != nil {
		t.Fatalf("NewDiskImageStore() error = %v", err)
	}

	_, err = store.Store(&Upload{
		Filename:    "malware.exe",
		ContentType: "application/octet-stream",
		Data:        []byte{0x4d, 0x5a},
	})
	if err != ErrNotImage {
		t.Errorf("Store() error = %v, want ErrNotImage", err)
	}
}

func TestGenerateFilenameUnique(t *testing.T) {
	re := regexp.MustCompile(`^tour-\d+-[0-9a-f-]{36}\.png$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		name := generateFilename("photo.png")
		if !re.MatchString(name) {
			t.Fatalf("filename %q does not match pattern", name)
		}
		if seen[name] {
			t.Fatalf("duplicate filename %q", name)
		}
		seen[name] = true
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryImageStore("/images/tours")

	url, err := store.Store(&Upload{Filename: "a.png", ContentType: "image/png", Data: []byte("x")})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if !strings.HasPrefix(url, "/images/tours/") {
		t.Errorf("url = %q", url)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}

	if _, err := store.Store(&Upload{Filename: "a.txt", ContentType: "text/plain"}); err != ErrNotImage {
		t.Errorf("Store() error = %v, want ErrNotImage", err)
	}
}
