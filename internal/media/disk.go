package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// DiskStore writes blobs to a local directory served under baseURL.
type DiskStore struct {
	dir     string
	baseURL string
}

// NewDiskStore constructs a DiskStore, creating dir if needed.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Dir returns the directory blobs are written to.
func (s *DiskStore) Dir() string { return s.dir }

// Save writes the blob under a timestamped, sanitized filename.
func (s *DiskStore) Save(_ context.Context, originalName, _ string, r io.Reader) (string, error) {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(filepath.Base(originalName), ext)
	key := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), unsafeChars.ReplaceAllString(base, "_"), ext)

	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("creating upload file %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("writing upload file %s: %w", key, err)
	}

	return key, nil
}

// URL returns the static-file path for the key.
func (s *DiskStore) URL(_ context.Context, key string) (string, error) {
	return s.baseURL + "/" + key, nil
}

// Delete removes the blob from disk. A missing file is not an error.
func (s *DiskStore) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing upload file %s: %w", key, err)
	}
	return nil
}
