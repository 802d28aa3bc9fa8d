package media_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripforge/tripforge/internal/media"
)

func newDiskStore(t *testing.T) *media.DiskStore {
	t.Helper()
	s, err := media.NewDiskStore(t.TempDir(), "/uploads")
	require.NoError(t, err)
	return s
}

func TestDiskStore_SaveAndURL(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	key, err := s.Save(ctx, "beach sunset.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotContains(t, key, " ", "unsafe characters must be sanitized")

	data, err := os.ReadFile(filepath.Join(s.Dir(), key))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	url, err := s.URL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/"+key, url)
}

func TestDiskStore_Delete(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	key, err := s.Save(ctx, "photo.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(s.Dir(), key))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskStore_DeleteMissingIsNoError(t *testing.T) {
	s := newDiskStore(t)
	require.NoError(t, s.Delete(context.Background(), "never-existed.jpg"))
}

func TestDiskStore_DeleteIgnoresPathTraversal(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	outside := filepath.Join(filepath.Dir(s.Dir()), "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	require.NoError(t, s.Delete(ctx, "../outside.txt"))
	_, err := os.Stat(outside)
	assert.NoError(t, err, "delete must not escape the upload dir")
}
