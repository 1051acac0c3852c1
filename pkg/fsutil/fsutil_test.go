package fsutil_test

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lintspec/pkg/fsutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "Token.sol")
		writeFile(t, path, "contract Token {}")

		content, info, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "contract Token {}", string(content))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(len(content)), info.Size)
		assert.Equal(t, sha256.Sum256(content), info.Hash)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing.sol"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := fsutil.ReadFile(ctx, "whatever.sol")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()
		_, err := fsutil.CheckModified(ctx, nil)
		require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "A.sol")
		writeFile(t, path, "contract A {}")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("touched without edit", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "A.sol")
		writeFile(t, path, "contract A {}")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		later := info.ModTime.Add(time.Hour)
		require.NoError(t, os.Chtimes(path, later, later))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("edited", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "A.sol")
		writeFile(t, path, "contract A {}")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		writeFile(t, path, "contract B {}")
		later := info.ModTime.Add(time.Hour)
		require.NoError(t, os.Chtimes(path, later, later))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "A.sol")
		writeFile(t, path, "contract A {}")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})
}

func TestTracker(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "A.sol")
	writeFile(t, path, "contract A {}")

	tracker := fsutil.NewTracker()

	changed, err := tracker.Changed(ctx, path)
	require.NoError(t, err)
	assert.True(t, changed, "first sighting")
	assert.Equal(t, 1, tracker.Len())

	changed, err = tracker.Changed(ctx, path)
	require.NoError(t, err)
	assert.False(t, changed)

	writeFile(t, path, "contract Longer {}")
	changed, err = tracker.Changed(ctx, path)
	require.NoError(t, err)
	assert.True(t, changed)

	require.NoError(t, os.Remove(path))
	changed, err = tracker.Changed(ctx, path)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 0, tracker.Len())

	writeFile(t, path, "contract A {}")
	_, err = tracker.Changed(ctx, path)
	require.NoError(t, err)
	tracker.Forget(path)
	assert.Equal(t, 0, tracker.Len())
}
