package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/geolens"
	"github.com/fwojciec/geolens/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("reads an HTML file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<html><body>Saved</body></html>"), 0644))

		f := fs.NewFetcher()
		defer f.Close()

		html, err := f.Fetch(context.Background(), path)
		require.NoError(t, err)
		assert.Contains(t, html, "Saved")
	})

	t.Run("accepts file scheme prefix", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0644))

		f := fs.NewFetcher()
		defer f.Close()

		html, err := f.Fetch(context.Background(), "file://"+path)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
	})

	t.Run("returns not found for missing file", func(t *testing.T) {
		t.Parallel()

		f := fs.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.html"))
		require.Error(t, err)
		assert.Equal(t, geolens.ENOTFOUND, geolens.ErrorCode(err))
	})

	t.Run("rejects directories", func(t *testing.T) {
		t.Parallel()

		f := fs.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), t.TempDir())
		require.Error(t, err)
		assert.Equal(t, geolens.EINVALID, geolens.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0644))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := fs.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(ctx, path)
		require.Error(t, err)
	})
}
