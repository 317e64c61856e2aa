package fs_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/geolens"
	"github.com/fwojciec/geolens/fs"
	"github.com/fwojciec/geolens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		ext  string
		want string
	}{
		{
			name: "simple path",
			url:  "https://example.com/docs/api/users",
			ext:  ".md",
			want: "docs/api/users.md",
		},
		{
			name: "trailing slash becomes index",
			url:  "https://example.com/docs/",
			ext:  ".md",
			want: "docs/index.md",
		},
		{
			name: "root path becomes index",
			url:  "https://example.com/",
			ext:  ".md",
			want: "index.md",
		},
		{
			name: "no trailing slash",
			url:  "https://example.com/docs",
			ext:  ".md",
			want: "docs.md",
		},
		{
			name: "ignores query string",
			url:  "https://example.com/docs/api?version=2",
			ext:  ".md",
			want: "docs/api.md",
		},
		{
			name: "ignores fragment",
			url:  "https://example.com/docs/api#section",
			ext:  ".md",
			want: "docs/api.md",
		},
		{
			name: "root without trailing slash",
			url:  "https://example.com",
			ext:  ".md",
			want: "index.md",
		},
		{
			name: "json extension",
			url:  "https://example.com/pricing",
			ext:  ".json",
			want: "pricing.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.RefToPath(tt.url, tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func stubFormatter() *mock.Formatter {
	return &mock.Formatter{
		FormatFn: func(w io.Writer, r *geolens.Report) error {
			_, err := fmt.Fprintf(w, "report for %s\n", r.ContentRef)
			return err
		},
	}
}

func TestReportStore(t *testing.T) {
	t.Parallel()

	t.Run("saves reports into the staging directory", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		store := fs.NewReportStore(baseDir, "audit", stubFormatter())

		report := &geolens.Report{ContentRef: "https://example.com/docs/api/users"}
		require.NoError(t, store.Save(context.Background(), report))

		content, err := os.ReadFile(filepath.Join(baseDir, "audit.tmp", "docs/api/users.md"))
		require.NoError(t, err)
		assert.Equal(t, "report for https://example.com/docs/api/users\n", string(content))

		// Nothing published until Commit
		_, err = os.Stat(filepath.Join(baseDir, "audit"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("commit publishes the staged directory", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		store := fs.NewReportStore(baseDir, "audit", stubFormatter())

		require.NoError(t, store.Save(context.Background(), &geolens.Report{ContentRef: "https://example.com/a"}))
		require.NoError(t, store.Save(context.Background(), &geolens.Report{ContentRef: "https://example.com/b"}))
		require.NoError(t, store.Commit())

		_, err := os.Stat(filepath.Join(baseDir, "audit", "a.md"))
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(baseDir, "audit", "b.md"))
		require.NoError(t, err)

		// Staging directory is gone
		_, err = os.Stat(filepath.Join(baseDir, "audit.tmp"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("commit replaces a previous run", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()

		first := fs.NewReportStore(baseDir, "audit", stubFormatter())
		require.NoError(t, first.Save(context.Background(), &geolens.Report{ContentRef: "https://example.com/old"}))
		require.NoError(t, first.Commit())

		second := fs.NewReportStore(baseDir, "audit", stubFormatter())
		require.NoError(t, second.Save(context.Background(), &geolens.Report{ContentRef: "https://example.com/new"}))
		require.NoError(t, second.Commit())

		_, err := os.Stat(filepath.Join(baseDir, "audit", "new.md"))
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(baseDir, "audit", "old.md"))
		assert.True(t, os.IsNotExist(err), "previous run should be replaced, not merged")
	})

	t.Run("abort discards staged reports", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		store := fs.NewReportStore(baseDir, "audit", stubFormatter())

		require.NoError(t, store.Save(context.Background(), &geolens.Report{ContentRef: "https://example.com/a"}))
		require.NoError(t, store.Abort())

		_, err := os.Stat(filepath.Join(baseDir, "audit.tmp"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(baseDir, "audit"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("uses the configured extension", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		store := fs.NewReportStore(baseDir, "audit", stubFormatter(), fs.WithExtension(".json"))

		require.NoError(t, store.Save(context.Background(), &geolens.Report{ContentRef: "https://example.com/pricing"}))
		require.NoError(t, store.Commit())

		_, err := os.Stat(filepath.Join(baseDir, "audit", "pricing.json"))
		require.NoError(t, err)
	})

	t.Run("formatter errors propagate", func(t *testing.T) {
		t.Parallel()

		baseDir := t.TempDir()
		failing := &mock.Formatter{
			FormatFn: func(w io.Writer, r *geolens.Report) error {
				return fmt.Errorf("render failed")
			},
		}
		store := fs.NewReportStore(baseDir, "audit", failing)

		err := store.Save(context.Background(), &geolens.Report{ContentRef: "https://example.com/a"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "render failed")
	})
}
