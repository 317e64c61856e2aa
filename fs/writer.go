package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/geolens"
)

// RefToPath converts an analyzed URL to a relative report file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func RefToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Handle root or trailing slash → index file
	if path == "" || path == "/" {
		return "index" + ext, nil
	}

	// Remove leading slash
	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes an index file in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index" + ext, nil
	}

	return path + ext, nil
}

// ReportStore writes per-page audit reports with atomic update semantics.
// Reports are saved to a temporary directory, then moved into place on
// Commit, so an interrupted audit never leaves a half-written output
// directory behind.
type ReportStore struct {
	baseDir   string
	name      string
	formatter geolens.Formatter
	ext       string
}

// StoreOption configures a ReportStore.
type StoreOption func(*ReportStore)

// WithExtension sets the file extension for report files.
// Defaults to ".md" if not specified.
func WithExtension(ext string) StoreOption {
	return func(s *ReportStore) {
		s.ext = ext
	}
}

// NewReportStore creates a new ReportStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewReportStore(baseDir, name string, formatter geolens.Formatter, opts ...StoreOption) *ReportStore {
	s := &ReportStore{
		baseDir:   baseDir,
		name:      name,
		formatter: formatter,
		ext:       ".md",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ReportStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ReportStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save renders one report into the staging directory, at a path derived
// from the report's content ref.
func (s *ReportStore) Save(ctx context.Context, report *geolens.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := RefToPath(report.ContentRef, s.ext)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return err
	}

	if err := s.formatter.Format(f, report); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Commit atomically replaces the final directory with the staged one.
func (s *ReportStore) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort removes the staging directory.
func (s *ReportStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
