// Package fs provides the filesystem pieces: a local-file Fetcher so
// saved HTML can be analyzed without network access, and an atomic
// report directory writer used by site audits.
package fs

import (
	"context"
	"os"
	"strings"

	"github.com/fwojciec/geolens"
)

// Ensure Fetcher implements geolens.Fetcher at compile time.
var _ geolens.Fetcher = (*Fetcher)(nil)

// Fetcher reads HTML from the local filesystem.
type Fetcher struct{}

// NewFetcher creates a new file-based Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch reads the file at ref. A file:// prefix is accepted and stripped.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := strings.TrimPrefix(ref, "file://")

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", geolens.Errorf(geolens.ENOTFOUND, "file %q does not exist", path)
	}
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", geolens.Errorf(geolens.EINVALID, "%q is a directory, not an HTML file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Close is a no-op for the file fetcher.
func (f *Fetcher) Close() error {
	return nil
}
