package fetch

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"strings"
)

// FSFetcher serves URL paths out of a file system, ignoring scheme and host.
// It lets an application ship its icons with embed.FS and still register
// them by URL.
type FSFetcher struct {
	fsys fs.FS
	root string
}

// NewFSFetcher creates a fetcher reading from fsys.
// A non-empty root is prepended to every looked-up path.
func NewFSFetcher(fsys fs.FS, root string) *FSFetcher {
	return &FSFetcher{fsys: fsys, root: strings.Trim(root, "/")}
}

// Compile-time interface check.
var _ Fetcher = (*FSFetcher)(nil)

// FetchText implements Fetcher.
func (f *FSFetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	name := path.Clean(strings.TrimPrefix(u.Path, "/"))
	if f.root != "" {
		name = path.Join(f.root, name)
	}
	if !fs.ValidPath(name) || name == "." {
		return "", &fs.PathError{Op: "open", Path: u.Path, Err: fs.ErrInvalid}
	}

	data, err := fs.ReadFile(f.fsys, name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
