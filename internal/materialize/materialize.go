// Package materialize writes a generated path list to a filesystem or prints it.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// ErrOutsideRoot is returned for a path that does not live below the root directory.
var ErrOutsideRoot = errors.New("path is outside the root directory")

const dirPerm = 0750

// Result lists what a materialization did. Both lists keep input order.
type Result struct {
	Created []string
	Skipped []string
}

// Materializer creates generated paths on a billy filesystem rooted at the
// project root directory.
type Materializer struct {
	fs     billy.Filesystem
	logger *slog.Logger
}

// New creates a Materializer writing to fsys. A nil logger discards logs.
func New(fsys billy.Filesystem, logger *slog.Logger) *Materializer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Materializer{fs: fsys, logger: logger}
}

// OSFilesystem returns a billy filesystem rooted at root on the local disk.
func OSFilesystem(root string) billy.Filesystem {
	return osfs.New(root)
}

// Print writes every path on its own line, in the given order, without
// touching any filesystem.
func Print(w io.Writer, paths []string) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return fmt.Errorf("failed to print %s: %w", p, err)
		}
	}
	return nil
}

// IsFile reports whether p names a file, i.e. its final segment has an extension.
func IsFile(p string) bool {
	return path.Ext(path.Base(filepath.ToSlash(p))) != ""
}

// Materialize creates every path below root. Paths whose final segment has
// an extension become empty files; the rest become directories. Missing
// parents are created and existing entries are left untouched. The first
// failure aborts and names the offending path; entries created before it
// are kept.
func (m *Materializer) Materialize(ctx context.Context, root string, paths []string) (*Result, error) {
	res := &Result{}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rel, err := relativeTo(root, p)
		if err != nil {
			return res, fmt.Errorf("failed to materialize %s: %w", p, err)
		}

		created, err := m.create(rel)
		if err != nil {
			return res, fmt.Errorf("failed to materialize %s: %w", p, err)
		}

		if created {
			m.logger.Debug("created", "path", p)
			res.Created = append(res.Created, p)
		} else {
			m.logger.Debug("exists, skipping", "path", p)
			res.Skipped = append(res.Skipped, p)
		}
	}
	return res, nil
}

// create makes rel on the filesystem and reports whether anything new was made.
func (m *Materializer) create(rel string) (bool, error) {
	if _, err := m.fs.Stat(rel); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if !IsFile(rel) {
		return true, m.fs.MkdirAll(rel, dirPerm)
	}

	if dir := path.Dir(rel); dir != "." {
		if err := m.fs.MkdirAll(dir, dirPerm); err != nil {
			return false, err
		}
	}

	f, err := m.fs.Create(rel)
	if err != nil {
		return false, err
	}
	return true, f.Close()
}

// relativeTo returns p relative to root in slash form.
func relativeTo(root, p string) (string, error) {
	rel, err := filepath.Rel(filepath.FromSlash(root), filepath.FromSlash(p))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOutsideRoot, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", ErrOutsideRoot
	}
	return rel, nil
}
