package source

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lilianada/braindump/internal/checksum"
)

// FS implements Provider backed by a local directory of Markdown files.
type FS struct {
	root   string // absolute path to the content directory
	logger *slog.Logger
}

// NewFS creates an FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string, logger *slog.Logger) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("source: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("source: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source: root is not a directory: %s", abs)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FS{root: abs, logger: logger}, nil
}

// Root returns the absolute content directory, used by the watcher.
func (f *FS) Root() string { return f.root }

// Enumerate walks the content root and returns every .md document.
// Unreadable files are skipped with a warning; only a failed walk of the
// root itself is an error.
func (f *FS) Enumerate(ctx context.Context) ([]RawDocument, error) {
	var out []RawDocument
	err := filepath.WalkDir(f.root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if p == f.root {
				return walkErr
			}
			f.logger.Warn("source: walk entry failed", slog.String("path", p), slog.String("error", walkErr.Error()))
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			f.logger.Warn("source: stat failed", slog.String("path", p), slog.String("error", err.Error()))
			return nil
		}
		data, err := os.ReadFile(p)
		if err != nil {
			f.logger.Warn("source: read failed", slog.String("path", p), slog.String("error", err.Error()))
			return nil
		}
		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return nil
		}
		out = append(out, RawDocument{
			Path:     filepath.ToSlash(rel),
			Raw:      data,
			Checksum: checksum.Sum(data),
			Modified: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source: enumerate: %w", err)
	}
	return out, nil
}
