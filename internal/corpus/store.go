// Package corpus loads raw documents into the flat ContentItem list and
// owns the process-wide snapshot cache.
package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lilianada/braindump/internal/apperr"
	"github.com/lilianada/braindump/internal/checksum"
	"github.com/lilianada/braindump/internal/frontmatter"
	"github.com/lilianada/braindump/internal/models"
	"github.com/lilianada/braindump/internal/source"
)

// Store caches one immutable corpus snapshot at a time. Items and
// Invalidate are its only operations; a mutex keeps a forced refresh
// from racing concurrent readers.
type Store struct {
	provider source.Provider
	logger   *slog.Logger

	mu          sync.Mutex
	items       []*models.ContentItem
	fingerprint string
	loaded      bool
}

// NewStore creates a Store over the given source provider.
func NewStore(provider source.Provider, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{provider: provider, logger: logger}
}

// Items returns the flat corpus, sorted by title. The first call loads
// and caches; later calls return the cached snapshot unless force is
// set, which re-enumerates the source and replaces the cache.
func (s *Store) Items(ctx context.Context, force bool) ([]*models.ContentItem, error) {
	items, _, err := s.Snapshot(ctx, force)
	return items, err
}

// Snapshot returns the flat corpus together with the fingerprint that
// identifies it, as one consistent pair: the fingerprint always
// describes exactly the returned items, even when a forced refresh
// lands in between.
func (s *Store) Snapshot(ctx context.Context, force bool) ([]*models.ContentItem, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && !force {
		return s.items, s.fingerprint, nil
	}

	items, fp, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	s.items = items
	s.fingerprint = fp
	s.loaded = true
	return s.items, s.fingerprint, nil
}

// Invalidate drops the cached snapshot; the next Items call reloads.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.items = nil
	s.fingerprint = ""
}

// Fingerprint identifies the cached snapshot: a digest over every
// document's path and checksum. Empty until the first successful load.
func (s *Store) Fingerprint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fingerprint
}

// FindByPath resolves an item against the flat corpus, the canonical
// identity source. Returns apperr.ErrNotFound on a miss.
func (s *Store) FindByPath(ctx context.Context, p string) (*models.ContentItem, error) {
	items, err := s.Items(ctx, false)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.Path == p {
			return it, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (s *Store) load(ctx context.Context) ([]*models.ContentItem, string, error) {
	docs, err := s.provider.Enumerate(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("corpus: load: %w", err)
	}

	items := make([]*models.ContentItem, 0, len(docs))
	var fp strings.Builder
	for _, doc := range docs {
		itemPath := strings.TrimSuffix(doc.Path, path.Ext(doc.Path))
		if itemPath == "" {
			s.logger.Warn("corpus: document without usable path skipped", slog.String("path", doc.Path))
			continue
		}

		parsed := frontmatter.Parse(string(doc.Raw))
		item := models.FromDocument(itemPath, parsed.Frontmatter, parsed.Content)

		// Stat timestamps fill in when frontmatter says nothing.
		if item.Created == "" && !doc.Created.IsZero() {
			item.Created = doc.Created.Format(time.RFC3339)
		}
		if item.LastUpdated == "" && !doc.Modified.IsZero() {
			item.LastUpdated = doc.Modified.Format(time.RFC3339)
		}

		items = append(items, item)
		fp.WriteString(doc.Path)
		fp.WriteByte(':')
		fp.WriteString(doc.Checksum)
		fp.WriteByte('\n')
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Title < items[j].Title
	})

	s.logger.Info("corpus: loaded", slog.Int("items", len(items)))
	return items, checksum.Sum([]byte(fp.String())), nil
}
