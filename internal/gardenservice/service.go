// Package gardenservice is the query facade over the corpus: tree,
// navigation, link resolution, graph, and search for the API and MCP
// surfaces.
package gardenservice

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/lilianada/braindump/internal/apperr"
	"github.com/lilianada/braindump/internal/corpus"
	"github.com/lilianada/braindump/internal/graph"
	"github.com/lilianada/braindump/internal/links"
	"github.com/lilianada/braindump/internal/models"
	"github.com/lilianada/braindump/internal/nav"
	"github.com/lilianada/braindump/internal/search"
	"github.com/lilianada/braindump/internal/tree"
)

// ItemDetail is the full single-item view: the item plus everything the
// presentation layer shows around it.
type ItemDetail struct {
	Item      *models.ContentItem   `json:"item"`
	Backlinks []*models.ContentItem `json:"backlinks"`
	Related   []*models.ContentItem `json:"related"`
	Prev      *models.ContentItem   `json:"prev,omitempty"`
	Next      *models.ContentItem   `json:"next,omitempty"`
}

// Service answers read-only queries over one corpus snapshot. Derived
// views (tree, navigation sequence) are cached per snapshot fingerprint
// and rebuilt when the underlying corpus reloads.
type Service struct {
	store        *corpus.Store
	index        search.Indexer
	graphColumns int
	logger       *slog.Logger

	mu       sync.Mutex
	derivedFP string
	roots     []*models.ContentItem
	sequence  []*models.ContentItem
}

// NewService creates a Service. index may be nil when search is
// disabled; graphColumns <= 0 uses the builder default.
func NewService(store *corpus.Store, index search.Indexer, graphColumns int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, index: index, graphColumns: graphColumns, logger: logger}
}

// Items returns the flat corpus (title-sorted).
func (s *Service) Items(ctx context.Context, force bool) ([]*models.ContentItem, error) {
	return s.store.Items(ctx, force)
}

// FindByPath resolves an item against the flat corpus.
func (s *Service) FindByPath(ctx context.Context, path string) (*models.ContentItem, error) {
	return s.store.FindByPath(ctx, path)
}

// Tree returns the root items of the content hierarchy, rebuilding when
// the corpus snapshot changed or force is set.
func (s *Service) Tree(ctx context.Context, force bool) ([]*models.ContentItem, error) {
	items, fp, err := s.store.Snapshot(ctx, force)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDerivedLocked(items, fp, force)
	return s.roots, nil
}

// FindInTree resolves a path through the built tree. The tree agrees
// with the flat corpus; this exists for consumers already holding tree
// context.
func (s *Service) FindInTree(ctx context.Context, path string) (*models.ContentItem, error) {
	roots, err := s.Tree(ctx, false)
	if err != nil {
		return nil, err
	}
	if node := tree.Find(roots, path); node != nil {
		return node, nil
	}
	return nil, apperr.ErrNotFound
}

// Sequence returns the navigable items in reading order.
func (s *Service) Sequence(ctx context.Context, force bool) ([]*models.ContentItem, error) {
	items, fp, err := s.store.Snapshot(ctx, force)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDerivedLocked(items, fp, force)
	return s.sequence, nil
}

// Neighbors returns the previous and next navigable items around the
// item with the given id. Misses are a normal outcome: both are nil.
func (s *Service) Neighbors(ctx context.Context, id string) (prev, next *models.ContentItem, err error) {
	seq, err := s.Sequence(ctx, false)
	if err != nil {
		return nil, nil, err
	}
	prev, next = nav.Neighbors(seq, id)
	if prev == nil && next == nil {
		s.logger.Debug("nav: id not in sequence", slog.String("id", id))
	}
	return prev, next, nil
}

// Backlinks returns the items referencing the item at path. A missing
// target degrades to an empty result, not an error.
func (s *Service) Backlinks(ctx context.Context, path string) ([]*models.ContentItem, error) {
	items, err := s.store.Items(ctx, false)
	if err != nil {
		return nil, err
	}
	target, err := s.store.FindByPath(ctx, path)
	if errors.Is(err, apperr.ErrNotFound) {
		return []*models.ContentItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return links.Backlinks(target, items), nil
}

// Related returns the items sharing at least one tag with the item at
// path. A missing target degrades to an empty result.
func (s *Service) Related(ctx context.Context, path string) ([]*models.ContentItem, error) {
	items, err := s.store.Items(ctx, false)
	if err != nil {
		return nil, err
	}
	target, err := s.store.FindByPath(ctx, path)
	if errors.Is(err, apperr.ErrNotFound) {
		return []*models.ContentItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return links.Related(target, items), nil
}

// Detail assembles the full single-item view.
func (s *Service) Detail(ctx context.Context, path string) (*ItemDetail, error) {
	target, err := s.store.FindByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	items, err := s.store.Items(ctx, false)
	if err != nil {
		return nil, err
	}
	prev, next, err := s.Neighbors(ctx, target.ID)
	if err != nil {
		return nil, err
	}
	return &ItemDetail{
		Item:      target,
		Backlinks: links.Backlinks(target, items),
		Related:   links.Related(target, items),
		Prev:      prev,
		Next:      next,
	}, nil
}

// Graph returns the node/edge view of the corpus.
func (s *Service) Graph(ctx context.Context) (graph.Graph, error) {
	items, err := s.store.Items(ctx, false)
	if err != nil {
		return graph.Graph{}, err
	}
	return graph.Build(items, s.graphColumns), nil
}

// Search runs a full-text query against the search index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]search.Result, error) {
	if s.index == nil {
		return []search.Result{}, nil
	}
	return s.index.Search(query, limit)
}

// Reindex loads the corpus (forcing a refresh when force is set) and
// rebuilds the search index from the snapshot.
func (s *Service) Reindex(ctx context.Context, force bool) error {
	items, err := s.store.Items(ctx, force)
	if err != nil {
		return err
	}
	if s.index == nil {
		return nil
	}
	return s.index.Rebuild(items)
}

// Fingerprint identifies the current corpus snapshot.
func (s *Service) Fingerprint() string {
	return s.store.Fingerprint()
}

// refreshDerivedLocked rebuilds the tree and navigation sequence when
// the snapshot fingerprint moved. items and fp must be a consistent
// pair from one Snapshot call, so the recorded fingerprint always
// describes the items the views were built from. Caller holds s.mu.
func (s *Service) refreshDerivedLocked(items []*models.ContentItem, fp string, force bool) {
	if !force && fp == s.derivedFP && s.roots != nil {
		return
	}
	s.roots = tree.Build(items, s.logger)
	s.sequence = nav.Flatten(items)
	s.derivedFP = fp
}
