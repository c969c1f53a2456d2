// Package tree arranges the flat corpus into a folder hierarchy,
// synthesizing folder items for path prefixes that have no document of
// their own.
package tree

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/lilianada/braindump/internal/models"
)

// Build produces the root items of the content tree. The build runs in
// three phases: index every path and synthesize missing folders, wire
// children to parents, then sort every level by title. The input slice
// is not mutated; tree nodes are clones of the flat items.
//
// Two items at the identical path is first-registered-wins: the later
// item is dropped with a warning, never a crash.
func Build(items []*models.ContentItem, logger *slog.Logger) []*models.ContentItem {
	if logger == nil {
		logger = slog.Default()
	}

	// Phase 1a: index every real item by path.
	index := make(map[string]*models.ContentItem, len(items))
	for _, it := range items {
		if prev, dup := index[it.Path]; dup {
			logger.Warn("tree: duplicate path, keeping first",
				slog.String("path", it.Path),
				slog.String("kept", prev.Title),
				slog.String("dropped", it.Title))
			continue
		}
		clone := it.Clone()
		clone.Children = []*models.ContentItem{}
		index[it.Path] = clone
	}

	// Phase 1b: synthesize folder items for missing prefixes. A real
	// document sitting at a prefix path becomes a folder but keeps its
	// content.
	for _, it := range items {
		segments := strings.Split(it.Path, "/")
		prefix := ""
		for i := 0; i < len(segments)-1; i++ {
			if segments[i] == "" {
				// Malformed path (leading slash or "a//b"); nothing to
				// synthesize for an empty segment.
				continue
			}
			if prefix == "" {
				prefix = segments[i]
			} else {
				prefix = prefix + "/" + segments[i]
			}
			node, ok := index[prefix]
			if !ok {
				index[prefix] = newFolder(prefix, segments[i])
				continue
			}
			if !node.IsFolder() {
				node.Type = models.TypeFolder
			}
		}
	}

	// Phase 2: wire every node to its parent, or promote to root.
	var roots []*models.ContentItem
	for p, node := range index {
		parentPath := parentOf(p)
		if parentPath == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := index[parentPath]
		if !ok {
			// A malformed path (leading slash, empty segment) has no
			// synthesized ancestor; keep the node reachable as a root.
			logger.Warn("tree: no parent for path, promoting to root",
				slog.String("path", p))
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	// Phase 3: order every level by title.
	sortByTitle(roots)
	for _, r := range roots {
		sortChildrenRecursive(r)
	}
	return roots
}

// Find walks the tree for the item at the given path, depth-first.
// Returns nil when no node matches.
func Find(roots []*models.ContentItem, path string) *models.ContentItem {
	for _, r := range roots {
		if r.Path == path {
			return r
		}
		if found := Find(r.Children, path); found != nil {
			return found
		}
	}
	return nil
}

func newFolder(path, segment string) *models.ContentItem {
	return &models.ContentItem{
		ID:       segment,
		Title:    models.Humanize(segment),
		Path:     path,
		Type:     models.TypeFolder,
		Tags:     []string{},
		Children: []*models.ContentItem{},
	}
}

func parentOf(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return ""
}

func sortByTitle(nodes []*models.ContentItem) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Title < nodes[j].Title
	})
}

func sortChildrenRecursive(node *models.ContentItem) {
	sortByTitle(node.Children)
	for _, c := range node.Children {
		sortChildrenRecursive(c)
	}
}
