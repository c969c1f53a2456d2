// Package graph emits the node/edge representation of the corpus used
// by the visualization view.
package graph

import (
	"hash/fnv"
	"strings"

	"github.com/lilianada/braindump/internal/links"
	"github.com/lilianada/braindump/internal/models"
)

const (
	defaultColumns = 8
	spacing        = 120.0
	maxJitter      = 48.0
)

// Node is one graph vertex, keyed by item path.
type Node struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Edge is one directed wiki-link between two existing items.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the full visualization payload.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Build produces one node per corpus item and one edge per resolved
// wiki-link. Nodes are laid out on a grid by corpus index with a
// deterministic per-path jitter for visual de-overlap; jitter never
// affects identity or edges. Wiki-links resolve case-insensitively by
// title; unresolved titles and self-references produce no edge, and at
// most one edge exists per ordered (source, target) pair.
func Build(corpus []*models.ContentItem, columns int) Graph {
	if columns <= 0 {
		columns = defaultColumns
	}

	g := Graph{
		Nodes: make([]Node, 0, len(corpus)),
		Edges: []Edge{},
	}

	byTitle := make(map[string]string, len(corpus))
	for _, it := range corpus {
		key := strings.ToLower(it.Title)
		if _, taken := byTitle[key]; !taken {
			byTitle[key] = it.Path
		}
	}

	for i, it := range corpus {
		row := i / columns
		col := i % columns
		g.Nodes = append(g.Nodes, Node{
			ID:    it.Path,
			Label: it.Title,
			X:     float64(col)*spacing + jitter(it.Path, 0),
			Y:     float64(row)*spacing + jitter(it.Path, 1),
		})
	}

	seen := make(map[[2]string]struct{})
	for _, it := range corpus {
		if it.Content == "" {
			continue
		}
		for _, title := range links.ExtractWikiLinks(it.Content) {
			targetPath, ok := byTitle[strings.ToLower(title)]
			if !ok || targetPath == it.Path {
				continue
			}
			pair := [2]string{it.Path, targetPath}
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
			g.Edges = append(g.Edges, Edge{Source: it.Path, Target: targetPath})
		}
	}

	return g
}

// jitter maps a path to a stable offset in [-maxJitter, maxJitter].
func jitter(path string, axis uint32) float64 {
	h := fnv.New32a()
	h.Write([]byte(path))
	v := h.Sum32() + axis*0x9e3779b9
	return (float64(v%1000)/999.0*2 - 1) * maxJitter
}
