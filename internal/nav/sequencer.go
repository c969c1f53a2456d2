// Package nav derives the linear previous/next reading order over the
// corpus.
package nav

import (
	"sort"

	"github.com/lilianada/braindump/internal/models"
)

// Flatten returns every navigable (non-folder) item in a total,
// deterministic order: path-sorted, so an unchanged corpus always
// yields the same sequence. The input slice is not mutated.
func Flatten(items []*models.ContentItem) []*models.ContentItem {
	out := make([]*models.ContentItem, 0, len(items))
	for _, it := range items {
		if it.IsFolder() {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out
}

// Neighbors locates the item with the given id in the sequence and
// returns its immediate neighbors. Either side is nil at a boundary;
// both are nil when the id is absent (corpus drift, or a folder that
// never entered the sequence).
func Neighbors(sequence []*models.ContentItem, id string) (prev, next *models.ContentItem) {
	idx := -1
	for i, it := range sequence {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}
	if idx > 0 {
		prev = sequence[idx-1]
	}
	if idx < len(sequence)-1 {
		next = sequence[idx+1]
	}
	return prev, next
}
