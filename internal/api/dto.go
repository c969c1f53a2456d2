package api

import "github.com/lilianada/braindump/internal/models"

// ItemSummary is the lightweight list representation of an item.
type ItemSummary struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Path  string          `json:"path"`
	Type  models.ItemType `json:"type"`
	Tags  []string        `json:"tags"`
}

func summarize(items []*models.ContentItem) []ItemSummary {
	out := make([]ItemSummary, len(items))
	for i, it := range items {
		out[i] = ItemSummary{
			ID:    it.ID,
			Title: it.Title,
			Path:  it.Path,
			Type:  it.Type,
			Tags:  it.Tags,
		}
	}
	return out
}

func summarizeOne(it *models.ContentItem) *ItemSummary {
	if it == nil {
		return nil
	}
	s := summarize([]*models.ContentItem{it})
	return &s[0]
}
