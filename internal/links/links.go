// Package links resolves wiki-style references between corpus items:
// one shared extraction pass feeds backlink resolution, related-note
// lookup, and the graph builder.
package links

import (
	"regexp"
	"strings"

	"github.com/lilianada/braindump/internal/models"
)

var wikilinkRe = regexp.MustCompile(`\[\[(.*?)\]\]`)

// ExtractWikiLinks returns the deduplicated [[wiki link]] targets
// referenced in body, in order of first mention. Aliased links
// ([[Target|Alias]]) resolve to the target.
func ExtractWikiLinks(body string) []string {
	matches := wikilinkRe.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		target := m[1]
		if i := strings.Index(target, "|"); i >= 0 {
			target = target[:i]
		}
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		if _, dup := seen[target]; dup {
			continue
		}
		seen[target] = struct{}{}
		out = append(out, target)
	}
	return out
}

// Backlinks returns every corpus item whose content references target,
// either by a case-insensitive [[Title]] mention or by containing the
// target's path (bare or as a /content/ URL). One vote per referrer no
// matter how many mentions; corpus order; never an error. A nil target
// yields an empty result.
func Backlinks(target *models.ContentItem, corpus []*models.ContentItem) []*models.ContentItem {
	out := []*models.ContentItem{}
	if target == nil {
		return out
	}
	for _, src := range corpus {
		if src.Path == target.Path || src.Content == "" {
			continue
		}
		if mentionsTitle(src.Content, target.Title) {
			out = append(out, src)
			continue
		}
		if strings.Contains(src.Content, "/content/"+target.Path) || strings.Contains(src.Content, target.Path) {
			out = append(out, src)
		}
	}
	return out
}

// Related returns every corpus item sharing at least one tag with
// target, compared case-insensitively. Corpus order, no self-inclusion,
// never an error.
func Related(target *models.ContentItem, corpus []*models.ContentItem) []*models.ContentItem {
	out := []*models.ContentItem{}
	if target == nil || len(target.Tags) == 0 {
		return out
	}
	want := make(map[string]struct{}, len(target.Tags))
	for _, t := range target.Tags {
		want[strings.ToLower(t)] = struct{}{}
	}
	for _, it := range corpus {
		if it.Path == target.Path {
			continue
		}
		for _, t := range it.Tags {
			if _, ok := want[strings.ToLower(t)]; ok {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

func mentionsTitle(body, title string) bool {
	if title == "" {
		return false
	}
	for _, link := range ExtractWikiLinks(body) {
		if strings.EqualFold(link, title) {
			return true
		}
	}
	return false
}
