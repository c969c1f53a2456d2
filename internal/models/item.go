// Package models defines the domain types for Braindump.
package models

import (
	"strings"

	"github.com/gosimple/slug"
)

// ItemType classifies a ContentItem. The set is open: unknown values from
// frontmatter are carried through untouched.
type ItemType string

// Well-known item types.
const (
	TypeFolder          ItemType = "folder"
	TypeNote            ItemType = "note"
	TypeTopic           ItemType = "topic"
	TypeGlossaryTerm    ItemType = "glossary_term"
	TypeDictionaryEntry ItemType = "dictionary_entry"
	TypeLog             ItemType = "log"
)

// ContentItem is a single entry in the garden: a note, a folder, or any
// other typed document. Path is the corpus-unique address; the flat
// corpus is the canonical identity source and the tree must agree with it.
type ContentItem struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Path        string         `json:"path"`
	Type        ItemType       `json:"type"`
	Content     string         `json:"content,omitempty"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
	Tags        []string       `json:"tags"`
	Children    []*ContentItem `json:"children,omitempty"`
	Created     string         `json:"created,omitempty"`
	LastUpdated string         `json:"lastUpdated,omitempty"`
}

// IsFolder reports whether the item is a (real or synthesized) folder.
func (c *ContentItem) IsFolder() bool {
	return c.Type == TypeFolder
}

// Clone returns a shallow copy with an independent Children slice. Tags
// and Frontmatter are shared; the corpus is immutable after load.
func (c *ContentItem) Clone() *ContentItem {
	cp := *c
	cp.Children = nil
	if len(c.Children) > 0 {
		cp.Children = append([]*ContentItem(nil), c.Children...)
	}
	return &cp
}

// FromDocument builds a ContentItem from a parsed document. path must be
// the extension-stripped, slash-separated address relative to the corpus
// root. Derivation precedence:
//
//	id:    frontmatter "id" → slug of title → last path segment
//	title: frontmatter "title" → humanized last path segment
//	type:  frontmatter "type" → "note"
func FromDocument(path string, fm map[string]any, content string) *ContentItem {
	segment := LastSegment(path)

	title := stringField(fm, "title")
	if title == "" {
		title = Humanize(segment)
	}

	id := stringField(fm, "id")
	if id == "" {
		if s := slug.Make(title); s != "" {
			id = s
		} else {
			id = segment
		}
	}

	typ := ItemType(stringField(fm, "type"))
	if typ == "" {
		typ = TypeNote
	}

	return &ContentItem{
		ID:          id,
		Title:       title,
		Path:        path,
		Type:        typ,
		Content:     content,
		Frontmatter: fm,
		Tags:        NormalizeTags(tagField(fm)),
		Created:     stringField(fm, "created"),
		LastUpdated: stringField(fm, "lastUpdated"),
	}
}

// NormalizeTags splits comma-joined entries and trims whitespace, so
// `tags: "a, b ,c"` and `tags: [a, b, c]` yield the same sequence.
// Duplicates are kept; consumers dedupe per use.
func NormalizeTags(raw []string) []string {
	out := []string{}
	for _, entry := range raw {
		for _, tok := range strings.Split(entry, ",") {
			tok = strings.TrimSpace(tok)
			if tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

// Humanize turns a path segment into a display title: dashes become
// spaces and the first letter is capitalized.
func Humanize(segment string) string {
	s := strings.ReplaceAll(segment, "-", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// LastSegment returns the final slash-separated segment of path.
func LastSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func stringField(fm map[string]any, key string) string {
	if fm == nil {
		return ""
	}
	if s, ok := fm[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func tagField(fm map[string]any) []string {
	if fm == nil {
		return nil
	}
	switch v := fm["tags"].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}
