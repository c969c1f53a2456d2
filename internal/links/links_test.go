package links

import (
	"testing"

	"github.com/lilianada/braindump/internal/models"
)

func item(path, title, content string, tags ...string) *models.ContentItem {
	return &models.ContentItem{
		ID:      path,
		Path:    path,
		Title:   title,
		Type:    models.TypeNote,
		Content: content,
		Tags:    tags,
	}
}

func TestExtractWikiLinks_Basic(t *testing.T) {
	body := "See [[Note A]] and [[Note B|alias]].\nAlso [[Note A]] again."
	got := ExtractWikiLinks(body)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != "Note A" || got[1] != "Note B" {
		t.Errorf("links = %v", got)
	}
}

func TestExtractWikiLinks_EmptyTargets(t *testing.T) {
	if got := ExtractWikiLinks("see [[ ]] and [[|alias]]"); len(got) != 0 {
		t.Errorf("expected no links, got %v", got)
	}
}

func TestBacklinks_WikiLinkCaseInsensitive(t *testing.T) {
	target := item("garden/soil", "Soil", "")
	referrer := item("garden/compost", "Compost", "Mix into [[soil]] well.")
	got := Backlinks(target, []*models.ContentItem{target, referrer})
	if len(got) != 1 || got[0].Path != "garden/compost" {
		t.Fatalf("backlinks = %v", got)
	}
}

func TestBacklinks_OneVotePerReferrer(t *testing.T) {
	target := item("b", "B", "")
	referrer := item("a", "A", "[[B]] then [[B]] and /content/b too")
	got := Backlinks(target, []*models.ContentItem{referrer, target})
	if len(got) != 1 {
		t.Errorf("backlinks = %d, want exactly 1", len(got))
	}
}

func TestBacklinks_PathSubstringForm(t *testing.T) {
	target := item("topics/gardening", "Gardening", "")
	byURL := item("one", "One", "see /content/topics/gardening for more")
	byPath := item("two", "Two", "raw mention of topics/gardening inline")
	unrelated := item("three", "Three", "nothing here")
	got := Backlinks(target, []*models.ContentItem{byURL, byPath, unrelated, target})
	if len(got) != 2 {
		t.Fatalf("backlinks = %v, want 2", got)
	}
	if got[0].Path != "one" || got[1].Path != "two" {
		t.Errorf("corpus order lost: %v", got)
	}
}

func TestBacklinks_NoSelfReference(t *testing.T) {
	self := item("x", "X", "I link to [[X]] myself")
	got := Backlinks(self, []*models.ContentItem{self})
	if len(got) != 0 {
		t.Errorf("self in own backlinks: %v", got)
	}
}

func TestBacklinks_MissingTargetTitleNoCrash(t *testing.T) {
	a := item("a", "A", "See [[Nonexistent]]")
	b := item("b", "B", "")
	got := Backlinks(b, []*models.ContentItem{a, b})
	if len(got) != 0 {
		t.Errorf("backlinks = %v, want none", got)
	}
}

func TestBacklinks_NilTarget(t *testing.T) {
	got := Backlinks(nil, []*models.ContentItem{item("a", "A", "x")})
	if got == nil || len(got) != 0 {
		t.Errorf("nil target should yield empty, got %v", got)
	}
}

func TestRelated_SharedTagCaseInsensitive(t *testing.T) {
	target := item("a", "A", "", "Gardening", "go")
	match := item("b", "B", "", "gardening")
	miss := item("c", "C", "", "cooking")
	got := Related(target, []*models.ContentItem{target, match, miss})
	if len(got) != 1 || got[0].Path != "b" {
		t.Fatalf("related = %v", got)
	}
}

func TestRelated_NoSelfNoTags(t *testing.T) {
	target := item("a", "A", "", "t")
	got := Related(target, []*models.ContentItem{target})
	if len(got) != 0 {
		t.Errorf("self included: %v", got)
	}
	bare := item("b", "B", "")
	if got := Related(bare, []*models.ContentItem{target}); len(got) != 0 {
		t.Errorf("tagless target should yield empty, got %v", got)
	}
}

func TestRelated_NilTarget(t *testing.T) {
	if got := Related(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("nil target should yield empty, got %v", got)
	}
}
