package frontmatter

import (
	"reflect"
	"testing"
)

func TestParse_ScalarAndBody(t *testing.T) {
	r := Parse("---\ntitle: Hello\n---\nBody text")
	if got := r.Frontmatter["title"]; got != "Hello" {
		t.Errorf("title = %v, want Hello", got)
	}
	if r.Content != "Body text" {
		t.Errorf("content = %q, want %q", r.Content, "Body text")
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	raw := "# Just a heading\nSome text.\n"
	r := Parse(raw)
	if len(r.Frontmatter) != 0 {
		t.Errorf("expected empty frontmatter, got %v", r.Frontmatter)
	}
	if r.Content != raw {
		t.Errorf("content changed: %q", r.Content)
	}
}

func TestParse_NoClosingDelimiter(t *testing.T) {
	raw := "---\ntitle: Broken\nno end"
	r := Parse(raw)
	if len(r.Frontmatter) != 0 {
		t.Errorf("expected empty frontmatter, got %v", r.Frontmatter)
	}
	if r.Content != raw {
		t.Errorf("content = %q, want original input", r.Content)
	}
}

func TestParse_ListAccumulator(t *testing.T) {
	r := Parse("---\ntags:\n- go\n- notes\ntitle: X\n---\nbody")
	want := []string{"go", "notes"}
	if got, _ := r.Frontmatter["tags"].([]string); !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
	if r.Frontmatter["title"] != "X" {
		t.Errorf("scalar after list lost: %v", r.Frontmatter["title"])
	}
}

func TestParse_ScalarClosesAccumulator(t *testing.T) {
	r := Parse("---\ntags:\n- a\ntitle: T\n- stray\n---\n")
	if got, _ := r.Frontmatter["tags"].([]string); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("tags = %v, want [a]", got)
	}
}

func TestParse_MalformedLinesIgnored(t *testing.T) {
	r := Parse("---\nnot a kv pair\ntitle: Ok\n- orphan item\n---\nbody")
	if len(r.Frontmatter) != 1 || r.Frontmatter["title"] != "Ok" {
		t.Errorf("frontmatter = %v, want only title", r.Frontmatter)
	}
}

func TestParse_QuoteStripping(t *testing.T) {
	r := Parse("---\ntitle: \"Quoted\"\nslug: 'single'\n---\n")
	if r.Frontmatter["title"] != "Quoted" {
		t.Errorf("title = %v", r.Frontmatter["title"])
	}
	if r.Frontmatter["slug"] != "single" {
		t.Errorf("slug = %v", r.Frontmatter["slug"])
	}
}

func TestParse_ScalarTagsWrapped(t *testing.T) {
	r := Parse("---\ntags: gardening\n---\n")
	got, ok := r.Frontmatter["tags"].([]string)
	if !ok || len(got) != 1 || got[0] != "gardening" {
		t.Errorf("tags = %v, want [gardening]", r.Frontmatter["tags"])
	}
}

func TestParse_EmptyListStaysEmpty(t *testing.T) {
	r := Parse("---\ntags:\n---\nbody")
	got, ok := r.Frontmatter["tags"].([]string)
	if !ok || len(got) != 0 {
		t.Errorf("tags = %v, want empty list", r.Frontmatter["tags"])
	}
}

func TestParse_LeadingBlankLines(t *testing.T) {
	r := Parse("\n\n---\ntitle: A\n---\nbody")
	if r.Frontmatter["title"] != "A" {
		t.Errorf("title = %v", r.Frontmatter["title"])
	}
	if r.Content != "body" {
		t.Errorf("content = %q", r.Content)
	}
}
