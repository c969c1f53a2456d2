package nav

import (
	"testing"

	"github.com/lilianada/braindump/internal/models"
)

func note(id, path string) *models.ContentItem {
	return &models.ContentItem{ID: id, Path: path, Type: models.TypeNote}
}

func TestFlatten_PathOrdered(t *testing.T) {
	items := []*models.ContentItem{
		note("b", "b/note"),
		note("a", "a/note"),
		note("c", "c/note"),
	}
	seq := Flatten(items)
	want := []string{"a/note", "b/note", "c/note"}
	if len(seq) != len(want) {
		t.Fatalf("len = %d, want %d", len(seq), len(want))
	}
	for i, p := range want {
		if seq[i].Path != p {
			t.Errorf("seq[%d] = %s, want %s", i, seq[i].Path, p)
		}
	}
}

func TestFlatten_ExcludesFolders(t *testing.T) {
	items := []*models.ContentItem{
		note("a", "a/note"),
		{ID: "f", Path: "a", Type: models.TypeFolder},
	}
	seq := Flatten(items)
	if len(seq) != 1 || seq[0].Path != "a/note" {
		t.Fatalf("seq = %+v", seq)
	}
}

func TestFlatten_Deterministic(t *testing.T) {
	items := []*models.ContentItem{
		note("x", "x"), note("y", "y"), note("z", "z"),
	}
	first := Flatten(items)
	second := Flatten(items)
	for i := range first {
		if first[i].Path != second[i].Path {
			t.Fatal("sequence differs between runs on unchanged corpus")
		}
	}
}

func TestNeighbors_Middle(t *testing.T) {
	seq := Flatten([]*models.ContentItem{
		note("b", "b/note"),
		note("a", "a/note"),
		note("c", "c/note"),
	})
	prev, next := Neighbors(seq, "b")
	if prev == nil || prev.Path != "a/note" {
		t.Errorf("prev = %+v, want a/note", prev)
	}
	if next == nil || next.Path != "c/note" {
		t.Errorf("next = %+v, want c/note", next)
	}
}

func TestNeighbors_Boundaries(t *testing.T) {
	seq := Flatten([]*models.ContentItem{
		note("a", "a"), note("b", "b"),
	})
	prev, next := Neighbors(seq, "a")
	if prev != nil {
		t.Errorf("prev at start = %+v, want nil", prev)
	}
	if next == nil || next.ID != "b" {
		t.Errorf("next = %+v, want b", next)
	}

	prev, next = Neighbors(seq, "b")
	if next != nil {
		t.Errorf("next at end = %+v, want nil", next)
	}
	if prev == nil || prev.ID != "a" {
		t.Errorf("prev = %+v, want a", prev)
	}
}

func TestNeighbors_MissingID(t *testing.T) {
	seq := Flatten([]*models.ContentItem{note("a", "a")})
	prev, next := Neighbors(seq, "ghost")
	if prev != nil || next != nil {
		t.Errorf("miss should yield nil/nil, got %v %v", prev, next)
	}
}
