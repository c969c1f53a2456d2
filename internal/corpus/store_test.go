package corpus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lilianada/braindump/internal/apperr"
	"github.com/lilianada/braindump/internal/models"
	"github.com/lilianada/braindump/internal/source"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeDoc(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testStore(t *testing.T) (string, *Store) {
	t.Helper()
	dir := t.TempDir()
	provider, err := source.NewFS(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	return dir, NewStore(provider, nil)
}

func TestItems_PathAndMetadataDerivation(t *testing.T) {
	dir, store := testStore(t)
	writeDoc(t, dir, "topics/digital-gardens.md", "---\ntitle: Digital Gardens\ntags: web, notes\n---\nBody")

	items, err := store.Items(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	it := items[0]
	if it.Path != "topics/digital-gardens" {
		t.Errorf("path = %q, extension should be stripped", it.Path)
	}
	if it.Title != "Digital Gardens" {
		t.Errorf("title = %q", it.Title)
	}
	if len(it.Tags) != 2 || it.Tags[0] != "web" || it.Tags[1] != "notes" {
		t.Errorf("tags = %v", it.Tags)
	}
	if it.Content != "Body" {
		t.Errorf("content = %q", it.Content)
	}
	if it.LastUpdated == "" {
		t.Error("lastUpdated should fall back to file mod time")
	}
}

func TestItems_IdempotentWithoutRefresh(t *testing.T) {
	dir, store := testStore(t)
	writeDoc(t, dir, "a.md", "# A")
	writeDoc(t, dir, "b.md", "# B")

	ctx := context.Background()
	first, err := store.Items(ctx, false)
	if err != nil {
		t.Fatal(err)
	}

	// Change on disk is invisible until a forced refresh.
	writeDoc(t, dir, "c.md", "# C")

	second, err := store.Items(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != len(first) {
		t.Fatalf("cached load changed: %d vs %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatal("cached load returned different items")
		}
	}

	third, err := store.Items(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(third) != 3 {
		t.Errorf("forced refresh items = %d, want 3", len(third))
	}
}

func TestItems_SortedByTitle(t *testing.T) {
	dir, store := testStore(t)
	writeDoc(t, dir, "z.md", "---\ntitle: Alpha\n---\n")
	writeDoc(t, dir, "a.md", "---\ntitle: Zulu\n---\n")

	items, err := store.Items(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Title != "Alpha" || items[1].Title != "Zulu" {
		t.Errorf("order = %s, %s", items[0].Title, items[1].Title)
	}
}

func TestInvalidate_ForcesReload(t *testing.T) {
	dir, store := testStore(t)
	writeDoc(t, dir, "a.md", "# A")

	ctx := context.Background()
	if _, err := store.Items(ctx, false); err != nil {
		t.Fatal(err)
	}
	fp := store.Fingerprint()
	if fp == "" {
		t.Fatal("fingerprint empty after load")
	}

	writeDoc(t, dir, "b.md", "# B")
	store.Invalidate()
	if store.Fingerprint() != "" {
		t.Error("fingerprint should clear on invalidate")
	}

	items, err := store.Items(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("items after invalidate = %d, want 2", len(items))
	}
	if store.Fingerprint() == fp {
		t.Error("fingerprint should change with corpus content")
	}
}

func TestFindByPath(t *testing.T) {
	dir, store := testStore(t)
	writeDoc(t, dir, "topics/go.md", "---\ntitle: Go\n---\n")

	ctx := context.Background()
	it, err := store.FindByPath(ctx, "topics/go")
	if err != nil {
		t.Fatal(err)
	}
	if it.Title != "Go" {
		t.Errorf("title = %q", it.Title)
	}

	_, err = store.FindByPath(ctx, "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestItems_ItemTypesFromFrontmatter(t *testing.T) {
	dir, store := testStore(t)
	writeDoc(t, dir, "glossary/seed.md", "---\ntype: glossary_term\n---\n")
	writeDoc(t, dir, "plain.md", "no frontmatter")

	items, err := store.Items(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	byPath := map[string]*models.ContentItem{}
	for _, it := range items {
		byPath[it.Path] = it
	}
	if byPath["glossary/seed"].Type != models.TypeGlossaryTerm {
		t.Errorf("type = %q", byPath["glossary/seed"].Type)
	}
	if byPath["plain"].Type != models.TypeNote {
		t.Errorf("default type = %q", byPath["plain"].Type)
	}
}

func TestSnapshot_PairsItemsWithFingerprint(t *testing.T) {
	dir, store := testStore(t)
	writeDoc(t, dir, "a.md", "# A")

	ctx := context.Background()
	items, fp, err := store.Snapshot(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || fp == "" {
		t.Fatalf("items = %d, fp = %q", len(items), fp)
	}
	if fp != store.Fingerprint() {
		t.Error("snapshot fingerprint disagrees with store fingerprint")
	}

	writeDoc(t, dir, "b.md", "# B")
	items2, fp2, err := store.Snapshot(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(items2) != 2 {
		t.Fatalf("items after refresh = %d, want 2", len(items2))
	}
	if fp2 == fp {
		t.Error("fingerprint did not move with the new snapshot")
	}
}
