package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestNewFS_MissingRoot(t *testing.T) {
	if _, err := NewFS(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestFS_EnumerateMarkdownOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.md", "# One")
	writeFile(t, dir, "sub/two.md", "# Two")
	writeFile(t, dir, "notes.txt", "not markdown")

	fs, err := NewFS(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	docs, err := fs.Enumerate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("docs = %d, want 2", len(docs))
	}

	paths := map[string]bool{}
	for _, d := range docs {
		paths[d.Path] = true
		if d.Checksum == "" {
			t.Errorf("missing checksum for %s", d.Path)
		}
		if d.Modified.IsZero() {
			t.Errorf("missing mod time for %s", d.Path)
		}
	}
	if !paths["one.md"] || !paths["sub/two.md"] {
		t.Errorf("paths = %v", paths)
	}
}

func TestFS_EnumerateEmptyRoot(t *testing.T) {
	fs, err := NewFS(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	docs, err := fs.Enumerate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 0 {
		t.Errorf("docs = %v, want none", docs)
	}
}

func TestFS_EnumerateSkipsUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	writeFile(t, dir, "ok.md", "# OK")
	writeFile(t, dir, "locked.md", "# Locked")
	locked := filepath.Join(dir, "locked.md")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o644) })

	fs, err := NewFS(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	docs, err := fs.Enumerate(context.Background())
	if err != nil {
		t.Fatalf("unreadable file must not fail the walk: %v", err)
	}
	if len(docs) != 1 || docs[0].Path != "ok.md" {
		t.Errorf("docs = %+v, want only the readable document", docs)
	}
}
