// Package testutil provides shared test helpers for setting up garden
// directories, corpus stores, and search databases.
package testutil

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lilianada/braindump/internal/corpus"
	"github.com/lilianada/braindump/internal/gardenservice"
	"github.com/lilianada/braindump/internal/search"
	"github.com/lilianada/braindump/internal/source"
)

// Logger returns a quiet logger for tests.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestDB creates a temporary SQLite search database that is
// automatically cleaned up.
func TestDB(t *testing.T) *search.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "braindump-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := search.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestGarden creates a temporary content directory with a corpus store
// over an FS provider.
func TestGarden(t *testing.T) (string, *corpus.Store) {
	t.Helper()
	dir := t.TempDir()
	provider, err := source.NewFS(dir, Logger())
	if err != nil {
		t.Fatal(err)
	}
	return dir, corpus.NewStore(provider, Logger())
}

// TestService builds a full query service over a temporary garden,
// returning the content dir alongside.
func TestService(t *testing.T) (string, *gardenservice.Service) {
	t.Helper()
	dir, store := TestGarden(t)
	db := TestDB(t)
	return dir, gardenservice.NewService(store, db, 0, Logger())
}

// WriteDoc writes a Markdown document under dir, creating parents.
func WriteDoc(t *testing.T, dir, rel, content string) {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
