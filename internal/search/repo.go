package search

import (
	"encoding/json"
	"fmt"

	"github.com/lilianada/braindump/internal/models"
)

// Result represents one search hit.
type Result struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Indexer is the consumer-facing interface over the search database.
type Indexer interface {
	Rebuild(items []*models.ContentItem) error
	Search(query string, limit int) ([]Result, error)
	Close() error
}

var _ Indexer = (*DB)(nil)

// Rebuild replaces the whole index with the given corpus snapshot in a
// single transaction. The corpus is immutable between loads, so there
// is no per-item update path.
func (db *DB) Rebuild(items []*models.ContentItem) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("search: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return fmt.Errorf("search: clear items: %w", err)
	}
	if err := ftsClear(tx); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO items (path, title, tags, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("search: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range items {
		tagsJSON, _ := json.Marshal(it.Tags)
		if _, err := stmt.Exec(it.Path, it.Title, string(tagsJSON), it.Content); err != nil {
			return fmt.Errorf("search: insert %s: %w", it.Path, err)
		}
		if err := ftsInsert(tx, it.Path, it.Title, it.Content, it.Tags); err != nil {
			return err
		}
	}

	return tx.Commit()
}
