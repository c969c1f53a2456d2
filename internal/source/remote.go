package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lilianada/braindump/internal/checksum"
)

// remoteDocument is the wire shape of one record in the remote
// collection endpoint.
type remoteDocument struct {
	Path        string `json:"path"`
	Content     string `json:"content"`
	Published   bool   `json:"published"`
	Created     string `json:"created,omitempty"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// Remote implements Provider backed by a hosted document collection.
// Only published records are returned.
type Remote struct {
	endpoint string
	token    string
	client   *http.Client
	logger   *slog.Logger
}

// NewRemote creates a Remote provider for the given collection endpoint.
// token, when non-empty, is sent as a Bearer credential.
func NewRemote(endpoint, token string, logger *slog.Logger) *Remote {
	if logger == nil {
		logger = slog.Default()
	}
	return &Remote{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}
}

// Enumerate fetches the full collection and maps published records to
// raw documents. Records without a path are skipped with a warning.
func (r *Remote) Enumerate(ctx context.Context) ([]RawDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("source: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source: fetch collection: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source: collection endpoint returned %d", resp.StatusCode)
	}

	var docs []remoteDocument
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, fmt.Errorf("source: decode collection: %w", err)
	}

	out := make([]RawDocument, 0, len(docs))
	for _, d := range docs {
		if !d.Published {
			continue
		}
		// Remote paths are untrusted input; a leading-slash or
		// dot-segment path must never reach the tree builder.
		cleaned := CleanPath(d.Path)
		if cleaned == "" {
			r.logger.Warn("source: record without usable path skipped", slog.String("path", d.Path))
			continue
		}
		raw := []byte(d.Content)
		out = append(out, RawDocument{
			Path:     cleaned,
			Raw:      raw,
			Checksum: checksum.Sum(raw),
			Created:  parseTime(d.Created),
			Modified: parseTime(d.LastUpdated),
		})
	}
	return out, nil
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
