// Package source defines where raw garden documents come from.
package source

import (
	"context"
	"strings"
	"time"
)

// RawDocument is one enumerated document before parsing. Path is
// slash-separated and relative to the corpus root, extension included
// when the backend has one.
type RawDocument struct {
	Path     string
	Raw      []byte
	Checksum string
	Created  time.Time
	Modified time.Time
}

// Provider enumerates every document in a corpus backend. Enumerate
// fails only when the corpus root itself is inaccessible; individual
// unreadable documents are logged and skipped.
type Provider interface {
	Enumerate(ctx context.Context) ([]RawDocument, error)
}

// CleanPath normalizes an untrusted document path to the RawDocument
// contract: slash-separated, relative, no empty segments. Returns ""
// when nothing usable remains.
func CleanPath(p string) string {
	segments := strings.Split(p, "/")
	kept := segments[:0]
	for _, s := range segments {
		s = strings.TrimSpace(s)
		if s == "" || s == "." || s == ".." {
			continue
		}
		kept = append(kept, s)
	}
	return strings.Join(kept, "/")
}
