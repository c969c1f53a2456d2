// Package frontmatter extracts the leading metadata block from a Markdown
// document. The format is a deliberately small subset of YAML: scalar
// `key: value` lines, list values written as a bare `key:` followed by
// `- item` lines, and nothing else. Nested maps, multi-line scalars, and
// anchors are unsupported; malformed lines are skipped, not errors.
package frontmatter

import "strings"

const delim = "---"

// Result holds the parsed metadata block and the remaining document body.
type Result struct {
	// Frontmatter maps keys to either a string or a []string.
	Frontmatter map[string]any
	// Content is the document body after the closing delimiter, or the
	// whole input when no frontmatter block is present.
	Content string
}

// Parse splits raw into a frontmatter map and a body. Parsing is
// best-effort and never fails: inputs without a leading --- block are
// returned unchanged, and unparseable metadata lines are ignored.
func Parse(raw string) Result {
	trimmed := strings.TrimLeft(raw, "\n\r")
	if !strings.HasPrefix(trimmed, delim) {
		return Result{Frontmatter: map[string]any{}, Content: raw}
	}

	lines := strings.Split(trimmed, "\n")
	if strings.TrimRight(lines[0], " \r") != delim {
		// Something like "---title" on the first line; not a block.
		return Result{Frontmatter: map[string]any{}, Content: raw}
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \r") == delim {
			end = i
			break
		}
	}
	if end < 0 {
		// No closing delimiter; treat the whole input as body.
		return Result{Frontmatter: map[string]any{}, Content: raw}
	}

	fm := parseBlock(lines[1:end])
	normalizeTags(fm)

	body := strings.Join(lines[end+1:], "\n")
	body = strings.TrimLeft(body, "\n\r")
	return Result{Frontmatter: fm, Content: body}
}

// parseBlock processes metadata lines one at a time, tracking at most one
// open list accumulator.
func parseBlock(lines []string) map[string]any {
	fm := make(map[string]any)
	listKey := "" // key of the currently open list accumulator, if any

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// List item under an open accumulator.
		if strings.HasPrefix(trimmed, "- ") {
			if listKey == "" {
				continue // stray list item, skip
			}
			val := stripQuotes(strings.TrimSpace(trimmed[2:]))
			if val == "" {
				continue
			}
			existing, _ := fm[listKey].([]string)
			fm[listKey] = append(existing, val)
			continue
		}

		colon := strings.Index(trimmed, ":")
		if colon < 0 {
			continue // no colon and not a list item: malformed, skip
		}

		key := strings.TrimSpace(trimmed[:colon])
		value := strings.TrimSpace(trimmed[colon+1:])
		if key == "" {
			continue
		}

		if value == "" {
			// Bare "key:" opens a list accumulator.
			listKey = key
			fm[key] = []string(nil)
			continue
		}

		fm[key] = stripQuotes(value)
		listKey = ""
	}

	// Empty accumulators that never received items become empty lists.
	for k, v := range fm {
		if s, ok := v.([]string); ok && s == nil {
			fm[k] = []string{}
		}
	}
	return fm
}

// normalizeTags guarantees fm["tags"], when present, is a []string:
// a scalar is wrapped into a single-element list.
func normalizeTags(fm map[string]any) {
	raw, ok := fm["tags"]
	if !ok {
		return
	}
	if s, ok := raw.(string); ok {
		fm["tags"] = []string{s}
	}
}

// stripQuotes removes one matching pair of surrounding single or double
// quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
