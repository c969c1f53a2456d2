package api

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// maxPreviewBody caps how much of a remote page is read for metadata.
const maxPreviewBody = 1 << 20

// linkMetadata is the preview payload for an external URL.
type linkMetadata struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Favicon     string `json:"favicon,omitempty"`
	SiteName    string `json:"siteName,omitempty"`
	URL         string `json:"url"`
	ContentType string `json:"contentType,omitempty"`
}

type previewError struct {
	Error            string        `json:"error"`
	Details          string        `json:"details,omitempty"`
	FallbackMetadata *linkMetadata `json:"fallbackMetadata,omitempty"`
}

// PreviewHandler serves the link-metadata proxy endpoint used by the
// presentation layer to preview external URLs. It is unrelated to
// wiki-link resolution.
type PreviewHandler struct {
	client *http.Client
}

// NewPreviewHandler creates a PreviewHandler with a bounded-timeout
// HTTP client.
func NewPreviewHandler() *PreviewHandler {
	return &PreviewHandler{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Preview handles GET /api/preview.
//
//	@Summary		Fetch title/description/image metadata for an external URL
//	@Tags			preview
//	@Produce		json
//	@Param			url	query		string	true	"URL to preview"
//	@Success		200	{object}	linkMetadata
//	@Failure		400	{object}	errResponse
//	@Failure		500	{object}	previewError
//	@Security		BearerAuth
//	@Router			/preview [get]
func (p *PreviewHandler) Preview(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'url' is required"))
		return
	}
	target, err := url.Parse(raw)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") {
		writeJSON(w, http.StatusBadRequest, errorBody("url must be absolute http(s)"))
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid url"))
		return
	}
	req.Header.Set("User-Agent", "braindump-link-preview/1.0")
	req.Header.Set("Accept", "text/html,*/*")

	resp, err := p.client.Do(req)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, previewError{
			Error:            "fetch failed",
			Details:          err.Error(),
			FallbackMetadata: fallbackFor(target),
		})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		writeJSON(w, http.StatusInternalServerError, previewError{
			Error:            "remote returned non-success status",
			Details:          resp.Status,
			FallbackMetadata: fallbackFor(target),
		})
		return
	}

	meta := linkMetadata{
		URL:         target.String(),
		ContentType: resp.Header.Get("Content-Type"),
	}

	if !strings.Contains(meta.ContentType, "text/html") {
		// Non-HTML resources preview as a bare link.
		meta.Title = target.Host
		writeJSON(w, http.StatusOK, meta)
		return
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPreviewBody))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, previewError{
			Error:            "parse failed",
			Details:          err.Error(),
			FallbackMetadata: fallbackFor(target),
		})
		return
	}

	extractMetadata(doc, target, &meta)
	if meta.Title == "" {
		meta.Title = target.Host
	}
	writeJSON(w, http.StatusOK, meta)
}

func fallbackFor(target *url.URL) *linkMetadata {
	return &linkMetadata{Title: target.Host, URL: target.String()}
}

// extractMetadata walks the parsed document collecting <title>, meta
// description / OpenGraph tags, and the favicon link.
func extractMetadata(n *html.Node, base *url.URL, meta *linkMetadata) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if meta.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				meta.Title = strings.TrimSpace(n.FirstChild.Data)
			}
		case "meta":
			name := attr(n, "name")
			property := attr(n, "property")
			content := attr(n, "content")
			switch {
			case property == "og:title" && content != "":
				meta.Title = content
			case (name == "description" || property == "og:description") && meta.Description == "":
				meta.Description = content
			case property == "og:image" && meta.Image == "":
				meta.Image = resolveRef(base, content)
			case property == "og:site_name" && meta.SiteName == "":
				meta.SiteName = content
			}
		case "link":
			rel := strings.ToLower(attr(n, "rel"))
			if (rel == "icon" || rel == "shortcut icon" || rel == "apple-touch-icon") && meta.Favicon == "" {
				meta.Favicon = resolveRef(base, attr(n, "href"))
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractMetadata(c, base, meta)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func resolveRef(base *url.URL, ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(u).String()
}
