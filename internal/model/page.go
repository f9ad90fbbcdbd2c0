package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Page represents a single fetched web page.
//
// Design decision: We store the decoded body text rather than raw bytes
// because the tool's purpose is console demonstration. The hash is computed
// over the raw response before decoding so it reflects what the server sent.
type Page struct {
	// URL is the URL that was requested.
	URL string `json:"url"`

	// FinalURL is the URL after following redirects.
	// Equal to URL when no redirect occurred.
	FinalURL string `json:"final_url"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// Headers contains all HTTP response headers.
	// Keys are header names (canonicalized), values are slices of header values.
	Headers map[string][]string `json:"headers,omitempty"`

	// ContentType is the MIME type of the response.
	// Extracted from the Content-Type header for convenience.
	ContentType string `json:"content_type"`

	// Title is the page title extracted from the <title> tag.
	// Empty for non-HTML content.
	Title string `json:"title,omitempty"`

	// Body is the decoded text content of the page.
	// Empty for content types the crawler does not render (binaries, CSS).
	Body string `json:"body,omitempty"`

	// Size is the raw response body size in bytes before decoding.
	Size int `json:"size"`

	// Links contains hyperlinks discovered on the page, in document order,
	// deduplicated. Only http and https links are included.
	Links []string `json:"links,omitempty"`

	// Depth is the link-following distance from the start URL.
	// The start URL itself has depth 0.
	Depth int `json:"depth"`

	// Hash is the SHA-256 hash of the raw response body.
	// Used for change detection when re-running demos.
	Hash string `json:"hash,omitempty"`
}

// MaxBodySize is the maximum decoded body size to retain in a Page.
// Larger bodies are truncated to this size. Tarpits deliberately generate
// endless content, so the limit keeps a demo run bounded in memory.
const MaxBodySize = 5 * 1024 * 1024 // 5 MB

// ComputeHash calculates and sets the SHA-256 hash of the given raw content.
func (p *Page) ComputeHash(raw []byte) {
	if len(raw) == 0 {
		p.Hash = ""
		return
	}

	hash := sha256.Sum256(raw)
	p.Hash = hex.EncodeToString(hash[:])
}

// IsHTML returns true if the page content type indicates HTML.
func (p *Page) IsHTML() bool {
	return strings.HasPrefix(p.ContentType, "text/html") ||
		strings.HasPrefix(p.ContentType, "application/xhtml+xml")
}

// IsText returns true if the page content type indicates any text-like
// content worth rendering on the console (HTML, XML, plain text).
// CSS is excluded: stylesheets drown out the interesting content.
func (p *Page) IsText() bool {
	ct := strings.ToLower(p.ContentType)
	if strings.Contains(ct, "text/css") {
		return false
	}
	return strings.Contains(ct, "html") ||
		strings.Contains(ct, "xml") ||
		strings.Contains(ct, "text")
}

// TruncateBody ensures the body doesn't exceed MaxBodySize.
// Call this after setting Body to enforce the size limit.
func (p *Page) TruncateBody() {
	if len(p.Body) > MaxBodySize {
		p.Body = p.Body[:MaxBodySize]
	}
}
