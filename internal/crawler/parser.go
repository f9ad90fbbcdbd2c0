package crawler

import (
	"io"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Parser extracts the title and hyperlinks from HTML content.
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex alone because:
//  1. It correctly handles malformed HTML common on the web
//  2. Provides a proper DOM-like structure
//  3. More maintainable than complex regex patterns
//
// A forgiving href regex runs as a second pass anyway: tarpits emit
// deliberately broken markup, and the demo should still surface the links
// a naive crawler would chase.
type Parser struct {
	// baseURL is the URL of the page being parsed, used for resolving
	// relative URLs.
	baseURL *url.URL
}

// ParseResult contains the information extracted from an HTML page.
type ParseResult struct {
	// Title is the page title from the <title> tag.
	Title string

	// Links contains all discovered hyperlinks resolved against the base
	// URL, in document order, deduplicated. Only http and https URLs are
	// included.
	Links []string
}

// NewParser creates a new HTML parser with the given base URL.
// The base URL is used to resolve relative links.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// hrefRegex is the fallback matcher for href="..." or href='...' in raw
// markup. It catches links the DOM parser loses inside badly nested tags.
var hrefRegex = regexp.MustCompile(`(?i)href\s*=\s*["']([^"']+)["']`)

// Parse parses HTML content and extracts the title and links.
// The DOM pass runs first; the regex pass appends anything the DOM parser
// missed. Order is preserved and duplicates are dropped.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	raw, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		Links: make([]string, 0),
	}

	doc, err := html.Parse(strings.NewReader(string(raw)))
	if err != nil {
		return nil, err
	}

	var links []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode && result.Title == "" {
					result.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "a":
				if href := getAttr(n, "href"); href != "" {
					if resolved := p.resolveURL(href); resolved != "" {
						links = append(links, resolved)
					}
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	// Regex fallback over the raw markup
	for _, match := range hrefRegex.FindAllStringSubmatch(string(raw), -1) {
		if resolved := p.resolveURL(strings.TrimSpace(match[1])); resolved != "" {
			links = append(links, resolved)
		}
	}

	result.Links = dedupeLinks(links)
	return result, nil
}

// resolveURL resolves a relative URL against the base URL.
// Non-navigable schemes (javascript:, mailto:, tel:, data:) and bare
// fragments resolve to empty, as do non-http(s) results.
func (p *Parser) resolveURL(href string) string {
	if href == "" {
		return ""
	}

	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		href == "#" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := p.baseURL.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	return resolved.String()
}

// dedupeLinks removes duplicate links while preserving document order.
func dedupeLinks(links []string) []string {
	seen := make(map[string]bool, len(links))
	unique := make([]string, 0, len(links))
	for _, link := range links {
		if !seen[link] {
			seen[link] = true
			unique = append(unique, link)
		}
	}
	return unique
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
