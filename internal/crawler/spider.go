package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/scraplab/webcrawl/internal/model"
)

// Spider fetches web pages and extracts their links.
// It manages a queue of URLs to visit and respects depth and page limits.
//
// All fetching is sequential and single-attempt. The spider never retries
// a failed URL and never issues concurrent requests: the point of the demo
// is to watch a naive crawler work, not to build a production one.
type Spider struct {
	// client performs the HTTP requests.
	client *http.Client

	// maxDepth limits how deep to follow links from the starting URL.
	// 0 means only the starting page; its links are reported, not visited.
	maxDepth int

	// maxPages limits the total number of pages fetched.
	// This keeps runs against tarpits finite.
	maxPages int

	// delay is the time to wait between requests.
	delay time.Duration

	// userAgent is the User-Agent header to use.
	userAgent string

	// maxBodySize limits the size of response bodies to read.
	maxBodySize int64

	// headers are extra HTTP headers sent with every request.
	headers map[string]string

	// cookie is an optional Cookie header value.
	cookie string

	// visited tracks URLs already fetched to avoid refetching.
	visited map[string]bool
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxDepth sets the link-following depth.
// 0 = only the starting page, 1 = starting page plus linked pages, etc.
func WithMaxDepth(depth int) SpiderOption {
	return func(s *Spider) {
		s.maxDepth = depth
	}
}

// WithMaxPages sets the maximum number of pages to fetch.
func WithMaxPages(maxPages int) SpiderOption {
	return func(s *Spider) {
		s.maxPages = maxPages
	}
}

// WithDelay sets the delay between requests.
func WithDelay(d time.Duration) SpiderOption {
	return func(s *Spider) {
		s.delay = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) SpiderOption {
	return func(s *Spider) {
		s.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) SpiderOption {
	return func(s *Spider) {
		s.maxBodySize = size
	}
}

// WithHeaders sets extra HTTP headers sent with every request.
func WithHeaders(headers map[string]string) SpiderOption {
	return func(s *Spider) {
		s.headers = headers
	}
}

// WithCookie sets the Cookie header value sent with every request.
func WithCookie(cookie string) SpiderOption {
	return func(s *Spider) {
		s.cookie = cookie
	}
}

// NewSpider creates a new Spider with the given HTTP client.
//
// Design decision: We require an external client because:
//  1. Timeout configuration belongs to the caller
//  2. Tests can inject httptest-backed clients
func NewSpider(client *http.Client, opts ...SpiderOption) *Spider {
	s := &Spider{
		client:      client,
		maxDepth:    0,
		maxPages:    25,
		delay:       500 * time.Millisecond,
		userAgent:   "webcrawl/1.2 (+https://github.com/scraplab/webcrawl)",
		maxBodySize: 5 * 1024 * 1024, // 5MB
		visited:     make(map[string]bool),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// queueItem represents an item in the crawl queue.
type queueItem struct {
	url   string
	depth int
}

// Crawl fetches pages breadth-first starting from startURL and returns the
// fetched pages in visit order along with any per-URL failures.
//
// The start URL must already be normalized (see NormalizeTarget). A failed
// fetch is recorded as a model.Failure and the crawl continues with the
// next queued URL; the only hard stop besides exhausting the queue is
// context cancellation or reaching the page limit.
func (s *Spider) Crawl(ctx context.Context, startURL string) ([]*model.Page, []model.Failure) {
	pages := make([]*model.Page, 0)
	failures := make([]model.Failure, 0)

	queue := []queueItem{{url: startURL, depth: 0}}

	for len(queue) > 0 && len(pages) < s.maxPages {
		select {
		case <-ctx.Done():
			return pages, failures
		default:
		}

		item := queue[0]
		queue = queue[1:]

		if s.isVisited(item.url) {
			continue
		}
		s.markVisited(item.url)

		page, err := s.fetchPage(ctx, item.url)
		if err != nil {
			failures = append(failures, model.Failure{
				URL:     item.url,
				Stage:   model.StageFetch,
				Message: err.Error(),
			})
			continue
		}

		page.Depth = item.depth
		pages = append(pages, page)

		// Queue new links if within the depth limit
		if item.depth < s.maxDepth {
			for _, link := range page.Links {
				if !s.isVisited(link) {
					queue = append(queue, queueItem{url: link, depth: item.depth + 1})
				}
			}
		}

		// Politeness delay before the next fetch
		if s.delay > 0 && len(queue) > 0 {
			select {
			case <-ctx.Done():
				return pages, failures
			case <-time.After(s.delay):
			}
		}
	}

	return pages, failures
}

// fetchPage fetches a single page, decodes its body, and extracts links.
// One request, one attempt. Non-2xx statuses are errors: the demo treats
// a 403 from an anti-bot layer the same as an unreachable host.
func (s *Spider) fetchPage(ctx context.Context, pageURL string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}
	if s.cookie != "" {
		req.Header.Set("Cookie", s.cookie)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBodySize))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	page := &model.Page{
		URL:         pageURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Headers:     resp.Header,
		Size:        len(raw),
	}
	page.ComputeHash(raw)

	if page.IsText() {
		page.Body = decodeBody(raw, page.ContentType)
		page.TruncateBody()
	}

	if page.IsHTML() {
		parser, err := NewParser(page.FinalURL)
		if err == nil {
			if result, err := parser.Parse(strings.NewReader(page.Body)); err == nil {
				page.Title = result.Title
				page.Links = result.Links
			}
		}
	}

	return page, nil
}

// isVisited checks if a URL has been fetched already.
func (s *Spider) isVisited(pageURL string) bool {
	return s.visited[normalizeURL(pageURL)]
}

// markVisited marks a URL as fetched.
func (s *Spider) markVisited(pageURL string) {
	s.visited[normalizeURL(pageURL)] = true
}

// Reset clears the spider's state, allowing it to be reused.
func (s *Spider) Reset() {
	s.visited = make(map[string]bool)
}

// normalizeURL normalizes a URL for deduplication.
//
// Design decision: We normalize because the same page can have different
// URL representations: fragments don't change content, scheme and host
// are case-insensitive, and an empty path equals "/".
func normalizeURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String()
}
