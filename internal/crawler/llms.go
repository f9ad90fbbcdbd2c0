package crawler

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/scraplab/webcrawl/internal/model"
)

// LLMSTxtURL builds the llms.txt URL that sits directly under the given
// target. The target's path is treated as a directory: probing
// "http://example.com/foo" checks "http://example.com/foo/llms.txt".
func LLMSTxtURL(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}

	// Force a trailing slash so the join stays under the given path
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	rel, err := url.Parse("llms.txt")
	if err != nil {
		return "", err
	}

	return u.ResolveReference(rel).String(), nil
}

// ProbeLLMSTxt checks whether an llms.txt resource exists under the target
// URL. A single fetch, no retries. The probe counts as found only when the
// response is a 2xx with a text content type and a non-empty body; anything
// else is reported as not found. Network-level failures are returned as an
// error so the caller can report the probe failure distinctly.
func (s *Spider) ProbeLLMSTxt(ctx context.Context, target string) (*model.LLMSTxt, error) {
	probeURL, err := LLMSTxtURL(target)
	if err != nil {
		return nil, err
	}

	result := &model.LLMSTxt{URL: probeURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
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
		return result, nil
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text") {
		return result, nil
	}

	content := decodeBody(raw, contentType)
	if strings.TrimSpace(content) == "" {
		return result, nil
	}

	result.Found = true
	result.Content = content
	result.Size = len(raw)
	return result, nil
}
