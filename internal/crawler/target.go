package crawler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptyTarget is returned when the target URL is empty after trimming.
var ErrEmptyTarget = errors.New("empty target URL")

// NormalizeTarget validates and normalizes an operator-provided URL.
// A missing scheme defaults to http:// so that "localhost:8893" works the
// way workshop participants expect. Only http and https are accepted.
func NormalizeTarget(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyTarget
	}

	// Default the scheme before parsing: "localhost:8893" alone parses
	// with "localhost" as the scheme, which is not what the operator meant.
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", raw, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q: only http and https are supported", u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", raw)
	}

	return u.String(), nil
}
