package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// newTestLogger returns a logger writing through a RedactHandler
// to a buffer using the plain text handler for easy assertion.
func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	textHandler := slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return slog.New(NewRedactHandler(textHandler))
}

// TestRedactHandler tests attribute masking.
func TestRedactHandler(t *testing.T) {
	t.Parallel()

	t.Run("masks cookie attribute", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newTestLogger(&buf)

		logger.Info("request prepared", "cookie", "session=abc123")

		out := buf.String()
		if strings.Contains(out, "abc123") {
			t.Errorf("expected cookie value to be masked, got %q", out)
		}
		if !strings.Contains(out, MaskValue) {
			t.Errorf("expected mask value in output, got %q", out)
		}
	})

	t.Run("masks authorization attribute", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newTestLogger(&buf)

		logger.Info("request prepared", "Authorization", "Bearer secret-token")

		if strings.Contains(buf.String(), "secret-token") {
			t.Errorf("expected authorization value to be masked, got %q", buf.String())
		}
	})

	t.Run("masks bearer value regardless of key", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newTestLogger(&buf)

		logger.Info("header dump", "value", "Bearer eyJabc")

		if strings.Contains(buf.String(), "eyJabc") {
			t.Errorf("expected bearer value to be masked, got %q", buf.String())
		}
	})

	t.Run("leaves normal attributes untouched", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newTestLogger(&buf)

		logger.Info("fetched", "url", "http://localhost:8893/", "status", 200)

		out := buf.String()
		if !strings.Contains(out, "http://localhost:8893/") {
			t.Errorf("expected url in output, got %q", out)
		}
		if strings.Contains(out, MaskValue) {
			t.Errorf("expected no masking, got %q", out)
		}
	})

	t.Run("masks attributes inside groups", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newTestLogger(&buf)

		logger.Info("site config",
			slog.Group("site", slog.String("cookie", "demo=1"), slog.String("host", "localhost")),
		)

		out := buf.String()
		if strings.Contains(out, "demo=1") {
			t.Errorf("expected grouped cookie to be masked, got %q", out)
		}
		if !strings.Contains(out, "localhost") {
			t.Errorf("expected host in output, got %q", out)
		}
	})

	t.Run("masks WithAttrs attributes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := newTestLogger(&buf).With("token", "tok-12345")

		logger.Info("hello")

		if strings.Contains(buf.String(), "tok-12345") {
			t.Errorf("expected token to be masked, got %q", buf.String())
		}
	})
}

// TestNewRedactedLogger tests logger construction and level handling.
func TestNewRedactedLogger(t *testing.T) {
	t.Parallel()

	t.Run("quiet by default", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewRedactedLogger(&buf, false)

		logger.Debug("hidden")
		logger.Info("also hidden")

		if buf.Len() != 0 {
			t.Errorf("expected no output below warn level, got %q", buf.String())
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewRedactedLogger(&buf, true)

		logger.Debug("visible")

		if !strings.Contains(buf.String(), "visible") {
			t.Errorf("expected debug output, got %q", buf.String())
		}
	})
}
