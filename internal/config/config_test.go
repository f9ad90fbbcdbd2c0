package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig tests default configuration values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("has default timeout", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != DefaultTimeout {
			t.Errorf("expected timeout %v, got %v", DefaultTimeout, cfg.Timeout)
		}
	})

	t.Run("depth defaults to zero", func(t *testing.T) {
		t.Parallel()
		if cfg.CrawlDepth != 0 {
			t.Errorf("expected depth 0, got %d", cfg.CrawlDepth)
		}
	})

	t.Run("has default max pages", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxPages != DefaultMaxPages {
			t.Errorf("expected max pages %d, got %d", DefaultMaxPages, cfg.MaxPages)
		}
	})

	t.Run("has default user agent", func(t *testing.T) {
		t.Parallel()
		if cfg.UserAgent != DefaultUserAgent {
			t.Errorf("expected user agent %q, got %q", DefaultUserAgent, cfg.UserAgent)
		}
	})

	t.Run("probe is off by default", func(t *testing.T) {
		t.Parallel()
		if cfg.ProbeLLMSTxt {
			t.Error("expected ProbeLLMSTxt to default to false")
		}
	})
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := NewConfig()
		cfg.Target = "http://localhost:8893/"
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		t.Parallel()
		if err := valid().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("missing target", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.Target = ""
		if err := cfg.Validate(); !errors.Is(err, ErrNoTarget) {
			t.Errorf("expected ErrNoTarget, got %v", err)
		}
	})

	t.Run("zero timeout", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.Timeout = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("negative depth", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.CrawlDepth = -1
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidDepth) {
			t.Errorf("expected ErrInvalidDepth, got %v", err)
		}
	})

	t.Run("zero max pages", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.MaxPages = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxPages) {
			t.Errorf("expected ErrInvalidMaxPages, got %v", err)
		}
	})

	t.Run("negative delay", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.CrawlDelay = -1 * time.Second
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidCrawlDelay) {
			t.Errorf("expected ErrInvalidCrawlDelay, got %v", err)
		}
	})

	t.Run("negative max body size", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.MaxBodySize = -1
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidMaxBodySize) {
			t.Errorf("expected ErrInvalidMaxBodySize, got %v", err)
		}
	})

	t.Run("conflicting report formats", func(t *testing.T) {
		t.Parallel()
		cfg := valid()
		cfg.JSONReport = true
		cfg.MarkdownReport = true
		if err := cfg.Validate(); !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})
}

// TestLoadConfigFile tests YAML config file loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads sites and defaults", func(t *testing.T) {
		t.Parallel()

		content := `defaults:
  userAgent: "workshop-crawler/1.0"
  delayMillis: 1000
sites:
  localhost:8893:
    cookie: "demo=1"
    depth: 2
    headers:
      X-Workshop: "true"
`
		path := filepath.Join(t.TempDir(), ".webcrawl")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if cf.Defaults.UserAgent != "workshop-crawler/1.0" {
			t.Errorf("expected default user agent, got %q", cf.Defaults.UserAgent)
		}

		site := cf.GetSiteConfig("localhost:8893")
		if site.Cookie != "demo=1" {
			t.Errorf("expected cookie 'demo=1', got %q", site.Cookie)
		}
		if site.Depth != 2 {
			t.Errorf("expected depth 2, got %d", site.Depth)
		}
		if site.UserAgent != "workshop-crawler/1.0" {
			t.Errorf("expected inherited user agent, got %q", site.UserAgent)
		}
		if site.Headers["X-Workshop"] != "true" {
			t.Errorf("expected X-Workshop header, got %v", site.Headers)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("invalid yaml returns error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".webcrawl")
		if err := os.WriteFile(path, []byte("sites: [broken"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

// TestFindConfigFile tests config file discovery.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path found", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("sites:\n"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("explicit path missing returns empty", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile(filepath.Join(t.TempDir(), "nope")); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})
}

// TestGetSiteConfig tests override merging for unknown hosts.
func TestGetSiteConfig(t *testing.T) {
	t.Parallel()

	cf := &File{
		Defaults: SiteConfig{UserAgent: "default-ua", DelayMillis: 250},
		Sites: map[string]SiteConfig{
			"example.com": {UserAgent: "special-ua"},
		},
	}

	t.Run("unknown host gets defaults", func(t *testing.T) {
		t.Parallel()

		site := cf.GetSiteConfig("other.com")
		if site.UserAgent != "default-ua" {
			t.Errorf("expected default-ua, got %q", site.UserAgent)
		}
		if site.DelayMillis != 250 {
			t.Errorf("expected delay 250, got %d", site.DelayMillis)
		}
	})

	t.Run("known host overrides defaults", func(t *testing.T) {
		t.Parallel()

		site := cf.GetSiteConfig("example.com")
		if site.UserAgent != "special-ua" {
			t.Errorf("expected special-ua, got %q", site.UserAgent)
		}
		// Non-overridden fields inherit defaults
		if site.DelayMillis != 250 {
			t.Errorf("expected inherited delay 250, got %d", site.DelayMillis)
		}
	})
}
