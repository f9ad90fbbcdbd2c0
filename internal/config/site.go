package config

// SiteConfig holds per-site overrides for a single host.
// This allows customizing crawl behavior for specific demo servers,
// e.g. a slower delay against a rate-limited host or a custom
// User-Agent when demonstrating UA-based blocking.
type SiteConfig struct {
	// UserAgent overrides the global User-Agent for this site.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Cookie is an HTTP cookie to send when crawling this site.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers to include in requests to this site.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Depth overrides the global crawl depth for this site.
	// If zero, the global depth is used.
	Depth int `yaml:"depth,omitempty"`

	// DelayMillis overrides the global inter-request delay in milliseconds.
	// If zero, the global delay is used.
	DelayMillis int `yaml:"delayMillis,omitempty"`
}

// File represents the structure of the .webcrawl configuration file.
type File struct {
	// Sites maps hostnames to their site-specific configurations.
	// Keys are bare hosts without the protocol (e.g., "localhost:8893").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains default site configuration applied to all sites
	// unless overridden in the site-specific configuration.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// GetSiteConfig returns the configuration for a specific host.
// It merges the site-specific configuration with defaults.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with site-specific configuration if present
	if siteConfig, ok := cf.Sites[host]; ok {
		if siteConfig.UserAgent != "" {
			result.UserAgent = siteConfig.UserAgent
		}
		if siteConfig.Cookie != "" {
			result.Cookie = siteConfig.Cookie
		}
		if siteConfig.Depth != 0 {
			result.Depth = siteConfig.Depth
		}
		if siteConfig.DelayMillis != 0 {
			result.DelayMillis = siteConfig.DelayMillis
		}
		if len(siteConfig.Headers) > 0 {
			if result.Headers == nil {
				result.Headers = make(map[string]string)
			}
			for k, v := range siteConfig.Headers {
				result.Headers[k] = v
			}
		}
	}

	return result
}
