package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultTimeout is the per-request connection timeout. 15 seconds is
	// generous enough for slow demo servers while keeping a stalled live
	// demo short.
	DefaultTimeout = 15 * time.Second

	// DefaultCrawlDepth of 0 means only the target page is fetched; links
	// found on it are reported but not followed. Link-following is opt-in
	// via the --depth flag because tarpit demos otherwise never terminate.
	DefaultCrawlDepth = 0

	// DefaultMaxPages bounds the total number of pages fetched when depth
	// is raised above zero. Tarpits generate links endlessly, so a hard
	// page cap keeps demo runs finite.
	DefaultMaxPages = 25

	// DefaultCrawlDelay is the pause between successive page fetches.
	// Purely a politeness setting; there is no rate-limiting engine.
	DefaultCrawlDelay = 500 * time.Millisecond

	// DefaultUserAgent identifies webcrawl in HTTP requests. A descriptive
	// User-Agent lets workshop participants spot the crawler in server logs.
	DefaultUserAgent = "webcrawl/1.2 (+https://github.com/scraplab/webcrawl)"

	// DefaultMaxBodySize limits the response body size to read. 5MB covers
	// any realistic demo page while preventing memory exhaustion when a
	// tarpit streams an unbounded response.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "webcrawl"
)

// Config holds all options for one crawl run.
// This struct is populated from CLI flags (and interactive prompts when
// flags are absent) and passed through the application via dependency
// injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// Target is the URL to crawl. Provided as a positional argument or
	// read interactively from stdin.
	Target string

	// ProbeLLMSTxt controls whether <target>/llms.txt is fetched before
	// the target itself. When false, no request to the llms.txt URL is
	// ever issued.
	ProbeLLMSTxt bool

	// Timeout is the connection timeout for each HTTP request.
	Timeout time.Duration

	// CrawlDepth is the link-following depth. Depth 0 fetches only the
	// target page and reports its links without visiting them.
	CrawlDepth int

	// MaxPages is the total page bound applied when CrawlDepth > 0.
	MaxPages int

	// CrawlDelay is the pause between page fetches.
	CrawlDelay time.Duration

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use the default.
	MaxBodySize int64

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .webcrawl in the current directory,
	// the user's home directory, and the XDG config directory.
	ConfigFilePath string

	// SiteConfigs holds per-site overrides loaded from the config file.
	SiteConfigs *File

	// JSONReport enables JSON report output instead of the human-readable
	// format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, delay).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		CrawlDepth:  DefaultCrawlDepth,
		MaxPages:    DefaultMaxPages,
		CrawlDelay:  DefaultCrawlDelay,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// XDGConfigDir returns the XDG config directory for webcrawl.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/webcrawl
// On macOS: ~/Library/Application Support/webcrawl
// On Windows: %APPDATA%\webcrawl
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing and prompting, before any
// network activity begins.
func (c *Config) Validate() error {
	if c.Target == "" {
		return ErrNoTarget
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// Depth 0 is the "no recursive crawling" default; negative is meaningless
	if c.CrawlDepth < 0 {
		return ErrInvalidDepth
	}

	// MaxPages must be positive; zero would mean nothing is ever fetched
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}

	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
