package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/scraplab/webcrawl/internal/config"
	"github.com/scraplab/webcrawl/internal/crawler"
	"github.com/scraplab/webcrawl/internal/log"
	"github.com/scraplab/webcrawl/internal/model"
	"github.com/scraplab/webcrawl/internal/report"
	"github.com/spf13/cobra"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [url]",
		Short: "Fetch a URL, probe for llms.txt, and report discovered links",
		Long: `Crawl fetches a starting URL and reports what it finds.

Before fetching, it can probe for an llms.txt file under the target URL
(the AI-crawler guidance convention). The target page is fetched either
way, its links are extracted and listed, and with --depth greater than
zero the links are followed up to the configured page budget.

If the URL argument is omitted, crawl asks for it interactively. The
llms.txt probe is also asked interactively unless --llms-txt or
--no-llms-txt decides it up front.

Examples:
  # Interactive session: prompts for URL and the llms.txt probe
  webcrawl crawl

  # Fetch one page and list its links, no prompts
  webcrawl crawl --no-llms-txt http://localhost:8893/

  # Probe llms.txt, then follow links one level deep
  webcrawl crawl --llms-txt -d 1 http://localhost:8893/

  # Output JSON report to a file
  webcrawl crawl --no-llms-txt -j -o report.json http://localhost:8893/

  # Use a custom configuration file
  webcrawl crawl -c myconfig.yaml http://localhost:8893/

Configuration file (.webcrawl) example:
  defaults:
    delayMillis: 500
  sites:
    localhost:8893:
      cookie: "session_id=abc123"
      headers:
        Authorization: "Bearer token"
      depth: 1`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCrawlCmd,
	}

	// llms.txt probe flags
	cmd.Flags().Bool("llms-txt", false,
		"Probe for llms.txt under the target URL without prompting")
	cmd.Flags().Bool("no-llms-txt", false,
		"Skip the llms.txt probe without prompting")

	// Crawl behavior flags
	cmd.Flags().IntP("depth", "d", config.DefaultCrawlDepth,
		"Link-following depth (0 reports links without following them)")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to fetch when following links")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().Duration("delay", config.DefaultCrawlDelay,
		"Delay between successive requests")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with each request")
	cmd.Flags().Int64("max-body-size", config.DefaultMaxBodySize,
		"Maximum response body size in bytes")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .webcrawl in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags and interactive prompts
	cfg, err := buildCrawlConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential redaction
	cfg.Verbose = getVerboseFlag(cmd)
	logger := log.NewRedactedLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runCrawl(ctx, cfg, logger, cmd.OutOrStdout())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildCrawlConfig creates a Config from cobra command flags,
// prompting interactively for anything the flags leave undecided.
func buildCrawlConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.CrawlDepth, err = cmd.Flags().GetInt("depth")
	if err != nil {
		return nil, err
	}

	cfg.MaxPages, err = cmd.Flags().GetInt("max-pages")
	if err != nil {
		return nil, err
	}

	cfg.CrawlDelay, err = cmd.Flags().GetDuration("delay")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-body-size")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load site-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.SiteConfigs = &config.File{
			Sites: make(map[string]config.SiteConfig),
		}
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// Shared reader so the URL prompt doesn't swallow the probe answer
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	// Target URL: positional argument or interactive prompt
	rawTarget := ""
	if len(args) > 0 {
		rawTarget = args[0]
	} else {
		rawTarget, err = promptURL(in, out)
		if err != nil {
			return nil, fmt.Errorf("failed to read URL: %w", err)
		}
	}

	cfg.Target, err = crawler.NormalizeTarget(rawTarget)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawTarget, err)
	}

	// llms.txt probe: flags decide it, otherwise ask.
	// --no-llms-txt wins if both are given.
	probeFlag, err := cmd.Flags().GetBool("llms-txt")
	if err != nil {
		return nil, err
	}
	noProbeFlag, err := cmd.Flags().GetBool("no-llms-txt")
	if err != nil {
		return nil, err
	}

	switch {
	case noProbeFlag:
		cfg.ProbeLLMSTxt = false
	case probeFlag:
		cfg.ProbeLLMSTxt = true
	default:
		cfg.ProbeLLMSTxt, err = promptYesNo(in, out, "Look for llms.txt under this URL?")
		if err != nil {
			return nil, fmt.Errorf("failed to read answer: %w", err)
		}
	}

	return cfg, nil
}

// runCrawl executes the crawl and writes the report.
func runCrawl(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	logger.Info("starting crawl",
		"target", cfg.Target,
		"probeLLMSTxt", cfg.ProbeLLMSTxt,
		"depth", cfg.CrawlDepth,
		"maxPages", cfg.MaxPages,
	)

	// Apply site-specific configuration for the target host
	siteConfig := siteConfigForTarget(cfg)

	spdr := createSpiderForTarget(cfg, siteConfig)

	rep := model.NewReport(cfg.Target)

	// Progress spinner on stderr so report output stays clean.
	// Suppressed in verbose mode to keep log lines readable.
	var spin *spinner.Spinner
	if !cfg.Verbose {
		spin = spinner.New(spinner.CharSets[9], 100*time.Millisecond,
			spinner.WithWriter(os.Stderr))
		spin.Suffix = fmt.Sprintf(" crawling %s...", cfg.Target)
		spin.Start()
	}

	// Probe llms.txt before fetching the target. A failed probe is
	// recorded in the report but never aborts the crawl.
	if cfg.ProbeLLMSTxt {
		probe, err := spdr.ProbeLLMSTxt(ctx, cfg.Target)
		if err != nil {
			probeURL, urlErr := crawler.LLMSTxtURL(cfg.Target)
			if urlErr != nil {
				probeURL = cfg.Target
			}
			logger.Warn("llms.txt probe failed", "url", probeURL, "error", err)
			rep.AddFailure(probeURL, model.StageProbe, err)
		} else {
			rep.LLMSTxt = probe
		}
	}

	// Fetch the target and follow links up to the configured depth
	pages, failures := spdr.Crawl(ctx, cfg.Target)
	rep.Pages = pages
	rep.Failures = append(rep.Failures, failures...)
	rep.Elapsed = time.Since(rep.StartedAt)

	if spin != nil {
		spin.Stop()
	}

	logger.Info("crawl finished",
		"pages", len(rep.Pages),
		"links", rep.TotalLinks(),
		"failures", len(rep.Failures),
		"elapsed", rep.Elapsed,
	)

	if err := outputReport(cfg, rep, out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	// An unreachable target is a failed run even though the failure
	// itself was already reported above.
	if !rep.TargetFetched() {
		return fmt.Errorf("target %s could not be fetched", cfg.Target)
	}

	return nil
}

// siteConfigForTarget resolves the per-site configuration for the
// target's host, merged with file defaults.
func siteConfigForTarget(cfg *config.Config) config.SiteConfig {
	if cfg.SiteConfigs == nil {
		return config.SiteConfig{}
	}

	u, err := url.Parse(cfg.Target)
	if err != nil {
		return cfg.SiteConfigs.Defaults
	}

	return cfg.SiteConfigs.GetSiteConfig(u.Host)
}

// createSpiderForTarget builds a spider from the global configuration
// with site-specific overrides applied.
func createSpiderForTarget(cfg *config.Config, siteConfig config.SiteConfig) *crawler.Spider {
	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	// Site-specific values override global flags
	depth := cfg.CrawlDepth
	if siteConfig.Depth > 0 {
		depth = siteConfig.Depth
	}
	delay := cfg.CrawlDelay
	if siteConfig.DelayMillis > 0 {
		delay = time.Duration(siteConfig.DelayMillis) * time.Millisecond
	}
	userAgent := cfg.UserAgent
	if siteConfig.UserAgent != "" {
		userAgent = siteConfig.UserAgent
	}

	opts := []crawler.SpiderOption{
		crawler.WithMaxDepth(depth),
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithDelay(delay),
		crawler.WithUserAgent(userAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
	}

	if siteConfig.Cookie != "" {
		opts = append(opts, crawler.WithCookie(siteConfig.Cookie))
	}
	if len(siteConfig.Headers) > 0 {
		opts = append(opts, crawler.WithHeaders(siteConfig.Headers))
	}

	return crawler.NewSpider(client, opts...)
}

// outputReport writes the crawl report in the requested format.
func outputReport(cfg *config.Config, rep *model.Report, out io.Writer) error {
	// Determine output destination
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with secure permissions (0600).
		// Reports may echo cookies or headers from the config file.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(out, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(out)
	default:
		w = report.NewSimpleWriter(out)
	}

	_, err := w.Write(rep)
	return err
}
