package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for webcrawl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webcrawl",
		Short: "Naive web crawler for anti-scraping workshops",
		Long: `webcrawl is a deliberately naive web crawler used in anti-scraping workshops.

It fetches a target URL, optionally probes for an llms.txt resource first,
extracts hyperlinks, and streams everything to the console. There are no
retries, no concurrency, and by default no link-following. The point is to
show exactly what a simple crawler does, one request at a time.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
