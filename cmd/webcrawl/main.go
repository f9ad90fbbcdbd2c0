// Package main provides the entry point for the webcrawl CLI.
//
// webcrawl is a deliberately naive web crawler used in anti-scraping
// workshops. It fetches a single target URL (optionally probing for an
// llms.txt resource first), extracts hyperlinks, and streams everything
// to the console so an audience can watch what a crawler sees, including
// what happens when it wanders into a tarpit.
//
// Usage:
//
//	webcrawl crawl [url]
//	webcrawl crawl --llms-txt http://localhost:8893/
//
// See --help for all available options.
package main

// main is the entry point for webcrawl.
func main() {
	Execute()
}
