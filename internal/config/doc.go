// Package config provides configuration structures and utilities for webcrawl.
// It defines the main options for the crawl run (target, llms.txt probe,
// depth, timing) and the optional .webcrawl YAML file with per-site overrides.
package config
