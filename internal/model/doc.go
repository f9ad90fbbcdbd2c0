// Package model defines the core data structures used throughout webcrawl.
//
// This package contains the following main types:
//   - Page: Represents a fetched web page with extracted links
//   - LLMSTxt: The outcome of an llms.txt probe
//   - Report: The full result of one crawl run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (crawler, report) need to use these types,
// so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
// All state is transient; nothing in this package is persisted between runs.
package model
