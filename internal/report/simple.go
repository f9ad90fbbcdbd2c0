package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/scraplab/webcrawl/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This is the workshop console format: the llms.txt probe outcome first,
// then each visited page streamed with its links, then any failures.
//
// Design decision: We use plain text with ASCII banners rather than ANSI
// colors because:
//  1. It works in all terminals without compatibility issues
//  2. It's easier to pipe to files or other tools
//  3. Identical reruns must produce byte-identical output for the
//     determinism demo, and color detection would break that
type SimpleWriter struct {
	baseWriter

	// showBody controls whether page bodies are streamed.
	// Disabled for quick link-only runs.
	showBody bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithShowBody controls whether page bodies are included in the output.
func WithShowBody(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showBody = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showBody:   true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the full report in human-readable format.
// The llms.txt section always precedes page output so the probe result
// is reported before the target fetch result.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	if report.LLMSTxt != nil {
		w.writeLLMSTxt(&sb, report.LLMSTxt)
	}

	for _, page := range report.Pages {
		w.writePage(&sb, page)
	}

	w.writeFailures(&sb, report.Failures)
	w.writeSummary(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeLLMSTxt writes the llms.txt probe section.
func (w *SimpleWriter) writeLLMSTxt(sb *strings.Builder, probe *model.LLMSTxt) {
	fmt.Fprintf(sb, "[INFO] Checked for llms.txt at %s\n", probe.URL)

	if !probe.Found {
		sb.WriteString("[INFO] No accessible llms.txt found at this URL.\n\n")
		return
	}

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("#", 80))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "[FOUND] llms.txt at %s (%d bytes)\n", probe.URL, probe.Size)
	sb.WriteString(strings.Repeat("#", 80))
	sb.WriteString("\n\n")
	sb.WriteString(probe.Content)
	if !strings.HasSuffix(probe.Content, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writePage writes one visited page: banner, body, links.
func (w *SimpleWriter) writePage(sb *strings.Builder, page *model.Page) {
	fmt.Fprintf(sb, "[INFO] Fetched %s (%d bytes, %s)\n", page.FinalURL, page.Size, page.ContentType)

	if !page.IsText() {
		fmt.Fprintf(sb, "[SKIP] %s (Content-Type: %s)\n\n", page.FinalURL, page.ContentType)
		return
	}

	if w.showBody && page.Body != "" {
		sb.WriteString(strings.Repeat("=", 80))
		sb.WriteString("\n")
		fmt.Fprintf(sb, "[VISITING] %s\n", page.FinalURL)
		sb.WriteString(strings.Repeat("=", 80))
		sb.WriteString("\n")

		for _, line := range StripStyleBlocks(page.Body) {
			sb.WriteString(line)
			sb.WriteString("\n")
		}

		sb.WriteString("\n[END OF PAGE]\n\n")
	}

	fmt.Fprintf(sb, "[INFO] Found %d links on %s\n", len(page.Links), page.FinalURL)
	for _, link := range page.Links {
		fmt.Fprintf(sb, "  %s\n", link)
	}
	sb.WriteString("\n")
}

// writeFailures writes the failure section, one line per failed fetch.
func (w *SimpleWriter) writeFailures(sb *strings.Builder, failures []model.Failure) {
	for _, f := range failures {
		switch f.Stage {
		case model.StageProbe:
			fmt.Fprintf(sb, "[ERROR] llms.txt probe failed for %s: %s\n", f.URL, f.Message)
		default:
			fmt.Fprintf(sb, "[ERROR] Failed to fetch %s: %s\n", f.URL, f.Message)
		}
	}
	if len(failures) > 0 {
		sb.WriteString("\n")
	}
}

// writeSummary writes the closing summary line.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	fmt.Fprintf(sb, "[DONE] %d page(s) fetched, %d link(s) found, %d failure(s)\n",
		len(report.Pages), report.TotalLinks(), len(report.Failures))
}

// StripStyleBlocks splits body text into lines, dropping blank lines and
// everything between <style> and </style>. Inline CSS dominates the markup
// of many demo pages and drowns the interesting content on a projector.
func StripStyleBlocks(body string) []string {
	lines := make([]string, 0)
	inStyle := false

	for _, rawLine := range strings.Split(body, "\n") {
		line := strings.TrimRight(rawLine, " \t\r")
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)

		if inStyle {
			if idx := strings.LastIndex(lower, "</style>"); idx >= 0 {
				inStyle = false
				after := strings.TrimSpace(line[idx+len("</style>"):])
				if after != "" {
					lines = append(lines, after)
				}
			}
			continue
		}

		if strings.Contains(lower, "<style") {
			inStyle = true
			if idx := strings.LastIndex(lower, "</style>"); idx >= 0 {
				inStyle = false
				after := strings.TrimSpace(line[idx+len("</style>"):])
				if after != "" {
					lines = append(lines, after)
				}
			}
			continue
		}

		lines = append(lines, line)
	}

	return lines
}
