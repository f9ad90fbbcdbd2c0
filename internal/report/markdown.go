package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/scraplab/webcrawl/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for sharing workshop results afterwards.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
//  1. Type-safe markdown generation
//  2. Support for tables, lists, and code blocks
//  3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeLLMSTxt(md, report)
	w.writePages(md, report)
	w.writeFailures(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1("Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Target", "`" + report.Target + "`"},
			{"Date", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Pages Fetched", strconv.Itoa(len(report.Pages))},
			{"Links Found", strconv.Itoa(report.TotalLinks())},
			{"Elapsed", report.Elapsed.Round(time.Millisecond).String()},
			{"Status", w.statusText(report)},
		},
	})
	md.PlainText("")
}

// statusText returns the status cell based on report state.
func (w *MarkdownWriter) statusText(report *model.Report) string {
	if !report.TargetFetched() {
		return "❌ Target fetch failed"
	}
	if len(report.Failures) > 0 {
		return "⚠️ Completed with failures"
	}
	return "✅ Complete"
}

// writeLLMSTxt writes the llms.txt probe section.
func (w *MarkdownWriter) writeLLMSTxt(md *markdown.Markdown, report *model.Report) {
	if report.LLMSTxt == nil {
		return
	}

	md.H2("llms.txt")
	md.PlainText("")

	if !report.LLMSTxt.Found {
		md.PlainTextf("No accessible llms.txt found at `%s`.", report.LLMSTxt.URL)
		md.PlainText("")
		return
	}

	md.PlainTextf("Found at `%s` (%d bytes):", report.LLMSTxt.URL, report.LLMSTxt.Size)
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightText, report.LLMSTxt.Content)
	md.PlainText("")
}

// writePages writes the per-page table and link lists.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, report *model.Report) {
	md.H2("Pages")
	md.PlainText("")

	if len(report.Pages) == 0 {
		md.PlainText("No pages were fetched.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Pages))
	for _, p := range report.Pages {
		rows = append(rows, []string{
			"`" + p.FinalURL + "`",
			strconv.Itoa(p.StatusCode),
			p.ContentType,
			strconv.Itoa(p.Size),
			strconv.Itoa(len(p.Links)),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Status", "Type", "Bytes", "Links"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, p := range report.Pages {
		if len(p.Links) == 0 {
			continue
		}
		md.H3f("Links on %s", p.FinalURL)
		md.PlainText("")
		md.BulletList(p.Links...)
		md.PlainText("")
	}
}

// writeFailures writes the failure section as an alert with a list.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, report *model.Report) {
	if len(report.Failures) == 0 {
		return
	}

	md.H2("Failures")
	md.PlainText("")
	md.Warningf("%d fetch attempt(s) failed during this run.", len(report.Failures))
	md.PlainText("")

	items := make([]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		items = append(items, "`"+f.URL+"` ("+f.Stage+"): "+f.Message)
	}
	md.BulletList(items...)
	md.PlainText("")
}
