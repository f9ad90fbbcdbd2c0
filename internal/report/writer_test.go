package report

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/scraplab/webcrawl/internal/model"
)

// sampleReport builds a report with one page, two links, and a found
// llms.txt, roughly what a default demo run produces.
func sampleReport() *model.Report {
	r := model.NewReport("http://localhost:8893/")
	r.LLMSTxt = &model.LLMSTxt{
		URL:     "http://localhost:8893/llms.txt",
		Found:   true,
		Content: "# Guidance\nBe gentle.\n",
		Size:    21,
	}
	r.Pages = append(r.Pages, &model.Page{
		URL:         "http://localhost:8893/",
		FinalURL:    "http://localhost:8893/",
		StatusCode:  200,
		ContentType: "text/html; charset=utf-8",
		Title:       "Demo",
		Body:        "<html><body>\n<a href=\"/one\">1</a>\n<a href=\"/two\">2</a>\n</body></html>",
		Size:        70,
		Links:       []string{"http://localhost:8893/one", "http://localhost:8893/two"},
	})
	return r
}

// TestSimpleWriter tests the human-readable console format.
func TestSimpleWriter(t *testing.T) {
	t.Parallel()

	t.Run("llms.txt is reported before the page", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		out := buf.String()
		llmsIdx := strings.Index(out, "[FOUND] llms.txt")
		pageIdx := strings.Index(out, "[VISITING]")
		if llmsIdx < 0 || pageIdx < 0 {
			t.Fatalf("expected llms.txt and page sections, got:\n%s", out)
		}
		if llmsIdx > pageIdx {
			t.Error("expected llms.txt section before page section")
		}
	})

	t.Run("links appear in document order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		out := buf.String()
		oneIdx := strings.Index(out, "http://localhost:8893/one")
		twoIdx := strings.Index(out, "http://localhost:8893/two")
		if oneIdx < 0 || twoIdx < 0 {
			t.Fatalf("expected both links in output, got:\n%s", out)
		}
		if oneIdx > twoIdx {
			t.Error("expected links in document order")
		}
		if !strings.Contains(out, "Found 2 links") {
			t.Errorf("expected link count, got:\n%s", out)
		}
	})

	t.Run("identical reports produce identical output", func(t *testing.T) {
		t.Parallel()

		render := func() string {
			var buf bytes.Buffer
			if _, err := NewSimpleWriter(&buf).Write(sampleReport()); err != nil {
				t.Fatalf("write failed: %v", err)
			}
			return buf.String()
		}

		if render() != render() {
			t.Error("expected deterministic output for identical reports")
		}
	})

	t.Run("probe failure and fetch failure are distinguished", func(t *testing.T) {
		t.Parallel()

		r := model.NewReport("http://localhost:8893/")
		r.Failures = []model.Failure{
			{URL: "http://localhost:8893/llms.txt", Stage: model.StageProbe, Message: "connection refused"},
			{URL: "http://localhost:8893/", Stage: model.StageFetch, Message: "connection refused"},
		}

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf).Write(r); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "llms.txt probe failed") {
			t.Errorf("expected probe failure message, got:\n%s", out)
		}
		if !strings.Contains(out, "Failed to fetch") {
			t.Errorf("expected fetch failure message, got:\n%s", out)
		}
	})

	t.Run("body can be suppressed", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewSimpleWriter(&buf, WithShowBody(false)).Write(sampleReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		if strings.Contains(buf.String(), "[VISITING]") {
			t.Errorf("expected no body section, got:\n%s", buf.String())
		}
	})
}

// TestStripStyleBlocks tests inline CSS elision.
func TestStripStyleBlocks(t *testing.T) {
	t.Parallel()

	t.Run("drops style block content", func(t *testing.T) {
		t.Parallel()

		body := "before\n<style>\n.a { color: red }\n</style>\nafter"
		got := StripStyleBlocks(body)
		want := []string{"before", "after"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("keeps text after closing tag on the same line", func(t *testing.T) {
		t.Parallel()

		body := "<style>.a{}</style>tail\nnext"
		got := StripStyleBlocks(body)
		want := []string{"tail", "next"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("drops blank lines", func(t *testing.T) {
		t.Parallel()

		body := "a\n\n\nb"
		got := StripStyleBlocks(body)
		want := []string{"a", "b"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("handles multiline style with close mid-line", func(t *testing.T) {
		t.Parallel()

		body := "<style>\n.a{}\n.b{}</style>visible\nend"
		got := StripStyleBlocks(body)
		want := []string{"visible", "end"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

// TestJSONWriter tests the JSON output format.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("produces valid JSON", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		var decoded model.Report
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid JSON output: %v", err)
		}

		if decoded.Target != "http://localhost:8893/" {
			t.Errorf("expected target in JSON, got %q", decoded.Target)
		}
		if len(decoded.Pages) != 1 {
			t.Errorf("expected 1 page in JSON, got %d", len(decoded.Pages))
		}
		if decoded.LLMSTxt == nil || !decoded.LLMSTxt.Found {
			t.Error("expected llms.txt probe result in JSON")
		}
	})

	t.Run("pretty print indents output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(sampleReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  \"") {
			t.Errorf("expected indented JSON, got:\n%s", buf.String())
		}
	})
}

// TestMarkdownWriter tests the Markdown output format.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	t.Run("contains report sections", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(sampleReport()); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		out := buf.String()
		for _, want := range []string{"# Crawl Report", "## llms.txt", "## Pages", "http://localhost:8893/one"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in markdown output, got:\n%s", want, out)
			}
		}
	})

	t.Run("failed run shows failure status", func(t *testing.T) {
		t.Parallel()

		r := model.NewReport("http://localhost:8893/")
		r.Failures = []model.Failure{
			{URL: "http://localhost:8893/", Stage: model.StageFetch, Message: "connection refused"},
		}

		var buf bytes.Buffer
		if _, err := NewMarkdownWriter(&buf).Write(r); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "Target fetch failed") {
			t.Errorf("expected failure status, got:\n%s", out)
		}
		if !strings.Contains(out, "## Failures") {
			t.Errorf("expected failures section, got:\n%s", out)
		}
	})
}

// TestMultiWriter tests fan-out to multiple writers.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewSimpleWriter(&a), NewJSONWriter(&b))

	if _, err := mw.Write(sampleReport()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if a.Len() == 0 {
		t.Error("expected simple output")
	}
	if b.Len() == 0 {
		t.Error("expected json output")
	}
}
