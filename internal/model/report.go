package model

import "time"

// Failure stages identify which fetch attempt failed.
// Reports only distinguish a failed llms.txt probe from a failed page
// fetch; there is no deeper error taxonomy.
const (
	// StageProbe marks a failure during the llms.txt probe.
	StageProbe = "probe"

	// StageFetch marks a failure while fetching a page.
	StageFetch = "fetch"
)

// Failure records a fetch attempt that did not succeed.
// Failures are reported to the console; they never abort the run.
type Failure struct {
	// URL is the URL whose fetch failed.
	URL string `json:"url"`

	// Stage is either StageProbe or StageFetch.
	Stage string `json:"stage"`

	// Message is the human-readable cause of the failure.
	Message string `json:"message"`
}

// LLMSTxt holds the outcome of probing for an llms.txt resource
// under the target URL.
type LLMSTxt struct {
	// URL is the probed llms.txt URL.
	URL string `json:"url"`

	// Found is true when the probe returned a non-empty text resource.
	Found bool `json:"found"`

	// Content is the llms.txt content when found.
	Content string `json:"content,omitempty"`

	// Size is the content size in bytes.
	Size int `json:"size,omitempty"`
}

// Report is the full result of one crawl run.
//
// Design decision: The report accumulates everything during the run and is
// rendered once at the end by the report package. This keeps fetching and
// presentation separate and makes re-runs against an unchanged server
// produce identical output.
type Report struct {
	// Target is the start URL as provided by the operator (after
	// normalization, e.g. an http:// scheme added when missing).
	Target string `json:"target"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total run duration.
	Elapsed time.Duration `json:"elapsed"`

	// LLMSTxt is the probe outcome. Nil when the probe was declined,
	// in which case no request to the llms.txt URL was ever issued.
	LLMSTxt *LLMSTxt `json:"llms_txt,omitempty"`

	// Pages contains all pages fetched during the run, in visit order.
	// With the default depth of 0 this holds at most the target page.
	Pages []*Page `json:"pages"`

	// Failures contains all fetch attempts that failed.
	Failures []Failure `json:"failures,omitempty"`
}

// NewReport creates a Report for the given target URL.
func NewReport(target string) *Report {
	return &Report{
		Target:    target,
		StartedAt: time.Now(),
		Pages:     make([]*Page, 0),
		Failures:  make([]Failure, 0),
	}
}

// AddFailure records a failed fetch attempt.
func (r *Report) AddFailure(url, stage string, err error) {
	r.Failures = append(r.Failures, Failure{
		URL:     url,
		Stage:   stage,
		Message: err.Error(),
	})
}

// TargetFetched reports whether the target page itself was retrieved.
// The run's exit status reflects this: probe failures and broken outbound
// links are non-fatal, an unreachable target is not.
func (r *Report) TargetFetched() bool {
	return len(r.Pages) > 0
}

// TotalLinks returns the number of links discovered across all pages.
func (r *Report) TotalLinks() int {
	total := 0
	for _, p := range r.Pages {
		total += len(p.Links)
	}
	return total
}
