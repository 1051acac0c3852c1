package runner

import "github.com/yaklabco/lintspec/pkg/lint"

// FileOutcome pairs a discovered path with its lint result.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result holds the file's diagnostics. It is nil when the file was
	// never processed, for example after cancellation.
	Result *lint.FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesErrored counts files that could not be read or parsed.
	FilesErrored int

	// FilesWithIssues counts files with at least one diagnostic, fatal
	// ones included.
	FilesWithIssues int

	DiagnosticsTotal   int
	DiagnosticsByKind  map[string]int
	DefinitionsChecked int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, in discovery
	// order (sorted by path).
	Files []FileOutcome

	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasIssues reports whether any diagnostics were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.DiagnosticsTotal > 0
}

// HasFailures reports whether any file could not be read or parsed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// FileResults returns the non-nil lint results in order.
func (r *Result) FileResults() []*lint.FileResult {
	if r == nil {
		return nil
	}
	out := make([]*lint.FileResult, 0, len(r.Files))
	for _, outcome := range r.Files {
		if outcome.Result != nil {
			out = append(out, outcome.Result)
		}
	}
	return out
}

func newStats() Stats {
	return Stats{
		DiagnosticsByKind: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	fr := outcome.Result
	if fr == nil {
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.DefinitionsChecked += fr.Definitions
	if fr.Fatal() {
		r.Stats.FilesErrored++
	}

	count := fr.IssueCount()
	r.Stats.DiagnosticsTotal += count
	if count > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, item := range fr.Items {
		for _, diag := range item.Diags {
			r.Stats.DiagnosticsByKind[diag.Kind.String()]++
		}
	}
}
