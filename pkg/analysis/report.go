package analysis

import "time"

// Report contains pre-computed views of lint results.
// Computed once by Analyze, used by all renderers.
type Report struct {
	// Diagnostics is the flat list for detailed output.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	ByFile []FileAnalysis `json:"byFile,omitempty"`
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// ByKind counts diagnostics per kind name, such as "missing-param".
	ByKind map[string]int `json:"byKind,omitempty"`

	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry represents a single diagnostic in the report. Lines and
// columns are 1-based.
type DiagnosticEntry struct {
	FilePath    string `json:"filePath"`
	Item        string `json:"item"`
	ItemType    string `json:"itemType"`
	RuleID      string `json:"ruleId"`
	RuleName    string `json:"ruleName"`
	Kind        string `json:"kind"`
	Fatal       bool   `json:"fatal"`
	Message     string `json:"message"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	Items           int `json:"itemsWithIssues"`
	Issues          int `json:"totalIssues"`

	// Errors counts files that could not be read or parsed.
	Errors int `json:"errors"`

	// Warnings counts documentation findings.
	Warnings int `json:"warnings"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if any file failed to process.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Items    int      `json:"items"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Files    []string `json:"files,omitempty"`
}
