package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// SummaryOrder controls which table the summary format prints first.
type SummaryOrder string

const (
	SummaryOrderRules SummaryOrder = "rules"
	SummaryOrderFiles SummaryOrder = "files"
)

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stderr).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses one line per diagnostic for text output and minified
	// JSON.
	Compact bool

	// Sort orders files by path before rendering.
	Sort bool

	// RuleFormat controls how rule identifiers appear in output.
	RuleFormat config.RuleFormat

	// SummaryOrder controls the order of tables in summary output.
	SummaryOrder SummaryOrder

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// ToolVersion is reported by the SARIF and HTML formats.
	ToolVersion string

	// TermWidth caps pretty and table output. 0 asks the terminal.
	TermWidth int

	// Rules describes the available checks for the SARIF driver.
	Rules []lint.Rule
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowSummary:  false,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: SummaryOrderRules,
		ToolVersion:  "dev",
	}
}
