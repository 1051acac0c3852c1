package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/runner"
)

// GitHubReporter writes GitHub Actions workflow commands, one annotation
// per diagnostic:
//
//	::warning file=src/Token.sol,line=12,col=31,endLine=12,endColumn=33,title=param::@param to is missing
type GitHubReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewGitHubReporter creates a new GitHub annotation reporter.
func NewGitHubReporter(opts Options) *GitHubReporter {
	return &GitHubReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *GitHubReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	views := collectFiles(result, r.opts)
	for _, view := range views {
		if view.Err != nil && view.Result == nil {
			fmt.Fprintf(r.bw, "::error file=%s::%s\n", escapeProperty(view.Path), escapeData(view.Err.Error()))
			continue
		}
		items := view.items()
		for i := range items {
			item := &items[i]
			for j := range item.Diags {
				diag := &item.Diags[j]
				level := "warning"
				if diag.Kind.Fatal() {
					level = "error"
				}
				message := diag.Message
				if !item.File {
					message = item.QualifiedName() + ": " + message
				}
				fmt.Fprintf(r.bw, "::%s file=%s,line=%d,col=%d,endLine=%d,endColumn=%d,title=%s::%s\n",
					level,
					escapeProperty(view.Path),
					diag.Range.Start.Line+1, diag.Range.Start.Column+1,
					diag.Range.End.Line+1, diag.Range.End.Column+1,
					escapeProperty(config.FormatRuleID(r.opts.RuleFormat, diag.RuleID, diag.RuleName)),
					escapeData(message),
				)
			}
		}
	}

	return countIssues(views), nil
}

// https://github.com/actions/toolkit/blob/main/packages/core/src/command.ts
//
//nolint:gochecknoglobals // Read-only replacers.
var (
	dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

func escapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}
