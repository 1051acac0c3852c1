package reporter

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/lintspec/pkg/analysis"
	"github.com/yaklabco/lintspec/pkg/config"
)

const htmlStyle = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:72rem;padding:0 1rem}
table{border-collapse:collapse;margin-bottom:1.5rem;width:100%}
th,td{border:1px solid #ccc;padding:.25rem .5rem;text-align:left}
th{background:#f4f4f4}
code{font-size:.9em}`

// HTMLRenderer writes a standalone HTML page. The report is composed as
// GitHub-flavored Markdown and converted with goldmark.
type HTMLRenderer struct {
	opts Options
	md   goldmark.Markdown
	out  io.Writer
}

// NewHTMLRenderer creates a new HTML renderer.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{
		opts: opts,
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
		out:  opts.Writer,
	}
}

// Render implements Renderer.
func (r *HTMLRenderer) Render(_ context.Context, report *analysis.Report) error {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(r.Markdown(report)), &body); err != nil {
		return fmt.Errorf("convert report: %w", err)
	}

	_, err := fmt.Fprintf(r.out, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>lintspec report</title>
<style>
%s
</style>
</head>
<body>
%s</body>
</html>
`, htmlStyle, body.String())
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Markdown composes the report body.
func (r *HTMLRenderer) Markdown(report *analysis.Report) string {
	var buf strings.Builder

	version := r.opts.ToolVersion
	if version == "" {
		version = "dev"
	}
	buf.WriteString("# lintspec report\n\n")
	fmt.Fprintf(&buf, "Generated %s by lintspec %s.\n\n",
		report.Timestamp.UTC().Format("2006-01-02 15:04:05 MST"), mdEscape(version))

	totals := report.Totals
	buf.WriteString("| Files checked | Files with issues | Items | Issues | Errors | Warnings |\n")
	buf.WriteString("|---:|---:|---:|---:|---:|---:|\n")
	fmt.Fprintf(&buf, "| %d | %d | %d | %d | %d | %d |\n\n",
		totals.Files, totals.FilesWithIssues, totals.Items, totals.Issues, totals.Errors, totals.Warnings)

	if !totals.HasIssues() {
		buf.WriteString(noIssueMessage + ".\n")
		return buf.String()
	}

	if len(report.ByRule) > 0 {
		buf.WriteString("## Rules\n\n")
		buf.WriteString("| Rule | Issues | Files |\n|---|---:|---:|\n")
		for _, rule := range report.ByRule {
			fmt.Fprintf(&buf, "| %s | %d | %d |\n",
				mdEscape(config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName)), rule.Issues, len(rule.Files))
		}
		buf.WriteString("\n")
	}

	if len(report.Diagnostics) > 0 {
		buf.WriteString("## Diagnostics\n\n")
		buf.WriteString("| Location | Item | Message | Rule |\n|---|---|---|---|\n")
		for _, diag := range report.Diagnostics {
			fmt.Fprintf(&buf, "| `%s:%d:%d` | %s | %s | %s |\n",
				strings.ReplaceAll(diag.FilePath, "`", "'"), diag.StartLine, diag.StartColumn,
				mdEscape(diag.ItemType+" "+diag.Item),
				mdEscape(diag.Message),
				mdEscape(config.FormatRuleID(r.opts.RuleFormat, diag.RuleID, diag.RuleName)),
			)
		}
	}

	return buf.String()
}

//nolint:gochecknoglobals // Read-only replacer.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "#", `\#`,
)

// mdEscape makes s safe inside a Markdown table cell.
func mdEscape(s string) string {
	return mdEscaper.Replace(html.EscapeString(s))
}
