package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/lintspec/internal/ui/pretty"
)

// flagGroupAnnotation marks flags that help prints in their own section.
const flagGroupAnnotation = "lintspec_group"

// flagGroupTags is the group of the per-tag requirement flags.
const flagGroupTags = "tags"

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	plain := lipgloss.NewStyle()
	if !colorEnabled {
		return &HelpStyles{
			Command: plain, Heading: plain, Subcommand: plain, Flag: plain,
			Description: plain, Example: plain, Dim: plain,
		}
	}
	return &HelpStyles{
		Command:     plain.Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     plain.Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  plain.Foreground(lipgloss.Color("10")),
		Flag:        plain.Foreground(lipgloss.Color("12")),
		Description: plain,
		Example:     plain.Foreground(lipgloss.Color("8")),
		Dim:         plain.Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- with (flags .LocalFlags false)}}

{{ heading "Flags:" }}
{{ . }}
{{- end}}

{{- with (flags .LocalFlags true)}}

{{ heading "Tag Requirement Flags:" }}
{{ . }}
{{- end}}

{{- with (flags .InheritedFlags false)}}

{{ heading "Global Flags:" }}
{{ . }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}` + usageTemplate

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"command":    h.styles.Command.Render,
		"heading":    h.styles.Heading.Render,
		"subcommand": h.styles.Subcommand.Render,
		"example":    h.styles.Example.Render,
		"dim":        h.styles.Dim.Render,
		"flags":      h.flagUsages,
		"join":       strings.Join,
		"rpad":       rpad,
		"trimRight":  trimTrailingWhitespaces,
	}
}

// flagUsages renders the visible flags of fs that belong (or do not
// belong) to the tag group.
func (h *HelpFormatter) flagUsages(fs *pflag.FlagSet, tagGroup bool) string {
	subset := pflag.NewFlagSet("help", pflag.ContinueOnError)
	fs.VisitAll(func(flag *pflag.Flag) {
		if flag.Hidden {
			return
		}
		group := flag.Annotations[flagGroupAnnotation]
		inTags := len(group) > 0 && group[0] == flagGroupTags
		if inTags == tagGroup {
			subset.AddFlag(flag)
		}
	})

	usages := strings.TrimSuffix(subset.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine colors the flag names of one usage line and dims the
// value type. pflag separates the definition from the description with
// at least two spaces; the padding is kept so columns stay aligned.
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	cut := strings.Index(trimmed, "  ")
	if cut < 0 {
		return line
	}
	def := trimmed[:cut]
	desc := strings.TrimLeft(trimmed[cut:], " ")
	gap := trimmed[cut : len(trimmed)-len(desc)]

	tokens := strings.Fields(def)
	for i, token := range tokens {
		if strings.HasPrefix(token, "-") {
			name, comma := strings.CutSuffix(token, ",")
			tokens[i] = h.styles.Flag.Render(name)
			if comma {
				tokens[i] += ","
			}
		} else {
			tokens[i] = h.styles.Dim.Render(token)
		}
	}

	return indent + strings.Join(tokens, " ") + gap + desc
}

// ApplyToCommand applies styled help templates to a Cobra command and all subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()
	render := func(name, text string, command *cobra.Command) error {
		tmpl, err := template.New(name).Funcs(funcs).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render("usage", usageTemplate, command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render("help", helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
