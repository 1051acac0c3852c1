package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/yaklabco/lintspec/internal/configloader"
	"github.com/yaklabco/lintspec/internal/ui/pretty"
	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a check in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// rulesOutput is the JSON document printed by `rules --format json`.
type rulesOutput struct {
	Rules        []ruleInfo                   `json:"rules"`
	Requirements map[string]map[string]string `json:"requirements"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules [rule...]",
		Short: "List checks and the resolved tag requirements",
		Long: `List the built-in checks, then the tag requirements for every item
type after applying configuration files, LINTSPEC_* environment variables
and defaults.

Rules can be named by ID (NS005), name (param) or both (NS005/param) to
list only those checks.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("get config flag: %w", err)
			}
			loaded, err := configloader.Load(cmd.Context(), configloader.LoadOptions{ExplicitPath: configPath})
			if err != nil {
				return asUsageError(fmt.Errorf("load configuration: %w", err))
			}

			rules, err := selectRules(lint.DefaultRegistry, args)
			if err != nil {
				return asUsageError(err)
			}
			out := cmd.OutOrStdout()

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(out, rules, loaded.Config)
			case "text", "":
				colorMode, _ := cmd.Flags().GetString("color")
				return outputRulesText(out, rules, loaded.Config, config.RuleFormat(flags.ruleFormat), colorMode)
			default:
				return asUsageError(fmt.Errorf("invalid format %q: must be text or json", flags.format))
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatName),
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// selectRules returns the named rules in the order given, or every rule
// when names is empty.
func selectRules(registry *lint.Registry, names []string) ([]lint.Rule, error) {
	if len(names) == 0 {
		return registry.Rules(), nil
	}
	rules := make([]lint.Rule, 0, len(names))
	for _, name := range names {
		rule, ok := registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func outputRulesText(
	out io.Writer,
	rules []lint.Rule,
	cfg *config.Config,
	ruleFormat config.RuleFormat,
	colorMode string,
) error {
	colorEnabled := pretty.IsColorEnabled(colorMode, out)
	styles := pretty.NewStyles(colorEnabled)

	fmt.Fprintln(out, styles.Bold.Render("Checks"))
	for _, rule := range rules {
		fmt.Fprintf(out, "  %-24s %s\n",
			config.FormatRuleID(ruleFormat, rule.ID(), rule.Name()), rule.Description())
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Bold.Render("Requirements"))
	fmt.Fprintln(out, requirementsTable(cfg, colorEnabled))
	return nil
}

// requirementsTable renders one row per bucket and one column per tag.
// Title and author cells of buckets they do not apply to stay empty.
func requirementsTable(cfg *config.Config, colorEnabled bool) string {
	headers := append([]string{"item"}, config.TagNames()...)

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	reqStyles := map[config.Req]lipgloss.Style{
		config.Required:  cellStyle,
		config.Ignored:   cellStyle,
		config.Forbidden: cellStyle,
	}
	if colorEnabled {
		reqStyles[config.Required] = cellStyle.Foreground(lipgloss.Color("11"))
		reqStyles[config.Ignored] = cellStyle.Foreground(lipgloss.Color("8"))
		reqStyles[config.Forbidden] = cellStyle.Foreground(lipgloss.Color("9"))
	}

	buckets := cfg.Buckets()
	rows := make([][]string, 0, len(buckets))
	for _, bucket := range buckets {
		row := []string{bucket.Name}
		for _, tag := range config.TagNames() {
			if (tag == config.TagTitle || tag == config.TagAuthor) && !bucket.TypeBucket() {
				row = append(row, "")
				continue
			}
			row = append(row, bucket.Rules.Field(tag).String())
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow || col == 0 {
				return cellStyle.Bold(colorEnabled)
			}
			return reqStyles[config.Req(rows[row][col])]
		}).
		String()
}

// outputRulesJSON outputs checks and requirements as one JSON document.
func outputRulesJSON(out io.Writer, rules []lint.Rule, cfg *config.Config) error {
	doc := rulesOutput{
		Rules:        make([]ruleInfo, 0, len(rules)),
		Requirements: make(map[string]map[string]string),
	}
	for _, rule := range rules {
		doc.Rules = append(doc.Rules, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Tags:        rule.Tags(),
		})
	}
	for _, bucket := range cfg.Buckets() {
		reqs := make(map[string]string)
		for _, tag := range config.TagNames() {
			if (tag == config.TagTitle || tag == config.TagAuthor) && !bucket.TypeBucket() {
				continue
			}
			reqs[tag] = bucket.Rules.Field(tag).String()
		}
		doc.Requirements[bucket.Name] = reqs
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
