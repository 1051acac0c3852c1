package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/lintspec/internal/configloader"
	"github.com/yaklabco/lintspec/internal/logging"
	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/fsutil"
	"github.com/yaklabco/lintspec/pkg/lint"
	_ "github.com/yaklabco/lintspec/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/lintspec/pkg/parser"
	"github.com/yaklabco/lintspec/pkg/reporter"
	"github.com/yaklabco/lintspec/pkg/runner"
)

type lintFlags struct {
	exclude    []string
	backend    string
	output     string
	out        string
	ruleFormat string
	jobs       int
	ignoreFile string

	inheritdoc           bool
	inheritdocOverride   bool
	noticeOrDev          bool
	skipVersionDetection bool

	json            bool
	compact         bool
	sort            bool
	summary         bool
	summaryOrder    string
	includeVendored bool
	watch           bool

	// tags maps a flag name such as "param-required" to its item list.
	tags map[string]*[]string
}

// tagRequirements lists the requirement suffixes of per-tag flags in
// increasing precedence.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tagRequirements = []config.Req{config.Ignored, config.Required, config.Forbidden}

func newLintCommand(info BuildInfo) *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint NatSpec comments in Solidity files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, info)
		},
	}

	addLintFlags(cmd.Flags(), flags)

	return cmd
}

const lintLongDescription = `Check the NatSpec documentation of Solidity declarations.

By default, lints all .sol files in the current directory and its
subdirectories, skipping dependency folders such as node_modules and lib.
Specify paths to lint specific files or directories.

Per-tag requirements can be set for a list of item types, for example
--param-required=public-function,modifier. Item types are: contract,
interface, library, constructor, enum, error, event, modifier, struct,
private-function, internal-function, public-function, external-function,
private-variable, internal-variable and public-variable. When an item is
named by several flags, forbidden wins over required, which wins over
ignored.

Examples:
  lintspec                            # Lint current directory
  lintspec src/ test/Token.sol        # Lint a directory and a file
  lintspec --notice-or-dev            # Accept @dev in place of @notice
  lintspec --output json --compact    # Single-line JSON for tools
  lintspec --output github            # Annotations for GitHub Actions
  lintspec --watch src/               # Re-lint on every change`

func addLintFlags(fs *pflag.FlagSet, flags *lintFlags) {
	fs.StringSliceVarP(&flags.exclude, "exclude", "e", nil, "paths and glob patterns to skip")
	fs.StringVar(&flags.backend, "backend", config.BackendDescent, "parser backend: descent, scan")
	fs.StringVar(&flags.output, "output", string(config.FormatText),
		"output format: text, compact, pretty, table, json, github, sarif, summary, html")
	fs.StringVarP(&flags.out, "out", "o", "", "write the report to a file")
	fs.StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatName),
		"rule identifier format in output: name, id, or combined")
	fs.IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	fs.StringVar(&flags.ignoreFile, "ignore-file", runner.DefaultIgnoreFile,
		"file of exclude patterns in the working directory (\"-\" disables)")

	fs.BoolVar(&flags.inheritdoc, "inheritdoc", true,
		"accept a valid @inheritdoc in place of other tags on overriding items")
	fs.BoolVar(&flags.inheritdocOverride, "inheritdoc-override", false,
		"also accept @inheritdoc on internal overrides and modifiers")
	fs.BoolVar(&flags.noticeOrDev, "notice-or-dev", false,
		"accept @dev where @notice is required and vice versa")
	fs.BoolVar(&flags.skipVersionDetection, "skip-version-detection", false,
		"parse every file with the newest grammar")

	fs.BoolVar(&flags.json, "json", false, "shorthand for --output json")
	fs.BoolVar(&flags.compact, "compact", false, "one line per diagnostic, or minified JSON")
	fs.BoolVar(&flags.sort, "sort", false, "sort files by path before reporting")
	fs.BoolVar(&flags.summary, "summary", false, "print totals after the report")
	fs.StringVar(&flags.summaryOrder, "summary-order", string(reporter.SummaryOrderRules),
		"order of tables in summary output: rules, files")
	fs.BoolVar(&flags.includeVendored, "include-vendored", false,
		"also lint dependency folders such as node_modules and lib")
	fs.BoolVar(&flags.watch, "watch", false, "re-lint files when they change")

	flags.tags = make(map[string]*[]string)
	for _, tag := range config.TagNames() {
		items := "item types"
		if tag == config.TagTitle || tag == config.TagAuthor {
			items = strings.Join(configloader.ContractTypeAliases(), ", ")
		}
		for _, req := range tagRequirements {
			name := tag + "-" + string(req)
			list := new([]string)
			flags.tags[name] = list
			fs.StringSliceVar(list, name, nil, fmt.Sprintf("@%s is %s on these %s", tag, req, items))
			_ = fs.SetAnnotation(name, flagGroupAnnotation, []string{flagGroupTags})
		}
	}
}

// overrides collects the flags that were set on the command line.
func (f *lintFlags) overrides(fs *pflag.FlagSet, args []string) *configloader.Overrides {
	o := &configloader.Overrides{}

	if len(args) > 0 {
		o.Paths = args
	}
	if fs.Changed("exclude") {
		o.Exclude = f.exclude
	}

	boolFlags := map[string]struct {
		dst **bool
		val bool
	}{
		"inheritdoc":             {&o.Inheritdoc, f.inheritdoc},
		"inheritdoc-override":    {&o.InheritdocOverride, f.inheritdocOverride},
		"notice-or-dev":          {&o.NoticeOrDev, f.noticeOrDev},
		"skip-version-detection": {&o.SkipVersionDetection, f.skipVersionDetection},
		"json":                   {&o.JSON, f.json},
		"compact":                {&o.Compact, f.compact},
		"sort":                   {&o.Sort, f.sort},
	}
	for name, flag := range boolFlags {
		if fs.Changed(name) {
			*flag.dst = &flag.val
		}
	}

	stringFlags := map[string]struct {
		dst **string
		val string
	}{
		"backend":     {&o.Backend, f.backend},
		"output":      {&o.Output, f.output},
		"out":         {&o.Out, f.out},
		"rule-format": {&o.RuleFormat, f.ruleFormat},
	}
	for name, flag := range stringFlags {
		if fs.Changed(name) {
			*flag.dst = &flag.val
		}
	}

	if fs.Changed("jobs") {
		o.Jobs = &f.jobs
	}
	if fs.Changed("color") {
		if color, err := fs.GetString("color"); err == nil {
			o.Color = &color
		}
	}

	for _, tag := range config.TagNames() {
		for _, req := range tagRequirements {
			items := *f.tags[tag+"-"+string(req)]
			if len(items) > 0 {
				o.Tags = append(o.Tags, configloader.TagOverride{Tag: tag, Req: req, Items: items})
			}
		}
	}

	return o
}

// lintSession holds everything a lint run needs after configuration has
// been resolved. Watch mode reuses it for every re-run.
type lintSession struct {
	cfg     *config.Config
	runner  *runner.Runner
	runOpts runner.Options
	repOpts reporter.Options
	stdout  io.Writer
	stderr  io.Writer
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags, info BuildInfo) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	if flags.json && cmd.Flags().Changed("output") {
		return asUsageError(errors.New("--json and --output cannot be used together"))
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		Overrides:    flags.overrides(cmd.Flags(), args),
	})
	if err != nil {
		return asUsageError(fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	session, err := newLintSession(loadResult.Config, flags, workDir, info, cmd)
	if err != nil {
		return err
	}

	if flags.watch {
		return session.watch(ctx)
	}

	result, err := session.runner.Run(ctx, session.runOpts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	if err := session.report(ctx, result); err != nil {
		return err
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrDiagnosticsFound
	}
	return nil
}

func newLintSession(
	cfg *config.Config,
	flags *lintFlags,
	workDir string,
	info BuildInfo,
	cmd *cobra.Command,
) (*lintSession, error) {
	logger := logging.FromContext(cmd.Context())

	backend, err := parser.New(parser.Kind(cfg.Backend))
	if err != nil {
		return nil, asUsageError(err)
	}

	registry := lint.DefaultRegistry
	solParser := parser.NewParser(backend, parser.Options{SkipVersionDetection: cfg.SkipVersionDetection})
	engine := lint.NewEngine(solParser, registry)

	format := reporter.FromOutput(cfg.Output)

	logger.Debug("configuration resolved",
		logging.FieldBackend, solParser.Backend().Name(),
		"min_solidity", solParser.Backend().MinVersion(),
		logging.FieldFormat, format,
		logging.FieldJobs, cfg.Jobs,
	)

	return &lintSession{
		cfg:    cfg,
		runner: runner.New(lint.NewPipeline(engine)),
		runOpts: runner.Options{
			Paths:           cfg.Paths,
			WorkingDir:      workDir,
			Extensions:      runner.DefaultExtensions(),
			ExcludeGlobs:    cfg.Exclude,
			IgnoreFile:      flags.ignoreFile,
			IncludeVendored: flags.includeVendored,
			Jobs:            cfg.Jobs,
			KeepSource:      format == reporter.FormatPretty,
			Config:          cfg,
		},
		repOpts: reporter.Options{
			Format:       format,
			Color:        cfg.Color,
			ShowSummary:  flags.summary,
			Compact:      cfg.Compact,
			Sort:         cfg.Sort,
			RuleFormat:   cfg.RuleFormat,
			SummaryOrder: reporter.SummaryOrder(flags.summaryOrder),
			WorkingDir:   workDir,
			ToolVersion:  info.Version,
			Rules:        registry.Rules(),
		},
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	}, nil
}

// report renders result. Reports with findings go to stderr and clean
// reports to stdout, unless --out names a file.
func (s *lintSession) report(ctx context.Context, result *runner.Result) error {
	opts := s.repOpts

	var buf bytes.Buffer
	switch {
	case s.cfg.Out != "":
		opts.Writer = &buf
		opts.Color = "never"
	case ExitCodeFromResult(result) != ExitSuccess:
		opts.Writer = s.stderr
	default:
		opts.Writer = s.stdout
	}

	rep, err := reporter.New(opts)
	if err != nil {
		return asUsageError(fmt.Errorf("create reporter: %w", err))
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if s.cfg.Out != "" {
		if err := fsutil.WriteAtomic(ctx, s.cfg.Out, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logging.FromContext(ctx).Info("wrote report", logging.FieldOutput, s.cfg.Out)
	}

	return nil
}
