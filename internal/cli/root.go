// Package cli provides the Cobra command structure for lintspec.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintspec/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root lintspec command with all subcommands.
// Running the root command without a subcommand lints, so `lintspec src/`
// and `lintspec lint src/` are equivalent.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var logFormat string
	var configPath string
	var color string

	flags := &lintFlags{}

	rootCmd := &cobra.Command{
		Use:   "lintspec [paths...]",
		Short: "A fast NatSpec linter for Solidity",
		Long: `lintspec checks that Solidity declarations carry complete and
consistent NatSpec documentation.

Each kind of item (contracts, functions by visibility, events, errors,
modifiers, structs, enums, variables) has its own set of required, ignored
and forbidden tags. Missing, extra and duplicated @param and @return tags
are reported with exact source positions, and @inheritdoc is checked
against the ancestors declared in the same file.`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			formatter, err := logging.ParseFormat(logFormat)
			if err != nil {
				return asUsageError(err)
			}
			level := "warn"
			if debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level, formatter)
			logging.SetDefault(logger)
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags, info)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatText,
		"log output format: text, json, logfmt")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	addLintFlags(rootCmd.Flags(), flags)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return asUsageError(err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
