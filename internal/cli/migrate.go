package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintspec/internal/configloader"
	"github.com/yaklabco/lintspec/internal/logging"
	"github.com/yaklabco/lintspec/pkg/fsutil"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
	input  string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert a .lintspec.toml configuration to YAML",
		Long: `Convert a legacy .lintspec.toml file to the .lintspec.yml format.

If no input file is specified, the command looks for .lintspec.toml in the
current directory. Keys the TOML layout does not define are reported and
dropped.

Examples:
  lintspec migrate                       Convert ./.lintspec.toml
  lintspec migrate config/lintspec.toml  Convert a specific file
  lintspec migrate --output custom.yml   Write to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.input = args[0]
			}
			return runMigrate(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing output file, keeping a .bak copy")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.DefaultConfigFile, "output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, flags *migrateFlags) error {
	ctx := cmd.Context()
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	inputPath := flags.input
	if inputPath == "" {
		inputPath = configloader.LegacyConfigFile
	}
	if _, err := os.Stat(inputPath); errors.Is(err, os.ErrNotExist) {
		return asUsageError(fmt.Errorf("input file does not exist: %s", inputPath))
	}

	result, err := configloader.ConvertLegacyConfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	content, err := result.MigratedYAML()
	if err != nil {
		return fmt.Errorf("serialize configuration: %w", err)
	}

	absOutput, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := backupExisting(ctx, absOutput, flags.output, flags.force, logger); err != nil {
		return err
	}

	if err := fsutil.WriteAtomic(ctx, absOutput, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)
	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}
	logger.Info("you can now delete the old configuration file", logging.FieldPath, inputPath)

	return nil
}
