package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintspec/internal/configloader"
	"github.com/yaklabco/lintspec/internal/logging"
	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a lintspec configuration file",
		Long: `Create a .lintspec.yml configuration file in the current directory
holding the default tag requirements, with comments explaining each setting.

Examples:
  lintspec init                      Create .lintspec.yml with global settings
  lintspec init --full               Also write every item type's requirements
  lintspec init --format toml        Create a legacy .lintspec.toml
  lintspec init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing file, keeping a .bak copy")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write the requirements of every item type")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: .lintspec.yml or .lintspec.toml)")

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return asUsageError(err)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.DefaultConfigFile
		if flags.format == "toml" {
			outputPath = configloader.LegacyConfigFile
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := backupExisting(ctx, absPath, outputPath, flags.force, logger); err != nil {
		return err
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.format == "toml" {
		logger.Warn("the TOML layout is deprecated; prefer the default YAML format")
	}
	logger.Info("run 'lintspec rules' to see the resolved requirements")

	return nil
}

// backupExisting refuses to replace path unless force is set, in which
// case the old file is copied aside first.
func backupExisting(ctx context.Context, path, display string, force bool, logger interface {
	Warn(msg any, keyvals ...any)
}) error {
	if _, err := os.Stat(path); err != nil {
		return nil //nolint:nilerr // Nothing to back up.
	}
	if !force {
		return asUsageError(fmt.Errorf("file %q already exists; use --force to overwrite", display))
	}

	backup, err := fsutil.Backup(ctx, path)
	if err != nil {
		return fmt.Errorf("back up %s: %w", display, err)
	}
	logger.Warn("overwriting existing file", logging.FieldPath, display, logging.FieldBackup, backup)
	return nil
}
