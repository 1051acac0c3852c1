package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/yaklabco/lintspec/internal/logging"
	"github.com/yaklabco/lintspec/pkg/parser"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of lintspec.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewInteractive(cmd.OutOrStdout())

			logger.Info("lintspec",
				logging.FieldVersion, info.Version,
				logging.FieldCommit, info.Commit,
				logging.FieldBuilt, info.Date,
				"go", runtime.Version(),
			)
			for _, kind := range parser.Kinds() {
				backend, err := parser.New(kind)
				if err != nil {
					continue
				}
				logger.Info("backend", "name", backend.Name(), "min_solidity", backend.MinVersion())
			}
		},
	}
}
