// Package main is the entry point for the lintspec CLI.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/yaklabco/lintspec/internal/cli"
	"github.com/yaklabco/lintspec/internal/logging"

	// Register the built-in checks.
	_ "github.com/yaklabco/lintspec/pkg/lint/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.ExecuteContext(context.Background())
	if err != nil && !errors.Is(err, cli.ErrDiagnosticsFound) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}
	return cli.ExitCode(err)
}
