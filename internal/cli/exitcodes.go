package cli

import (
	"errors"

	"github.com/yaklabco/lintspec/internal/configloader"
	"github.com/yaklabco/lintspec/pkg/runner"
)

// Exit codes for lintspec.
const (
	// ExitSuccess indicates a run with no diagnostics.
	ExitSuccess = 0

	// ExitDiagnostics indicates lint completed and found diagnostics.
	ExitDiagnostics = 1

	// ExitUsage indicates invalid command-line usage or configuration.
	ExitUsage = 2

	// ExitInternal indicates an internal error.
	ExitInternal = 3
)

// ErrDiagnosticsFound is returned when lint finds at least one diagnostic.
var ErrDiagnosticsFound = errors.New("diagnostics found")

// usageError marks errors caused by the invocation rather than the run.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func asUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// ExitCode maps an error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrDiagnosticsFound) {
		return ExitDiagnostics
	}

	var usage *usageError
	var validation *configloader.ValidationError
	if errors.As(err, &usage) || errors.As(err, &validation) {
		return ExitUsage
	}
	return ExitInternal
}

// ExitCodeFromResult determines the exit code of a completed run. Files
// that failed to parse carry a diagnostic and count as findings.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.HasIssues() || result.HasFailures() {
		return ExitDiagnostics
	}
	return ExitSuccess
}
