// Package runner discovers Solidity files and lints them concurrently.
package runner

import "github.com/yaklabco/lintspec/pkg/config"

// DefaultIgnoreFile is the name of the ignore file read from the working
// directory.
const DefaultIgnoreFile = ".nsignore"

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Solidity. Defaults to [".sol"].
	Extensions []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge the config's exclude list and CLI flags.
	ExcludeGlobs []string

	// IgnoreFile names a gitignore-style file under WorkingDir whose
	// patterns are added to ExcludeGlobs. Empty means DefaultIgnoreFile;
	// "-" disables it.
	IgnoreFile string

	// IncludeVendored walks into dependency directories such as
	// node_modules and lib, which are skipped by default.
	IncludeVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// KeepSource retains file contents on results for reporters that
	// print source excerpts.
	KeepSource bool

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the default set of Solidity file extensions.
func DefaultExtensions() []string {
	return []string{".sol"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) ignoreFile() string {
	switch o.IgnoreFile {
	case "":
		return DefaultIgnoreFile
	case "-":
		return ""
	default:
		return o.IgnoreFile
	}
}
