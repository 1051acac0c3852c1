// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered merging,
// environment variable support, validation, and migration of legacy
// .lintspec.toml files.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Overrides contains values from CLI flags. These take highest
	// precedence.
	Overrides *Overrides
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.Overrides)
//  2. Environment variables (LINTSPEC_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.lintspec.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/lintspec/config.yml)
//  6. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	if !opts.IgnoreUserConfig && paths.User != "" {
		if err := result.mergeFile(cfg, paths.User); err != nil {
			return nil, fmt.Errorf("load user config: %w", err)
		}
	}

	if !opts.IgnoreProjectConfig && opts.ExplicitPath == "" && paths.Project != "" {
		if err := result.mergeFile(cfg, paths.Project); err != nil {
			return nil, fmt.Errorf("load project config: %w", err)
		}
		result.legacyWarnings(paths)
	}

	if opts.ExplicitPath != "" {
		if err := result.mergeFile(cfg, opts.ExplicitPath); err != nil {
			return nil, fmt.Errorf("load explicit config: %w", err)
		}
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if err := opts.Overrides.Apply(cfg); err != nil {
		return nil, err
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// mergeFile decodes the file at path on top of cfg, picking the decoder
// from the extension.
func (r *LoadResult) mergeFile(cfg *config.Config, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if IsTOMLConfig(path) {
		unknown, err := cfg.MergeLegacyTOML(content)
		if err != nil {
			return &ValidationError{FilePath: path, Message: err.Error()}
		}
		for _, key := range unknown {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: unknown key %q; it will be ignored", path, key))
		}
	} else if err := cfg.MergeYAML(content); err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}

	r.LoadedFrom = append(r.LoadedFrom, path)
	return nil
}

// legacyWarnings reports TOML project configs that should be migrated.
func (r *LoadResult) legacyWarnings(paths *ConfigPaths) {
	switch {
	case paths.Legacy != "":
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("both %s and %s exist; using %s", paths.Project, paths.Legacy, paths.Project))
	case IsTOMLConfig(paths.Project):
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("%s is deprecated; run 'lintspec migrate' to convert it to %s", paths.Project, DefaultConfigFile))
	}
}

// WriteConfig writes a configuration to a YAML file with the standard
// header.
func WriteConfig(ctx context.Context, cfg *config.Config, path string) error {
	content, err := cfg.ToYAMLWithHeader(config.DefaultTemplateHeader())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
