package configloader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/lintspec/pkg/config"
)

// MigrationResult contains the result of converting a legacy config.
type MigrationResult struct {
	// Config is the converted configuration.
	Config *config.Config

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string

	// SourcePath is the path to the legacy config.
	SourcePath string
}

// ConvertLegacyConfig reads a .lintspec.toml file and returns the
// equivalent configuration. Keys the TOML layout does not know are
// reported as warnings and dropped.
func ConvertLegacyConfig(path string) (*MigrationResult, error) {
	if !IsTOMLConfig(path) {
		return nil, fmt.Errorf("cannot convert %q: expected a .toml file", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg := config.NewConfig()
	unknown, err := cfg.MergeLegacyTOML(content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	result := &MigrationResult{Config: cfg, SourcePath: path}
	for _, key := range unknown {
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown key %q; skipping", key))
	}

	validation := ValidateWithFile(cfg, path)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	return result, nil
}

// GenerateMigrationHeader returns a header comment for migrated configs.
func GenerateMigrationHeader(sourcePath string) string {
	return fmt.Sprintf(`# lintspec configuration
# Migrated from: %s
# See: https://github.com/yaklabco/lintspec
`, filepath.Base(sourcePath))
}

// MigratedYAML renders a migration result with its header.
func (r *MigrationResult) MigratedYAML() ([]byte, error) {
	content, err := r.Config.ToYAMLWithHeader(GenerateMigrationHeader(r.SourcePath))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return content, nil
}
