package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/lintspec/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "functions.public.param").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	for _, fe := range cfg.Validate() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   fe.Field,
			Value:   fe.Value,
			Message: fe.Message,
		})
	}

	validateRequirements(cfg, result)
	validateExcludePatterns(cfg, result)

	return result
}

// validateRequirements catches values that bypassed ParseReq, such as
// requirements set programmatically, and title or author set on buckets
// that never carry them.
func validateRequirements(cfg *config.Config, result *ValidationResult) {
	for _, bucket := range cfg.Buckets() {
		for _, tag := range config.TagNames() {
			req := *bucket.Rules.Field(tag)
			field := bucket.Name + "." + tag

			if _, err := config.ParseReq(string(req.Normalize())); err != nil {
				result.Errors = append(result.Errors, ValidationError{
					Field:   field,
					Value:   req,
					Message: err.Error(),
				})
				continue
			}

			isContractTag := tag == config.TagTitle || tag == config.TagAuthor
			if isContractTag && !bucket.TypeBucket() && req.Normalize() != config.Ignored {
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   field,
					Value:   req,
					Message: fmt.Sprintf("@%s only applies to contracts, interfaces and libraries; it will be ignored", tag),
				})
			}
		}
	}
}

// validateExcludePatterns checks that exclude patterns are valid globs.
func validateExcludePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Exclude {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("exclude[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
