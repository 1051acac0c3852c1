package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/fsutil"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = fsutil.ErrNotFound

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = fsutil.ErrPermissionDenied

	// ErrParseFailure indicates a parsing error.
	ErrParseFailure = errors.New("parse failure")
)

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	// KeepSource retains the file content in the result, for renderers that
	// print excerpts.
	KeepSource bool
}

// Pipeline processes single files: read, parse, lint.
type Pipeline struct {
	// Engine is the lint engine used for parsing and rule execution.
	Engine *Engine
}

// NewPipeline creates a new pipeline with the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile reads and lints one file.
//
// Read and parse failures do not produce an error: they are recorded in the
// result as a synthetic diagnostic so that sibling files carry on. The only
// error is cancellation, checked before the file is opened.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return fatalResult(path, KindIOError, IOErrorID, IOErrorName, categorizeError(err)), nil
	}

	return p.ProcessContent(ctx, path, content, cfg, opts)
}

// ProcessContent lints in-memory content without file I/O.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*FileResult, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("processing cancelled: %w", ctx.Err())
	default:
	}

	result, err := p.Engine.LintFile(path, content, cfg)
	if err != nil {
		result = fatalResult(path, KindParsingError, ParsingErrorID, ParsingErrorName,
			fmt.Errorf("%w: %w", ErrParseFailure, err))
	}
	if opts.KeepSource {
		result.Source = content
	}
	return result, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) && !errors.Is(err, ErrFileNotFound) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, os.ErrPermission) && !errors.Is(err, ErrPermissionDenied) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}
