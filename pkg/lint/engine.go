package lint

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/yaklabco/lintspec/pkg/config"
	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/textindex"
)

// Identities of findings that no registered rule produces.
const (
	ParsingErrorID   = "NS009"
	ParsingErrorName = "parsing-error"
	IOErrorID        = "NS010"
	IOErrorName      = "io-error"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Path is the file path as given to the engine.
	Path string

	// Items holds the declarations with at least one diagnostic, in source
	// order.
	Items []ItemDiagnostics

	// Definitions is the number of declarations checked.
	Definitions int

	// Source is the file content. It is only kept on request.
	Source []byte

	// Err is set when the file could not be read or parsed. The failure is
	// also reported as a single synthetic item.
	Err error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Items) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	count := 0
	for i := range fr.Items {
		count += len(fr.Items[i].Diags)
	}
	return count
}

// Fatal reports whether the file could not be checked at all.
func (fr *FileResult) Fatal() bool {
	return fr.Err != nil
}

// Engine coordinates parsing and rule execution for linting.
type Engine struct {
	// Parser extracts declarations from source files.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintDefinition runs every rule against def. Diagnostics are ordered by
// position. The result depends only on def and cfg.
func (e *Engine) LintDefinition(def *definition.Definition, cfg *config.Config) ItemDiagnostics {
	return lintDefinition(e.Registry.Rules(), def, cfg)
}

func lintDefinition(rules []Rule, def *definition.Definition, cfg *config.Config) ItemDiagnostics {
	item := ItemDiagnostics{
		Parent:     def.Parent,
		Kind:       def.Kind,
		Visibility: def.Visibility,
		Name:       def.Name,
		Span:       def.Span,
	}

	ctx := NewRuleContext(def, cfg)
	for _, rule := range rules {
		item.Diags = append(item.Diags, rule.Apply(ctx)...)
	}

	slices.SortStableFunc(item.Diags, func(a, b Diagnostic) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})
	return item
}

// LintFile parses content and lints every declaration in it. Only
// declarations with findings are kept. A parse failure is returned as an
// error; the file is otherwise processed to completion.
func (e *Engine) LintFile(path string, content []byte, cfg *config.Config) (*FileResult, error) {
	defs, err := e.Parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	rules := e.Registry.Rules()
	idx := textindex.New(content)
	result := &FileResult{
		Path:        path,
		Definitions: len(defs),
	}

	for i := range defs {
		item := lintDefinition(rules, &defs[i], cfg)
		if len(item.Diags) == 0 {
			continue
		}
		item.Range = idx.Range(item.Span)
		for j := range item.Diags {
			item.Diags[j].Range = idx.Range(item.Diags[j].Span)
		}
		result.Items = append(result.Items, item)
	}

	slices.SortStableFunc(result.Items, func(a, b ItemDiagnostics) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})
	return result, nil
}

// fatalResult reports a file-level failure as one synthetic item anchored
// at the start of the file.
func fatalResult(path string, kind DiagnosticKind, id, name string, err error) *FileResult {
	diag := NewDiagnostic(nil, kind, textindex.Span{}, err.Error()).
		WithRuleID(id, name).
		Build()
	return &FileResult{
		Path: path,
		Items: []ItemDiagnostics{{
			File:  true,
			Name:  filepath.Base(path),
			Diags: []Diagnostic{diag},
		}},
		Err: err,
	}
}
