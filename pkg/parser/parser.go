// Package parser turns Solidity source into definitions. It selects the
// language version from the file's pragma, hands the source to one of the
// interchangeable backends and completes the result with ancestry that
// needs the whole file.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/yaklabco/lintspec/pkg/definition"
	"github.com/yaklabco/lintspec/pkg/parser/descent"
	"github.com/yaklabco/lintspec/pkg/parser/grammar"
	"github.com/yaklabco/lintspec/pkg/parser/scan"
)

// ErrUnsupportedVersion is returned when a file's language version is older
// than the selected backend supports.
var ErrUnsupportedVersion = errors.New("unsupported Solidity version")

// ErrUnknownBackend is returned by New for an unrecognized backend kind.
var ErrUnknownBackend = errors.New("unknown parser backend")

// Backend turns source into definitions for a given feature set. Offsets in
// the result are bytes regardless of what the backend uses internally.
type Backend interface {
	Name() string
	MinVersion() string
	Parse(src []byte, features grammar.Features) ([]definition.Definition, error)
}

// Kind names a backend.
type Kind string

const (
	// KindDescent builds a syntax tree by recursive descent.
	KindDescent Kind = "descent"

	// KindScan matches declaration patterns over a flat token stream.
	KindScan Kind = "scan"
)

// Kinds lists the available backends.
func Kinds() []Kind {
	return []Kind{KindDescent, KindScan}
}

// New returns the backend for kind. An empty kind selects KindDescent.
func New(kind Kind) (Backend, error) {
	switch kind {
	case KindDescent, "":
		return descent.New(), nil
	case KindScan:
		return scan.New(), nil
	default:
		names := make([]string, 0, len(Kinds()))
		for _, k := range Kinds() {
			names = append(names, string(k))
		}
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownBackend, kind, strings.Join(names, ", "))
	}
}

// Options controls parsing of one file.
type Options struct {
	// SkipVersionDetection parses with the newest known grammar instead of
	// reading the version pragma.
	SkipVersionDetection bool
}

// Parser parses files with one backend.
type Parser struct {
	backend Backend
	opts    Options
}

// NewParser wraps backend.
func NewParser(backend Backend, opts Options) *Parser {
	return &Parser{backend: backend, opts: opts}
}

// Backend returns the wrapped backend.
func (p *Parser) Backend() Backend {
	return p.backend
}

// Parse returns src's definitions in source order. Errors are either a
// *grammar.SyntaxError or wrap a version selection failure; both mean the
// file cannot be processed.
func (p *Parser) Parse(src []byte) ([]definition.Definition, error) {
	features, err := p.features(src)
	if err != nil {
		return nil, err
	}

	defs, err := p.backend.Parse(src, features)
	if err != nil {
		return nil, fmt.Errorf("%s backend: %w", p.backend.Name(), err)
	}

	resolveAncestors(defs)
	return defs, nil
}

func (p *Parser) features(src []byte) (grammar.Features, error) {
	if p.opts.SkipVersionDetection {
		return grammar.Latest(), nil
	}

	version, err := grammar.DetectVersion(src)
	if err != nil {
		return grammar.Features{}, fmt.Errorf("detect version: %w", err)
	}
	if semver.Compare(version, p.backend.MinVersion()) < 0 {
		return grammar.Features{}, fmt.Errorf("%w: %s needs at least %s, file selects %s",
			ErrUnsupportedVersion, p.backend.Name(), p.backend.MinVersion(), version)
	}
	return grammar.ForVersion(version)
}
