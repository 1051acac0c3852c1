package lint

import "github.com/yaklabco/lintspec/pkg/definition"

// Parser extracts declarations from one source file.
//
// Implementations must be:
//   - deterministic for a given content,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
//
// *parser.Parser satisfies this interface.
type Parser interface {
	// Parse returns the declarations of content in source order. Spans are
	// byte offsets into content.
	Parse(content []byte) ([]definition.Definition, error)
}
