// Package langdetect decides whether a file holds Solidity source.
// It uses go-enry for extension and vendored-path lookups, with a few
// content patterns for files whose name says nothing.
package langdetect

import (
	"bytes"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for detected languages.
const (
	LangSolidity = "solidity"
	langText     = "text"
)

// solidityName is the Linguist name of the language.
const solidityName = "Solidity"

//nolint:gochecknoglobals // Compiled once, read-only.
var (
	pragmaPattern = regexp.MustCompile(`(?m)^\s*pragma\s+solidity\b`)
	declPattern   = regexp.MustCompile(`(?m)^\s*(abstract\s+contract|contract|interface|library)\s+[A-Za-z_$][A-Za-z0-9_$]*\s*(is\b|\{)`)
	licensePrefix = []byte("// SPDX-License-Identifier:")
)

// Detect returns the detected language for a file, lowercased, or "text"
// when nothing matches.
func Detect(path string, content []byte) string {
	if IsSolidity(path, content) {
		return LangSolidity
	}
	if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
		return normalize(lang)
	}
	if len(content) > 0 {
		if lang, safe := enry.GetLanguageByShebang(content); safe {
			return normalize(lang)
		}
	}
	return langText
}

// IsSolidity reports whether path names Solidity source. The extension
// decides when it is known; otherwise content is checked for a version
// pragma or a top-level contract, interface or library.
func IsSolidity(path string, content []byte) bool {
	if HasSolidityExtension(path) {
		return true
	}
	if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" {
		return false
	}
	return detectByPattern(content)
}

// HasSolidityExtension reports whether the file name ends in ".sol".
func HasSolidityExtension(path string) bool {
	if strings.EqualFold(filepath.Ext(path), ".sol") {
		return true
	}
	lang, _ := enry.GetLanguageByExtension(path)
	return lang == solidityName
}

// detectByPattern checks for patterns that only Solidity source has.
func detectByPattern(content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return false
	}
	if pragmaPattern.Match(trimmed) {
		return true
	}
	if bytes.HasPrefix(trimmed, licensePrefix) && declPattern.Match(trimmed) {
		return true
	}
	return declPattern.Match(trimmed) && bytes.Contains(trimmed, []byte("function "))
}

// IsVendored reports whether a relative path lies in a dependency
// directory: anything go-enry treats as vendored (node_modules and the
// like) and Foundry's lib directory.
func IsVendored(relPath string) bool {
	slashed := filepath.ToSlash(relPath)
	if slashed == "lib" || strings.HasPrefix(slashed, "lib/") || strings.Contains(slashed, "/lib/") {
		return true
	}
	return enry.IsVendor(slashed) || enry.IsVendor(slashed+"/")
}

// normalize converts go-enry language names to lowercase identifiers.
func normalize(lang string) string {
	return strings.ToLower(lang)
}
