// Package grammar selects the Solidity language version a file is parsed
// with and the syntax features that version enables.
package grammar

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Errors returned by version selection.
var (
	// ErrNoCompatibleVersion is returned when no known compiler release
	// satisfies a version pragma.
	ErrNoCompatibleVersion = errors.New("no compatible Solidity version")

	// ErrInvalidPragma is returned for a version pragma that cannot be read.
	ErrInvalidPragma = errors.New("invalid version pragma")
)

// DefaultVersion is used when a file has no version pragma.
const DefaultVersion = "v0.8.0"

// releases lists the highest patch number of each known 0.x minor series.
var releases = []struct {
	minor     int
	lastPatch int
}{
	{minor: 4, lastPatch: 26},
	{minor: 5, lastPatch: 17},
	{minor: 6, lastPatch: 12},
	{minor: 7, lastPatch: 6},
	{minor: 8, lastPatch: 33},
}

// Releases returns every known compiler release in ascending order, in
// canonical semver form ("v0.8.4").
func Releases() []string {
	var out []string
	for _, series := range releases {
		for patch := 0; patch <= series.lastPatch; patch++ {
			out = append(out, fmt.Sprintf("v0.%d.%d", series.minor, patch))
		}
	}
	return out
}

// LatestVersion returns the newest known release.
func LatestVersion() string {
	all := Releases()
	return all[len(all)-1]
}

var pragmaPattern = regexp.MustCompile(`pragma\s+solidity\s+([^;]+);`)

// DetectVersion finds the first version pragma in src and returns the
// earliest known release that satisfies it. Without a pragma it returns
// DefaultVersion.
func DetectVersion(src []byte) (string, error) {
	match := pragmaPattern.FindSubmatch(src)
	if match == nil {
		return DefaultVersion, nil
	}
	return SelectVersion(string(match[1]))
}

// SelectVersion returns the earliest known release satisfying constraint.
// A wildcard ("*") selects DefaultVersion. A constraint whose lower bound is
// a patch release of the newest series newer than any known one selects
// LatestVersion.
func SelectVersion(constraint string) (string, error) {
	alternatives, err := parseConstraint(constraint)
	if err != nil {
		return "", err
	}

	for _, alt := range alternatives {
		if len(alt) == 0 {
			return DefaultVersion, nil
		}
	}

	for _, release := range Releases() {
		for _, alt := range alternatives {
			if alt.matches(release) {
				return release, nil
			}
		}
	}

	latest := LatestVersion()
	for _, alt := range alternatives {
		low := alt.lowerBound()
		if low != "" && semver.MajorMinor(low) == semver.MajorMinor(latest) &&
			semver.Compare(low, latest) > 0 && alt.matches(low) {
			return latest, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrNoCompatibleVersion, strings.TrimSpace(constraint))
}

// comparator is one "op version" term. version is canonical semver.
type comparator struct {
	op      string
	version string
}

func (c comparator) matches(v string) bool {
	cmp := semver.Compare(v, c.version)
	switch c.op {
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	default:
		return cmp == 0
	}
}

// alternative is a conjunction of comparators.
type alternative []comparator

func (a alternative) matches(v string) bool {
	for _, c := range a {
		if !c.matches(v) {
			return false
		}
	}
	return true
}

// lowerBound returns the smallest version the alternative admits, or ""
// when it has no lower bound. A strict ">" bound is not itself admitted,
// so matches rejects it.
func (a alternative) lowerBound() string {
	low := ""
	for _, c := range a {
		switch c.op {
		case ">=", ">", "=":
			if low == "" || semver.Compare(c.version, low) > 0 {
				low = c.version
			}
		}
	}
	return low
}

var termPattern = regexp.MustCompile(`^(\^|~|>=|<=|>|<|=)?\s*v?([0-9]+(?:\.(?:[0-9]+|[xX*]))*)$`)

// parseConstraint reads "||"-separated alternatives of space-separated
// comparators or hyphen ranges.
func parseConstraint(constraint string) ([]alternative, error) {
	var out []alternative

	for _, part := range strings.Split(constraint, "||") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: empty alternative in %q", ErrInvalidPragma, constraint)
		}

		if part == "*" || part == "x" || part == "X" {
			out = append(out, alternative{})
			continue
		}

		if lo, hi, ok := strings.Cut(part, " - "); ok {
			low, err := parsePartial(strings.TrimSpace(lo))
			if err != nil {
				return nil, err
			}
			high, err := parsePartial(strings.TrimSpace(hi))
			if err != nil {
				return nil, err
			}
			out = append(out, alternative{
				{op: ">=", version: low.floor()},
				{op: "<=", version: high.ceilInclusive()},
			})
			continue
		}

		var alt alternative
		for _, term := range splitTerms(part) {
			cmps, err := parseTerm(term)
			if err != nil {
				return nil, err
			}
			alt = append(alt, cmps...)
		}
		out = append(out, alt)
	}

	return out, nil
}

// splitTerms splits on whitespace but keeps an operator attached to the
// version that follows it, so ">= 0.8.0" is one term.
func splitTerms(part string) []string {
	fields := strings.Fields(part)
	var terms []string
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if isOperator(field) && i+1 < len(fields) {
			field += fields[i+1]
			i++
		}
		terms = append(terms, field)
	}
	return terms
}

func isOperator(s string) bool {
	switch s {
	case "^", "~", ">=", "<=", ">", "<", "=":
		return true
	default:
		return false
	}
}

func parseTerm(term string) ([]comparator, error) {
	match := termPattern.FindStringSubmatch(term)
	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPragma, term)
	}
	op := match[1]
	pv, err := parsePartial(match[2])
	if err != nil {
		return nil, err
	}

	switch op {
	case "^":
		return []comparator{{op: ">=", version: pv.floor()}, {op: "<", version: pv.caretCeil()}}, nil
	case "~":
		return []comparator{{op: ">=", version: pv.floor()}, {op: "<", version: pv.tildeCeil()}}, nil
	case "", "=":
		if pv.parts == 3 {
			return []comparator{{op: "=", version: pv.floor()}}, nil
		}
		return []comparator{{op: ">=", version: pv.floor()}, {op: "<", version: pv.tildeCeil()}}, nil
	case ">", "<=":
		if pv.parts < 3 {
			// "> 0.7" excludes the whole 0.7 series; "<= 0.7" includes it.
			bound := pv.tildeCeil()
			if op == ">" {
				return []comparator{{op: ">=", version: bound}}, nil
			}
			return []comparator{{op: "<", version: bound}}, nil
		}
		return []comparator{{op: op, version: pv.floor()}}, nil
	default:
		return []comparator{{op: op, version: pv.floor()}}, nil
	}
}

// partial is a possibly incomplete version such as "0.8" or "0.8.x".
type partial struct {
	major, minor, patch int
	parts               int
}

func parsePartial(s string) (partial, error) {
	s = strings.TrimPrefix(s, "v")
	fields := strings.Split(s, ".")
	if len(fields) == 0 || len(fields) > 3 {
		return partial{}, fmt.Errorf("%w: %q", ErrInvalidPragma, s)
	}

	var pv partial
	for i, field := range fields {
		if field == "x" || field == "X" || field == "*" {
			break
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return partial{}, fmt.Errorf("%w: %q", ErrInvalidPragma, s)
		}
		switch i {
		case 0:
			pv.major = n
		case 1:
			pv.minor = n
		case 2:
			pv.patch = n
		}
		pv.parts = i + 1
	}
	if pv.parts == 0 {
		return partial{}, fmt.Errorf("%w: %q", ErrInvalidPragma, s)
	}
	return pv, nil
}

func canonical(major, minor, patch int) string {
	return fmt.Sprintf("v%d.%d.%d", major, minor, patch)
}

func (p partial) floor() string {
	return canonical(p.major, p.minor, p.patch)
}

// caretCeil is the exclusive upper bound of "^p": the next version that
// changes the left-most non-zero component.
func (p partial) caretCeil() string {
	switch {
	case p.major > 0 || p.parts == 1:
		return canonical(p.major+1, 0, 0)
	case p.minor > 0 || p.parts == 2:
		return canonical(0, p.minor+1, 0)
	default:
		return canonical(0, 0, p.patch+1)
	}
}

// tildeCeil is the exclusive upper bound of "~p".
func (p partial) tildeCeil() string {
	if p.parts == 1 {
		return canonical(p.major+1, 0, 0)
	}
	return canonical(p.major, p.minor+1, 0)
}

// ceilInclusive is the inclusive upper bound of a hyphen range end.
func (p partial) ceilInclusive() string {
	switch p.parts {
	case 1:
		return canonical(p.major, 999, 999)
	case 2:
		return canonical(p.major, p.minor, 999)
	default:
		return p.floor()
	}
}
