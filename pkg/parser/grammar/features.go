package grammar

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Features is the set of version-dependent syntax a parser accepts.
type Features struct {
	// Version is the canonical semver string the set was derived from.
	Version string

	// ErrorDefinitions enables "error Name(...)" declarations (0.8.4).
	ErrorDefinitions bool

	// ReceiveFallback enables the "receive" and "fallback" keywords (0.6.0).
	// Before that an unnamed function is the fallback function.
	ReceiveFallback bool

	// VirtualOverride enables the "virtual" and "override" specifiers (0.6.0).
	VirtualOverride bool

	// Immutable enables immutable state variables (0.6.5).
	Immutable bool

	// FreeFunctions enables functions at file level (0.7.1).
	FreeFunctions bool

	// FileLevelEvents enables events at file level (0.8.22).
	FileLevelEvents bool
}

// ForVersion returns the features of a canonical semver version.
func ForVersion(version string) (Features, error) {
	if !semver.IsValid(version) {
		return Features{}, fmt.Errorf("%w: %q", ErrInvalidPragma, version)
	}
	atLeast := func(v string) bool {
		return semver.Compare(version, v) >= 0
	}
	return Features{
		Version:          version,
		ErrorDefinitions: atLeast("v0.8.4"),
		ReceiveFallback:  atLeast("v0.6.0"),
		VirtualOverride:  atLeast("v0.6.0"),
		Immutable:        atLeast("v0.6.5"),
		FreeFunctions:    atLeast("v0.7.1"),
		FileLevelEvents:  atLeast("v0.8.22"),
	}, nil
}

// Latest returns the features of the newest known release.
func Latest() Features {
	features, err := ForVersion(LatestVersion())
	if err != nil {
		panic(err)
	}
	return features
}

// AtLeast reports whether the feature set's version is at least v.
func (f Features) AtLeast(v string) bool {
	return semver.Compare(f.Version, v) >= 0
}
