// Package version models toolchain release versions and the specifiers users
// type to select them.
package version

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/conn-castle/compactup/internal/messages"
)

// Version is a MAJOR.MINOR.PATCH release number.
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// New returns the version major.minor.patch.
func New(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// ParseError reports text that is not a valid version or specifier.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(messages.VersionParseFmt, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses strict MAJOR.MINOR.PATCH text. Pre-release and build metadata
// suffixes are rejected.
func Parse(raw string) (Version, error) {
	parsed, err := semver.StrictNewVersion(raw)
	if err != nil {
		return Version{}, &ParseError{Input: raw, Err: err}
	}
	if parsed.Prerelease() != "" || parsed.Metadata() != "" {
		return Version{}, &ParseError{Input: raw, Err: fmt.Errorf(messages.VersionSuffixUnsupportedFmt, parsed.Prerelease()+parsed.Metadata())}
	}
	return New(parsed.Major(), parsed.Minor(), parsed.Patch()), nil
}

// MustParse is like Parse but panics on invalid input. Intended for tests and constants.
func MustParse(raw string) Version {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// String formats the version as MAJOR.MINOR.PATCH.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0, or 1 when v is lower than, equal to, or higher than other.
func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Patch, other.Patch)
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// TrimTag strips prefix from a release tag and parses the remainder.
func TrimTag(tag string, prefix string) (Version, error) {
	raw, ok := strings.CutPrefix(tag, prefix)
	if !ok {
		return Version{}, fmt.Errorf(messages.VersionTagPrefixMissingFmt, tag, prefix)
	}
	return Parse(raw)
}
