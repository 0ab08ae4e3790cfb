package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind distinguishes exact specifiers from major.minor ones.
type Kind int

const (
	// KindExact matches a single version.
	KindExact Kind = iota
	// KindPartial matches every patch release of a major.minor line.
	KindPartial
)

// Spec is a user-supplied version request, either an exact version or a
// major.minor prefix. A Spec has no notion of "latest"; callers decide which
// of several matching versions wins.
type Spec struct {
	kind  Kind
	exact Version
	major uint64
	minor uint64
}

// Exact returns a specifier matching only v.
func Exact(v Version) Spec {
	return Spec{kind: KindExact, exact: v, major: v.Major, minor: v.Minor}
}

// Partial returns a specifier matching any patch of major.minor.
func Partial(major, minor uint64) Spec {
	return Spec{kind: KindPartial, major: major, minor: minor}
}

// ParseSpec parses text as an exact version first and falls back to the
// major.minor form. When neither form fits, the exact-version parse error is
// returned since it carries the most useful diagnostic.
func ParseSpec(text string) (Spec, error) {
	exact, exactErr := Parse(text)
	if exactErr == nil {
		return Exact(exact), nil
	}

	parts := strings.Split(text, ".")
	if len(parts) == 2 {
		major, majorErr := strconv.ParseUint(parts[0], 10, 64)
		minor, minorErr := strconv.ParseUint(parts[1], 10, 64)
		if majorErr == nil && minorErr == nil {
			return Partial(major, minor), nil
		}
	}

	return Spec{}, exactErr
}

// Kind reports whether the specifier is exact or partial.
func (s Spec) Kind() Kind {
	return s.kind
}

// Exact returns the pinned version for exact specifiers.
func (s Spec) Exact() (Version, bool) {
	if s.kind != KindExact {
		return Version{}, false
	}
	return s.exact, true
}

// Matches reports whether v satisfies the specifier. Partial specifiers ignore the patch number.
func (s Spec) Matches(v Version) bool {
	switch s.kind {
	case KindExact:
		return s.exact == v
	case KindPartial:
		return v.Major == s.major && v.Minor == s.minor
	default:
		return false
	}
}

// String formats the specifier the way it was written.
func (s Spec) String() string {
	if s.kind == KindExact {
		return s.exact.String()
	}
	return fmt.Sprintf("%d.%d", s.major, s.minor)
}

// Set implements pflag.Value so a Spec can be bound directly to a flag or argument.
func (s *Spec) Set(text string) error {
	parsed, err := ParseSpec(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Type implements pflag.Value.
func (s *Spec) Type() string {
	return "version"
}
