// Package release lists published toolchain releases from the remote release source.
package release

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/conn-castle/compactup/internal/messages"
)

// Asset is a downloadable file attached to a release.
type Asset struct {
	Name string
	URL  string
	// Size is the byte size reported by the source; zero when unknown.
	Size int64
}

// Release is a published release tag and its assets.
type Release struct {
	Tag    string
	Assets []Asset
}

// Source lists every published release.
type Source interface {
	ListReleases(ctx context.Context) ([]Release, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Release, error)

// ListReleases calls f.
func (f SourceFunc) ListReleases(ctx context.Context) ([]Release, error) {
	return f(ctx)
}

var timeNow = time.Now

// ErrNetworkDisabled is returned when network access was turned off by the user.
var ErrNetworkDisabled = errors.New(messages.ReleaseNetworkDisabled)

// FetchError wraps a failure to query the release source.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf(messages.ReleaseFetchFailedFmt, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RateLimitError indicates the release API rate limit was hit.
type RateLimitError struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return fmt.Sprintf(messages.ReleaseRateLimitFmt, e.Remaining, "unknown")
	}
	return fmt.Sprintf(messages.ReleaseRateLimitFmt, e.Remaining, e.ResetAt.UTC().Format("15:04 UTC"))
}

// IsRateLimitError reports whether err represents a rate-limit condition.
func IsRateLimitError(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// Offline returns a Source that always fails with ErrNetworkDisabled.
func Offline() Source {
	return SourceFunc(func(context.Context) ([]Release, error) {
		return nil, &FetchError{Source: "offline", Err: ErrNetworkDisabled}
	})
}
