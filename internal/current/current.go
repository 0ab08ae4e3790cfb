// Package current manages the link that marks one installed toolchain as active.
//
// The link target is the only record of which toolchain is active. Resolution
// decomposes the target path, so a link that points anywhere outside the
// layout is reported as corrupt state rather than "nothing installed".
package current

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/compactup/internal/layout"
	"github.com/conn-castle/compactup/internal/logging"
	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/platform"
	"github.com/conn-castle/compactup/internal/version"
)

// ErrNotInstalled is returned when an active toolchain is required but none is set.
var ErrNotInstalled = errors.New(messages.CurrentNotInstalled)

var (
	osReadlink = os.Readlink
	osSymlink  = os.Symlink
	osLstat    = os.Lstat
	osStat     = os.Stat
	osRemove   = os.Remove
)

// Toolchain identifies the active toolchain.
type Toolchain struct {
	Version version.Version
	Target  platform.Target
	// Path is the entrypoint the link points at, made absolute.
	Path string
}

// StateError reports a link that exists but cannot be trusted.
type StateError struct {
	Path   string
	Reason string
	Err    error
}

func (e *StateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(messages.CurrentStateWithCauseFmt, e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf(messages.CurrentStateFmt, e.Path, e.Reason)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// Link is the current-toolchain link for one root.
type Link struct {
	layout layout.Layout
	logger *log.Logger
}

// New returns the link for l. A nil logger discards output.
func New(l layout.Layout, logger *log.Logger) *Link {
	return &Link{layout: l, logger: logging.OrDiscard(logger)}
}

// Path returns the link location.
func (c *Link) Path() string {
	return c.layout.LinkPath()
}

// Resolve reads the link. ok is false when no link exists; every other
// irregularity is a *StateError.
func (c *Link) Resolve() (Toolchain, bool, error) {
	linkPath := c.Path()
	target, err := osReadlink(linkPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Toolchain{}, false, nil
		}
		if info, lerr := osLstat(linkPath); lerr == nil && info.Mode()&fs.ModeSymlink == 0 {
			return Toolchain{}, false, &StateError{Path: linkPath, Reason: messages.CurrentNotALink}
		}
		return Toolchain{}, false, &StateError{Path: linkPath, Reason: messages.CurrentReadFailed, Err: err}
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(linkPath), target)
	}

	info, err := osStat(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Toolchain{}, false, &StateError{Path: linkPath, Reason: fmt.Sprintf(messages.CurrentDanglingFmt, target)}
		}
		return Toolchain{}, false, &StateError{Path: linkPath, Reason: fmt.Sprintf(messages.CurrentTargetStatFmt, target), Err: err}
	}
	if !info.Mode().IsRegular() {
		return Toolchain{}, false, &StateError{Path: linkPath, Reason: fmt.Sprintf(messages.CurrentTargetNotFileFmt, target)}
	}

	v, tgt, err := layout.Decompose(target)
	if err != nil {
		return Toolchain{}, false, &StateError{Path: linkPath, Reason: messages.CurrentUnparseable, Err: err}
	}
	c.logger.Debug("resolved current toolchain", "link", linkPath, "version", v, "target", tgt)
	return Toolchain{Version: v, Target: tgt, Path: target}, true, nil
}

// Require resolves the link and returns ErrNotInstalled when it is absent.
func (c *Link) Require() (Toolchain, error) {
	tc, ok, err := c.Resolve()
	if err != nil {
		return Toolchain{}, err
	}
	if !ok {
		return Toolchain{}, ErrNotInstalled
	}
	return tc, nil
}

// Activate points the link at entrypoint, replacing any existing link, then
// re-reads it to confirm the expected version is now active.
func (c *Link) Activate(entrypoint string) (Toolchain, error) {
	want, wantTarget, err := layout.Decompose(entrypoint)
	if err != nil {
		return Toolchain{}, err
	}
	abs, err := filepath.Abs(entrypoint)
	if err != nil {
		return Toolchain{}, fmt.Errorf(messages.CurrentAbsPathFmt, entrypoint, err)
	}

	linkPath := c.Path()
	if err := os.MkdirAll(filepath.Dir(linkPath), 0o755); err != nil {
		return Toolchain{}, fmt.Errorf(messages.LayoutCreateDirFmt, filepath.Dir(linkPath), err)
	}
	info, err := osLstat(linkPath)
	switch {
	case err == nil && info.Mode()&fs.ModeSymlink != 0:
		if err := osRemove(linkPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Toolchain{}, &StateError{Path: linkPath, Reason: messages.CurrentRemoveFailed, Err: err}
		}
	case err == nil:
		return Toolchain{}, &StateError{Path: linkPath, Reason: messages.CurrentNotALink}
	case !errors.Is(err, fs.ErrNotExist):
		return Toolchain{}, &StateError{Path: linkPath, Reason: messages.CurrentReadFailed, Err: err}
	}

	if err := osSymlink(abs, linkPath); err != nil {
		return Toolchain{}, fmt.Errorf(messages.CurrentLinkFailedFmt, linkPath, abs, err)
	}

	got, ok, err := c.Resolve()
	if err != nil {
		return Toolchain{}, err
	}
	if !ok {
		return Toolchain{}, &StateError{Path: linkPath, Reason: messages.CurrentVanished}
	}
	if got.Version != want || got.Target != wantTarget {
		return Toolchain{}, &StateError{
			Path:   linkPath,
			Reason: fmt.Sprintf(messages.CurrentMismatchFmt, want, wantTarget, got.Version, got.Target),
		}
	}
	c.logger.Debug("activated toolchain", "link", linkPath, "entrypoint", abs)
	return got, nil
}

// Deactivate removes the link if present.
func (c *Link) Deactivate() error {
	linkPath := c.Path()
	info, err := osLstat(linkPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &StateError{Path: linkPath, Reason: messages.CurrentReadFailed, Err: err}
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return &StateError{Path: linkPath, Reason: messages.CurrentNotALink}
	}
	if err := osRemove(linkPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &StateError{Path: linkPath, Reason: messages.CurrentRemoveFailed, Err: err}
	}
	return nil
}
