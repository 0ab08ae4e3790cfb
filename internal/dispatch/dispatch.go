// Package dispatch hands execution to the selected compactc binary.
//
// The toolchain is chosen from, in order: a leading "+VERSION" argument, the
// COMPACT_VERSION environment variable, the nearest .compact-version pin file,
// and finally the active toolchain link.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/compactup/internal/current"
	"github.com/conn-castle/compactup/internal/layout"
	"github.com/conn-castle/compactup/internal/logging"
	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/platform"
	"github.com/conn-castle/compactup/internal/version"
)

// EnvVersionOverride selects a toolchain version for one invocation.
// EnvActiveVersion is exported to the compiler so it can report which toolchain runs.
const (
	EnvVersionOverride = "COMPACT_VERSION"
	EnvActiveVersion   = "COMPACT_TOOLCHAIN_VERSION"
)

// Selection sources.
const (
	SourceArgument = "argument"
	SourceEnv      = EnvVersionOverride
	SourcePin      = "pin"
	SourceCurrent  = "current"
)

// ErrDispatched signals that execution has been handed off to another binary.
var ErrDispatched = errors.New(messages.DispatchErrDispatched)

var osStat = os.Stat

// Ensurer makes an exact version present locally without activating it and
// returns its entrypoint.
type Ensurer func(ctx context.Context, v version.Version) (string, error)

// Selection is the toolchain chosen for an invocation.
type Selection struct {
	Version version.Version
	Path    string
	Source  string
}

// Dispatcher selects and executes a toolchain.
type Dispatcher struct {
	Sys    System
	Layout layout.Layout
	Target platform.Target
	Link   *current.Link
	// Ensure installs a requested version that is missing. Nil reports it as not installed.
	Ensure Ensurer
	Logger *log.Logger
}

// SplitVersionArg strips a leading "+VERSION" argument. The version must be exact.
func SplitVersionArg(args []string) (*version.Version, []string, error) {
	if len(args) == 0 || !strings.HasPrefix(args[0], "+") {
		return nil, args, nil
	}
	v, err := version.Parse(strings.TrimPrefix(args[0], "+"))
	if err != nil {
		return nil, nil, err
	}
	return &v, args[1:], nil
}

// Select picks the toolchain to run. requested is a "+VERSION" argument, if any;
// cwd anchors the pin file search.
func (d *Dispatcher) Select(ctx context.Context, requested *version.Version, cwd string) (Selection, error) {
	if d.Sys == nil {
		return Selection{}, errors.New(messages.DispatchSystemRequired)
	}
	logger := logging.OrDiscard(d.Logger)

	if requested != nil {
		return d.selectInstalled(ctx, *requested, SourceArgument)
	}

	if override := strings.TrimSpace(d.Sys.Getenv(EnvVersionOverride)); override != "" {
		v, err := version.Parse(strings.TrimPrefix(override, "v"))
		if err != nil {
			return Selection{}, fmt.Errorf(messages.DispatchInvalidEnvVersionFmt, EnvVersionOverride, err)
		}
		return d.selectInstalled(ctx, v, SourceEnv)
	}

	if cwd != "" {
		pinPath, found, err := d.Sys.FindPinFile(cwd)
		if err != nil {
			return Selection{}, err
		}
		if found {
			v, ok, warning, err := readPinnedVersion(d.Sys, pinPath)
			if err != nil {
				return Selection{}, err
			}
			if warning != "" {
				_, _ = fmt.Fprintln(d.Sys.Stderr(), warning)
			}
			if ok {
				logger.Debug("using pinned toolchain", "pin", pinPath, "version", v)
				return d.selectInstalled(ctx, v, SourcePin)
			}
		}
	}

	if d.Link == nil {
		return Selection{}, current.ErrNotInstalled
	}
	tc, err := d.Link.Require()
	if err != nil {
		if errors.Is(err, current.ErrNotInstalled) {
			return Selection{}, fmt.Errorf(messages.DispatchNoActiveToolchainFmt, err)
		}
		return Selection{}, err
	}
	return Selection{Version: tc.Version, Path: tc.Path, Source: SourceCurrent}, nil
}

func (d *Dispatcher) selectInstalled(ctx context.Context, v version.Version, source string) (Selection, error) {
	path := d.Layout.EntrypointPath(v, d.Target)
	info, err := osStat(path)
	switch {
	case err == nil && info.Mode().IsRegular():
		return Selection{Version: v, Path: path, Source: source}, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return Selection{}, fmt.Errorf(messages.DispatchCheckInstalledFmt, path, err)
	}
	if d.Ensure == nil {
		return Selection{}, fmt.Errorf(messages.DispatchNotInstalledFmt, v, d.Target, v)
	}
	installed, err := d.Ensure(ctx, v)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Version: v, Path: installed, Source: source}, nil
}

// Exec selects a toolchain for args and replaces the current process with it.
// It returns ErrDispatched if execution was handed off.
func (d *Dispatcher) Exec(ctx context.Context, args []string, cwd string, exit func(int)) error {
	if d.Sys == nil {
		return errors.New(messages.DispatchSystemRequired)
	}
	if exit == nil {
		return errors.New(messages.DispatchExitHandlerRequired)
	}
	requested, rest, err := SplitVersionArg(args)
	if err != nil {
		return err
	}
	sel, err := d.Select(ctx, requested, cwd)
	if err != nil {
		return err
	}
	logging.OrDiscard(d.Logger).Debug("dispatching", "path", sel.Path, "version", sel.Version, "source", sel.Source)

	env := append(d.Sys.Environ(), fmt.Sprintf("%s=%s", EnvActiveVersion, sel.Version))
	execArgs := append([]string{sel.Path}, rest...)
	if err := d.Sys.ExecBinary(sel.Path, execArgs, env, exit); err != nil {
		return err
	}
	return ErrDispatched
}
