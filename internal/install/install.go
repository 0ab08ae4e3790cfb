// Package install brings a requested toolchain version from the release
// catalogue onto disk and optionally makes it the active one.
//
// Every step is idempotent: a version whose entrypoint is already unpacked is
// never downloaded or unpacked again, and a cached archive of the advertised
// size is reused.
package install

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/compactup/internal/catalogue"
	"github.com/conn-castle/compactup/internal/current"
	"github.com/conn-castle/compactup/internal/fetch"
	"github.com/conn-castle/compactup/internal/layout"
	"github.com/conn-castle/compactup/internal/lockfile"
	"github.com/conn-castle/compactup/internal/logging"
	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/platform"
	"github.com/conn-castle/compactup/internal/release"
	"github.com/conn-castle/compactup/internal/unpack"
	"github.com/conn-castle/compactup/internal/version"
)

var (
	osStat       = os.Stat
	osRemove     = os.Remove
	withRootLock = lockfile.With
)

// Progress reports coarse milestones. Step runs fn and must not wait for user input.
type Progress interface {
	Step(ctx context.Context, title string, fn func(context.Context) error) error
}

type silentProgress struct{}

func (silentProgress) Step(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

// Request selects what to install.
type Request struct {
	// Spec selects a version; nil means the newest published version.
	Spec *version.Spec
	// Activate points the current-toolchain link at the result.
	Activate bool
}

// Outcome describes what Install did.
type Outcome struct {
	Version    version.Version
	Target     platform.Target
	Entrypoint string
	// Installed is true when the toolchain was unpacked by this call.
	Installed bool
	// Activated is true when the current-toolchain link now points at Entrypoint.
	Activated bool
}

// AlreadyInstalled reports whether the toolchain was present before the call.
func (o Outcome) AlreadyInstalled() bool {
	return !o.Installed
}

// Pipeline wires the collaborators used by Install.
type Pipeline struct {
	Layout     layout.Layout
	Target     platform.Target
	Source     release.Source
	TagPrefix  string
	Downloader fetch.Downloader
	Unpacker   unpack.Unpacker
	Link       *current.Link
	Progress   Progress
	Logger     *log.Logger
}

// Install resolves req against the catalogue and makes the selected version present locally.
func (p *Pipeline) Install(ctx context.Context, req Request) (Outcome, error) {
	if err := p.validate(); err != nil {
		return Outcome{}, err
	}
	logger := logging.OrDiscard(p.Logger)
	progress := p.progress()

	if err := p.Layout.EnsureDirectories(); err != nil {
		return Outcome{}, err
	}

	if outcome, ok, err := p.installedExact(ctx, req); ok || err != nil {
		return outcome, err
	}

	var cat *catalogue.Catalogue
	if err := progress.Step(ctx, messages.InstallStepFetching, func(ctx context.Context) error {
		var err error
		cat, err = catalogue.Load(ctx, p.Source, p.tagPrefix())
		return err
	}); err != nil {
		return Outcome{}, err
	}
	record, err := cat.Select(req.Spec)
	if err != nil {
		return Outcome{}, err
	}
	logger.Debug("selected version", "version", record.Version, "target", p.Target)

	outcome := Outcome{
		Version:    record.Version,
		Target:     p.Target,
		Entrypoint: p.Layout.EntrypointPath(record.Version, p.Target),
	}
	err = withRootLock(p.Layout.LockPath(), func() error {
		present, err := fileExists(outcome.Entrypoint)
		if err != nil {
			return err
		}
		if present {
			logger.Debug("toolchain already present", "entrypoint", outcome.Entrypoint)
		} else {
			if err := p.materialize(ctx, record); err != nil {
				return err
			}
			outcome.Installed = true
		}
		if req.Activate {
			if _, err := p.Link.Activate(outcome.Entrypoint); err != nil {
				return err
			}
			outcome.Activated = true
		}
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	return outcome, nil
}

// installedExact short-circuits an exact request whose entrypoint is already
// unpacked, so no network access is needed.
func (p *Pipeline) installedExact(ctx context.Context, req Request) (Outcome, bool, error) {
	if req.Spec == nil {
		return Outcome{}, false, nil
	}
	v, ok := req.Spec.Exact()
	if !ok {
		return Outcome{}, false, nil
	}
	outcome := Outcome{Version: v, Target: p.Target, Entrypoint: p.Layout.EntrypointPath(v, p.Target)}
	handled := false
	err := withRootLock(p.Layout.LockPath(), func() error {
		present, err := fileExists(outcome.Entrypoint)
		if err != nil || !present {
			return err
		}
		handled = true
		if req.Activate {
			if _, err := p.Link.Activate(outcome.Entrypoint); err != nil {
				return err
			}
			outcome.Activated = true
		}
		return nil
	})
	if err != nil {
		return Outcome{}, false, err
	}
	if handled {
		logging.OrDiscard(p.Logger).Debug("exact version already present", "version", v, "entrypoint", outcome.Entrypoint)
	}
	return outcome, handled, nil
}

// materialize downloads (when needed) and unpacks record for the pipeline target.
func (p *Pipeline) materialize(ctx context.Context, record catalogue.Record) error {
	progress := p.progress()
	asset := record.Asset(p.Target)
	archive := p.Layout.ArchivePath(record.Version, p.Target)
	dir := p.Layout.ToolchainDir(record.Version, p.Target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.LayoutCreateDirFmt, dir, err)
	}

	reuse, err := p.cachedArchiveUsable(archive, asset)
	if err != nil {
		return err
	}
	if !reuse {
		if err := progress.Step(ctx, messages.InstallStepDownloading, func(ctx context.Context) error {
			return p.Downloader.Download(ctx, asset, archive)
		}); err != nil {
			return err
		}
	}

	if err := progress.Step(ctx, messages.InstallStepUnpacking, func(ctx context.Context) error {
		return p.Unpacker.Unpack(ctx, archive, dir)
	}); err != nil {
		return err
	}

	entrypoint := p.Layout.EntrypointPath(record.Version, p.Target)
	present, err := fileExists(entrypoint)
	if err != nil {
		return err
	}
	if !present {
		return fmt.Errorf(messages.InstallEntrypointMissingFmt, entrypoint, archive)
	}
	return nil
}

// cachedArchiveUsable reports whether archive can be unpacked without a new
// download. A cached file whose size disagrees with the advertised size is removed.
func (p *Pipeline) cachedArchiveUsable(archive string, asset release.Asset) (bool, error) {
	logger := logging.OrDiscard(p.Logger)
	info, err := osStat(archive)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf(messages.InstallStatFmt, archive, err)
	}
	if info.Mode().IsRegular() && (asset.Size <= 0 || info.Size() == asset.Size) {
		logger.Debug("reusing cached archive", "path", archive, "bytes", info.Size())
		return true, nil
	}
	logger.Warn("discarding cached archive", "path", archive, "bytes", info.Size(), "expected", asset.Size)
	if err := osRemove(archive); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf(messages.InstallRemoveStaleArchiveFmt, archive, err)
	}
	return false, nil
}

func (p *Pipeline) validate() error {
	switch {
	case p.Layout.Root == "":
		return errors.New(messages.InstallRootRequired)
	case p.Target == "":
		return errors.New(messages.InstallTargetRequired)
	case p.Source == nil:
		return errors.New(messages.InstallSourceRequired)
	case p.Downloader == nil:
		return errors.New(messages.InstallDownloaderRequired)
	case p.Unpacker == nil:
		return errors.New(messages.InstallUnpackerRequired)
	case p.Link == nil:
		return errors.New(messages.InstallLinkRequired)
	}
	return nil
}

func (p *Pipeline) progress() Progress {
	if p.Progress == nil {
		return silentProgress{}
	}
	return p.Progress
}

func (p *Pipeline) tagPrefix() string {
	if p.TagPrefix == "" {
		return catalogue.DefaultTagPrefix
	}
	return p.TagPrefix
}

// fileExists reports whether path is an existing regular file.
func fileExists(path string) (bool, error) {
	info, err := osStat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf(messages.InstallStatFmt, path, err)
	}
	return info.Mode().IsRegular(), nil
}
