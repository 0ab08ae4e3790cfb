// Package layout computes the on-disk locations of installed toolchains.
//
// The shape is fixed:
//
//	<root>/bin/compactc                             link to the active entrypoint
//	<root>/versions/<version>/<target>/compactc     unpacked entrypoint
//	<root>/versions/<version>/<target>/artifact     cached archive
//
// Decompose inverts the entrypoint path so the active toolchain can be
// recovered from the link target alone.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/platform"
	"github.com/conn-castle/compactup/internal/version"
)

const (
	// BinaryName is the toolchain executable name.
	BinaryName = "compactc"
	// ArchiveName is the cached archive file name inside a toolchain directory.
	ArchiveName = "artifact"

	binDir      = "bin"
	versionsDir = "versions"
	lockFile    = ".lock"
	configFile  = "config.toml"
)

// Layout anchors every path at a root directory.
type Layout struct {
	Root string
}

// New returns a layout rooted at root.
func New(root string) Layout {
	return Layout{Root: root}
}

// BinDir returns the directory holding the current-toolchain link.
func (l Layout) BinDir() string {
	return filepath.Join(l.Root, binDir)
}

// VersionsDir returns the directory holding one subdirectory per installed version.
func (l Layout) VersionsDir() string {
	return filepath.Join(l.Root, versionsDir)
}

// VersionDir returns the directory for one version across all targets.
func (l Layout) VersionDir(v version.Version) string {
	return filepath.Join(l.VersionsDir(), v.String())
}

// ToolchainDir returns the unpack directory for a version and target.
func (l Layout) ToolchainDir(v version.Version, target platform.Target) string {
	return filepath.Join(l.VersionDir(v), target.String())
}

// ArchivePath returns the cached archive path for a version and target.
func (l Layout) ArchivePath(v version.Version, target platform.Target) string {
	return filepath.Join(l.ToolchainDir(v, target), ArchiveName)
}

// EntrypointPath returns the unpacked executable path for a version and target.
func (l Layout) EntrypointPath(v version.Version, target platform.Target) string {
	return filepath.Join(l.ToolchainDir(v, target), BinaryName)
}

// LinkPath returns the current-toolchain link location.
func (l Layout) LinkPath() string {
	return filepath.Join(l.BinDir(), BinaryName)
}

// LockPath returns the advisory lock file guarding mutations under the root.
func (l Layout) LockPath() string {
	return filepath.Join(l.Root, lockFile)
}

// ConfigPath returns the optional configuration file location.
func (l Layout) ConfigPath() string {
	return filepath.Join(l.Root, configFile)
}

// EnsureDirectories creates the root, bin and versions directories when absent.
func (l Layout) EnsureDirectories() error {
	for _, dir := range []string{l.Root, l.BinDir(), l.VersionsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf(messages.LayoutCreateDirFmt, dir, err)
		}
	}
	return nil
}

// Decompose recovers the version and target from an entrypoint path built by
// EntrypointPath. The root itself is not checked.
func Decompose(entrypoint string) (version.Version, platform.Target, error) {
	clean := filepath.Clean(entrypoint)
	if filepath.Base(clean) != BinaryName {
		return version.Version{}, "", fmt.Errorf(messages.LayoutNotEntrypointFmt, entrypoint, BinaryName)
	}
	targetDir := filepath.Dir(clean)
	versionDir := filepath.Dir(targetDir)
	if filepath.Base(filepath.Dir(versionDir)) != versionsDir {
		return version.Version{}, "", fmt.Errorf(messages.LayoutNotUnderVersionsFmt, entrypoint, versionsDir)
	}
	target, err := platform.Parse(filepath.Base(targetDir))
	if err != nil {
		return version.Version{}, "", fmt.Errorf(messages.LayoutDecomposeFmt, entrypoint, err)
	}
	v, err := version.Parse(filepath.Base(versionDir))
	if err != nil {
		return version.Version{}, "", fmt.Errorf(messages.LayoutDecomposeFmt, entrypoint, err)
	}
	return v, target, nil
}
