// Package clean removes installed toolchains from a root.
package clean

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/compactup/internal/current"
	"github.com/conn-castle/compactup/internal/layout"
	"github.com/conn-castle/compactup/internal/lockfile"
	"github.com/conn-castle/compactup/internal/logging"
	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/platform"
	"github.com/conn-castle/compactup/internal/version"
)

var (
	osReadDir    = os.ReadDir
	osRemoveAll  = os.RemoveAll
	osRemove     = os.Remove
	withRootLock = lockfile.With
)

// Options controls what Run removes.
type Options struct {
	// KeepCurrent keeps the active toolchain and its link.
	KeepCurrent bool
	// Cache also removes cached archives of kept versions.
	Cache bool
}

// Result reports what Run removed.
type Result struct {
	Removed []version.Version
	// Kept is the active version left in place, if any.
	Kept *version.Version
	// Archives lists cached archives removed from kept versions.
	Archives []string
	// Unlinked is true when the current-toolchain link was removed.
	Unlinked bool
}

// Run removes installed versions under the root lock. Directory entries whose
// names are not versions are left alone.
func Run(l layout.Layout, link *current.Link, opts Options, logger *log.Logger) (Result, error) {
	if l.Root == "" {
		return Result{}, errors.New(messages.InstallRootRequired)
	}
	if link == nil {
		return Result{}, errors.New(messages.InstallLinkRequired)
	}
	logger = logging.OrDiscard(logger)

	var result Result
	err := withRootLock(l.LockPath(), func() error {
		var keep *version.Version
		if opts.KeepCurrent {
			tc, ok, err := link.Resolve()
			if err != nil {
				return err
			}
			if ok {
				keep = &tc.Version
			}
		} else {
			present, err := linkPresent(link.Path())
			if err != nil {
				return err
			}
			if err := link.Deactivate(); err != nil {
				return err
			}
			result.Unlinked = present
		}
		result.Kept = keep

		entries, err := osReadDir(l.VersionsDir())
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf(messages.InstallReadVersionsFmt, l.VersionsDir(), err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			v, err := version.Parse(entry.Name())
			if err != nil {
				logger.Debug("skipping foreign entry", "name", entry.Name())
				continue
			}
			if keep != nil && v == *keep {
				if opts.Cache {
					removed, err := removeArchives(l, v)
					if err != nil {
						return err
					}
					result.Archives = append(result.Archives, removed...)
				}
				continue
			}
			dir := l.VersionDir(v)
			if err := osRemoveAll(dir); err != nil {
				return fmt.Errorf(messages.CleanRemoveFmt, dir, err)
			}
			logger.Debug("removed toolchain", "version", v, "dir", dir)
			result.Removed = append(result.Removed, v)
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func removeArchives(l layout.Layout, v version.Version) ([]string, error) {
	var removed []string
	for _, target := range platform.Targets() {
		archive := l.ArchivePath(v, target)
		err := osRemove(archive)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, fmt.Errorf(messages.CleanRemoveFmt, archive, err)
		}
		removed = append(removed, archive)
	}
	return removed, nil
}

func linkPresent(path string) (bool, error) {
	_, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf(messages.InstallStatFmt, path, err)
	}
	return true, nil
}
