// Package root locates the toolchain root directory and project pin files.
package root

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/compactup/internal/messages"
)

const (
	// EnvDirectory overrides the default root directory.
	EnvDirectory = "COMPACT_DIRECTORY"
	// DefaultDirName is the root directory name under the user's home.
	DefaultDirName = ".compact"
	// PinFileName pins a toolchain version for a project tree.
	PinFileName = ".compact-version"
)

var (
	homeDir = homedir.Dir
	osStat  = os.Stat
)

// Resolve returns the absolute root directory. flagValue wins over the
// environment, which wins over ~/.compact. A leading ~ is expanded.
func Resolve(flagValue string, getenv func(string) string) (string, error) {
	raw := strings.TrimSpace(flagValue)
	if raw == "" && getenv != nil {
		raw = strings.TrimSpace(getenv(EnvDirectory))
	}
	if raw == "" {
		home, err := homeDir()
		if err != nil {
			return "", fmt.Errorf(messages.RootHomeDirFmt, err)
		}
		raw = filepath.Join(home, DefaultDirName)
	}
	expanded, err := homedir.Expand(raw)
	if err != nil {
		return "", fmt.Errorf(messages.RootExpandFmt, raw, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf(messages.RootAbsFmt, expanded, err)
	}
	return abs, nil
}

// FindPinFile searches upwards from start for a pin file and returns its path.
func FindPinFile(start string) (string, bool, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf(messages.RootAbsFmt, start, err)
	}
	for {
		candidate := filepath.Join(dir, PinFileName)
		info, err := osStat(candidate)
		switch {
		case err == nil:
			if info.IsDir() {
				return "", false, fmt.Errorf(messages.RootPinIsDirFmt, candidate)
			}
			return candidate, true, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf(messages.RootPinStatFmt, candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
