package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/conn-castle/compactup/internal/layout"
	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/version"
)

var osReadDir = os.ReadDir

// InstalledVersions lists version directories under the root in ascending
// order. Entries that are not directories or whose names are not versions are skipped.
func InstalledVersions(l layout.Layout) ([]version.Version, error) {
	entries, err := osReadDir(l.VersionsDir())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(messages.InstallReadVersionsFmt, l.VersionsDir(), err)
	}
	var out []version.Version
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		v, err := version.Parse(entry.Name())
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	slices.SortFunc(out, version.Version.Compare)
	return out, nil
}
