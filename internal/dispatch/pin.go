package dispatch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/version"
)

// readPinnedVersion reads the pinned toolchain version from a pin file.
// Blank lines and # comments are ignored, and a leading "v" is accepted.
// Empty or invalid pin files return a warning instead of an error so that
// dispatch can fall through to the active toolchain while surfacing the problem.
func readPinnedVersion(sys System, path string) (version.Version, bool, string, error) {
	data, err := sys.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return version.Version{}, false, "", nil
		}
		return version.Version{}, false, "", fmt.Errorf(messages.DispatchReadPinFailedFmt, path, err)
	}

	raw := ""
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		raw = line
		break
	}
	if raw == "" {
		return version.Version{}, false, fmt.Sprintf(messages.DispatchPinFileEmptyWarningFmt, path), nil
	}
	v, err := version.Parse(strings.TrimPrefix(raw, "v"))
	if err != nil {
		return version.Version{}, false, fmt.Sprintf(messages.DispatchInvalidPinnedVersionWarningFmt, path, err), nil
	}
	return v, true, "", nil
}
