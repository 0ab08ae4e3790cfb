package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteScript writes an executable shell script with the given body and returns its path.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte("#!/bin/sh\n" + body)
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// WriteStubWithExit writes an executable shell stub that prints stderrText to stderr
// and exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int, stderrText string) string {
	t.Helper()
	body := fmt.Sprintf("printf '%%s' '%s' >&2\nexit %d\n", shellQuote(stderrText), exitCode)
	return WriteScript(t, dir, name, body)
}

// WriteUnpackStub writes a fake extractor that creates an executable compactc in its
// working directory and appends each invocation's arguments to callLog.
// t is the active test; dir is the output directory; callLog records invocations.
func WriteUnpackStub(t *testing.T, dir string, callLog string) string {
	t.Helper()
	body := fmt.Sprintf(`echo "$PWD $*" >> '%s'
printf '#!/bin/sh\necho compactc "$@"\n' > compactc
chmod +x compactc
`, shellQuote(callLog))
	return WriteScript(t, dir, "fake-unzip", body)
}

// ReadLines returns the non-empty lines of path, or nil when it does not exist.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// shellQuote escapes s for use inside single quotes.
func shellQuote(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}
