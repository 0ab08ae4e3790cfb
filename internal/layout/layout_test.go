package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/compactup/internal/platform"
	"github.com/conn-castle/compactup/internal/version"
)

func TestPaths(t *testing.T) {
	l := New("/home/me/.compact")
	v := version.MustParse("0.29.1")

	assert.Equal(t, "/home/me/.compact/bin", l.BinDir())
	assert.Equal(t, "/home/me/.compact/bin/compactc", l.LinkPath())
	assert.Equal(t, "/home/me/.compact/versions", l.VersionsDir())
	assert.Equal(t, "/home/me/.compact/versions/0.29.1", l.VersionDir(v))
	assert.Equal(t, "/home/me/.compact/versions/0.29.1/x86_64-unknown-linux-musl", l.ToolchainDir(v, platform.LinuxX86_64))
	assert.Equal(t, "/home/me/.compact/versions/0.29.1/aarch64-darwin/artifact", l.ArchivePath(v, platform.DarwinARM64))
	assert.Equal(t, "/home/me/.compact/versions/0.29.1/x86_64-apple-darwin/compactc", l.EntrypointPath(v, platform.DarwinX86_64))
	assert.Equal(t, "/home/me/.compact/.lock", l.LockPath())
	assert.Equal(t, "/home/me/.compact/config.toml", l.ConfigPath())
}

func TestDecomposeInvertsEntrypointPath(t *testing.T) {
	roots := []string{"/tmp/root", "relative/root", "/a/versions/b"}
	versions := []string{"0.0.0", "0.29.1", "12.345.6789"}
	for _, root := range roots {
		l := New(root)
		for _, raw := range versions {
			v := version.MustParse(raw)
			for _, target := range platform.Targets() {
				gotV, gotT, err := Decompose(l.EntrypointPath(v, target))
				require.NoError(t, err)
				assert.Equal(t, v, gotV)
				assert.Equal(t, target, gotT)
			}
		}
	}
}

func TestDecomposeRejectsForeignPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "wrong binary", path: "/r/versions/0.29.1/x86_64-unknown-linux-musl/artifact", want: "compactc"},
		{name: "not under versions", path: "/r/other/0.29.1/x86_64-unknown-linux-musl/compactc", want: "versions"},
		{name: "unknown target", path: "/r/versions/0.29.1/sparc-sun-solaris/compactc", want: "sparc-sun-solaris"},
		{name: "bad version", path: "/r/versions/latest/x86_64-unknown-linux-musl/compactc", want: "latest"},
		{name: "too shallow", path: "/compactc", want: "versions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decompose(tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnsureDirectoriesIsIdempotent(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "nested", ".compact"))
	require.NoError(t, l.EnsureDirectories())
	require.NoError(t, l.EnsureDirectories())

	for _, dir := range []string{l.Root, l.BinDir(), l.VersionsDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestEnsureDirectoriesReportsBlockingFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "bin"), []byte("x"), 0o644))
	err := New(root).EnsureDirectories()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bin")
}
