package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "midnightntwrk", cfg.Release.Owner)
	assert.Equal(t, "compact", cfg.Release.Repo)
	assert.Equal(t, "compactc-v", cfg.Release.TagPrefix)
	assert.Equal(t, "unzip", cfg.Unpack.Program)
	assert.Equal(t, []string{"-o"}, cfg.Unpack.Args)
	assert.Equal(t, 5*time.Minute, cfg.DownloadTimeout())
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[release]
api_url = "https://ghe.example.test/api/v3"

[download]
timeout_seconds = 30

[unpack]
program = "bsdtar"
args = ["-xf"]

[compile]
auto_install = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "midnightntwrk", cfg.Release.Owner, "unset keys keep defaults")
	assert.Equal(t, "https://ghe.example.test/api/v3", cfg.Release.APIURL)
	assert.Equal(t, 30*time.Second, cfg.DownloadTimeout())
	assert.Equal(t, Default().Download.MaxBytes, cfg.Download.MaxBytes)
	assert.Equal(t, "bsdtar", cfg.Unpack.Program)
	assert.Equal(t, []string{"-xf"}, cfg.Unpack.Args)
	assert.True(t, cfg.Compile.AutoInstall)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[release]\nowner = \"a\"\nmirror = \"b\"\n"), "config.toml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigValidation))
	assert.Contains(t, err.Error(), "config.toml")
}

func TestParseRejectsTokenInFile(t *testing.T) {
	_, err := Parse([]byte("token = \"secret\"\n"), "config.toml")
	require.Error(t, err)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[release\n"), "config.toml")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigValidation))
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{name: "empty owner", toml: "[release]\nowner = \" \"\n", want: "release.owner"},
		{name: "empty repo", toml: "[release]\nrepo = \"\"\n", want: "release.repo"},
		{name: "empty prefix", toml: "[release]\ntag_prefix = \"\"\n", want: "release.tag_prefix"},
		{name: "bad api url", toml: "[release]\napi_url = \"not a url\"\n", want: "not a url"},
		{name: "zero timeout", toml: "[download]\ntimeout_seconds = 0\n", want: "download.timeout_seconds"},
		{name: "negative size", toml: "[download]\nmax_bytes = -1\n", want: "download.max_bytes"},
		{name: "empty program", toml: "[unpack]\nprogram = \"\"\n", want: "unpack.program"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml), "config.toml")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigValidation))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadReadError(t *testing.T) {
	orig := osReadFile
	osReadFile = func(string) ([]byte, error) { return nil, os.ErrPermission }
	t.Cleanup(func() { osReadFile = orig })

	_, err := Load("/root/.compact/config.toml")
	require.ErrorIs(t, err, os.ErrPermission)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvGitHubToken: "gh",
		EnvNoNetwork:   "1",
		EnvAPIURL:      "http://127.0.0.1:9999",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })
	assert.Equal(t, "gh", cfg.Token)
	assert.True(t, cfg.NoNetwork)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Release.APIURL)

	env[EnvToken] = " compact-token "
	env[EnvNoNetwork] = "false"
	cfg.ApplyEnv(func(k string) string { return env[k] })
	assert.Equal(t, "compact-token", cfg.Token, "tool-specific token wins")
	assert.False(t, cfg.NoNetwork)
}
