// Package config loads the optional per-root configuration file.
package config

import (
	"time"

	"github.com/conn-castle/compactup/internal/catalogue"
	"github.com/conn-castle/compactup/internal/fetch"
	"github.com/conn-castle/compactup/internal/release"
	"github.com/conn-castle/compactup/internal/unpack"
)

// Config is the decoded <root>/config.toml.
type Config struct {
	Release  ReleaseConfig  `toml:"release"`
	Download DownloadConfig `toml:"download"`
	Unpack   UnpackConfig   `toml:"unpack"`
	Compile  CompileConfig  `toml:"compile"`
	// Token authenticates release listing. It is only ever set from the environment.
	Token string `toml:"-"`
	// NoNetwork disables every remote call. It is only ever set from the environment.
	NoNetwork bool `toml:"-"`
}

// ReleaseConfig identifies where releases are published.
type ReleaseConfig struct {
	Owner     string `toml:"owner"`
	Repo      string `toml:"repo"`
	TagPrefix string `toml:"tag_prefix"`
	// APIURL overrides the GitHub API base URL.
	APIURL string `toml:"api_url"`
}

// DownloadConfig bounds artifact downloads.
type DownloadConfig struct {
	TimeoutSeconds int   `toml:"timeout_seconds"`
	MaxBytes       int64 `toml:"max_bytes"`
}

// UnpackConfig selects the archive extraction program.
type UnpackConfig struct {
	Program string `toml:"program"`
	// Args precede the archive path on the command line.
	Args []string `toml:"args"`
}

// CompileConfig controls `compact compile`.
type CompileConfig struct {
	// AutoInstall installs a requested toolchain that is missing instead of failing.
	AutoInstall bool `toml:"auto_install"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Release: ReleaseConfig{
			Owner:     release.DefaultOwner,
			Repo:      release.DefaultRepo,
			TagPrefix: catalogue.DefaultTagPrefix,
		},
		Download: DownloadConfig{
			TimeoutSeconds: int(fetch.DefaultTimeout / time.Second),
			MaxBytes:       fetch.DefaultMaxBytes,
		},
		Unpack: UnpackConfig{
			Program: unpack.DefaultProgram,
			Args:    append([]string(nil), unpack.DefaultArgs...),
		},
	}
}

// DownloadTimeout returns the configured download timeout.
func (c Config) DownloadTimeout() time.Duration {
	return time.Duration(c.Download.TimeoutSeconds) * time.Second
}
