package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/conn-castle/compactup/internal/messages"
)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	if strings.TrimSpace(c.Release.Owner) == "" {
		return fmt.Errorf(messages.ConfigFieldRequiredFmt, path, "release.owner")
	}
	if strings.TrimSpace(c.Release.Repo) == "" {
		return fmt.Errorf(messages.ConfigFieldRequiredFmt, path, "release.repo")
	}
	if strings.TrimSpace(c.Release.TagPrefix) == "" {
		return fmt.Errorf(messages.ConfigFieldRequiredFmt, path, "release.tag_prefix")
	}
	if c.Release.APIURL != "" {
		u, err := url.Parse(c.Release.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf(messages.ConfigAPIURLInvalidFmt, path, c.Release.APIURL)
		}
	}
	if c.Download.TimeoutSeconds <= 0 {
		return fmt.Errorf(messages.ConfigPositiveFmt, path, "download.timeout_seconds")
	}
	if c.Download.MaxBytes <= 0 {
		return fmt.Errorf(messages.ConfigPositiveFmt, path, "download.max_bytes")
	}
	if strings.TrimSpace(c.Unpack.Program) == "" {
		return fmt.Errorf(messages.ConfigFieldRequiredFmt, path, "unpack.program")
	}
	return nil
}
