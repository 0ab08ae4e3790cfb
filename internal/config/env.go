package config

import "strings"

// Environment keys read by ApplyEnv.
const (
	EnvToken       = "COMPACT_GITHUB_TOKEN"
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvNoNetwork   = "COMPACT_NO_NETWORK"
	EnvAPIURL      = "COMPACT_API_URL"
)

// ApplyEnv overlays environment settings onto c. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if token := strings.TrimSpace(getenv(EnvToken)); token != "" {
		c.Token = token
	} else if token := strings.TrimSpace(getenv(EnvGitHubToken)); token != "" {
		c.Token = token
	}
	if apiURL := strings.TrimSpace(getenv(EnvAPIURL)); apiURL != "" {
		c.Release.APIURL = apiURL
	}
	c.NoNetwork = isTruthy(getenv(EnvNoNetwork))
}

func isTruthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
