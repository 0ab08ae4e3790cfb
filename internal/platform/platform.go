// Package platform names the OS/architecture targets toolchains are published for.
package platform

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/conn-castle/compactup/internal/messages"
)

// Target is a supported OS/architecture combination. Its string form is the
// directory name used in the on-disk layout.
type Target string

// Supported targets.
const (
	LinuxX86_64  Target = "x86_64-unknown-linux-musl"
	DarwinX86_64 Target = "x86_64-apple-darwin"
	DarwinARM64  Target = "aarch64-darwin"
)

// Family is the physical artifact kind a target installs. Several targets can
// share one family.
type Family string

// Artifact families published with every release.
const (
	FamilyLinux Family = "linux"
	FamilyMacOS Family = "macos"
)

// Targets lists all supported targets.
func Targets() []Target {
	return []Target{LinuxX86_64, DarwinX86_64, DarwinARM64}
}

// Families lists the artifact families every release must carry.
func Families() []Family {
	return []Family{FamilyLinux, FamilyMacOS}
}

// String returns the target's layout name.
func (t Target) String() string {
	return string(t)
}

// Family returns the artifact family that serves t.
func (t Target) Family() Family {
	switch t {
	case DarwinX86_64, DarwinARM64:
		return FamilyMacOS
	default:
		return FamilyLinux
	}
}

// Parse converts a layout name back into a Target.
func Parse(raw string) (Target, error) {
	for _, t := range Targets() {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf(messages.PlatformUnsupportedTargetFmt, raw)
}

// Set implements pflag.Value.
func (t *Target) Set(raw string) error {
	parsed, err := Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Type implements pflag.Value.
func (t *Target) Type() string {
	return "target"
}

// Detect returns the target for the running host.
func Detect() (Target, error) {
	return detect(runtime.GOOS, runtime.GOARCH)
}

func detect(osName, arch string) (Target, error) {
	switch osName {
	case "linux":
		if arch == "amd64" {
			return LinuxX86_64, nil
		}
	case "darwin":
		switch arch {
		case "amd64":
			return DarwinX86_64, nil
		case "arm64":
			return DarwinARM64, nil
		}
	default:
		return "", fmt.Errorf(messages.PlatformUnsupportedOSFmt, osName)
	}
	return "", fmt.Errorf(messages.PlatformUnsupportedArchFmt, osName, arch)
}

// ClassifyAsset maps a release asset file name to its artifact family.
func ClassifyAsset(name string) (Family, bool) {
	switch {
	case strings.Contains(name, "apple-darwin"):
		return FamilyMacOS, true
	case strings.Contains(name, "linux"):
		return FamilyLinux, true
	default:
		return "", false
	}
}
