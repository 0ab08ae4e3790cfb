package messages

// Version, platform, layout, and current-toolchain messages.
const (
	VersionParseFmt             = "invalid version %q: %v"
	VersionSuffixUnsupportedFmt = "pre-release and build suffixes are not supported (%s)"
	VersionTagPrefixMissingFmt  = "tag %q does not start with %q"

	PlatformUnsupportedTargetFmt = "unsupported target %q"
	PlatformUnsupportedOSFmt     = "unsupported operating system %s"
	PlatformUnsupportedArchFmt   = "unsupported architecture %s/%s"

	LayoutCreateDirFmt        = "failed to create directory %s: %w"
	LayoutNotEntrypointFmt    = "%s is not a %s entrypoint"
	LayoutNotUnderVersionsFmt = "%s is not inside a %s directory"
	LayoutDecomposeFmt        = "cannot decompose %s: %w"

	CurrentNotInstalled      = "no default toolchain is set"
	CurrentStateFmt          = "inconsistent toolchain link %s: %s"
	CurrentStateWithCauseFmt = "inconsistent toolchain link %s: %s: %v"
	CurrentNotALink          = "expected a symbolic link"
	CurrentReadFailed        = "failed to read link"
	CurrentUnparseable       = "link target does not follow the versions/<version>/<target>/compactc layout"
	CurrentRemoveFailed      = "failed to remove previous link"
	CurrentVanished          = "link disappeared right after it was created"
	CurrentDanglingFmt       = "link points at missing file %s"
	CurrentTargetStatFmt     = "failed to inspect link target %s"
	CurrentTargetNotFileFmt  = "link target %s is not a regular file"
	CurrentAbsPathFmt        = "failed to resolve absolute path of %s: %w"
	CurrentLinkFailedFmt     = "failed to link %s to %s: %w"
	CurrentMismatchFmt       = "expected %s (%s) after activation but the link resolves to %s (%s)"
)
