package messages

// CLI messages for user-facing commands.
const (
	// RootUse is the CLI command name.
	RootUse = "compact"
	// RootShort is the short description for the root command.
	RootShort = "Manage Compact compiler toolchains"
	RootLong  = `The compact command installs, activates, and runs versions of the Compact compiler (compactc).

Toolchains live under $HOME/.compact unless --directory or COMPACT_DIRECTORY says otherwise.`
	RootFlagDirectory = "toolchain root directory (default $HOME/.compact, env COMPACT_DIRECTORY)"
	RootFlagTarget    = "platform target to install for; only useful for testing"
	RootFlagVerbose   = "print debug logs to stderr"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// CheckUse is the check command name.
	CheckUse                = "check"
	CheckShort              = "Check for updates with the remote server"
	CheckFailedFmt          = "failed to check for new versions: %w"
	CheckUpToDate           = "Up to date"
	CheckUpdateAvailable    = "Update Available"
	CheckNoVersionInstalled = "no version installed"
	CheckLatestFmt          = "Latest version available: %s."
	CheckNoVersionAvailable = "no version available"

	// UpdateUse is the update command name.
	UpdateUse   = "update [VERSION]"
	UpdateShort = "Install the latest or a specific version of the Compact toolchain"
	UpdateLong  = `Install the latest or a specific version of the Compact toolchain.

VERSION is either exact (0.29.1) or a major.minor line (0.29), which selects its newest patch release.
The installed version becomes the default unless --no-set-default is given.
A version that is already unpacked is not downloaded again.`
	UpdateFlagNoSetDefault = "don't make the installed compiler the default one"
	UpdateFailedFmt        = "failed to update: %w"
	UpdateInstalled        = "installed"
	UpdateAlreadyInstalled = "already installed"
	UpdateDefault          = "default"

	// ListUse is the list command name.
	ListUse             = "list"
	ListShort           = "List available compact versions"
	ListFlagInstalled   = "show installed versions"
	ListFailedFmt       = "failed to list available versions: %w"
	ListAvailableHeader = "available versions"
	ListInstalledHeader = "installed versions"

	// CleanUse is the clean command name.
	CleanUse                    = "clean"
	CleanShort                  = "Remove installed compact versions"
	CleanFlagKeepCurrent        = "keep the version currently in use"
	CleanFlagCache              = "also remove the cached archive of kept versions"
	CleanFlagYes                = "remove without asking for confirmation"
	CleanFailedFmt              = "failed to clean: %w"
	CleanConfirmTitle           = "Remove installed toolchains?"
	CleanConfirmAllDescription  = "Every installed version and the default link will be deleted."
	CleanConfirmKeepDescription = "Every installed version except the default one will be deleted."
	CleanRequiresConfirmation   = "clean needs confirmation; run in an interactive terminal or pass --yes"
	CleanAborted                = "nothing removed"
	CleanRemoved                = "removed"
	CleanKept                   = "kept"
	CleanArchiveRemovedFmt      = "removed cached archive %s"
	CleanNothingRemoved         = "nothing to remove"

	// CompileUse is the compile command name.
	CompileUse   = "compile [+VERSION] [ARGS...]"
	CompileShort = "Run the compiler for the default or given VERSION"
	CompileLong  = `Run compactc with ARGS.

A leading +VERSION (exact) selects an installed toolchain for this invocation.
Otherwise COMPACT_VERSION, then the nearest .compact-version file, then the default toolchain is used.

Usage examples:

  compact compile source/path target/path
  compact compile +0.21.0 --help`
	CompileFailedFmt            = "failed to run compactc: %w"
	CompileFlagValueRequiredFmt = "flag %s needs a value"
)
