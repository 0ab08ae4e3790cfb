package messages

// Configuration, root directory, dispatch, and console messages.
const (
	ConfigReadFileFmt         = "failed to read config %s: %w"
	ConfigInvalidFmt          = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "unrecognized keys in %s: %v"
	ConfigFieldRequiredFmt    = "%s: %s is required"
	ConfigAPIURLInvalidFmt    = "%s: release.api_url %q is not an absolute http(s) URL"
	ConfigPositiveFmt         = "%s: %s must be positive"

	RootHomeDirFmt  = "failed to determine home directory: %w"
	RootExpandFmt   = "failed to expand %s: %w"
	RootAbsFmt      = "failed to resolve absolute path of %s: %w"
	RootPinIsDirFmt = "%s is a directory, expected a version pin file"
	RootPinStatFmt  = "failed to check %s: %w"

	DispatchErrDispatched                  = "dispatched to another binary"
	DispatchSystemRequired                 = "dispatch system is required"
	DispatchExitHandlerRequired            = "exit handler is required"
	DispatchInvalidEnvVersionFmt           = "invalid %s: %w"
	DispatchNoActiveToolchainFmt           = "%w; run `compact update` to install one"
	DispatchCheckInstalledFmt              = "failed to check %s: %w"
	DispatchNotInstalledFmt                = "compactc %s is not installed for %s; run `compact update %s` first"
	DispatchReadPinFailedFmt               = "failed to read pin file %s: %w"
	DispatchPinFileEmptyWarningFmt         = "Warning: pin file %s has no version; using the default toolchain"
	DispatchInvalidPinnedVersionWarningFmt = "Warning: ignoring pin file %s: %v"

	ConsoleStepFmt                = "%s...\n"
	ConsolePromptAborted          = "prompt aborted"
	ConsolePromptRequiresTerminal = "prompt requires an interactive terminal"
)
