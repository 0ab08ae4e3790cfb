package messages

// Download, unpack, install, lock, and clean messages.
const (
	FetchFailedFmt           = "failed to download %s: %v"
	FetchTooLarge            = "download exceeds the size limit"
	FetchSizeMismatch        = "downloaded size does not match the published size"
	FetchSizeDetailFmt       = "expected %d bytes, got %d"
	FetchLimitDetailFmt      = "limit is %d bytes"
	FetchTimeout             = "download timed out"
	FetchUnexpectedStatusFmt = "unexpected HTTP status %s"
	FetchRetryExhausted      = "download failed after retrying"
	FetchCreateDirFmt        = "failed to create download directory %s: %w"
	FetchCreateTempFileFmt   = "failed to create temporary download file: %w"
	FetchSyncTempFileFmt     = "failed to flush temporary download file: %w"
	FetchCloseTempFileFmt    = "failed to close temporary download file: %w"
	FetchTruncateTempFileFmt = "failed to truncate temporary download file: %w"
	FetchResetTempFileFmt    = "failed to rewind temporary download file: %w"
	FetchMoveFileFmt         = "failed to move download into place at %s: %w"

	UnpackFailedFmt = "failed to unpack (command: %s, working directory: %s, exit status: %d): %s"
	UnpackNoStderr  = "no error output"

	InstallRootRequired          = "root path is required"
	InstallTargetRequired        = "platform target is required"
	InstallSourceRequired        = "release source is required"
	InstallDownloaderRequired    = "downloader is required"
	InstallUnpackerRequired      = "unpacker is required"
	InstallLinkRequired          = "toolchain link is required"
	InstallStepFetching          = "Fetching information from server"
	InstallStepDownloading       = "Downloading artifact"
	InstallStepUnpacking         = "Unpacking compiler"
	InstallEntrypointMissingFmt  = "unpacking finished but %s does not exist; the archive %s may not contain a compiler"
	InstallStatFmt               = "failed to stat %s: %w"
	InstallRemoveStaleArchiveFmt = "failed to remove stale archive %s: %w"
	InstallReadVersionsFmt       = "failed to read installed versions in %s: %w"

	LockOpenFmt    = "failed to open lock file %s: %w"
	LockAcquireFmt = "failed to lock %s: %w"
	LockTimeoutFmt = "timed out after %s waiting for another compact process to finish"

	CleanRemoveFmt = "failed to remove %s: %w"
)
