package messages

// Release source and catalogue messages.
const (
	ReleaseNetworkDisabled   = "network access is disabled (COMPACT_NO_NETWORK is set)"
	ReleaseFetchFailedFmt    = "failed to query %s for releases: %v"
	ReleaseRateLimitFmt      = "GitHub API rate limit exceeded (%d remaining, resets at %s); set COMPACT_GITHUB_TOKEN or GITHUB_TOKEN to raise the limit"
	ReleaseInvalidBaseURLFmt = "invalid GitHub API URL %q: %w"
	ReleaseTooManyPagesFmt   = "release listing exceeded %d pages"

	CatalogueFormatFmt           = "unexpected release %s: %s"
	CatalogueEmpty               = "no compiler versions are published"
	CatalogueNoMatchFmt          = "no published compiler version matches %s"
	CatalogueUnknownAssetFmt     = "unsupported compiler platform in asset %s"
	CatalogueDuplicateAssetFmt   = "more than one %s asset (%s)"
	CatalogueMissingFamilyFmt    = "no %s asset"
	CatalogueDuplicateVersionFmt = "version %s is also published as %s"
)
