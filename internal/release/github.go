package release

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v59/github"

	"github.com/conn-castle/compactup/internal/logging"
	"github.com/conn-castle/compactup/internal/messages"
)

const (
	// DefaultOwner and DefaultRepo identify the repository publishing the toolchain.
	DefaultOwner = "midnightntwrk"
	DefaultRepo  = "compact"

	// perPage is the GitHub maximum page size.
	perPage = 100

	// maxPages bounds pagination against a misbehaving API.
	maxPages = 50
)

// GitHubSource lists releases through the GitHub Releases API.
type GitHubSource struct {
	client     *github.Client
	httpClient *http.Client
	owner      string
	repo       string
	baseURL    string
	token      string
	userAgent  string
	logger     *log.Logger
}

// Option configures a GitHubSource.
type Option func(*GitHubSource)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(g *GitHubSource) {
		g.httpClient = c
	}
}

// WithBaseURL overrides the API base URL, primarily for test servers and GitHub Enterprise.
func WithBaseURL(base string) Option {
	return func(g *GitHubSource) {
		g.baseURL = strings.TrimSpace(base)
	}
}

// WithToken authenticates requests, raising the API rate limit.
func WithToken(token string) Option {
	return func(g *GitHubSource) {
		g.token = strings.TrimSpace(token)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(g *GitHubSource) {
		g.userAgent = ua
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(g *GitHubSource) {
		g.logger = l
	}
}

// NewGitHubSource builds a source for owner/repo.
func NewGitHubSource(owner, repo string, opts ...Option) (*GitHubSource, error) {
	g := &GitHubSource{
		owner:     owner,
		repo:      repo,
		userAgent: "compact",
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.Discard()
	}

	client := github.NewClient(g.httpClient)
	if g.token != "" {
		client = client.WithAuthToken(g.token)
	}
	if g.baseURL != "" {
		base := g.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		parsed, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf(messages.ReleaseInvalidBaseURLFmt, g.baseURL, err)
		}
		client.BaseURL = parsed
	}
	client.UserAgent = g.userAgent
	g.client = client
	return g, nil
}

// String identifies the source in diagnostics.
func (g *GitHubSource) String() string {
	return "github.com/" + g.owner + "/" + g.repo
}

// ListReleases fetches every page of releases, skipping drafts.
func (g *GitHubSource) ListReleases(ctx context.Context) ([]Release, error) {
	var out []Release
	opts := &github.ListOptions{PerPage: perPage}
	for page := 0; page < maxPages; page++ {
		g.logger.Debug("fetching releases", "source", g.String(), "page", opts.Page)

		releases, resp, err := g.client.Repositories.ListReleases(ctx, g.owner, g.repo, opts)
		if err != nil {
			return nil, &FetchError{Source: g.String(), Err: translateError(err)}
		}
		for _, rel := range releases {
			if rel.GetDraft() {
				continue
			}
			out = append(out, convertRelease(rel))
		}
		if resp == nil || resp.NextPage == 0 {
			g.logger.Debug("fetched releases", "source", g.String(), "count", len(out))
			return out, nil
		}
		opts.Page = resp.NextPage
	}
	return nil, &FetchError{Source: g.String(), Err: fmt.Errorf(messages.ReleaseTooManyPagesFmt, maxPages)}
}

func convertRelease(rel *github.RepositoryRelease) Release {
	out := Release{Tag: rel.GetTagName()}
	for _, asset := range rel.Assets {
		out.Assets = append(out.Assets, Asset{
			Name: asset.GetName(),
			URL:  asset.GetBrowserDownloadURL(),
			Size: int64(asset.GetSize()),
		})
	}
	return out
}

// translateError maps go-github rate-limit errors onto RateLimitError.
func translateError(err error) error {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &RateLimitError{
			Limit:     rateErr.Rate.Limit,
			Remaining: rateErr.Rate.Remaining,
			ResetAt:   rateErr.Rate.Reset.Time,
		}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		rl := &RateLimitError{}
		if abuseErr.RetryAfter != nil {
			rl.ResetAt = timeNow().Add(*abuseErr.RetryAfter)
		}
		return rl
	}
	return err
}
