// Package fetch downloads release artifacts to disk.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/compactup/internal/logging"
	"github.com/conn-castle/compactup/internal/messages"
	"github.com/conn-castle/compactup/internal/release"
)

const (
	// DefaultMaxBytes caps a single artifact download.
	DefaultMaxBytes = int64(500 * 1024 * 1024)
	// DefaultTimeout bounds a single artifact download.
	DefaultTimeout = 5 * time.Minute

	retryCount   = 1
	retryBackoff = 250 * time.Millisecond
)

var (
	osCreateTemp = os.CreateTemp
	osRename     = os.Rename
	fetchSleep   = time.Sleep
)

// Downloader writes an asset to dest.
type Downloader interface {
	Download(ctx context.Context, asset release.Asset, dest string) error
}

// Error reports a failed artifact transfer.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf(messages.FetchFailedFmt, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrTooLarge is returned when a response exceeds the configured limit.
var ErrTooLarge = errors.New(messages.FetchTooLarge)

// ErrSizeMismatch is returned when the transferred size differs from the advertised size.
var ErrSizeMismatch = errors.New(messages.FetchSizeMismatch)

// HTTPDownloader downloads over HTTP. Files appear at dest only after a
// complete transfer.
type HTTPDownloader struct {
	Client   *http.Client
	MaxBytes int64
	Logger   *log.Logger
}

// NewHTTPDownloader returns a downloader with the given timeout and size cap;
// non-positive values select the defaults.
func NewHTTPDownloader(timeout time.Duration, maxBytes int64, logger *log.Logger) *HTTPDownloader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPDownloader{
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: maxBytes,
		Logger:   logger,
	}
}

// Download fetches asset into dest via a temporary sibling file.
func (d *HTTPDownloader) Download(ctx context.Context, asset release.Asset, dest string) error {
	logger := logging.OrDiscard(d.Logger)
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf(messages.FetchCreateDirFmt, dir, err)
	}

	tmp, err := osCreateTemp(dir, filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.FetchCreateTempFileFmt, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	logger.Debug("downloading artifact", "url", asset.URL, "dest", dest)
	n, err := d.copyTo(ctx, asset.URL, tmp)
	if err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.FetchSyncTempFileFmt, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.FetchCloseTempFileFmt, err)
	}
	if asset.Size > 0 && n != asset.Size {
		return &Error{URL: asset.URL, Err: fmt.Errorf("%w: %s", ErrSizeMismatch, fmt.Sprintf(messages.FetchSizeDetailFmt, asset.Size, n))}
	}
	if err := osRename(tmpName, dest); err != nil {
		return fmt.Errorf(messages.FetchMoveFileFmt, dest, err)
	}
	committed = true
	logger.Debug("downloaded artifact", "url", asset.URL, "bytes", n)
	return nil
}

func (d *HTTPDownloader) copyTo(ctx context.Context, url string, dest *os.File) (int64, error) {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	maxBytes := d.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	for attempt := 0; attempt <= retryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return 0, &Error{URL: url, Err: err}
		}
		resp, err := client.Do(req)
		if err != nil {
			if shouldRetry(ctx, attempt, err, 0) {
				fetchSleep(retryBackoff)
				continue
			}
			if isTimeoutError(err) {
				return 0, &Error{URL: url, Err: errors.New(messages.FetchTimeout)}
			}
			return 0, &Error{URL: url, Err: err}
		}
		if resp.StatusCode != http.StatusOK {
			status := resp.StatusCode
			statusText := resp.Status
			_ = resp.Body.Close()
			if shouldRetry(ctx, attempt, nil, status) {
				fetchSleep(retryBackoff)
				continue
			}
			return 0, &Error{URL: url, Err: fmt.Errorf(messages.FetchUnexpectedStatusFmt, statusText)}
		}

		if err := dest.Truncate(0); err != nil {
			_ = resp.Body.Close()
			return 0, fmt.Errorf(messages.FetchTruncateTempFileFmt, err)
		}
		if _, err := dest.Seek(0, io.SeekStart); err != nil {
			_ = resp.Body.Close()
			return 0, fmt.Errorf(messages.FetchResetTempFileFmt, err)
		}

		n, copyErr := io.Copy(dest, io.LimitReader(resp.Body, maxBytes+1))
		_ = resp.Body.Close()
		if copyErr != nil {
			if shouldRetry(ctx, attempt, copyErr, 0) {
				fetchSleep(retryBackoff)
				continue
			}
			return 0, &Error{URL: url, Err: copyErr}
		}
		if n > maxBytes {
			return 0, &Error{URL: url, Err: fmt.Errorf("%w: %s", ErrTooLarge, fmt.Sprintf(messages.FetchLimitDetailFmt, maxBytes))}
		}
		return n, nil
	}
	return 0, &Error{URL: url, Err: errors.New(messages.FetchRetryExhausted)}
}

func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// shouldRetry allows one retry for transport errors and 5xx responses.
func shouldRetry(ctx context.Context, attempt int, err error, statusCode int) bool {
	if attempt >= retryCount || ctx.Err() != nil {
		return false
	}
	if err != nil {
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}
