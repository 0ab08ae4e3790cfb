package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/compactup/internal/release"
)

func noSleep(t *testing.T) {
	t.Helper()
	orig := fetchSleep
	fetchSleep = func(time.Duration) {}
	t.Cleanup(func() { fetchSleep = orig })
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDownloadWritesFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("archive-bytes"))
	}))
	t.Cleanup(server.Close)

	dest := filepath.Join(t.TempDir(), "versions", "0.29.1", "x86_64-unknown-linux-musl", "artifact")
	d := NewHTTPDownloader(0, 0, nil)
	err := d.Download(context.Background(), release.Asset{URL: server.URL, Size: 13}, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "archive-bytes", string(data))
	assert.Equal(t, []string{"artifact"}, listDir(t, filepath.Dir(dest)), "no temp files left behind")
}

func TestDownloadRetriesOnceOnServerError(t *testing.T) {
	noSleep(t)
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(server.Close)

	dest := filepath.Join(t.TempDir(), "artifact")
	err := NewHTTPDownloader(0, 0, nil).Download(context.Background(), release.Asset{URL: server.URL}, dest)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDownloadGivesUpAfterOneRetry(t *testing.T) {
	noSleep(t)
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	dest := filepath.Join(dir, "artifact")
	err := NewHTTPDownloader(0, 0, nil).Download(context.Background(), release.Asset{URL: server.URL}, dest)
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, server.URL, fetchErr.URL)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(2), calls.Load())
	assert.Empty(t, listDir(t, dir), "failed download leaves nothing at dest")
}

func TestDownloadDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.NotFound(w, nil)
	}))
	t.Cleanup(server.Close)

	err := NewHTTPDownloader(0, 0, nil).Download(context.Background(), release.Asset{URL: server.URL}, filepath.Join(t.TempDir(), "artifact"))
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDownloadRejectsSizeMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("short"))
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	err := NewHTTPDownloader(0, 0, nil).Download(context.Background(), release.Asset{URL: server.URL, Size: 999}, filepath.Join(dir, "artifact"))
	require.ErrorIs(t, err, ErrSizeMismatch)
	assert.Empty(t, listDir(t, dir))
}

func TestDownloadEnforcesMaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("0123456789"))
	}))
	t.Cleanup(server.Close)

	err := NewHTTPDownloader(0, 4, nil).Download(context.Background(), release.Asset{URL: server.URL}, filepath.Join(t.TempDir(), "artifact"))
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestDownloadReplacesExistingFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fresh"))
	}))
	t.Cleanup(server.Close)

	dest := filepath.Join(t.TempDir(), "artifact")
	require.NoError(t, os.WriteFile(dest, []byte("stale-partial"), 0o644))
	require.NoError(t, NewHTTPDownloader(0, 0, nil).Download(context.Background(), release.Asset{URL: server.URL}, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(data))
}

func TestDownloadRenameFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	t.Cleanup(server.Close)

	orig := osRename
	osRename = func(string, string) error { return errors.New("rename boom") }
	t.Cleanup(func() { osRename = orig })

	dir := t.TempDir()
	err := NewHTTPDownloader(0, 0, nil).Download(context.Background(), release.Asset{URL: server.URL}, filepath.Join(dir, "artifact"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rename boom")
	assert.Empty(t, listDir(t, dir))
}

func TestDownloadCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewHTTPDownloader(0, 0, nil).Download(ctx, release.Asset{URL: server.URL}, filepath.Join(t.TempDir(), "artifact"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
