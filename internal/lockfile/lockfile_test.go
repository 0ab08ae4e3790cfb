package lockfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestWithRunsFunctionAndCreatesLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "root", ".lock")
	ran := false
	if err := With(path, func() error {
		ran = true
		return nil
	}); err != nil {
		t.Fatalf("With: %v", err)
	}
	if !ran {
		t.Fatal("expected fn to run")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected lock file: %v", err)
	}
}

func TestWithPropagatesFunctionError(t *testing.T) {
	boom := errors.New("boom")
	err := With(filepath.Join(t.TempDir(), ".lock"), func() error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestWithIsReentrantAfterRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")
	for i := 0; i < 3; i++ {
		if err := With(path, func() error { return nil }); err != nil {
			t.Fatalf("With #%d: %v", i, err)
		}
	}
}

func TestLockTimesOutWhileHeld(t *testing.T) {
	origTimeout, origPoll, origSleep, origFlock := lockWaitTimeout, lockPollEvery, lockSleep, flockFn
	lockWaitTimeout = 0
	lockPollEvery = time.Millisecond
	lockSleep = func(time.Duration) {}
	flockFn = func(int, int) error { return unix.EWOULDBLOCK }
	t.Cleanup(func() {
		lockWaitTimeout, lockPollEvery, lockSleep, flockFn = origTimeout, origPoll, origSleep, origFlock
	})

	called := false
	err := With(filepath.Join(t.TempDir(), ".lock"), func() error {
		called = true
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected timeout error, got %v", err)
	}
	if called {
		t.Fatal("fn must not run without the lock")
	}
}

func TestLockWaitsForHolder(t *testing.T) {
	origSleep, origFlock := lockSleep, flockFn
	attempts := 0
	flockFn = func(fd int, how int) error {
		if how&unix.LOCK_EX != 0 {
			attempts++
			if attempts < 3 {
				return unix.EAGAIN
			}
		}
		return nil
	}
	lockSleep = func(time.Duration) {}
	t.Cleanup(func() {
		lockSleep, flockFn = origSleep, origFlock
	})

	if err := With(filepath.Join(t.TempDir(), ".lock"), func() error { return nil }); err != nil {
		t.Fatalf("With: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestLockUnexpectedFlockError(t *testing.T) {
	origFlock := flockFn
	flockFn = func(int, int) error { return unix.EBADF }
	t.Cleanup(func() { flockFn = origFlock })

	err := With(filepath.Join(t.TempDir(), ".lock"), func() error { return nil })
	if !errors.Is(err, unix.EBADF) {
		t.Fatalf("expected EBADF, got %v", err)
	}
}

func TestAcquireFailsWhenParentIsFile(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "root")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := With(filepath.Join(blocker, ".lock"), func() error { return nil }); err == nil {
		t.Fatal("expected error")
	}
}
