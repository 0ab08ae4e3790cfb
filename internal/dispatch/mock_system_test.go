package dispatch

import (
	"errors"
	"fmt"
	"io"
)

// errNotMocked is returned when a testSystem method is called without a mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a mock System for unit tests.
//
// ExecBinary fails fast when not mocked. ReadFile, Getenv, Environ and
// FindPinFile fall back to RealSystem so tests can use t.TempDir and t.Setenv.
type testSystem struct {
	RealSystem

	ReadFileFunc    func(name string) ([]byte, error)
	GetenvFunc      func(key string) string
	EnvironFunc     func() []string
	ExecBinaryFunc  func(path string, args []string, env []string, exit func(int)) error
	FindPinFileFunc func(start string) (string, bool, error)
	StderrFunc      func() io.Writer
}

func (s *testSystem) ReadFile(name string) ([]byte, error) {
	if s.ReadFileFunc != nil {
		return s.ReadFileFunc(name)
	}
	return s.RealSystem.ReadFile(name)
}

func (s *testSystem) Getenv(key string) string {
	if s.GetenvFunc != nil {
		return s.GetenvFunc(key)
	}
	return s.RealSystem.Getenv(key)
}

func (s *testSystem) Environ() []string {
	if s.EnvironFunc != nil {
		return s.EnvironFunc()
	}
	return s.RealSystem.Environ()
}

func (s *testSystem) ExecBinary(path string, args []string, env []string, exit func(int)) error {
	if s.ExecBinaryFunc != nil {
		return s.ExecBinaryFunc(path, args, env, exit)
	}
	return fmt.Errorf("%w: ExecBinary", errNotMocked)
}

func (s *testSystem) FindPinFile(start string) (string, bool, error) {
	if s.FindPinFileFunc != nil {
		return s.FindPinFileFunc(start)
	}
	return s.RealSystem.FindPinFile(start)
}

func (s *testSystem) Stderr() io.Writer {
	if s.StderrFunc != nil {
		return s.StderrFunc()
	}
	return io.Discard
}
