package dispatch

import (
	"io"
	"os"

	"github.com/conn-castle/compactup/internal/root"
)

// System abstracts OS operations needed to hand execution to a toolchain.
type System interface {
	ReadFile(name string) ([]byte, error)
	Getenv(key string) string
	Environ() []string
	ExecBinary(path string, args []string, env []string, exit func(int)) error
	FindPinFile(start string) (string, bool, error)
	Stderr() io.Writer
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// Environ returns a copy of strings representing the environment.
func (RealSystem) Environ() []string {
	return os.Environ()
}

// ExecBinary replaces the current process with the provided binary.
func (RealSystem) ExecBinary(path string, args []string, env []string, exit func(int)) error {
	return execBinary(path, args, env, exit)
}

// FindPinFile searches upwards from start for a toolchain pin file.
func (RealSystem) FindPinFile(start string) (string, bool, error) {
	return root.FindPinFile(start)
}

// Stderr returns the standard error writer.
func (RealSystem) Stderr() io.Writer {
	return os.Stderr
}
