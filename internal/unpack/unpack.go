// Package unpack extracts downloaded archives with an external program.
package unpack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/conn-castle/compactup/internal/logging"
	"github.com/conn-castle/compactup/internal/messages"
)

// DefaultProgram is the extractor used when none is configured.
const DefaultProgram = "unzip"

// DefaultArgs precede the archive path; -o overwrites files left by an interrupted run.
var DefaultArgs = []string{"-o"}

var execCommandContext = exec.CommandContext

// Unpacker extracts an archive into dir.
type Unpacker interface {
	Unpack(ctx context.Context, archive, dir string) error
}

// ExtractionError carries what is needed to reproduce a failed extraction by hand.
type ExtractionError struct {
	Program  string
	Args     []string
	Dir      string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExtractionError) Error() string {
	command := strings.Join(append([]string{e.Program}, e.Args...), " ")
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		stderr = messages.UnpackNoStderr
	}
	return fmt.Sprintf(messages.UnpackFailedFmt, command, e.Dir, e.ExitCode, stderr)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Command runs Program with Args followed by the archive path, inside the target directory.
type Command struct {
	Program string
	Args    []string
	Logger  *log.Logger
}

// NewCommand returns an unpacker for program; an empty program selects DefaultProgram and DefaultArgs.
func NewCommand(program string, args []string, logger *log.Logger) *Command {
	if strings.TrimSpace(program) == "" {
		program = DefaultProgram
		if args == nil {
			args = DefaultArgs
		}
	}
	return &Command{Program: program, Args: args, Logger: logger}
}

// Unpack runs the extractor with dir as its working directory. Output is
// captured rather than streamed.
func (c *Command) Unpack(ctx context.Context, archive, dir string) error {
	logger := logging.OrDiscard(c.Logger)
	args := append(append([]string{}, c.Args...), archive)

	cmd := execCommandContext(ctx, c.Program, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("unpacking archive", "program", c.Program, "args", args, "dir", dir)
	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return &ExtractionError{
			Program:  c.Program,
			Args:     args,
			Dir:      dir,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	logger.Debug("unpacked archive", "dir", dir, "stdout_bytes", stdout.Len())
	return nil
}
