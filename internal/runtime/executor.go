// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/term"
)

var (
	// ErrExecutableNotFound is returned when the program does not exist or
	// is not in PATH.
	ErrExecutableNotFound = errors.New("executable not found")

	// ErrPermissionDenied is returned when the program exists but cannot be
	// executed.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrWorkDirNotFound is returned when the invocation's working directory
	// does not exist or is not a directory.
	ErrWorkDirNotFound = errors.New("working directory not found")

	// ErrSpawnFailed covers every other failure to start the child.
	ErrSpawnFailed = errors.New("failed to start process")
)

type (
	// Executor runs an invocation in the foreground and reports how it exited.
	// A non-nil error means the child never ran; a child that ran and failed
	// is reported through the ExitCode alone.
	Executor interface {
		Run(ctx context.Context, inv Invocation) (ExitCode, error)
	}

	// ProcessExecutor runs invocations as OS processes.
	ProcessExecutor struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// Environ supplies the inherited environment. Defaults to os.Environ.
		Environ func() []string
		// SharesTerminal reports whether a terminal interrupt already reaches
		// the child through the shared foreground process group. Defaults to
		// checking whether Stdin is a terminal.
		SharesTerminal func() bool
	}

	// SpawnError describes a child that could not be started. Kind is one of
	// the Err* sentinels of this package.
	SpawnError struct {
		Program string
		Kind    error
		Err     error
	}
)

// Error implements the error interface.
func (e *SpawnError) Error() string {
	if errors.Is(e.Kind, ErrSpawnFailed) {
		return fmt.Sprintf("%s %q: %v", e.Kind, e.Program, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Program, e.Kind)
}

// Unwrap exposes both the classification and the underlying cause.
func (e *SpawnError) Unwrap() []error { return []error{e.Kind, e.Err} }

// Run starts the child, waits for it and returns its exit code. Cancelling
// ctx sends the child an interrupt unless it shares the launcher's terminal,
// which has already delivered one. Either way Run waits for it to exit.
func (e *ProcessExecutor) Run(ctx context.Context, inv Invocation) (ExitCode, error) {
	if inv.Program == "" {
		return ExitFailure, &SpawnError{Kind: ErrExecutableNotFound, Err: errors.New("empty program name")}
	}
	if inv.WorkDir != "" {
		info, err := os.Stat(inv.WorkDir)
		if err != nil {
			return ExitFailure, &SpawnError{Program: inv.Program, Kind: ErrWorkDirNotFound, Err: err}
		}
		if !info.IsDir() {
			return ExitFailure, &SpawnError{Program: inv.Program, Kind: ErrWorkDirNotFound, Err: fmt.Errorf("%s is not a directory", inv.WorkDir)}
		}
	}

	// A relative program with a separator resolves against Dir, not the
	// launcher's working directory.
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Dir = inv.WorkDir
	cmd.Env = MergeEnv(e.environ(), inv.Env)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	sharesTerminal := e.sharesTerminal()
	cmd.Cancel = func() error {
		if sharesTerminal {
			return nil
		}
		return cmd.Process.Signal(os.Interrupt)
	}

	if err := cmd.Start(); err != nil {
		return ExitFailure, classifySpawnError(inv.Program, err)
	}

	waitErr := cmd.Wait()
	if cmd.ProcessState == nil {
		return ExitFailure, fmt.Errorf("wait for %s: %w", inv.Program, waitErr)
	}
	return exitCodeOf(cmd.ProcessState), nil
}

func (e *ProcessExecutor) environ() []string {
	if e.Environ != nil {
		return e.Environ()
	}
	return os.Environ()
}

func (e *ProcessExecutor) sharesTerminal() bool {
	if e.SharesTerminal != nil {
		return e.SharesTerminal()
	}
	f, ok := e.Stdin.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func classifySpawnError(program string, err error) *SpawnError {
	kind := ErrSpawnFailed
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		kind = ErrExecutableNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = ErrPermissionDenied
	}
	return &SpawnError{Program: program, Kind: kind, Err: err}
}

// exitCodeOf maps a finished process to an ExitCode, using 128+N for a
// child killed by signal N.
func exitCodeOf(state *os.ProcessState) ExitCode {
	if code := state.ExitCode(); code >= 0 {
		return ExitCode(code)
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitCode(signalExitBase + int(ws.Signal()))
	}
	return ExitFailure
}
