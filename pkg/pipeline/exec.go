// Package pipeline runs the external assembly pipeline script.
package pipeline

import (
	"bytes"
	"errors"
	"log/slog"
	"os/exec"

	"basejumper/pkg/form"
)

// Output is what the script printed.
type Output struct {
	Stdout string
	Stderr string
}

// InvocationError reports a script that could not be launched, exited
// non-zero, or wrote to stderr.
type InvocationError struct {
	Err    error // nil when the only problem is stderr output
	Stderr string
}

func (e *InvocationError) Error() string {
	if e.Err == nil {
		return e.Stderr
	}
	if e.Stderr == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n" + e.Stderr
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit status, or -1 if the process never exited
// normally.
func (e *InvocationError) ExitCode() int {
	if e.Err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Command builds `invoker script <args...>`. Each argument stays a single
// argv entry, so paths with spaces are not split.
func Command(invoker, script string, inv form.Invocation) *exec.Cmd {
	var args = append([]string{script}, inv.Args()...)
	return exec.Command(invoker, args...)
}

// Run executes the script and waits for it.
func Run(invoker, script string, inv form.Invocation) (out Output, err error) {
	var (
		cmd            = Command(invoker, script, inv)
		stdout, stderr bytes.Buffer
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	slog.Info("Run", "CMD", cmd)

	err = cmd.Run()
	out = Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		slog.Error("Run", "err", err, "stderr", out.Stderr)
		return out, &InvocationError{Err: err, Stderr: out.Stderr}
	}
	if out.Stderr != "" {
		slog.Error("Run", "stderr", out.Stderr)
		return out, &InvocationError{Stderr: out.Stderr}
	}
	return
}

// Runner binds an invoker and a script path.
type Runner struct {
	Invoker string
	Script  string
}

func (r Runner) Run(inv form.Invocation) (Output, error) {
	return Run(r.Invoker, r.Script, inv)
}
