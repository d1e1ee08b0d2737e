package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound is wrapped by RunError when no executable exists for a method.
var ErrNotFound = errors.New("executable not found")

// RunError describes a solver invocation that did not exit cleanly.
type RunError struct {
	Method   string
	Dataset  string
	ExitCode int // -1 when the process never produced an exit status
	Stdout   string
	Stderr   string
	TimedOut bool
	Err      error
}

func (e *RunError) Error() string {
	switch {
	case e.TimedOut:
		return fmt.Sprintf("%s on %s: timed out: %v", e.Method, e.Dataset, e.Err)
	case e.ExitCode >= 0:
		return fmt.Sprintf("%s on %s: exit status %d: %s", e.Method, e.Dataset, e.ExitCode, lastLine(e.Stderr))
	default:
		return fmt.Sprintf("%s on %s: %v", e.Method, e.Dataset, e.Err)
	}
}

func (e *RunError) Unwrap() error { return e.Err }

// Locate finds the executable for method in buildDir, with or without an .exe suffix.
func Locate(buildDir, method string) (string, bool) {
	for _, name := range []string{method, method + ".exe"} {
		p := filepath.Join(buildDir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// ProcessExecutor runs solver binaries from BuildDir as child processes.
type ProcessExecutor struct {
	BuildDir string
	WorkDir  string        // solvers resolve data/ relative to this directory
	Timeout  time.Duration // 0 disables the timeout
}

// NewProcessExecutor creates an executor for the binaries in buildDir.
func NewProcessExecutor(buildDir, workDir string, timeout time.Duration) *ProcessExecutor {
	return &ProcessExecutor{BuildDir: buildDir, WorkDir: workDir, Timeout: timeout}
}

func (p *ProcessExecutor) Name() string { return "process" }

func (p *ProcessExecutor) Available(method string) bool {
	_, ok := Locate(p.BuildDir, method)
	return ok
}

// Run starts the solver with the dataset name as its only argument and waits for it.
func (p *ProcessExecutor) Run(ctx context.Context, method, dataset string) (*Output, error) {
	path, ok := Locate(p.BuildDir, method)
	if !ok {
		return nil, &RunError{Method: method, Dataset: dataset, ExitCode: -1, Err: ErrNotFound}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &RunError{Method: method, Dataset: dataset, ExitCode: -1, Err: err}
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, abs, dataset)
	cmd.Dir = p.WorkDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	runErr := cmd.Run()
	out := &Output{Stdout: stdout.String(), Stderr: stderr.String(), Runtime: time.Since(start)}
	if runErr == nil {
		return out, nil
	}

	re := &RunError{
		Method:  method,
		Dataset: dataset,
		Stdout:  out.Stdout,
		Stderr:  out.Stderr,
		Err:     runErr,
	}
	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		re.TimedOut = true
		re.ExitCode = -1
	case errors.As(runErr, &exitErr):
		re.ExitCode = exitErr.ExitCode()
	default:
		re.ExitCode = -1
	}
	return out, re
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
