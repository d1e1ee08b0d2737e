//go:build unix

package solver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
}

func TestProcessExecutor_CapturesOutput(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "heuristic", `echo "dataset $1"; echo "fitness was 12.50 from 9 allocations"`)

	ex := NewProcessExecutor(dir, t.TempDir(), 0)
	out, err := ex.Run(context.Background(), "heuristic", "DSg_1")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.Stdout, "dataset DSg_1") {
		t.Errorf("dataset argument not passed, stdout: %q", out.Stdout)
	}
	parsed, err := ParseOutput(out.Stdout)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Fitness != 12.5 || parsed.Allocations != 9 {
		t.Errorf("unexpected parse result %+v", parsed)
	}
	if out.Runtime <= 0 {
		t.Error("expected positive runtime")
	}
}

func TestProcessExecutor_RunsInWorkDir(t *testing.T) {
	build := t.TempDir()
	work := t.TempDir()
	writeScript(t, build, "pso", `pwd`)

	out, err := NewProcessExecutor(build, work, 0).Run(context.Background(), "pso", "DS")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(out.Stdout))
	want, _ := filepath.EvalSymlinks(work)
	if got != want {
		t.Errorf("expected work dir %q, got %q", want, got)
	}
}

func TestProcessExecutor_NonZeroExit(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "ga", `echo "partial"; echo "bad input" >&2; exit 3`)

	_, err := NewProcessExecutor(dir, "", 0).Run(context.Background(), "ga", "DS")
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if re.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", re.ExitCode)
	}
	if !strings.Contains(re.Stderr, "bad input") || !strings.Contains(re.Stdout, "partial") {
		t.Errorf("output not captured: stdout=%q stderr=%q", re.Stdout, re.Stderr)
	}
	if re.TimedOut {
		t.Error("did not expect a timeout")
	}
}

func TestProcessExecutor_Timeout(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "worstcase", `exec sleep 10`)

	start := time.Now()
	_, err := NewProcessExecutor(dir, "", 100*time.Millisecond).Run(context.Background(), "worstcase", "DS")
	var re *RunError
	if !errors.As(err, &re) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if !re.TimedOut {
		t.Errorf("expected TimedOut, got %+v", re)
	}
	if time.Since(start) > 5*time.Second {
		t.Errorf("timeout did not stop the process promptly")
	}
}
