// Package testutil provides a CLI integration-test harness: it builds the
// tree-sitter-grep binary once per test run and executes it as a subprocess
// against a temporary project directory, matching how a real user invokes
// the tool.
package testutil

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the tree-sitter-grep binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "tree-sitter-grep-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "tree-sitter-grep"
		if runtime.GOOS == "windows" {
			binaryName = "tree-sitter-grep.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		projectRoot := moduleRoot(t)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build tree-sitter-grep binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

// moduleRoot walks up from the test package's working directory to the
// directory containing go.mod.
func moduleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not locate go.mod above " + dir)
		}
		dir = parent
	}
}

// Env holds one test's isolated working directory and the compiled binary
// path, and runs tree-sitter-grep as a subprocess rooted there.
type Env struct {
	t      *testing.T
	Dir    string
	binary string
}

// New creates a temporary project directory to search against.
func New(t *testing.T) *Env {
	t.Helper()
	return &Env{t: t, Dir: t.TempDir(), binary: buildBinary(t)}
}

// WriteFile writes a fixture source file relative to the env's directory,
// creating parent directories as needed.
func (e *Env) WriteFile(relPath, content string) {
	e.t.Helper()
	full := filepath.Join(e.Dir, relPath)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(e.t, os.WriteFile(full, []byte(content), 0o644))
}

// Run executes tree-sitter-grep with the given args, rooted in the env's
// directory, and requires that it not fail with a process-level error (an
// ExitNoMatch/ExitMatch status is not a process error; a crash or ExitError
// without At-least-one-match semantics is not asserted here -- use RunErr
// for exit-code assertions).
func (e *Env) Run(args ...string) string {
	e.t.Helper()
	out, _, err := e.RunErr(args...)
	if err != nil {
		if _, ok := err.(*exec.ExitError); !ok {
			e.t.Fatalf("tree-sitter-grep %v failed to start: %v\noutput: %s", args, err, out)
		}
	}
	return out
}

// RunErr executes tree-sitter-grep and returns combined stdout+stderr, the
// process exit code, and any non-exit error (e.g. failure to start).
func (e *Env) RunErr(args ...string) (string, int, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.Dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()

	code := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		code = exitErr.ExitCode()
		return buf.String(), code, nil
	}
	return buf.String(), code, err
}

// Contains asserts that output contains the expected substring.
func (e *Env) Contains(output, expected string) {
	e.t.Helper()
	require.Contains(e.t, output, expected)
}

// NotContains asserts that output does not contain the given substring.
func (e *Env) NotContains(output, expected string) {
	e.t.Helper()
	require.NotContains(e.t, output, expected)
}
