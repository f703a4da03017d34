// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> link service -> store -> file or SQLite.
//
// The binary is built once and every test runs it against its own data
// directory, passed through MYSTUFF_HOME. Stdin is not a terminal in these
// runs, so prompts fall back to reading lines.

package cmd

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the mystuff binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "mystuff-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "mystuff"
		if os.PathSeparator == '\\' {
			binaryName = "mystuff.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
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

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // data directory
	binary string
}

// newTestEnv creates a fresh, empty data directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		t:      t,
		dir:    filepath.Join(t.TempDir(), ".mystuff"),
		binary: buildBinary(t),
	}
}

func (e *testEnv) command(stdin string, args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.t.TempDir()
	cmd.Env = append(os.Environ(), EnvHome+"="+e.dir)
	cmd.Stdin = strings.NewReader(stdin)
	return cmd
}

// run executes mystuff with the given args and returns stdout only.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	return e.runStdin("", args...)
}

// runStdin executes mystuff with stdin input and returns stdout only.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	stdout, stderr, err := e.runStdinErr(input, args...)
	if err != nil {
		e.t.Fatalf("mystuff %v failed: %v\nstdout: %s\nstderr: %s", args, err, stdout, stderr)
	}
	return stdout
}

// runStdinErr executes mystuff and returns stdout, stderr and any error.
func (e *testEnv) runStdinErr(input string, args ...string) (string, string, error) {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := e.command(input, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// runErr executes mystuff expecting failure and returns combined output.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	stdout, stderr, err := e.runStdinErr("", args...)
	return stdout + stderr, err
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// linksFile returns the raw content of links.jsonl.
func (e *testEnv) linksFile() string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, "links.jsonl"))
	if err != nil {
		e.t.Fatalf("read links.jsonl: %v", err)
	}
	return string(data)
}
