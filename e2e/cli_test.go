//go:build e2e

package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type result struct {
	stdout   string
	stderr   string
	exitCode int
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(binPath, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else {
		require.NoError(t, err, "failed to start binary")
	}
	return result{stdout: stdout.String(), stderr: stderr.String(), exitCode: code}
}

func writeScenario(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestInitWritesRunnableScenario(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "example.toml")

	res := runCLI(t, "init", path)
	require.Equal(t, 0, res.exitCode, res.stderr)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[[steps]]")

	res = runCLI(t, "run", path)
	require.Equal(t, 0, res.exitCode, res.stderr)
	require.Contains(t, res.stdout, "PASS example")
}

func TestRunScenarioFromSpecExample(t *testing.T) {
	t.Parallel()
	path := writeScenario(t, "three.toml", `
name = "three options"

[[options]]
value = 1
disabled = false

[[options]]
value = 2
disabled = false

[[options]]
value = 3
disabled = true

[[steps]]
action = "check"
value = 1
expect = [1]

[[steps]]
action = "check"
value = 2
expect = [1, 2]

[[steps]]
action = "check"
value = 3
expect = [1, 2]

[[steps]]
action = "check_all"
expect = []
`)

	res := runCLI(t, "run", path)
	require.Equal(t, 0, res.exitCode, res.stderr)
	require.Contains(t, res.stdout, "rejected: disabled")
	require.Contains(t, res.stdout, "PASS three options")
}

func TestRunExitsNonZeroOnFailedExpectation(t *testing.T) {
	t.Parallel()
	path := writeScenario(t, "floor.toml", `
name = "floor"

[checker]
min = 1

[[options]]
value = "a"

[[options]]
value = "b"

[[steps]]
action = "check"
value = "a"

[[steps]]
action = "check"
value = "a"
expect = []
`)

	res := runCLI(t, "run", path)
	require.Equal(t, 1, res.exitCode)
	require.Contains(t, res.stdout, "rejected: min_reached")
	require.Contains(t, res.stdout, "FAIL floor")
	require.Contains(t, res.stderr, "scenario expectations failed")
}

func TestValidateRejectsBadConfig(t *testing.T) {
	t.Parallel()
	path := writeScenario(t, "bad.toml", "[checker]\nmode = \"radio\"\nmax = 3\n")

	res := runCLI(t, "validate", path)
	require.Equal(t, 1, res.exitCode)
	require.Contains(t, res.stderr, "single mode holds at most one value")
}

func TestRunWritesLogFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	scenarioPath := filepath.Join(dir, "example.toml")
	logPath := filepath.Join(dir, "checker.log")

	require.Equal(t, 0, runCLI(t, "init", scenarioPath).exitCode)

	res := runCLI(t, "--log-level", "debug", "--log-file", logPath, "run", scenarioPath)
	require.Equal(t, 0, res.exitCode, res.stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "scenario finished")
	require.Contains(t, string(data), "SelectionCleared")
}
