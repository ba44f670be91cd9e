package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/skeletonize/document"
)

const fixture = "../../skeleton/testdata/session.copilotmd"

// runCLI runs the root command with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"SKELETONIZE_THRESHOLD", "SKELETONIZE_HEAD", "SKELETONIZE_TAIL", "SKELETONIZE_REDACT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.Writer = &out
	err := cmd.Run(context.Background(), append([]string{"skeletonize"}, args...))
	return out.String(), err
}

// copyFixture places the session fixture in a temp dir under name.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRunDefaultOutput(t *testing.T) {
	input := copyFixture(t, "session.copilot.md")

	out, err := runCLI(t, input)
	require.NoError(t, err)

	want := filepath.Join(filepath.Dir(input), "session.skeleton.copilot.md")
	assert.Equal(t, "Skeleton saved to: "+want+"\n", out)

	got, err := os.ReadFile(want)
	require.NoError(t, err)
	golden, err := os.ReadFile("../../skeleton/testdata/session.skeleton.copilotmd")
	require.NoError(t, err)
	assert.Equal(t, string(golden), string(got))
}

func TestRunStatsJSON(t *testing.T) {
	input := copyFixture(t, "session.copilot.md")
	output := filepath.Join(t.TempDir(), "nested", "out.md")

	out, err := runCLI(t, "--stats", "--stats-format", "json", "-o", output, input)
	require.NoError(t, err)

	line, rest, ok := strings.Cut(out, "\n")
	require.True(t, ok)
	assert.Equal(t, "Skeleton saved to: "+output, line)

	var report struct {
		Input  string `json:"input"`
		Output string `json:"output"`
		Stats  struct {
			OriginalLines       int `json:"original_lines"`
			KeptLines           int `json:"kept_lines"`
			ToolBlocksProcessed int `json:"tool_blocks_processed"`
		} `json:"stats"`
		CompressionRatio float64 `json:"compression_ratio"`
	}
	require.NoError(t, json.Unmarshal([]byte(rest), &report))
	assert.Equal(t, input, report.Input)
	assert.Equal(t, output, report.Output)
	assert.Equal(t, 65, report.Stats.OriginalLines)
	assert.Equal(t, 47, report.Stats.KeptLines)
	assert.Equal(t, 4, report.Stats.ToolBlocksProcessed)
	assert.InDelta(t, 27.7, report.CompressionRatio, 0.001)
	assert.FileExists(t, output)
}

func TestRunStatsTerminal(t *testing.T) {
	input := copyFixture(t, "session.copilot.md")

	out, err := runCLI(t, "--stats", input)
	require.NoError(t, err)
	assert.Contains(t, out, "Skeleton stats")
	assert.Contains(t, out, "27.7%")
}

func TestRunHTML(t *testing.T) {
	input := copyFixture(t, "session.copilot.md")

	_, err := runCLI(t, "--format", "html", input)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(filepath.Dir(input), "session.skeleton.copilot.html"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}

func TestRunPolicyFlags(t *testing.T) {
	input := copyFixture(t, "session.copilot.md")
	output := filepath.Join(t.TempDir(), "out.md")

	_, err := runCLI(t, "--threshold", "20", "--head", "5", "--tail", "5", "-o", output, input)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"filePath": "/repo... (`)
}

func TestRunRedact(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "chat.md")
	require.NoError(t, os.WriteFile(input, []byte("Contact ops@example.com about it.\n"), 0o644))

	out, err := runCLI(t, "--redact", "pii", "--stats", "--stats-format", "json", input)
	require.NoError(t, err)
	assert.Contains(t, out, `"redactions": 1`)

	data, err := os.ReadFile(filepath.Join(dir, "chat.skeleton.md"))
	require.NoError(t, err)
	assert.Equal(t, "Contact [REDACTED:email] about it.\n", string(data))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	input := copyFixture(t, "session.copilot.md")

	t.Run("missing input", func(t *testing.T) {
		_, err := runCLI(t, filepath.Join(dir, "nope.md"))
		assert.ErrorIs(t, err, document.ErrInputNotFound)
	})

	t.Run("no argument", func(t *testing.T) {
		_, err := runCLI(t)
		assert.ErrorContains(t, err, "missing <input-path>")
	})

	t.Run("invalid utf8", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.md")
		require.NoError(t, os.WriteFile(bad, []byte{0xff, '\n'}, 0o644))
		_, err := runCLI(t, bad)
		assert.ErrorIs(t, err, document.ErrInputUnreadable)
	})

	t.Run("unwritable output", func(t *testing.T) {
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))
		_, err := runCLI(t, "-o", filepath.Join(blocker, "out.md"), input)
		assert.ErrorIs(t, err, document.ErrOutputWrite)
	})

	t.Run("invalid policy", func(t *testing.T) {
		_, err := runCLI(t, "--threshold", "50", input)
		assert.ErrorContains(t, err, "must exceed head + tail")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := runCLI(t, "--format", "pdf", input)
		assert.ErrorContains(t, err, "unknown format")
	})

	t.Run("unknown stats format", func(t *testing.T) {
		_, err := runCLI(t, "--stats", "--stats-format", "xml", input)
		assert.ErrorContains(t, err, "unknown stats format")
	})
}
