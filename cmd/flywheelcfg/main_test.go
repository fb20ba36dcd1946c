package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/flywheelcfg/internal/cli"
)

func TestRun_Help(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error for help")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok, "expected *cli.ExitError, got %T", err)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_InvalidSyntaxIsRejected(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A robotconfig.py with a missing closing brace.
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "robotconfig.py")
	err := os.WriteFile(filePath, []byte("{\n    \"units\": \"Rotations\",\n"), 0o600)
	require.NoError(t, err, "failed to set up test file")
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, &bytes.Buffer{}, []string{"validate", filePath})

	// --- Assert ---
	require.Error(t, runErr)
	exitErr, ok := runErr.(*cli.ExitError)
	require.True(t, ok, "expected *cli.ExitError, got %T", runErr)
	require.Equal(t, 1, exitErr.Code)
	require.Contains(t, out.String(), "failed to parse python config")
	require.Contains(t, out.String(), "unterminated dict")
}
