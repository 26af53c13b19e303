package provision

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/create-webapp/internal/errors"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecRunner_WorkingDirectory(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	var stdout bytes.Buffer
	r := &ExecRunner{Stdout: &stdout, Stderr: &stdout}

	wd, err := os.Getwd()
	require.NoError(t, err)

	status, err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "pwd"}, Dir: dir})
	require.NoError(t, err)
	assert.True(t, status.Success())

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, after, "the CLI's working directory must not change")
}

func TestExecRunner_ExitCode(t *testing.T) {
	skipWithoutShell(t)

	status, err := (&ExecRunner{}).Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 3"}, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 3, status.Code)
	assert.False(t, status.Success())
}

func TestExecRunner_NotFound(t *testing.T) {
	status, err := (&ExecRunner{}).Run(context.Background(), Command{Name: "definitely-not-a-real-binary-7f3a"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E131"))
	assert.Equal(t, -1, status.Code)
}

func TestExecRunner_Canceled(t *testing.T) {
	skipWithoutShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	status, err := (&ExecRunner{}).Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 5"}, Dir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, -1, status.Code)
}

func TestNewExecRunner(t *testing.T) {
	r := NewExecRunner()
	assert.Equal(t, os.Stdout, r.Stdout)
	assert.Equal(t, os.Stderr, r.Stderr)
	assert.Equal(t, os.Stdin, r.Stdin)
}
