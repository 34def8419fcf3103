package gitrepo

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpforge/mcp-scaffold/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init(false)
	os.Exit(m.Run())
}

// TestInitialize_RunsInitAddCommit records the git invocations through a
// stub binary and checks the exact sequence and the commit message.
func TestInitialize_RunsInitAddCommit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("stub commands require a POSIX shell")
	}

	bin := t.TempDir()
	callLog := filepath.Join(t.TempDir(), "calls.log")
	script := "#!/bin/sh\necho \"$@\" >> " + callLog + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(bin, "git"), []byte(script), 0755))
	t.Setenv("PATH", bin)

	Initialize(t.TempDir(), "Initial commit: mcp-document-processor from mcp-scaffold")

	data, err := os.ReadFile(callLog)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "init", lines[0])
	assert.Equal(t, "add .", lines[1])
	assert.Equal(t, "commit -m Initial commit: mcp-document-processor from mcp-scaffold", lines[2])
}

// TestInitialize_MissingGit verifies the whole call is a no-op when git is
// absent; it must neither panic nor report anything.
func TestInitialize_MissingGit(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	Initialize(t.TempDir(), "msg")
}

// TestInitialize_KeepsWorkingDirectory pins that the process working
// directory stays put while the commands run inside the target.
func TestInitialize_KeepsWorkingDirectory(t *testing.T) {
	before, err := os.Getwd()
	require.NoError(t, err)

	t.Setenv("PATH", t.TempDir())
	Initialize(t.TempDir(), "msg")

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
