// Package gitrepo performs best-effort git initialization of a generated
// project. A machine without git, or a git that refuses to commit, still
// gets a working project; history is a courtesy.
package gitrepo

import (
	"os/exec"
	"strings"

	"github.com/mcpforge/mcp-scaffold/internal/logger"
)

// Initialize creates a repository in dir, stages everything and records a
// single commit with the given message. Each command runs with its working
// directory set to dir; the installer's own working directory never
// changes. Exit codes are ignored and failures only surface in debug logs.
func Initialize(dir, message string) {
	run(dir, "git", "init")
	run(dir, "git", "add", ".")
	run(dir, "git", "commit", "-m", message)
}

func run(dir, name string, args ...string) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		logger.Debug("[DEBUG] %s %s failed: %v\n%s", name, strings.Join(args, " "), err, output)
		return
	}
	logger.Debug("[DEBUG] %s %s:\n%s", name, strings.Join(args, " "), output)
}
