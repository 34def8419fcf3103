package main

import (
	"github.com/mcpforge/mcp-scaffold/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// The mcp-scaffold installer turns the template repository into a fresh,
// ready-to-run MCP server project:
//   - Checks the environment first (Go toolchain, git, network, write
//     permissions, and optionally Docker) and prints platform-specific
//     remediation for anything missing
//   - Resolves a service name and a tool name, either from flags or by
//     prompting, normalizing arbitrary input into safe identifiers
//   - Fetches the template, from a local checkout via --template-dir or by
//     downloading the published archive, and copies it into a new project
//     directory with the installer-only parts excluded
//   - Rewrites the service manifest, renames the tool source after the chosen
//     tool, regenerates the tool registry, and writes a project README
//   - Initializes a git repository with an initial commit when git is
//     available, and stays silent about it when it is not
//
// Error handling strategy:
//   - Failures before the project directory exists leave the filesystem
//     untouched; failures during materialization remove the partial directory
//   - A declined confirmation exits cleanly with status zero; every real
//     failure exits non-zero after printing remediation text
func main() {
	cmd.Execute()
}
