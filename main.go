package main

import (
	"fmt"
	"os"

	"github.com/mcpforge/mcp-scaffold/app/core" // Import the core package which loads the manifest and serves the tools
)

// main is the template service entry point.
// It delegates to core.Run() which loads service.yaml, assembles the tool
// registry and serves HTTP until the process is interrupted.
//
// This file, together with app/ and service.yaml, is the part of the
// repository that gets copied into every generated project; the installer
// under cmd/ and internal/ stays behind.
//
// The running service exposes:
//   - GET  /               service identity and status
//   - GET  /health         liveness probe
//   - GET  /tools/discover the enabled tools an agent may call
//   - GET  /tools/list     the complete tool inventory, disabled included
//   - POST /tools/{name}   execute one tool with {"arguments": {}, "context": {}}
//
// Tools live in app/tools: each exposes a constructor returning its
// registration record (name, description, version, enabled flag, handler),
// and app/tools/registry.go collects the constructors into the registry the
// server is built from. Handlers share a per-request context for chaining
// results between tools.
func main() {
	if err := core.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
