// Package envcheck verifies the machine can actually build and host a
// generated project before any directory is created. Each check is callable
// on its own; Run executes all of them in a fixed order and hands back a
// report for the CLI to render. Nothing in this package prints or exits.
package envcheck

import (
	"context"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/mcpforge/mcp-scaffold/internal/config"
)

// Status classifies a single check outcome.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	// StatusWarn marks optional tooling that is missing. It never blocks
	// the workflow.
	StatusWarn Status = "warn"
)

// Check is one probe result. Fix holds remediation lines matched to the
// detected platform, empty when the check passed.
type Check struct {
	Name   string
	Status Status
	Detail string
	Fix    []string
}

// Report is the ordered outcome of a full probe run.
type Report struct {
	Platform string
	Checks   []Check
}

// Passed reports whether no required check failed. Warnings do not count
// against the run.
func (r Report) Passed() bool {
	return len(r.Failed()) == 0
}

// Failed returns the checks that hard-failed, in probe order.
func (r Report) Failed() []Check {
	var failed []Check
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			failed = append(failed, c)
		}
	}
	return failed
}

// Run executes every check in the order they are reported to the user:
// Go toolchain, Git, network, write permissions, then the optional Docker
// check. The write probe targets the current working directory because that
// is where the project will be created.
func Run(ctx context.Context, cfg *config.Config) Report {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Report{
		Platform: cfg.Platform,
		Checks: []Check{
			CheckGo(ctx, cfg),
			CheckGit(ctx, cfg),
			CheckNetwork(cfg),
			CheckWritable(cwd),
			CheckDocker(ctx, cfg),
		},
	}
}

// CheckGo verifies a Go toolchain at or above cfg.MinGoVersion is on PATH.
// The generated project cannot be built without one.
func CheckGo(ctx context.Context, cfg *config.Config) Check {
	c := Check{Name: "Go toolchain"}

	out, err := commandOutput(ctx, cfg.ExecTimeout, "go", "version")
	if err != nil {
		c.Status = StatusFail
		c.Detail = "not found"
		c.Fix = platformFix(cfg.Platform,
			"sudo apt-get update && sudo apt-get install -y golang-go",
			"brew install go",
			"Download from: https://go.dev/dl/",
			"Install Go "+cfg.MinGoVersion+"+ from https://go.dev/dl/",
		)
		return c
	}

	version := parseGoVersion(out)
	if version == "" {
		c.Status = StatusFail
		c.Detail = "unrecognized `go version` output: " + out
		c.Fix = []string{"Reinstall Go from https://go.dev/dl/"}
		return c
	}

	c.Detail = version + " (required: " + cfg.MinGoVersion + "+)"
	if semver.Compare("v"+version, "v"+cfg.MinGoVersion) < 0 {
		c.Status = StatusFail
		c.Fix = platformFix(cfg.Platform,
			"sudo apt-get update && sudo apt-get install -y golang-go",
			"brew upgrade go",
			"Download from: https://go.dev/dl/",
			"Upgrade Go to "+cfg.MinGoVersion+"+ from https://go.dev/dl/",
		)
		return c
	}

	c.Status = StatusPass
	return c
}

// CheckGit verifies the git binary is available. Repository initialization
// tolerates a missing git, but a project without history is not what anyone
// wants, so its absence fails the probe.
func CheckGit(ctx context.Context, cfg *config.Config) Check {
	c := Check{Name: "Git"}

	out, err := commandOutput(ctx, cfg.ExecTimeout, "git", "--version")
	if err != nil {
		c.Status = StatusFail
		c.Detail = "not found"
		c.Fix = platformFix(cfg.Platform,
			"sudo apt-get update && sudo apt-get install -y git",
			"brew install git",
			"Download from: https://git-scm.com/download/win",
			"Please install Git for your platform",
		)
		return c
	}

	c.Status = StatusPass
	// Output shape: "git version 2.44.0" with occasional platform suffixes.
	if fields := strings.Fields(out); len(fields) >= 3 {
		c.Detail = fields[2]
	} else {
		c.Detail = out
	}
	return c
}

// CheckNetwork dials the template host over TCP within cfg.DialTimeout.
func CheckNetwork(cfg *config.Config) Check {
	c := Check{Name: "Network"}

	conn, err := net.DialTimeout("tcp", cfg.ProbeAddr, cfg.DialTimeout)
	if err != nil {
		c.Status = StatusFail
		c.Detail = "no connection to " + cfg.ProbeAddr
		c.Fix = []string{
			"Check your internet connection",
			"If you are behind a proxy, set HTTPS_PROXY and try again",
		}
		return c
	}
	_ = conn.Close()

	c.Status = StatusPass
	c.Detail = "connected"
	return c
}

// CheckWritable creates and removes a probe file in dir to prove the
// project directory can be created there.
func CheckWritable(dir string) Check {
	c := Check{Name: "Write permissions"}

	probe := filepath.Join(dir, ".mcp-scaffold-probe")
	f, err := os.Create(probe)
	if err != nil {
		c.Status = StatusFail
		c.Detail = "cannot write to " + dir
		c.Fix = []string{"Run the installer from a directory you have write permissions for"}
		return c
	}
	_ = f.Close()
	_ = os.Remove(probe)

	c.Status = StatusPass
	c.Detail = dir
	return c
}

// CheckDocker looks for the optional docker binary. The template ships a
// Dockerfile, so its absence is worth a warning but never blocks setup.
func CheckDocker(ctx context.Context, cfg *config.Config) Check {
	c := Check{Name: "Docker"}

	out, err := commandOutput(ctx, cfg.ExecTimeout, "docker", "--version")
	if err != nil {
		c.Status = StatusWarn
		c.Detail = "not found (optional, used to build the service image)"
		c.Fix = platformFix(cfg.Platform,
			"sudo apt-get update && sudo apt-get install -y docker.io",
			"brew install --cask docker",
			"Download from: https://www.docker.com/products/docker-desktop/",
			"Please install Docker for your platform",
		)
		return c
	}

	c.Status = StatusPass
	// Output shape: "Docker version 27.1.1, build 6312585".
	if fields := strings.Fields(out); len(fields) >= 3 {
		c.Detail = strings.TrimSuffix(fields[2], ",")
	} else {
		c.Detail = out
	}
	return c
}

// commandOutput runs a command with a deadline and returns its trimmed
// stdout. Every external binary the probe touches goes through here so no
// check can hang the installer.
func commandOutput(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(cctx, name, args...).Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// parseGoVersion pulls the bare version out of `go version` output, e.g.
// "go version go1.24.1 linux/amd64" yields "1.24.1". It returns "" when no
// field looks like a version.
func parseGoVersion(out string) string {
	for _, field := range strings.Fields(out) {
		if !strings.HasPrefix(field, "go") || len(field) <= 2 {
			continue
		}
		version := strings.TrimPrefix(field, "go")
		if version[0] >= '0' && version[0] <= '9' && semver.IsValid("v"+version) {
			return version
		}
	}
	return ""
}

// platformFix picks the remediation line for the detected platform. The apt
// line covers the Debian family, brew covers macOS, win is a download link,
// and generic serves everything else.
func platformFix(platform, apt, brew, win, generic string) []string {
	switch platform {
	case "ubuntu", "debian":
		return []string{apt}
	case "macos":
		return []string{brew}
	case "windows":
		return []string{win}
	default:
		return []string{generic}
	}
}
