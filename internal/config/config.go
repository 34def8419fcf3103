package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

// Fixed coordinates of the scaffold template on GitHub. The installer always
// materializes from the default branch archive, so there is nothing to
// version or pin here.
const (
	GitHubRepo   = "mcpforge/mcp-scaffold"
	GitHubBranch = "main"

	// DirPrefix is the name prefix of the single top-level directory inside
	// the downloaded archive (GitHub produces e.g. "mcp-scaffold-main").
	DirPrefix = "mcp-scaffold"
)

// Config carries every tunable the installer needs. It is built once at
// process entry via Default() and passed down explicitly; no package reads
// these values from globals or the environment behind the caller's back.
type Config struct {
	// Platform is the detected OS token used to pick remediation text:
	// ubuntu, debian, centos, arch, linux, macos, windows or unknown.
	Platform string

	// ArchiveURL is the zip archive of the template's default branch.
	ArchiveURL string

	// DirPrefix identifies the extracted top-level directory.
	DirPrefix string

	// MinGoVersion is the lowest Go toolchain version the generated
	// project supports, without the "v" prefix (e.g. "1.24").
	MinGoVersion string

	// ProbeAddr is the TCP endpoint dialed by the network check.
	ProbeAddr string

	// DialTimeout bounds the network probe, ExecTimeout bounds every
	// external command the environment check runs, and HTTPTimeout bounds
	// the template archive download.
	DialTimeout time.Duration
	ExecTimeout time.Duration
	HTTPTimeout time.Duration
}

// Default returns the standard installer configuration with the platform
// detected from the running system.
func Default() *Config {
	return &Config{
		Platform:     DetectPlatform(),
		ArchiveURL:   fmt.Sprintf("https://github.com/%s/archive/refs/heads/%s.zip", GitHubRepo, GitHubBranch),
		DirPrefix:    DirPrefix,
		MinGoVersion: "1.24",
		ProbeAddr:    "github.com:443",
		DialTimeout:  5 * time.Second,
		ExecTimeout:  5 * time.Second,
		HTTPTimeout:  60 * time.Second,
	}
}

// DetectPlatform reports which OS the installer is running on. On Linux it
// additionally sniffs /etc/os-release to tell the major distribution
// families apart, since their install commands differ.
func DetectPlatform() string {
	switch runtime.GOOS {
	case "linux":
		return detectLinuxFlavor("/etc/os-release")
	case "darwin":
		return "macos"
	case "windows":
		return "windows"
	default:
		return "unknown"
	}
}

// detectLinuxFlavor classifies a Linux system by the contents of its
// os-release file. Unreadable or unrecognized files fall back to "linux".
func detectLinuxFlavor(osReleasePath string) string {
	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return "linux"
	}
	content := strings.ToLower(string(data))
	switch {
	case strings.Contains(content, "ubuntu"):
		return "ubuntu"
	case strings.Contains(content, "debian"):
		return "debian"
	case strings.Contains(content, "centos"), strings.Contains(content, "rhel"):
		return "centos"
	case strings.Contains(content, "arch"):
		return "arch"
	default:
		return "linux"
	}
}
