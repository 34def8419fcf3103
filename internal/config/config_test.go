package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDefault_Populated verifies every field of the default configuration is
// filled in, since downstream packages treat an empty field as a bug in the
// caller rather than something to repair.
func TestDefault_Populated(t *testing.T) {
	cfg := Default()

	require.NotEmpty(t, cfg.Platform)
	require.Contains(t, cfg.ArchiveURL, GitHubRepo)
	require.Contains(t, cfg.ArchiveURL, GitHubBranch)
	require.Equal(t, DirPrefix, cfg.DirPrefix)
	require.NotEmpty(t, cfg.MinGoVersion)
	require.NotEmpty(t, cfg.ProbeAddr)
	require.NotZero(t, cfg.DialTimeout)
	require.NotZero(t, cfg.ExecTimeout)
	require.NotZero(t, cfg.HTTPTimeout)
}

// TestDetectLinuxFlavor covers the os-release classification, including the
// fallbacks for unreadable and unrecognized files.
func TestDetectLinuxFlavor(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"ubuntu", `NAME="Ubuntu"` + "\n" + `ID=ubuntu`, "ubuntu"},
		{"debian", `PRETTY_NAME="Debian GNU/Linux 12"`, "debian"},
		{"centos", `NAME="CentOS Stream"`, "centos"},
		{"rhel", `ID="rhel"`, "centos"},
		{"arch", `NAME="Arch Linux"`, "arch"},
		{"other", `NAME="Gentoo"`, "linux"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "os-release")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))
			require.Equal(t, tc.want, detectLinuxFlavor(path))
		})
	}
}

// TestDetectLinuxFlavor_Missing falls back to the generic token when the
// file cannot be read at all.
func TestDetectLinuxFlavor_Missing(t *testing.T) {
	require.Equal(t, "linux", detectLinuxFlavor(filepath.Join(t.TempDir(), "absent")))
}
