package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "service.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeManifest(t, "name: mcp-scaffold-template\n"+
		"description: MCP Server Template built with mcp-scaffold\n"+
		"version: 1.0.0\n"+
		"port: 8060\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "mcp-scaffold-template", cfg.Name)
	assert.Equal(t, "MCP Server Template built with mcp-scaffold", cfg.Description)
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, 8060, cfg.Port)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "mcp-service", cfg.Name)
	assert.Equal(t, 8060, cfg.Port)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeManifest(t, "name: my-service\n"))
	require.NoError(t, err)
	assert.Equal(t, "my-service", cfg.Name)
	assert.Equal(t, "MCP Server", cfg.Description)
	assert.Equal(t, 8060, cfg.Port)
}

func TestLoadConfig_PortOverride(t *testing.T) {
	t.Setenv("MCP_PORT", "9100")

	cfg, err := LoadConfig(writeManifest(t, "port: 8060\n"))
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
}

func TestLoadConfig_BadPortOverride(t *testing.T) {
	t.Setenv("MCP_PORT", "eighty")

	_, err := LoadConfig(writeManifest(t, "port: 8060\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MCP_PORT")
}

func TestLoadConfig_BadYAML(t *testing.T) {
	_, err := LoadConfig(writeManifest(t, "name: [\n"))
	require.Error(t, err)
}
