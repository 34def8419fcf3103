// Package core wires the service together: it loads the manifest and hosts
// the HTTP endpoints that expose the registered tools.
package core

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the service manifest, read from service.yaml at startup.
type Config struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	Port        int    `yaml:"port"`
}

// LoadConfig reads the manifest at path. Fields missing from the file keep
// their defaults, and a missing file yields all defaults. The MCP_PORT
// environment variable overrides the configured port either way.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Name:        "mcp-service",
		Description: "MCP Server",
		Version:     "1.0.0",
		Port:        8060,
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if v := os.Getenv("MCP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MCP_PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	return cfg, nil
}
