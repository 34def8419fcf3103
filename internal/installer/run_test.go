package installer

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpforge/mcp-scaffold/internal/config"
	"github.com/mcpforge/mcp-scaffold/internal/identifier"
	"github.com/mcpforge/mcp-scaffold/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init(false)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.ExecTimeout = 2 * time.Second
	return cfg
}

// writeTemplate lays out the minimum checkout the workflow consumes: the
// manifest with its replaceable lines, both tool sources, and directories
// that must not be copied into a generated project.
func writeTemplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"service.yaml": "name: mcp-scaffold-template\n" +
			"description: MCP Server Template built with mcp-scaffold\n" +
			"port: 8060\n",
		"main.go": "package main\n",
		"app/tools/example_tool.go": "package tools\n\n" +
			"// ExampleTool returns the example_tool definition.\n" +
			"func ExampleTool() Tool {\n" +
			"\treturn Tool{Name: \"example_tool\", Description: \"Example tool that processes input text\"}\n" +
			"}\n",
		"app/tools/tool_template.go": "package tools\n\n" +
			"// ToolTemplate returns the tool_template definition.\n" +
			"func ToolTemplate() Tool {\n" +
			"\treturn Tool{Name: \"tool_template\", Description: \"Template tool demonstrating request validation and context chaining\"}\n" +
			"}\n",
		"app/tools/registry.go": "package tools\n\nfunc All() []Tool { return nil }\n",
		"cmd/root.go":           "package cmd\n",
		"internal/notes.txt":    "installer only\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// feedInput replaces the prompt reader for the duration of the test.
func feedInput(t *testing.T, lines string) {
	t.Helper()
	old := input
	input = bufio.NewReader(strings.NewReader(lines))
	t.Cleanup(func() { input = old })
}

func TestRun_EndToEndLocalTemplate(t *testing.T) {
	parent := t.TempDir()

	err := Run(context.Background(), testConfig(), Options{
		ServiceName:  "Document Processor!",
		ToolName:     "Doc Proc",
		Yes:          true,
		SkipEnvCheck: true,
		TemplateDir:  writeTemplate(t),
		ParentDir:    parent,
	})
	require.NoError(t, err)

	target := filepath.Join(parent, "mcp-document-processor")
	require.DirExists(t, target)

	manifest, err := os.ReadFile(filepath.Join(target, "service.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), "name: mcp-document-processor")
	assert.Contains(t, string(manifest), "description: MCP Document Processor Server")

	tool, err := os.ReadFile(filepath.Join(target, "app", "tools", "doc_proc.go"))
	require.NoError(t, err)
	assert.Contains(t, string(tool), "func DocProc() Tool")
	assert.NoFileExists(t, filepath.Join(target, "app", "tools", "tool_template.go"))

	readme, err := os.ReadFile(filepath.Join(target, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "# mcp-document-processor")
	assert.Contains(t, string(readme), "/tools/doc_proc")

	// The installer's own machinery must not leak into the project.
	assert.NoDirExists(t, filepath.Join(target, "cmd"))
	assert.NoDirExists(t, filepath.Join(target, "internal"))
}

func TestRun_NonInteractiveRequiresNames(t *testing.T) {
	// Under `go test` stdin is not a terminal, so the workflow has nobody
	// to prompt and must refuse before touching the filesystem.
	parent := t.TempDir()

	err := Run(context.Background(), testConfig(), Options{
		SkipEnvCheck: true,
		TemplateDir:  writeTemplate(t),
		ParentDir:    parent,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--service-name")
	assert.Contains(t, err.Error(), "--tool-name")

	entries, readErr := os.ReadDir(parent)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestRun_MissingToolNameOnly(t *testing.T) {
	err := Run(context.Background(), testConfig(), Options{
		ServiceName:  "document-processor",
		SkipEnvCheck: true,
		TemplateDir:  writeTemplate(t),
		ParentDir:    t.TempDir(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--tool-name")
}

func TestRun_ExistingTarget(t *testing.T) {
	parent := t.TempDir()
	target := filepath.Join(parent, "mcp-document-processor")
	require.NoError(t, os.MkdirAll(target, 0o755))
	precious := filepath.Join(target, "precious.txt")
	require.NoError(t, os.WriteFile(precious, []byte("keep me\n"), 0o644))

	err := Run(context.Background(), testConfig(), Options{
		ServiceName:  "document-processor",
		ToolName:     "doc_proc",
		Yes:          true,
		SkipEnvCheck: true,
		TemplateDir:  writeTemplate(t),
		ParentDir:    parent,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// Whatever was there before stays untouched.
	content, readErr := os.ReadFile(precious)
	require.NoError(t, readErr)
	assert.Equal(t, "keep me\n", string(content))
}

func TestRun_FetchFailure(t *testing.T) {
	parent := t.TempDir()

	err := Run(context.Background(), testConfig(), Options{
		ServiceName:  "document-processor",
		ToolName:     "doc_proc",
		Yes:          true,
		SkipEnvCheck: true,
		TemplateDir:  filepath.Join(parent, "no-such-checkout"),
		ParentDir:    parent,
	})
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(parent, "mcp-document-processor"))
}

func TestResolveName_FlagNormalized(t *testing.T) {
	id, err := resolveName("Document Processor!", identifier.Service, false, "")
	require.NoError(t, err)
	assert.Equal(t, "document-processor", id)
}

func TestResolveName_PromptLoopSkipsEmptyInput(t *testing.T) {
	feedInput(t, "\n   \nDoc Proc!\n")

	id, err := resolveName("", identifier.Tool, true, "Enter tool name: ")
	require.NoError(t, err)
	assert.Equal(t, "doc_proc", id)
}

func TestResolveName_PromptEOF(t *testing.T) {
	feedInput(t, "")

	_, err := resolveName("", identifier.Service, true, "Enter service name: ")
	require.Error(t, err)
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"yes\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tc := range cases {
		feedInput(t, tc.in)
		assert.Equal(t, tc.want, confirm("Proceed? (y/n): "), "input %q", tc.in)
	}
}
