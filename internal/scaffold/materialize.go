// Package scaffold turns a fetched template tree into a new project
// directory: copy, rewrite the manifest, stamp out the tool file, rewrite
// the registry, generate the README. The whole operation is all-or-nothing;
// a failure at any step removes the partially built target.
package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcpforge/mcp-scaffold/internal/identifier"
	"github.com/mcpforge/mcp-scaffold/internal/logger"
)

// Request carries the resolved inputs for one materialization. All fields
// are required and assumed normalized; Materialize does not re-validate
// identifiers.
type Request struct {
	// TemplateDir is the fetched template tree (checkout or extracted
	// archive root).
	TemplateDir string

	// TargetDir is the project directory to create. It must not exist.
	TargetDir string

	ServiceID   string
	ToolID      string
	FolderName  string
	Description string
}

// excluded lists the top-level template entries that never reach a
// generated project: the installer's own code, version control metadata,
// build caches, OS droppings and the repository README. The filter applies
// at the template root only; nested entries with these names are copied.
var excluded = map[string]bool{
	"cmd":       true,
	"internal":  true,
	".git":      true,
	"dist":      true,
	".DS_Store": true,
	"README.md": true,
}

// Literal lines the manifest rewrite matches. They must stay in sync with
// service.yaml at the repository root.
const (
	manifestFile         = "service.yaml"
	templateNameLine     = "name: mcp-scaffold-template"
	templateDescLine     = "description: MCP Server Template built with mcp-scaffold"
	toolTemplateFile     = "tool_template.go"
	registryFile         = "registry.go"
	generatedRegistryFmt = `package tools

// All returns every tool this server exposes. Register additional tools by
// appending their constructors here.
func All() []Tool {
	return []Tool{
		%s(),
	}
}
`
)

// toolSource describes one file the tool generator may consume, together
// with the exact literals that file carries. Replacements always use the
// literals of the file actually read; the two files spell their names and
// descriptions differently.
type toolSource struct {
	file   string
	snake  string
	pascal string
	desc   string
}

// Ordered by preference: the dedicated template first, the live example as
// fallback.
var toolSources = []toolSource{
	{
		file:   toolTemplateFile,
		snake:  "tool_template",
		pascal: "ToolTemplate",
		desc:   "Template tool demonstrating request validation and context chaining",
	},
	{
		file:   "example_tool.go",
		snake:  "example_tool",
		pascal: "ExampleTool",
		desc:   "Example tool that processes input text",
	},
}

// substitution is a single literal rewrite applied to one copied file.
type substitution struct {
	file string
	old  string
	new  string
}

// Materialize builds the project at req.TargetDir from req.TemplateDir.
// Steps, in order: create the target (refusing to touch an existing
// directory), copy the template minus exclusions, rewrite the manifest,
// create the tool file from its template, drop the consumed template file,
// rewrite the tool registry, and generate the project README. If any step
// after directory creation fails, the target is removed before returning.
func Materialize(req Request) (err error) {
	// The stamped tool file lands in app/tools/<tool>.go; these two names
	// would overwrite the runtime files every tool depends on.
	if req.ToolID == "tools" || req.ToolID == "registry" {
		return fmt.Errorf("tool name %q is reserved", req.ToolID)
	}

	if _, statErr := os.Stat(req.TargetDir); statErr == nil {
		return fmt.Errorf("directory %s already exists", req.TargetDir)
	} else if !os.IsNotExist(statErr) {
		return fmt.Errorf("failed to stat %s: %w", req.TargetDir, statErr)
	}

	logger.Info("[INFO] Creating directory: %s\n", req.FolderName)
	if err := os.MkdirAll(req.TargetDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", req.TargetDir, err)
	}

	// From here on the target exists; never leave it half-built.
	defer func() {
		if err != nil {
			_ = os.RemoveAll(req.TargetDir)
		}
	}()

	logger.Info("[INFO] Copying template files...\n")
	if err = copyTemplate(req.TemplateDir, req.TargetDir); err != nil {
		return err
	}

	logger.Info("[INFO] Configuring %s...\n", manifestFile)
	if err = rewriteManifest(req); err != nil {
		return err
	}

	logger.Info("[INFO] Creating tool file: app/tools/%s.go\n", req.ToolID)
	if err = createToolFile(req); err != nil {
		return err
	}

	if err = writeRegistry(req); err != nil {
		return err
	}

	if err = writeReadme(req); err != nil {
		return err
	}

	return nil
}

// copyTemplate copies every top-level entry of templateDir into targetDir,
// skipping the exclusion set. Below the top level everything is copied.
func copyTemplate(templateDir, targetDir string) error {
	entries, err := os.ReadDir(templateDir)
	if err != nil {
		return fmt.Errorf("failed to read template directory: %w", err)
	}

	for _, entry := range entries {
		if excluded[entry.Name()] {
			logger.Debug("[DEBUG] skipping excluded entry %s\n", entry.Name())
			continue
		}
		src := filepath.Join(templateDir, entry.Name())
		dest := filepath.Join(targetDir, entry.Name())
		if entry.IsDir() {
			if err := copyDir(src, dest); err != nil {
				return err
			}
		} else {
			if err := copyFile(src, dest); err != nil {
				return err
			}
		}
	}
	return nil
}

// copyDir recursively copies a directory, preserving permissions.
func copyDir(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if err := os.MkdirAll(dest, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())
		if entry.IsDir() {
			if err := copyDir(srcPath, destPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, destPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// copyFile copies one file, carrying over the source's permission bits and
// modification time.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source failed: %w", err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy failed: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close target failed: %w", err)
	}

	// Chmod after the fact so the source permissions land regardless of the
	// process umask.
	if err := os.Chmod(dest, info.Mode().Perm()); err != nil {
		return fmt.Errorf("preserve mode failed: %w", err)
	}
	if err := os.Chtimes(dest, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("preserve times failed: %w", err)
	}
	return nil
}

// rewriteManifest applies the two manifest substitutions: the template's
// project name becomes the folder name, the template description becomes
// the generated one. Each rule is applied once; order within the file does
// not matter because the literals never overlap.
func rewriteManifest(req Request) error {
	subs := []substitution{
		{file: manifestFile, old: templateNameLine, new: "name: " + req.FolderName},
		{file: manifestFile, old: templateDescLine, new: "description: " + req.Description},
	}
	for _, s := range subs {
		path := filepath.Join(req.TargetDir, s.file)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", s.file, err)
		}
		updated := strings.ReplaceAll(string(data), s.old, s.new)
		if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.file, err)
		}
	}
	return nil
}

// createToolFile stamps the new tool source out of the first available
// template file and removes the consumed template afterwards. When the new
// tool file and the consumed template are the same file (the tool is named
// after the fallback), the write already replaced it and nothing is
// removed.
func createToolFile(req Request) error {
	toolsDir := filepath.Join(req.TargetDir, "app", "tools")
	toolFile := req.ToolID + ".go"

	var src *toolSource
	for i := range toolSources {
		if _, err := os.Stat(filepath.Join(toolsDir, toolSources[i].file)); err == nil {
			src = &toolSources[i]
			break
		}
	}
	if src == nil {
		return fmt.Errorf("no tool template found in %s", toolsDir)
	}
	logger.Debug("[DEBUG] tool template source: %s\n", src.file)

	data, err := os.ReadFile(filepath.Join(toolsDir, src.file))
	if err != nil {
		return fmt.Errorf("failed to read tool template %s: %w", src.file, err)
	}

	pascal := identifier.Pascal(req.ToolID)
	content := string(data)
	content = strings.ReplaceAll(content, src.snake, req.ToolID)
	content = strings.ReplaceAll(content, src.pascal, pascal)
	content = strings.ReplaceAll(content, src.desc, pascal+" tool")

	if err := os.WriteFile(filepath.Join(toolsDir, toolFile), []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write tool file %s: %w", toolFile, err)
	}

	if src.file != toolFile {
		if err := os.Remove(filepath.Join(toolsDir, src.file)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove consumed template %s: %w", src.file, err)
		}
	}
	return nil
}

// writeRegistry overwrites the tool registry so the generated project
// exposes exactly the new tool. Example files still present in the tree are
// no longer referenced from the registry.
func writeRegistry(req Request) error {
	content := fmt.Sprintf(generatedRegistryFmt, identifier.Pascal(req.ToolID))
	path := filepath.Join(req.TargetDir, "app", "tools", registryFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", registryFile, err)
	}
	return nil
}
