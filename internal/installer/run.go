// Package installer drives the end-to-end scaffolding workflow the CLI
// exposes: environment probing, name resolution, confirmation, template
// acquisition, materialization and repository initialization. It owns all
// terminal interaction; the packages it calls into stay silent apart from
// logging.
package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcpforge/mcp-scaffold/internal/config"
	"github.com/mcpforge/mcp-scaffold/internal/envcheck"
	"github.com/mcpforge/mcp-scaffold/internal/gitrepo"
	"github.com/mcpforge/mcp-scaffold/internal/identifier"
	"github.com/mcpforge/mcp-scaffold/internal/logger"
	"github.com/mcpforge/mcp-scaffold/internal/scaffold"
	"github.com/mcpforge/mcp-scaffold/internal/templatesrc"
)

// Options carries the raw flag values for one `new` invocation. Names are
// untrusted user input; Run normalizes them before use.
type Options struct {
	ServiceName  string
	ToolName     string
	Yes          bool
	SkipEnvCheck bool

	// TemplateDir selects the local template source when non-empty;
	// otherwise the published archive is downloaded.
	TemplateDir string

	// ParentDir is where the project directory is created. Empty means the
	// current working directory.
	ParentDir string
}

const ruleWidth = 70

// Run executes the scaffolding workflow. It returns nil both on success and
// when the user declines the confirmation prompt; every other outcome is an
// error the CLI turns into a non-zero exit.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	interactive := Interactive()

	// Without an interactive stdin there is nobody to prompt, so both
	// names must arrive as flags before anything else happens.
	if !interactive && (opts.ServiceName == "" || opts.ToolName == "") {
		return fmt.Errorf("cannot read input from stdin: provide --service-name and --tool-name\n" +
			"Example: mcp-scaffold new --service-name document-processor --tool-name document_processor")
	}

	printBanner("MCP Server Installer")

	parent := opts.ParentDir
	if parent == "" {
		parent = "."
	}
	absParent, err := filepath.Abs(parent)
	if err != nil {
		return fmt.Errorf("failed to resolve parent directory: %w", err)
	}
	fmt.Printf("Current directory: %s\n", absParent)
	fmt.Println("Note: The service will be created in a subdirectory of this location.")
	fmt.Println()

	if !opts.SkipEnvCheck {
		report := envcheck.Run(ctx, cfg)
		PrintReport(report)
		if !report.Passed() {
			logger.Error("Environment check failed. Please fix the issues above and try again.\n")
			fmt.Println("You can skip this check with --skip-env-check (not recommended)")
			return fmt.Errorf("environment check failed")
		}
	}

	fmt.Println("Step 1: Service Configuration")
	printRule("-")
	serviceID, err := resolveName(opts.ServiceName, identifier.Service, interactive,
		"Enter service name (e.g., 'document-processor'): ")
	if err != nil {
		return err
	}
	folderName := identifier.FolderName(serviceID)
	description := identifier.Description(serviceID)
	fmt.Println()
	fmt.Printf("  → Service folder: %s\n", folderName)
	fmt.Printf("  → Description: %s\n", description)
	fmt.Println()

	fmt.Println("Step 2: Tool Configuration")
	printRule("-")
	toolID, err := resolveName(opts.ToolName, identifier.Tool, interactive,
		"Enter tool name (e.g., 'document_processor'): ")
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("  → Tool file: app/tools/%s.go\n", toolID)
	fmt.Println()

	if !opts.Yes {
		fmt.Println("Step 3: Confirmation")
		printRule("-")
		fmt.Printf("Service Name:  %s\n", folderName)
		fmt.Printf("Description:   %s\n", description)
		fmt.Printf("Tool Name:     %s\n", toolID)
		fmt.Println()

		if interactive {
			if !confirm("Proceed with setup? (y/n): ") {
				fmt.Println()
				fmt.Println("Setup cancelled.")
				return nil
			}
		} else {
			fmt.Println("Note: Non-interactive mode detected. Proceeding with setup...")
			fmt.Println()
		}
	}

	fmt.Println()
	fmt.Println("Step 4: Creating Project")
	printRule("-")

	targetDir := filepath.Join(absParent, folderName)
	if _, err := os.Stat(targetDir); err == nil {
		logger.Error("[ERROR] Directory '%s' already exists!\n", folderName)
		return fmt.Errorf("directory %s already exists", targetDir)
	}

	templateDir, cleanup, err := templateSource(cfg, opts).Fetch(ctx)
	if err != nil {
		logger.Error("[ERROR] Failed to fetch template: %v\n", err)
		printFetchAlternative()
		return err
	}
	defer cleanup()

	err = scaffold.Materialize(scaffold.Request{
		TemplateDir: templateDir,
		TargetDir:   targetDir,
		ServiceID:   serviceID,
		ToolID:      toolID,
		FolderName:  folderName,
		Description: description,
	})
	if err != nil {
		logger.Error("[ERROR] Setup failed: %v\n", err)
		fmt.Printf("\nCleaning up %s...\n", folderName)
		// Materialize removes its own partial output; this catches anything
		// it could not.
		_ = os.RemoveAll(targetDir)
		return err
	}

	logger.Info("[INFO] Initializing git repository...\n")
	gitrepo.Initialize(targetDir, fmt.Sprintf("Initial commit: %s from mcp-scaffold", folderName))

	printNextSteps(folderName, toolID)
	return nil
}

// Check runs the environment probe on its own, for the `check` subcommand.
func Check(ctx context.Context, cfg *config.Config) error {
	report := envcheck.Run(ctx, cfg)
	PrintReport(report)
	if !report.Passed() {
		return fmt.Errorf("environment check failed")
	}
	return nil
}

// resolveName turns flag input or prompted input into a validated
// identifier. Flag values are normalized silently except for a notice when
// normalization changed them; prompted input loops until something usable
// arrives.
func resolveName(raw string, ns identifier.Namespace, interactive bool, prompt string) (string, error) {
	if raw != "" {
		id := identifier.Normalize(raw, ns)
		if !identifier.Valid(id, ns) {
			return "", fmt.Errorf("%s name %s", ns.Label, ns.Requirement)
		}
		if id != raw {
			fmt.Printf("%s name: %s → normalized to: %s\n", identifier.TitleWords(ns.Label), raw, id)
		} else {
			fmt.Printf("%s name: %s\n", identifier.TitleWords(ns.Label), id)
		}
		return id, nil
	}

	if !interactive {
		return "", fmt.Errorf("cannot read %s name from stdin: provide --service-name and --tool-name", ns.Label)
	}

	for {
		value, err := readLine(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read %s name: %w", ns.Label, err)
		}
		if value == "" {
			fmt.Println("  Error: Input cannot be empty. Please try again.")
			continue
		}
		id := identifier.Normalize(value, ns)
		if !identifier.Valid(id, ns) {
			fmt.Printf("  Error: %s name %s.\n", identifier.TitleWords(ns.Label), ns.Requirement)
			continue
		}
		if id != value {
			fmt.Printf("  → Normalized to: %s\n", id)
		}
		return id, nil
	}
}

// templateSource picks the acquisition strategy: an explicit --template-dir
// wins, otherwise the published archive is downloaded.
func templateSource(cfg *config.Config, opts Options) templatesrc.Source {
	if opts.TemplateDir != "" {
		return templatesrc.Local{Dir: opts.TemplateDir}
	}
	return templatesrc.Remote{
		URL:     cfg.ArchiveURL,
		Prefix:  cfg.DirPrefix,
		Timeout: cfg.HTTPTimeout,
	}
}

// printFetchAlternative explains the manual path when the download fails.
func printFetchAlternative() {
	fmt.Println()
	fmt.Println("Alternative installation method:")
	fmt.Println("1. Clone the repository:")
	fmt.Printf("   git clone https://github.com/%s.git\n", config.GitHubRepo)
	fmt.Println("2. Run the installer against the checkout:")
	fmt.Println("   mcp-scaffold new --template-dir mcp-scaffold")
}

func printNextSteps(folderName, toolID string) {
	fmt.Println()
	printRule("=")
	logger.Info("✅ Setup Complete!\n")
	printRule("=")
	fmt.Println()
	fmt.Printf("Your MCP server has been created in: %s\n", folderName)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println()
	fmt.Printf("  1. cd %s\n", folderName)
	fmt.Println("  2. go mod tidy                   # Install dependencies")
	fmt.Printf("  3. Edit app/tools/%s.go           # Implement your tool logic\n", toolID)
	fmt.Println("  4. go run .                      # Start server on port 8060")
	fmt.Println()
	fmt.Printf("For more information, see: https://github.com/%s\n", config.GitHubRepo)
	fmt.Println()
}

func printBanner(title string) {
	printRule("=")
	fmt.Println(title)
	printRule("=")
	fmt.Println()
}

func printRule(ch string) {
	fmt.Println(strings.Repeat(ch, ruleWidth))
}
