package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mcpforge/mcp-scaffold/internal/config"
	"github.com/mcpforge/mcp-scaffold/internal/installer"
)

// opts collects the `new` command flags before they are handed to the
// installer workflow.
var opts installer.Options

// newCmd scaffolds a fresh MCP server project: it checks the environment,
// resolves the service and tool names, fetches the template and materializes
// the project directory.
var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new MCP server project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return installer.Run(cmd.Context(), config.Default(), opts)
	},
}

// init sets up the `new` command flags. Names given here skip the matching
// prompt; in non-interactive runs both are required.
func init() {
	newCmd.Flags().StringVar(&opts.ServiceName, "service-name", "", "Service name (normalized to lowercase-with-hyphens)")
	newCmd.Flags().StringVar(&opts.ToolName, "tool-name", "", "Tool name (normalized to lowercase_with_underscores)")
	newCmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip the confirmation prompt")
	newCmd.Flags().BoolVar(&opts.SkipEnvCheck, "skip-env-check", false, "Skip the environment check (not recommended)")
	newCmd.Flags().StringVar(&opts.TemplateDir, "template-dir", "", "Use a local template checkout instead of downloading")
	newCmd.Flags().StringVar(&opts.ParentDir, "dir", "", "Parent directory for the new project (default: current directory)")
}
