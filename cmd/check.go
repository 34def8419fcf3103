package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mcpforge/mcp-scaffold/internal/config"
	"github.com/mcpforge/mcp-scaffold/internal/installer"
)

// checkCmd runs the environment probe on its own, without creating anything.
// Useful for verifying a machine before handing it a scaffolding run.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the environment without creating a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return installer.Check(cmd.Context(), config.Default())
	},
}
