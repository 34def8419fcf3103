package installer

import (
	"fmt"

	"github.com/mcpforge/mcp-scaffold/internal/envcheck"
	"github.com/mcpforge/mcp-scaffold/internal/logger"
)

// PrintReport renders an environment probe for the terminal. Both the `new`
// workflow and the standalone `check` command go through here so the output
// stays identical.
func PrintReport(report envcheck.Report) {
	printBanner("Environment Check")
	fmt.Printf("  Platform: %s\n", report.Platform)
	fmt.Println()

	for _, check := range report.Checks {
		switch check.Status {
		case envcheck.StatusPass:
			logger.Info("  ✅ %s: %s\n", check.Name, check.Detail)
		case envcheck.StatusWarn:
			logger.Warn("  ⚠️  %s: %s\n", check.Name, check.Detail)
		case envcheck.StatusFail:
			logger.Error("  ❌ %s: %s\n", check.Name, check.Detail)
		}
		for _, fix := range check.Fix {
			fmt.Printf("     %s\n", fix)
		}
	}
	fmt.Println()

	if report.Passed() {
		logger.Info("✅ All environment checks passed!\n")
	} else {
		logger.Error("❌ %d check(s) failed.\n", len(report.Failed()))
	}
	fmt.Println()
}
