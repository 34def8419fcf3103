package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/mcpforge/mcp-scaffold/internal/config"
)

const fence = "```"

// readmeTemplate renders the README written into every generated project.
// The port matches the template service default in service.yaml.
var readmeTemplate = template.Must(template.New("readme").Parse(`# {{.FolderName}}

{{.Description}}

## Quick Start

### 1. Install Dependencies

` + fence + `bash
go mod tidy
` + fence + `

### 2. Run Server

` + fence + `bash
go run .
` + fence + `

### 3. Test the Tool

` + fence + `bash
# Discover tools
curl http://localhost:8060/tools/discover

# Execute your tool
curl -X POST http://localhost:8060/tools/{{.ToolID}} \
  -H "Content-Type: application/json" \
  -d '{"arguments": {}, "context": {}}'
` + fence + `

## Implement Your Tool

Edit ` + "`app/tools/{{.ToolID}}.go`" + ` and fill in the handler. Restart the
server and the tool is live.

## Documentation

For detailed documentation, see: https://github.com/` + config.GitHubRepo + `
`))

// writeReadme generates the project README from the request.
func writeReadme(req Request) error {
	path := filepath.Join(req.TargetDir, "README.md")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create README.md: %w", err)
	}
	defer f.Close()

	data := struct {
		FolderName  string
		Description string
		ToolID      string
	}{
		FolderName:  req.FolderName,
		Description: req.Description,
		ToolID:      req.ToolID,
	}
	if err := readmeTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render README.md: %w", err)
	}
	return nil
}
