package tools

// All returns every tool this service ships, in registration order. The
// scaffolder overwrites this file so a freshly generated project registers
// exactly its own tool.
func All() []Tool {
	return []Tool{
		ExampleTool(),
		ToolTemplate(),
		ExampleDataServiceTool(),
		PDFSectionSaver(),
	}
}
