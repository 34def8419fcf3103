package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ExampleToolRequest is the argument payload for example_tool.
type ExampleToolRequest struct {
	// InputText is the text to process.
	InputText string `json:"input_text"`
	// Uppercase converts the result to uppercase when true.
	Uppercase bool `json:"uppercase"`
}

// ExampleToolResponse is the result payload for example_tool.
type ExampleToolResponse struct {
	Result string `json:"result"`
	Length int    `json:"length"`
}

// ExampleTool processes input text, optionally uppercasing it, and tags the
// result with the calling user from the shared context. The result is stored
// back into the context so the next tool in the chain can pick it up.
func ExampleTool() Tool {
	return Tool{
		Name:        "example_tool",
		Description: "Example tool that processes input text",
		Version:     "1.0.0",
		Enabled:     true,
		Handler:     runExampleTool,
	}
}

func runExampleTool(ctx *Context, args json.RawMessage) (any, error) {
	var req ExampleToolRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if strings.TrimSpace(req.InputText) == "" {
		return nil, errors.New("input_text is required")
	}

	// Read data left by previous tools in the chain.
	userID := ctx.SharedString("user_id", "unknown")

	result := req.InputText
	if req.Uppercase {
		result = strings.ToUpper(result)
	}
	result = fmt.Sprintf("[User: %s] %s", userID, result)

	// Leave the result for the next tool.
	ctx.SetSharedData("last_result", result)
	ctx.SetSharedData("last_length", len(result))

	return ExampleToolResponse{Result: result, Length: len(result)}, nil
}
