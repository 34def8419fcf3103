package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// This file is the starting point for new tools. Copy it, rename the types
// and the constructor after your tool, and fill in the handler. It shows the
// request patterns most tools need: a required field, optional flags with
// defaults, a bounded number, a list, and shared-context chaining.
//
// Keep Enabled false while the tool is under development: it stays out of
// /tools/discover (so agents will not pick it up) but remains visible in
// /tools/list and executable via POST /tools/tool_template for testing.

// ToolTemplateRequest is the argument payload for tool_template.
type ToolTemplateRequest struct {
	// InputText is required and must not be blank.
	InputText string `json:"input_text"`
	// Uppercase converts the result to uppercase when true.
	Uppercase bool `json:"uppercase"`
	// Prefix is prepended to the result when non-empty.
	Prefix string `json:"prefix"`
	// RepeatCount repeats the text, 1 to 10 times. Zero means 1.
	RepeatCount int `json:"repeat_count"`
	// Tags are attached to the response metadata and shared with later
	// tools in the chain.
	Tags []string `json:"tags"`
}

// ToolTemplateResponse is the result payload for tool_template.
type ToolTemplateResponse struct {
	Result         string         `json:"result"`
	Metadata       map[string]any `json:"metadata"`
	Length         int            `json:"length"`
	ProcessingInfo map[string]any `json:"processing_info"`
}

// ToolTemplate demonstrates the full shape of a tool: argument validation,
// defaults, reading data earlier tools stored, and leaving data for later
// ones.
func ToolTemplate() Tool {
	return Tool{
		Name:        "tool_template",
		Description: "Template tool demonstrating request validation and context chaining",
		Version:     "1.0.0",
		Enabled:     false,
		Handler:     runToolTemplate,
	}
}

func runToolTemplate(ctx *Context, args json.RawMessage) (any, error) {
	var req ToolTemplateRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	// Validate and default the arguments before doing any work.
	req.InputText = strings.TrimSpace(req.InputText)
	if req.InputText == "" {
		return nil, errors.New("input_text cannot be empty or whitespace only")
	}
	if req.RepeatCount == 0 {
		req.RepeatCount = 1
	}
	if req.RepeatCount < 1 || req.RepeatCount > 10 {
		return nil, fmt.Errorf("repeat_count must be between 1 and 10, got %d", req.RepeatCount)
	}

	// Read what earlier tools in the chain left behind. Always supply a
	// fallback; the keys may not exist on the first call.
	userID := ctx.SharedString("user_id", "anonymous")
	previousResult := ctx.SharedString("last_result", "")
	executionCount := ctx.SharedInt("execution_count", 0)

	result := req.InputText
	var transformations []string
	if req.Uppercase {
		result = strings.ToUpper(result)
		transformations = append(transformations, "uppercase")
	}
	if req.Prefix != "" {
		result = req.Prefix + result
		transformations = append(transformations, "prefix: "+req.Prefix)
	}
	if req.RepeatCount > 1 {
		parts := make([]string, req.RepeatCount)
		for i := range parts {
			parts[i] = result
		}
		result = strings.Join(parts, " ")
		transformations = append(transformations, fmt.Sprintf("repeated %dx", req.RepeatCount))
	}
	if previousResult != "" {
		result = fmt.Sprintf("%s\n[Previous: %s]", result, previousResult)
	}

	metadata := map[string]any{
		"processed_by":        userID,
		"tags":                req.Tags,
		"uppercase_applied":   req.Uppercase,
		"prefix_applied":      req.Prefix != "",
		"repeat_count":        req.RepeatCount,
		"has_previous_result": previousResult != "",
	}
	processingInfo := map[string]any{
		"original_length": len(req.InputText),
		"result_length":   len(result),
		"transformations": transformations,
	}

	// Leave results for the next tool in the chain.
	ctx.SetSharedData("last_result", result)
	ctx.SetSharedData("last_length", len(result))
	ctx.SetSharedData("execution_count", executionCount+1)
	ctx.SetSharedData("last_tool", "tool_template")
	if len(req.Tags) > 0 {
		ctx.SetSharedData("last_tags", req.Tags)
	}

	return ToolTemplateResponse{
		Result:         result,
		Metadata:       metadata,
		Length:         len(result),
		ProcessingInfo: processingInfo,
	}, nil
}
