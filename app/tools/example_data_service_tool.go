package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// dataServiceTimeout bounds each outbound data service call.
const dataServiceTimeout = 30 * time.Second

// ExampleDataServiceRequest is the argument payload for
// example_data_service_tool.
type ExampleDataServiceRequest struct {
	// OverviewID selects which overview's sections to fetch.
	OverviewID string `json:"overview_id"`
	// UserID optionally filters the sections; falls back to the chain's
	// user_id when empty.
	UserID string `json:"user_id"`
}

// ExampleDataServiceResponse is the result payload for
// example_data_service_tool.
type ExampleDataServiceResponse struct {
	OverviewID string         `json:"overview_id"`
	Sections   []any          `json:"sections"`
	Metadata   map[string]any `json:"metadata"`
}

// ExampleDataServiceTool shows how a tool calls a sibling service: it
// fetches overview sections from the data service named by DATA_SERVICE_URL.
// An unreachable service degrades the response to an empty section list with
// the failure recorded in the metadata instead of failing the call.
func ExampleDataServiceTool() Tool {
	return Tool{
		Name:        "example_data_service_tool",
		Description: "Example tool demonstrating data service integration",
		Version:     "1.0.0",
		Enabled:     false,
		Handler:     runExampleDataServiceTool,
	}
}

func runExampleDataServiceTool(ctx *Context, args json.RawMessage) (any, error) {
	var req ExampleDataServiceRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.OverviewID == "" {
		return nil, errors.New("overview_id is required")
	}

	userID := req.UserID
	if userID == "" {
		userID = ctx.SharedString("user_id", "")
	}

	sections, err := fetchSections(req.OverviewID, userID)
	var metadata map[string]any
	if err != nil {
		sections = []any{}
		metadata = map[string]any{
			"error": err.Error(),
			"note":  "demonstration tool; point DATA_SERVICE_URL at a live data service",
		}
	} else {
		metadata = map[string]any{
			"overview_id":   req.OverviewID,
			"user_id":       userID,
			"section_count": len(sections),
		}
	}

	ctx.SetSharedData("last_overview_id", req.OverviewID)
	ctx.SetSharedData("last_sections", sections)

	return ExampleDataServiceResponse{
		OverviewID: req.OverviewID,
		Sections:   sections,
		Metadata:   metadata,
	}, nil
}

// fetchSections calls the data service's sections endpoint for one overview.
func fetchSections(overviewID, userID string) ([]any, error) {
	base := os.Getenv("DATA_SERVICE_URL")
	if base == "" {
		return nil, errors.New("DATA_SERVICE_URL is not set")
	}

	endpoint := fmt.Sprintf("%s/article_structured_contents/overviews/%s/sections",
		strings.TrimRight(base, "/"), url.PathEscape(overviewID))
	if userID != "" {
		endpoint += "?user_id=" + url.QueryEscape(userID)
	}

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json; charset=utf-8")
	req.Header.Set("Accept-Charset", "utf-8")

	client := &http.Client{Timeout: dataServiceTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("data service returned HTTP %d", resp.StatusCode)
	}

	var sections []any
	if err := json.NewDecoder(resp.Body).Decode(&sections); err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}
	return sections, nil
}
