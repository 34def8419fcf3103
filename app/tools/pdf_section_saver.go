package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// pdfSaveTimeout bounds each save call to the data service.
const pdfSaveTimeout = 30 * time.Second

// PDFSectionRequest is the argument payload for pdf_section_saver.
type PDFSectionRequest struct {
	// PaperID identifies the paper the section belongs to.
	PaperID string `json:"paper_id"`
	// SectionTitle may contain any Unicode text.
	SectionTitle string `json:"section_title"`
	// SectionContent may contain any Unicode text.
	SectionContent string `json:"section_content"`
	// SectionOrder positions the section within the paper.
	SectionOrder int `json:"section_order"`
	// DataServiceURL is the base URL of the data service to save into.
	DataServiceURL string `json:"data_service_url"`
}

// PDFSectionResponse is the result payload for pdf_section_saver. A failed
// save is reported here rather than as a call error, so chained tools can
// inspect the outcome.
type PDFSectionResponse struct {
	Success      bool   `json:"success"`
	SectionID    string `json:"section_id,omitempty"`
	Error        string `json:"error,omitempty"`
	EncodingUsed string `json:"encoding_used"`
}

// PDFSectionSaver posts a PDF section to an external data service. The
// payload is sent as UTF-8 JSON with an explicit charset in the Content-Type
// header, which is what the data service requires for non-ASCII titles and
// content.
func PDFSectionSaver() Tool {
	return Tool{
		Name:        "pdf_section_saver",
		Description: "Save PDF section to data service with proper UTF-8 encoding",
		Version:     "1.0.0",
		Enabled:     false,
		Handler:     runPDFSectionSaver,
	}
}

func runPDFSectionSaver(ctx *Context, args json.RawMessage) (any, error) {
	var req PDFSectionRequest
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	switch {
	case req.PaperID == "":
		return nil, errors.New("paper_id is required")
	case req.SectionTitle == "":
		return nil, errors.New("section_title is required")
	case req.SectionContent == "":
		return nil, errors.New("section_content is required")
	case req.DataServiceURL == "":
		return nil, errors.New("data_service_url is required")
	}

	userID := ctx.SharedString("user_id", "unknown")

	sectionID, err := saveSection(req, userID)
	if err != nil {
		return PDFSectionResponse{
			Success:      false,
			Error:        err.Error(),
			EncodingUsed: "utf-8",
		}, nil
	}

	ctx.SetSharedData("last_saved_section_id", sectionID)
	ctx.SetSharedData("last_saved_paper_id", req.PaperID)

	return PDFSectionResponse{
		Success:      true,
		SectionID:    sectionID,
		EncodingUsed: "utf-8",
	}, nil
}

// saveSection posts one section and returns the ID the data service assigned
// to it, under either of the key names it is known to use.
func saveSection(req PDFSectionRequest, userID string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"paper_id": req.PaperID,
		"title":    req.SectionTitle,
		"content":  req.SectionContent,
		"order":    req.SectionOrder,
		"user_id":  userID,
	})
	if err != nil {
		return "", err
	}

	endpoint := strings.TrimRight(req.DataServiceURL, "/") + "/api/sections"
	httpReq, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json; charset=utf-8")
	httpReq.Header.Set("Accept", "application/json")

	client := &http.Client{Timeout: pdfSaveTimeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var created struct {
		ID        string `json:"id"`
		SectionID string `json:"section_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if created.ID != "" {
		return created.ID, nil
	}
	return created.SectionID, nil
}
