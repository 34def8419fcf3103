package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpforge/mcp-scaffold/app/tools"
)

func testServer() *Server {
	cfg := &Config{
		Name:        "mcp-test",
		Description: "Test service",
		Version:     "1.0.0",
		Port:        8060,
	}
	echo := tools.Tool{
		Name:        "echo_tool",
		Description: "Echoes its arguments",
		Version:     "1.0.0",
		Enabled:     true,
		Handler: func(ctx *tools.Context, args json.RawMessage) (any, error) {
			var req struct {
				Text string `json:"text"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return nil, err
			}
			if req.Text == "fail" {
				return nil, errors.New("echo refused")
			}
			return map[string]any{
				"echo": req.Text,
				"user": ctx.SharedString("user_id", "unknown"),
			}, nil
		},
	}
	hidden := tools.Tool{
		Name:        "hidden_tool",
		Description: "Disabled but executable",
		Version:     "1.0.0",
		Enabled:     false,
		Handler: func(ctx *tools.Context, args json.RawMessage) (any, error) {
			return "ran anyway", nil
		},
	}
	return NewServer(cfg, []tools.Tool{echo, hidden})
}

func doRequest(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	return rec, decoded
}

func TestServer_Root(t *testing.T) {
	rec, body := doRequest(t, testServer(), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mcp-test", body["service"])
	assert.Equal(t, "running", body["status"])
}

func TestServer_RootIsExact(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/no-such-path", nil)
	rec := httptest.NewRecorder()
	testServer().Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Health(t *testing.T) {
	rec, body := doRequest(t, testServer(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestServer_Discover(t *testing.T) {
	rec, body := doRequest(t, testServer(), http.MethodGet, "/tools/discover", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])

	info := body["server_info"].(map[string]any)
	assert.Equal(t, "mcp-test", info["service"])
	assert.Equal(t, "1.0.0", info["version"])

	listed := body["tools"].([]any)
	require.Len(t, listed, 1)
	entry := listed[0].(map[string]any)
	assert.Equal(t, "echo_tool", entry["name"])
	assert.Equal(t, "/tools/echo_tool", entry["endpoint"])
}

func TestServer_List(t *testing.T) {
	rec, body := doRequest(t, testServer(), http.MethodGet, "/tools/list", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, body["count"])

	listed := body["tools"].([]any)
	require.Len(t, listed, 2)
	assert.Equal(t, "echo_tool", listed[0].(map[string]any)["name"])
	assert.Equal(t, "hidden_tool", listed[1].(map[string]any)["name"])
	assert.Equal(t, false, listed[1].(map[string]any)["enabled"])
}

func TestServer_Execute(t *testing.T) {
	rec, body := doRequest(t, testServer(), http.MethodPost, "/tools/echo_tool",
		`{"arguments": {"text": "hello"}, "context": {"user_id": "user123"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])

	data := body["data"].(map[string]any)
	assert.Equal(t, "hello", data["echo"])
	assert.Equal(t, "user123", data["user"])
}

func TestServer_Execute_MissingArgumentsDefaultsEmpty(t *testing.T) {
	rec, body := doRequest(t, testServer(), http.MethodPost, "/tools/echo_tool",
		`{"context": {}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
}

func TestServer_Execute_Unknown(t *testing.T) {
	rec, body := doRequest(t, testServer(), http.MethodPost, "/tools/nope", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["error"], "unknown tool")
}

func TestServer_Execute_DisabledStillExecutes(t *testing.T) {
	rec, body := doRequest(t, testServer(), http.MethodPost, "/tools/hidden_tool", `{}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ran anyway", body["data"])
}

func TestServer_Execute_HandlerError(t *testing.T) {
	rec, body := doRequest(t, testServer(), http.MethodPost, "/tools/echo_tool",
		`{"arguments": {"text": "fail"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, "echo refused", body["error"])
}

func TestServer_Execute_BadBody(t *testing.T) {
	rec, body := doRequest(t, testServer(), http.MethodPost, "/tools/echo_tool", `{{{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", body["status"])
}

func TestServer_ShipsWithRegisteredTools(t *testing.T) {
	cfg := &Config{Name: "mcp-scaffold-template", Version: "1.0.0", Port: 8060}
	s := NewServer(cfg, tools.All())

	rec, body := doRequest(t, s, http.MethodGet, "/tools/list", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 4, body["count"])
}
