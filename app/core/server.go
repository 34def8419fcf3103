package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcpforge/mcp-scaffold/app/tools"
)

// manifestPath is where the service expects its manifest, relative to the
// working directory it is started from.
const manifestPath = "service.yaml"

// Server hosts the tool runtime endpoints.
type Server struct {
	cfg    *Config
	router *http.ServeMux
	server *http.Server

	tools map[string]tools.Tool
	order []string
}

// NewServer builds a server over the given tool set. Registration order is
// preserved in listings; on a duplicate name the first registration wins.
func NewServer(cfg *Config, registered []tools.Tool) *Server {
	s := &Server{
		cfg:    cfg,
		router: http.NewServeMux(),
		tools:  make(map[string]tools.Tool, len(registered)),
	}
	for _, tool := range registered {
		if _, dup := s.tools[tool.Name]; dup {
			continue
		}
		s.tools[tool.Name] = tool
		s.order = append(s.order, tool.Name)
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /{$}", s.handleRoot)
	s.router.HandleFunc("GET /health", s.handleHealth)

	s.router.HandleFunc("GET /tools/discover", s.handleDiscover)
	s.router.HandleFunc("GET /tools/list", s.handleList)
	s.router.HandleFunc("POST /tools/{tool}", s.handleExecute)
}

// Handler exposes the routed mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ToolInfo is the public description of a registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Enabled     bool   `json:"enabled"`
	Endpoint    string `json:"endpoint"`
}

func toolInfo(t tools.Tool) ToolInfo {
	return ToolInfo{
		Name:        t.Name,
		Description: t.Description,
		Version:     t.Version,
		Enabled:     t.Enabled,
		Endpoint:    "/tools/" + t.Name,
	}
}

// ServerInfo identifies the service inside discovery responses.
type ServerInfo struct {
	Service     string `json:"service"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// DiscoverResponse is returned by GET /tools/discover: the tools an agent
// may call, plus enough server identity to label them.
type DiscoverResponse struct {
	Tools      []ToolInfo `json:"tools"`
	Count      int        `json:"count"`
	ServerInfo ServerInfo `json:"server_info"`
}

// ListResponse is returned by GET /tools/list: the complete tool inventory,
// disabled tools included.
type ListResponse struct {
	Tools []ToolInfo `json:"tools"`
	Count int        `json:"count"`
}

// ExecuteRequest is the envelope every tool call arrives in.
type ExecuteRequest struct {
	Arguments json.RawMessage `json:"arguments"`
	Context   map[string]any  `json:"context"`
}

// ExecuteResponse wraps a successful tool result.
type ExecuteResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// handleRoot handles GET /.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"service":     s.cfg.Name,
		"description": s.cfg.Description,
		"version":     s.cfg.Version,
		"status":      "running",
	})
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleDiscover handles GET /tools/discover. Only enabled tools are
// advertised; disabled ones stay invisible to agents.
func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	infos := make([]ToolInfo, 0, len(s.order))
	for _, name := range s.order {
		if tool := s.tools[name]; tool.Enabled {
			infos = append(infos, toolInfo(tool))
		}
	}
	s.writeJSON(w, http.StatusOK, DiscoverResponse{
		Tools: infos,
		Count: len(infos),
		ServerInfo: ServerInfo{
			Service:     s.cfg.Name,
			Description: s.cfg.Description,
			Version:     s.cfg.Version,
		},
	})
}

// handleList handles GET /tools/list.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	infos := make([]ToolInfo, 0, len(s.order))
	for _, name := range s.order {
		infos = append(infos, toolInfo(s.tools[name]))
	}
	s.writeJSON(w, http.StatusOK, ListResponse{Tools: infos, Count: len(infos)})
}

// handleExecute handles POST /tools/{tool}. Disabled tools can be executed
// directly; the Enabled flag only gates discovery.
func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("tool")
	tool, ok := s.tools[name]
	if !ok {
		s.writeError(w, http.StatusNotFound, fmt.Sprintf("unknown tool: %s", name))
		return
	}

	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Arguments == nil {
		req.Arguments = json.RawMessage("{}")
	}

	start := time.Now()
	ctx := tools.NewContext(req.Context)
	data, err := tool.Handler(ctx, req.Arguments)
	if err != nil {
		slog.Warn("Tool execution failed", "tool", name, "error", err)
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Info("Tool executed", "tool", name, "duration", time.Since(start))

	s.writeJSON(w, http.StatusOK, ExecuteResponse{Status: "success", Data: data})
}

// Start runs the HTTP server until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting MCP server", "service", s.cfg.Name, "addr", addr, "tools", len(s.tools))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	slog.Info("Shutting down")
	return s.server.Shutdown(ctx)
}

// Run loads the manifest, assembles the server over the registered tools and
// serves until the process is interrupted.
func Run() error {
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return err
	}
	srv := NewServer(cfg, tools.All())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("Signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error envelope.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"status": "error", "error": message})
}
