// Package tools holds the service's tool definitions. Each tool is a named
// request handler with a JSON argument payload; tools in one call chain
// share a context so later tools can build on earlier results.
package tools

import "encoding/json"

// Handler executes one tool call. args is the raw "arguments" object from
// the request envelope; the returned value becomes the "data" field of the
// response.
type Handler func(ctx *Context, args json.RawMessage) (any, error)

// Tool describes one registered tool.
//
// Enabled gates agent discovery only: a disabled tool is hidden from
// /tools/discover but still shows up in /tools/list and can be executed
// directly via POST /tools/{name}. Keep a tool disabled while it is under
// development or meant for internal use.
type Tool struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Version     string  `json:"version"`
	Enabled     bool    `json:"enabled"`
	Handler     Handler `json:"-"`
}

// Context carries the shared key/value data accumulated across one call
// chain. It is seeded from the "context" object of the request envelope and
// lives for a single request.
type Context struct {
	shared map[string]any
}

// NewContext seeds a call context. A nil seed yields an empty context.
func NewContext(seed map[string]any) *Context {
	if seed == nil {
		seed = make(map[string]any)
	}
	return &Context{shared: seed}
}

// SharedData returns the value stored under key, or fallback when the key
// is absent.
func (c *Context) SharedData(key string, fallback any) any {
	if v, ok := c.shared[key]; ok {
		return v
	}
	return fallback
}

// SharedString narrows SharedData to strings. Absent keys and non-string
// values both yield the fallback.
func (c *Context) SharedString(key, fallback string) string {
	if v, ok := c.shared[key].(string); ok {
		return v
	}
	return fallback
}

// SharedInt narrows SharedData to integers. JSON numbers decode as float64,
// so both forms are accepted.
func (c *Context) SharedInt(key string, fallback int) int {
	switch v := c.shared[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// SetSharedData stores a value for tools later in the chain.
func (c *Context) SetSharedData(key string, value any) {
	c.shared[key] = value
}
