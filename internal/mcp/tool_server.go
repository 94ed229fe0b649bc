package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolServer is an in-process registry of MCP tools.
//
// Tools can be listed and called directly, which is how other in-process
// surfaces (an HTTP handler, tests) reuse them, or served over any MCP
// transport through NewServer.
type ToolServer struct {
	name    string
	version string

	mu    sync.RWMutex
	tools map[string]entry
}

type entry struct {
	tool    *mcp.Tool
	handler mcp.ToolHandler
}

// NewToolServer creates an empty tool registry.
func NewToolServer(name, version string) *ToolServer {
	return &ToolServer{
		name:    name,
		version: version,
		tools:   make(map[string]entry, 8),
	}
}

// AddTool registers a tool, replacing any tool with the same name.
func (s *ToolServer) AddTool(tool *mcp.Tool, handler mcp.ToolHandler) {
	s.mu.Lock()
	s.tools[tool.Name] = entry{tool: tool, handler: handler}
	s.mu.Unlock()
}

func (s *ToolServer) Name() string    { return s.name }
func (s *ToolServer) Version() string { return s.version }

// NewServer builds an MCP server exposing every registered tool.
// Run it with a transport such as &mcp.StdioTransport{}.
func (s *ToolServer) NewServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: s.name, Version: s.version}, nil)

	for _, e := range s.entries() {
		server.AddTool(e.tool, e.handler)
	}

	return server
}

// entries returns a snapshot of the registry ordered by tool name.
func (s *ToolServer) entries() []entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entry, 0, len(s.tools))
	for _, name := range slices.Sorted(maps.Keys(s.tools)) {
		out = append(out, s.tools[name])
	}

	return out
}

// ListTools describes every registered tool, sorted by name, in the shape of
// an MCP tools/list entry.
func (s *ToolServer) ListTools() []map[string]any {
	entries := s.entries()
	out := make([]map[string]any, 0, len(entries))

	for _, e := range entries {
		desc := map[string]any{
			"name":        e.tool.Name,
			"description": e.tool.Description,
		}

		if schema := asMap(e.tool.InputSchema); schema != nil {
			desc["inputSchema"] = schema
		}

		if e.tool.Annotations != nil {
			if annotations := asMap(e.tool.Annotations); annotations != nil {
				desc["annotations"] = annotations
			}
		}

		out = append(out, desc)
	}

	return out
}

// asMap round-trips v through JSON. It returns nil when v does not encode
// to a JSON object.
func asMap(v any) map[string]any {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	var m map[string]any
	if json.Unmarshal(data, &m) != nil {
		return nil
	}

	return m
}

// CallTool runs a tool by name with the given input.
// Failures are reported inside the result with "is_error" set; the returned
// error is always nil.
func (s *ToolServer) CallTool(ctx context.Context, name string, input map[string]any) (map[string]any, error) {
	s.mu.RLock()
	e, ok := s.tools[name]
	s.mu.RUnlock()

	if !ok {
		return errorMap("Tool not found: " + name), nil
	}

	args, err := json.Marshal(input)
	if err != nil {
		return errorMap("Failed to marshal input: " + err.Error()), nil
	}

	result, err := e.handler(ctx, &mcp.CallToolRequest{
		Params: &mcp.CallToolParamsRaw{Name: name, Arguments: args},
	})
	if err != nil {
		return errorMap("Tool execution failed: " + err.Error()), nil
	}

	return resultToMap(result), nil
}

func errorMap(text string) map[string]any {
	return map[string]any{
		"content":  []map[string]any{{"type": "text", "text": text}},
		"is_error": true,
	}
}

// resultToMap flattens the text content of a result. Other content kinds
// are skipped.
func resultToMap(result *mcp.CallToolResult) map[string]any {
	content := []map[string]any{}

	if result == nil {
		return map[string]any{"content": content}
	}

	for _, c := range result.Content {
		if text, ok := c.(*mcp.TextContent); ok {
			content = append(content, map[string]any{"type": "text", "text": text.Text})
		}
	}

	out := map[string]any{"content": content}
	if result.IsError {
		out["is_error"] = true
	}

	return out
}

// TextResult creates a CallToolResult with text content.
func TextResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

// ErrorResult creates a CallToolResult indicating an error.
func ErrorResult(message string) *mcp.CallToolResult {
	result := TextResult(message)
	result.IsError = true

	return result
}

// JSONResult creates a CallToolResult carrying v encoded as JSON text.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return ErrorResult("Failed to encode result: " + err.Error())
	}

	return TextResult(string(data))
}

// NewTool creates an mcp.Tool with the given parameters.
func NewTool(name, description string, inputSchema *jsonschema.Schema) *mcp.Tool {
	return &mcp.Tool{Name: name, Description: description, InputSchema: inputSchema}
}

// ParseArguments unmarshals CallToolRequest arguments into a map.
// Missing arguments yield an empty map.
func ParseArguments(req *mcp.CallToolRequest) (map[string]any, error) {
	args := map[string]any{}

	if err := decodeArguments(req, &args); err != nil {
		return nil, err
	}

	return args, nil
}

// decodeArguments unmarshals the request arguments into v.
func decodeArguments(req *mcp.CallToolRequest, v any) error {
	if req == nil || req.Params == nil || len(req.Params.Arguments) == 0 {
		return nil
	}

	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return fmt.Errorf("failed to unmarshal arguments: %w", err)
	}

	return nil
}
