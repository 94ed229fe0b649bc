package mpvipc

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	internalmcp "github.com/wagiedev/mpv-ipc-go/internal/mcp"
)

// ToolServer is a registry of MCP tools that drive a player.
//
// Serve it over any MCP transport:
//
//	server := mpvipc.NewToolServer(client).NewServer()
//	err := server.Run(ctx, &mcp.StdioTransport{})
type ToolServer = internalmcp.ToolServer

// Tool is an additional tool registered next to the built-in player tools.
//
// Example:
//
//	seek := mpvipc.NewTool(
//	    "seek",
//	    "Seek relative to the current position",
//	    map[string]any{
//	        "type": "object",
//	        "properties": map[string]any{
//	            "seconds": map[string]any{"type": "number"},
//	        },
//	        "required": []string{"seconds"},
//	    },
//	    func(ctx context.Context, input map[string]any) (map[string]any, error) {
//	        _, err := client.Command(ctx, "seek", input["seconds"], "relative")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return map[string]any{"ok": true}, nil
//	    },
//	)
type Tool struct {
	Name        string
	Description string

	// InputSchema is a JSON schema object describing the input. A nil or
	// non-object schema is served as an empty object schema.
	InputSchema map[string]any

	Run ToolFunc
}

// ToolFunc executes a tool. Its result is returned to the MCP client as JSON;
// an error becomes an error result.
type ToolFunc func(ctx context.Context, input map[string]any) (map[string]any, error)

// NewTool creates a Tool from a function.
func NewTool(name, description string, schema map[string]any, fn ToolFunc) *Tool {
	return &Tool{Name: name, Description: description, InputSchema: schema, Run: fn}
}

// NewToolServer registers the player tools (load_file, get_playlist,
// playlist_next, current_file_info and overlay_remove) backed by c, plus
// any extra tools. An extra tool replaces a built-in tool of the same name.
func NewToolServer(c Client, extra ...*Tool) *ToolServer {
	server := internalmcp.PlayerTools(c)

	for _, t := range extra {
		schema := mapToJSONSchema(t.InputSchema)
		server.AddTool(internalmcp.NewTool(t.Name, t.Description, schema), t.handler())
	}

	return server
}

// handler adapts Run to an mcp.ToolHandler.
func (t *Tool) handler() mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := internalmcp.ParseArguments(req)
		if err != nil {
			return internalmcp.ErrorResult(err.Error()), nil
		}

		result, err := t.Run(ctx, args)
		if err != nil {
			return internalmcp.ErrorResult(err.Error()), nil
		}

		return internalmcp.JSONResult(result), nil
	}
}

// mapToJSONSchema converts a map[string]any JSON schema to *jsonschema.Schema.
// A missing or unusable schema becomes an empty object schema, which MCP
// servers require of every tool.
func mapToJSONSchema(m map[string]any) *jsonschema.Schema {
	empty := &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}}

	if m == nil {
		return empty
	}

	data, err := json.Marshal(m)
	if err != nil {
		return empty
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil || schema.Type != "object" {
		return empty
	}

	return &schema
}
