package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	mcpgo "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func echoSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{"text": {Type: "string"}},
		Required:   []string{"text"},
	}
}

func TestToolServerMetadata(t *testing.T) {
	server := NewToolServer("demo", "1.2.3")

	require.Equal(t, "demo", server.Name())
	require.Equal(t, "1.2.3", server.Version())
	require.Empty(t, server.ListTools())
}

func TestToolServerListToolsAndCallTool(t *testing.T) {
	server := NewToolServer("demo", "1.0.0")
	server.AddTool(
		NewTool("echo", "echoes text", echoSchema()),
		func(_ context.Context, req *mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
			args, err := ParseArguments(req)
			if err != nil {
				return nil, err
			}

			text, _ := args["text"].(string)

			return TextResult("echo: " + text), nil
		},
	)

	tools := server.ListTools()
	require.Len(t, tools, 1)
	require.Equal(t, "echo", tools[0]["name"])
	require.Equal(t, "echoes text", tools[0]["description"])
	require.NotContains(t, tools[0], "annotations")

	inputSchema, ok := tools[0]["inputSchema"].(map[string]any)
	require.True(t, ok, "expected inputSchema to be serialized as a map")
	require.Equal(t, "object", inputSchema["type"])

	result, err := server.CallTool(context.Background(), "echo", map[string]any{"text": "hello"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"content": []map[string]any{{"type": "text", "text": "echo: hello"}},
	}, result)

	missing, err := server.CallTool(context.Background(), "unknown", map[string]any{})
	require.NoError(t, err)
	require.Equal(t, true, missing["is_error"])
}

func TestToolServerAddTool_Replaces(t *testing.T) {
	server := NewToolServer("demo", "1.0.0")

	for _, text := range []string{"first", "second"} {
		server.AddTool(
			NewTool("say", text, echoSchema()),
			func(context.Context, *mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
				return TextResult(text), nil
			},
		)
	}

	tools := server.ListTools()
	require.Len(t, tools, 1)
	require.Equal(t, "second", tools[0]["description"])

	result, err := server.CallTool(context.Background(), "say", nil)
	require.NoError(t, err)
	require.Equal(t, "second", result["content"].([]map[string]any)[0]["text"])
}

func TestToolServerCallTool_HandlerError(t *testing.T) {
	server := NewToolServer("demo", "1.0.0")
	server.AddTool(
		NewTool("fails", "always fails", nil),
		func(_ context.Context, _ *mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
			return nil, errors.New("boom")
		},
	)

	result, err := server.CallTool(context.Background(), "fails", map[string]any{})
	require.NoError(t, err)
	require.Equal(t, true, result["is_error"])
	require.Contains(t, result["content"].([]map[string]any)[0]["text"], "boom")
}

func TestResultToMap(t *testing.T) {
	t.Run("nil result returns empty content", func(t *testing.T) {
		require.Equal(t, map[string]any{
			"content": []map[string]any{},
		}, resultToMap(nil))
	})

	t.Run("text content is converted and other content skipped", func(t *testing.T) {
		result := &mcpgo.CallToolResult{
			Content: []mcpgo.Content{
				&mcpgo.TextContent{Text: "hello"},
				&mcpgo.ImageContent{Data: []byte("img"), MIMEType: "image/png"},
			},
			IsError: true,
		}

		got := resultToMap(result)
		content, ok := got["content"].([]map[string]any)
		require.True(t, ok)
		require.Len(t, content, 1)
		require.Equal(t, true, got["is_error"])
		require.Equal(t, "hello", content[0]["text"])
	})
}

func TestAsMap(t *testing.T) {
	require.Nil(t, asMap(nil))
	require.Nil(t, asMap([]int{1, 2}))
	require.Nil(t, asMap(make(chan int)))
	require.Equal(t, true, asMap(&mcpgo.ToolAnnotations{ReadOnlyHint: true})["readOnlyHint"])
}

func TestResultHelpersAndNewTool(t *testing.T) {
	textResult := TextResult("ok")
	require.False(t, textResult.IsError)
	require.Len(t, textResult.Content, 1)

	errorResult := ErrorResult("failed")
	require.True(t, errorResult.IsError)
	require.Equal(t, "failed", errorResult.Content[0].(*mcpgo.TextContent).Text)

	jsonResult := JSONResult(map[string]int{"playlist_entry_id": 7})
	require.False(t, jsonResult.IsError)
	require.Equal(t, `{"playlist_entry_id":7}`, jsonResult.Content[0].(*mcpgo.TextContent).Text)

	badResult := JSONResult(make(chan int))
	require.True(t, badResult.IsError)

	schema := echoSchema()
	tool := NewTool("echo", "echoes text", schema)
	require.Equal(t, "echo", tool.Name)
	require.Equal(t, "echoes text", tool.Description)
	require.Equal(t, schema, tool.InputSchema)
}

func TestParseArguments(t *testing.T) {
	t.Run("nil request and empty args return empty map", func(t *testing.T) {
		args, err := ParseArguments(nil)
		require.NoError(t, err)
		require.Empty(t, args)

		args, err = ParseArguments(&mcpgo.CallToolRequest{Params: &mcpgo.CallToolParamsRaw{}})
		require.NoError(t, err)
		require.Empty(t, args)
	})

	t.Run("valid arguments are parsed", func(t *testing.T) {
		req := &mcpgo.CallToolRequest{
			Params: &mcpgo.CallToolParamsRaw{Arguments: []byte(`{"url":"a.mkv","index":3}`)},
		}

		args, err := ParseArguments(req)
		require.NoError(t, err)
		require.Equal(t, "a.mkv", args["url"])
		require.Equal(t, float64(3), args["index"])
	})

	t.Run("invalid json returns wrapped error", func(t *testing.T) {
		req := &mcpgo.CallToolRequest{
			Params: &mcpgo.CallToolParamsRaw{Arguments: []byte(`{"name":`)},
		}

		args, err := ParseArguments(req)
		require.Error(t, err)
		require.Nil(t, args)
		require.Contains(t, err.Error(), "failed to unmarshal arguments")
	})
}
