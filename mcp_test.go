package mpvipc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mpvipc "github.com/wagiedev/mpv-ipc-go"
	"github.com/wagiedev/mpv-ipc-go/internal/mpvtest"
)

func toolText(t *testing.T, result map[string]any) string {
	t.Helper()

	content, ok := result["content"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, content, 1)

	text, ok := content[0]["text"].(string)
	require.True(t, ok)

	return text
}

func TestNewToolServer_ExtraTool(t *testing.T) {
	client, player := connect(t, func(args []any) mpvtest.Reply {
		if mpvtest.Key(args) == "seek" {
			return mpvtest.Reply{}
		}

		return mpvtest.Reply{Error: "invalid parameter"}
	})

	seek := mpvipc.NewTool(
		"seek",
		"Seek relative to the current position",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"seconds": map[string]any{"type": "number"},
			},
			"required": []string{"seconds"},
		},
		func(ctx context.Context, input map[string]any) (map[string]any, error) {
			if _, err := client.Command(ctx, "seek", input["seconds"], "relative"); err != nil {
				return nil, err
			}

			return map[string]any{"ok": true}, nil
		},
	)

	server := mpvipc.NewToolServer(client, seek)

	names := make([]string, 0, 6)
	for _, tool := range server.ListTools() {
		names = append(names, tool["name"].(string))
	}

	require.Equal(t, []string{
		"current_file_info", "get_playlist", "load_file", "overlay_remove", "playlist_next", "seek",
	}, names)

	result, err := server.CallTool(testContext(t), "seek", map[string]any{"seconds": 5})
	require.NoError(t, err)
	require.Nil(t, result["is_error"])
	require.JSONEq(t, `{"ok":true}`, toolText(t, result))

	received, ok := player.Next(time.Second)
	require.True(t, ok)
	require.JSONEq(t, `["seek",5,"relative"]`, string(received.Command))
}

func TestNewToolServer_ToolError(t *testing.T) {
	client, _ := connect(t, nil)

	failing := mpvipc.NewTool("fail", "Always fails", nil,
		func(context.Context, map[string]any) (map[string]any, error) {
			return nil, errors.New("no luck")
		},
	)

	server := mpvipc.NewToolServer(client, failing)

	result, err := server.CallTool(testContext(t), "fail", nil)
	require.NoError(t, err)
	require.Equal(t, true, result["is_error"])
	require.Equal(t, "no luck", toolText(t, result))

	// A missing schema still yields a servable object schema.
	require.NotNil(t, server.NewServer())
}
