package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagiedev/mpv-ipc-go/internal/client"
)

const (
	// ServerName is the MCP implementation name of the player tools.
	ServerName = "mpv"
	// ServerVersion is the MCP implementation version of the player tools.
	ServerVersion = "1.0.0"
)

// Player is the part of the client the tools need.
type Player interface {
	LoadFile(ctx context.Context, url string, placement client.Placement) (*client.LoadFileResult, error)
	GetPlaylist(ctx context.Context) ([]client.PlaylistEntry, error)
	PlaylistNext(ctx context.Context) error
	CurrentFileInfo(ctx context.Context) (*client.FileInfo, error)
	OverlayRemove(ctx context.Context, id uint8) (json.RawMessage, error)
}

// Compile-time verification that the client satisfies Player.
var _ Player = (*client.Client)(nil)

// PlayerTools registers the player tools backed by p.
func PlayerTools(p Player) *ToolServer {
	s := NewToolServer(ServerName, ServerVersion)

	s.AddTool(NewTool("load_file", "Add a file or URL to the mpv playlist", loadFileSchema()), loadFile(p))
	s.AddTool(readOnly(NewTool("get_playlist", "List the entries of the mpv playlist", emptySchema())), getPlaylist(p))
	s.AddTool(NewTool("playlist_next", "Skip to the next playlist entry", emptySchema()), playlistNext(p))
	s.AddTool(
		readOnly(NewTool("current_file_info", "Report duration, position and pause state of the current file", emptySchema())),
		currentFileInfo(p),
	)
	s.AddTool(
		NewTool("overlay_remove", "Remove an image overlay", overlayRemoveSchema()),
		overlayRemove(p),
	)

	return s
}

func readOnly(tool *mcp.Tool) *mcp.Tool {
	tool.Annotations = &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true}

	return tool
}

func overlayRemoveSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"id": {
				Type:        "integer",
				Description: "Overlay id passed to overlay-add",
				Minimum:     new(0.0),
				Maximum:     new(float64(math.MaxUint8)),
			},
		},
		Required: []string{"id"},
	}
}

func emptySchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}}
}

func loadFileSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"url": {Type: "string", Description: "File path or URL mpv can open"},
			"placement": {
				Type:        "string",
				Description: "Where to put the entry; defaults to replace",
				Enum: []any{
					"replace", "append", "append-play",
					"insert-next", "insert-next-play",
					"insert-at", "insert-at-play",
				},
			},
			"index": {Type: "integer", Description: "Playlist index for insert-at and insert-at-play"},
		},
		Required: []string{"url"},
	}
}

type loadFileArgs struct {
	URL       string `json:"url"`
	Placement string `json:"placement"`
	Index     uint64 `json:"index"`
}

func loadFile(p Player) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args loadFileArgs
		if err := decodeArguments(req, &args); err != nil {
			return ErrorResult(err.Error()), nil
		}

		if args.URL == "" {
			return ErrorResult("url is required"), nil
		}

		placement, err := client.ParsePlacement(args.Placement, args.Index)
		if err != nil {
			return ErrorResult(err.Error()), nil
		}

		result, err := p.LoadFile(ctx, args.URL, placement)
		if err != nil {
			return ErrorResult("load_file failed: " + err.Error()), nil
		}

		return JSONResult(result), nil
	}
}

func getPlaylist(p Player) mcp.ToolHandler {
	return func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		playlist, err := p.GetPlaylist(ctx)
		if err != nil {
			return ErrorResult("get_playlist failed: " + err.Error()), nil
		}

		if playlist == nil {
			playlist = []client.PlaylistEntry{}
		}

		return JSONResult(playlist), nil
	}
}

func playlistNext(p Player) mcp.ToolHandler {
	return func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := p.PlaylistNext(ctx); err != nil {
			return ErrorResult("playlist_next failed: " + err.Error()), nil
		}

		return TextResult("ok"), nil
	}
}

func currentFileInfo(p Player) mcp.ToolHandler {
	return func(ctx context.Context, _ *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		info, err := p.CurrentFileInfo(ctx)
		if err != nil {
			return ErrorResult("current_file_info failed: " + err.Error()), nil
		}

		return JSONResult(info), nil
	}
}

func overlayRemove(p Player) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := ParseArguments(req)
		if err != nil {
			return ErrorResult(err.Error()), nil
		}

		raw, ok := args["id"].(float64)
		if !ok || raw != math.Trunc(raw) || raw < 0 || raw > math.MaxUint8 {
			return ErrorResult(fmt.Sprintf("id must be an integer between 0 and %d", math.MaxUint8)), nil
		}

		data, err := p.OverlayRemove(ctx, uint8(raw))
		if err != nil {
			return ErrorResult("overlay_remove failed: " + err.Error()), nil
		}

		return TextResult(string(data)), nil
	}
}
