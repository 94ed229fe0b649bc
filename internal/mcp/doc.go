// Package mcp exposes player operations as Model Context Protocol tools.
//
// PlayerTools builds a ToolServer whose tools call into a connected mpv
// client: loading files, reading the playlist, skipping ahead, reporting the
// current file and removing overlays. The registry can be called in-process
// or turned into an MCP server and served over stdio.
package mcp
