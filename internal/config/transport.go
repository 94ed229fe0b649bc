// Package config provides configuration types for the mpv IPC client.
package config

import "io"

// Conn is a duplex byte stream to mpv's IPC endpoint.
//
// The default implementations are a Unix domain socket connection and a
// Windows named pipe client. Custom connections can be injected via
// Options.Conn for testing or for callers that open the endpoint themselves.
//
// A Conn is owned exclusively by one reactor, which closes it on shutdown.
type Conn interface {
	io.Reader
	io.Writer
	io.Closer
}
