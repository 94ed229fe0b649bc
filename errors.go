package mpvipc

import "github.com/wagiedev/mpv-ipc-go/internal/errors"

// Re-export error types from internal package

// IPCError is the base interface for all mpv IPC errors.
type IPCError = errors.IPCError

// ConnectionError indicates the IPC endpoint could not be opened.
type ConnectionError = errors.ConnectionError

// TransportError indicates a fatal read or write failure on the connection.
type TransportError = errors.TransportError

// DecodeError indicates one line from mpv could not be decoded.
type DecodeError = errors.DecodeError

// CommandError indicates mpv answered a command with an error status.
type CommandError = errors.CommandError

// InvalidResponseError indicates a reply payload did not have the expected shape.
type InvalidResponseError = errors.InvalidResponseError

// Re-export sentinel errors from internal package.
var (
	// ErrClientClosed indicates the handle has been closed.
	ErrClientClosed = errors.ErrClientClosed

	// ErrReactorStopped indicates the connection ended before a reply arrived.
	ErrReactorStopped = errors.ErrReactorStopped

	// ErrPeerClosed indicates mpv closed the connection.
	ErrPeerClosed = errors.ErrPeerClosed
)
