package errors

import (
	"errors"
	"fmt"
)

// IPCError is the base interface for all mpv IPC errors.
type IPCError interface {
	error
	IsIPCError() bool
}

// Compile-time verification that all error types implement IPCError.
var (
	_ IPCError = (*ConnectionError)(nil)
	_ IPCError = (*TransportError)(nil)
	_ IPCError = (*DecodeError)(nil)
	_ IPCError = (*CommandError)(nil)
	_ IPCError = (*InvalidResponseError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrClientClosed indicates the client handle has been closed.
	// Use Clone() before closing to keep another handle alive.
	ErrClientClosed = errors.New("client closed")

	// ErrReactorStopped indicates the reactor terminated before a reply arrived.
	ErrReactorStopped = errors.New("reactor stopped")

	// ErrPeerClosed indicates mpv closed the connection, usually because it exited.
	ErrPeerClosed = errors.New("connection closed by mpv")
)

// ConnectionError indicates the IPC endpoint could not be opened.
type ConnectionError struct {
	Endpoint string
	Attempts int
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s after %d attempt(s): %v", e.Endpoint, e.Attempts, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsIPCError implements IPCError.
func (e *ConnectionError) IsIPCError() bool { return true }

// TransportError indicates a fatal read or write failure on the connection.
// It always terminates the reactor.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ipc %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsIPCError implements IPCError.
func (e *TransportError) IsIPCError() bool { return true }

// DecodeError indicates one protocol line could not be decoded.
// This error preserves the original raw data that failed to parse.
type DecodeError struct {
	RawData string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode mpv message: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsIPCError implements IPCError.
func (e *DecodeError) IsIPCError() bool { return true }

// CommandError indicates mpv answered a command with a non-success status.
type CommandError struct {
	Command string
	Status  string
}

func (e *CommandError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("error response received: %s", e.Status)
	}

	return fmt.Sprintf("error response received for %s: %s", e.Command, e.Status)
}

// IsIPCError implements IPCError.
func (e *CommandError) IsIPCError() bool { return true }

// InvalidResponseError indicates a reply payload did not match the expected shape.
type InvalidResponseError struct {
	Command string
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response for %s: %v", e.Command, e.Err)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Err
}

// IsIPCError implements IPCError.
func (e *InvalidResponseError) IsIPCError() bool { return true }
