// Package errors defines error types for the mpv IPC client.
//
// This package provides structured error types that wrap different failure
// scenarios when talking to mpv over its IPC endpoint. All error types support
// error unwrapping and can be checked using errors.Is, errors.As, and errors.AsType.
package errors
