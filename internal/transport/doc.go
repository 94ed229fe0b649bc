// Package transport opens the IPC endpoint mpv listens on.
//
// On Unix systems the endpoint is a domain socket path; on Windows it is a
// named pipe such as \\.\pipe\mpv. The returned connection is handed to the
// protocol reactor, which becomes its only reader and writer.
//
// DialRetry waits for a freshly launched player to create its endpoint by
// retrying with a fixed delay.
package transport
