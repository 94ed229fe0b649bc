// Package client implements the command façade over the mpv IPC reactor.
//
// A Client is a cloneable handle: any number of goroutines may hold their own
// handle and issue commands concurrently. Each typed operation builds an mpv
// command, queues it for the reactor and waits for the reply that carries the
// same request id, decoding the payload into a Go value.
//
// Closing the last handle closes the command queue, which stops the reactor
// and closes the connection.
package client
