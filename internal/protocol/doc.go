// Package protocol implements the reactor that owns an mpv IPC connection.
//
// The Reactor is the only goroutine that writes to or reads from the
// connection. Callers submit Commands through a channel; the reactor assigns
// each one a request id, writes the frame and later routes mpv's reply to
// the caller's one-shot reply channel. Property-change events are routed to
// per-property Subscriptions.
//
// Example usage:
//
//	commands := make(chan protocol.Command, 64)
//	reactor := protocol.NewReactor(log, conn, commands)
//	go reactor.Run(ctx)
//
//	reply := make(chan protocol.Result, 1)
//	commands <- &protocol.WithResponse{
//		Ctx:     ctx,
//		Name:    "get_property",
//		Payload: json.RawMessage(`["get_property","pause"]`),
//		Reply:   reply,
//	}
//	result := <-reply
package protocol
