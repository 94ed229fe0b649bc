// Package mpvipc remote-controls a running mpv player over its JSON IPC
// endpoint (a Unix domain socket, or a named pipe on Windows).
//
// A single reactor goroutine owns the connection. Any number of goroutines
// issue commands through Client handles and wait for their own replies;
// property changes stream to subscribers over channels.
//
// # Basic Usage
//
// Start mpv with an IPC endpoint, then connect:
//
//	mpv --idle --input-ipc-server=/tmp/mpv-socket
//
//	client, err := mpvipc.Connect(ctx,
//	    mpvipc.WithEndpoint("/tmp/mpv-socket"),
//	    mpvipc.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	entry, err := client.LoadFile(ctx, "https://example.com/video.mkv", mpvipc.AppendPlay)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("playlist entry", entry.PlaylistEntryID)
//
// # Sharing a Connection
//
// Handles are cloned, not copied. Each clone must be closed; the connection
// is shut down when the last handle is closed:
//
//	worker := client.Clone()
//	go func() {
//	    defer worker.Close()
//	    paused, err := worker.GetPaused(ctx)
//	    // ...
//	}()
//
// # Observing Properties
//
//	changes, err := client.ObserveProperty(ctx, "playlist")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for data := range changes {
//	    var playlist []mpvipc.PlaylistEntry
//	    _ = json.Unmarshal(data, &playlist)
//	}
//
// # Scoped Sessions
//
// WithClient ties the connection to a function and tears both down together:
//
//	err := mpvipc.WithClient(ctx, func(ctx context.Context, c mpvipc.Client) error {
//	    return c.PlaylistNext(ctx)
//	}, mpvipc.WithEndpoint("/tmp/mpv-socket"))
//
// # Error Handling
//
// Errors from mpv are *CommandError values; replies of an unexpected shape
// are *InvalidResponseError values. Calls made after the connection ended
// fail with ErrReactorStopped, calls on closed handles with ErrClientClosed:
//
//	if cmdErr, ok := errors.AsType[*mpvipc.CommandError](err); ok {
//	    fmt.Println("mpv said:", cmdErr.Status)
//	}
package mpvipc
