package mpvipc

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// WithClient manages client lifecycle with automatic cleanup.
//
// This helper connects with the provided options, executes the callback
// function, and shuts the connection down when the callback returns, even if
// the callback leaked clones of the client.
//
// The callback's context is cancelled as soon as the connection ends, so a
// callback blocked on a long operation returns promptly. If mpv closes the
// connection or the connection fails while the callback runs, WithClient
// reports ErrPeerClosed or the I/O error, unless the callback has already
// failed with an error of its own. Otherwise the callback's error is returned.
//
// Example usage:
//
//	err := mpvipc.WithClient(ctx, func(ctx context.Context, c mpvipc.Client) error {
//	    playlist, err := c.GetPlaylist(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    for _, entry := range playlist {
//	        fmt.Println(entry.ID, entry.Filename)
//	    }
//	    return nil
//	},
//	    mpvipc.WithLogger(log),
//	    mpvipc.WithEndpoint("/tmp/mpv-socket"),
//	)
func WithClient(ctx context.Context, fn func(context.Context, Client) error, opts ...Option) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	log := applyOptions(opts).Normalize().Logger

	client, err := newClientImpl(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to connect to mpv: %w", err)
	}

	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Warn("Failed to close client", "error", closeErr)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer client.impl.Shutdown()

		return fn(gctx, client)
	})

	g.Go(func() error {
		select {
		case <-client.Done():
		case <-gctx.Done():
			// fn failed or ctx ended; the first goroutine shuts the reactor down.
			<-client.Done()

			return nil
		}

		reason, err := client.Wait()

		switch {
		case err != nil:
			return err
		case reason == ClosedByPeer:
			return ErrPeerClosed
		default:
			return nil
		}
	})

	return g.Wait()
}
