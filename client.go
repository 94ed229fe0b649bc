package mpvipc

import (
	"context"
	"encoding/json"
)

// Client is a handle onto a connection to a running mpv player.
//
// All handles cloned from the same Client share one connection and one
// reactor goroutine. Methods are safe for concurrent use; each caller gets
// exactly the reply to its own command, whatever order mpv answers in.
//
// Every handle must be closed. Closing the last handle stops the reactor and
// closes the connection.
type Client interface {
	// Clone returns a new handle onto the same connection.
	// The clone must be closed independently.
	Clone() Client

	// Close releases this handle. Calls on a closed handle fail with
	// ErrClientClosed. Safe to call more than once.
	Close() error

	// Done returns a channel that is closed when the connection ends.
	Done() <-chan struct{}

	// Err returns the fatal I/O error that ended the connection, if any.
	Err() error

	// Wait blocks until the connection ends and reports why.
	Wait() (CloseReason, error)

	// LoadFile adds a file or URL to the playlist.
	// The result carries the id of the new playlist entry.
	LoadFile(ctx context.Context, url string, placement Placement) (*LoadFileResult, error)

	// GetPlaylist returns the current playlist.
	GetPlaylist(ctx context.Context) ([]PlaylistEntry, error)

	// PlaylistNext advances to the next playlist entry.
	PlaylistNext(ctx context.Context) error

	// OverlayAdd shows a raw BGRA image from a file on top of the video.
	OverlayAdd(ctx context.Context, opts OverlayAddOptions) error

	// OverlayRemove removes the overlay with the given id.
	OverlayRemove(ctx context.Context, id uint8) (json.RawMessage, error)

	// GetDurationMs returns the value of the duration/full property.
	// The value is in seconds despite the Ms suffix.
	GetDurationMs(ctx context.Context) (float64, error)

	// GetTimePosMs returns the value of the time-pos/full property.
	// The value is in seconds despite the Ms suffix.
	GetTimePosMs(ctx context.Context) (float64, error)

	// GetPaused reports whether playback is paused.
	GetPaused(ctx context.Context) (bool, error)

	// CurrentFileInfo reads duration, position and pause state concurrently.
	CurrentFileInfo(ctx context.Context) (*FileInfo, error)

	// ObserveProperty streams change payloads of the named property.
	//
	// Observing a property again replaces the earlier subscription, and
	// closes its channel, once mpv accepts the new observer. A failed
	// re-observe leaves the earlier subscription working. All channels are closed when the connection ends.
	ObserveProperty(ctx context.Context, name string) (<-chan json.RawMessage, error)

	// Command sends an arbitrary command, such as
	// Command(ctx, "seek", 10, "relative"), and returns the reply payload.
	Command(ctx context.Context, args ...any) (json.RawMessage, error)
}

// Connect opens the mpv IPC endpoint and starts the reactor.
//
// While mpv is still starting up, the endpoint is dialed up to
// WithDialAttempts times with a fixed delay. ctx bounds the connection
// attempt only; the returned Client stays usable until it is closed.
func Connect(ctx context.Context, opts ...Option) (Client, error) {
	client, err := newClientImpl(ctx, opts)
	if err != nil {
		return nil, err
	}

	return client, nil
}
