package mpvipc

import (
	"context"
	"encoding/json"

	"github.com/wagiedev/mpv-ipc-go/internal/client"
)

// clientWrapper wraps the internal client to adapt it to the public interface.
type clientWrapper struct {
	impl *client.Client
}

// Compile-time check that *clientWrapper implements the Client interface.
var _ Client = (*clientWrapper)(nil)

// newClientImpl creates the internal client implementation.
func newClientImpl(ctx context.Context, opts []Option) (*clientWrapper, error) {
	impl, err := client.Start(ctx, applyOptions(opts))
	if err != nil {
		return nil, err
	}

	return &clientWrapper{impl: impl}, nil
}

func (c *clientWrapper) Clone() Client {
	return &clientWrapper{impl: c.impl.Clone()}
}

func (c *clientWrapper) Close() error {
	return c.impl.Close()
}

func (c *clientWrapper) Done() <-chan struct{} {
	return c.impl.Done()
}

func (c *clientWrapper) Err() error {
	return c.impl.Err()
}

func (c *clientWrapper) Wait() (CloseReason, error) {
	return c.impl.Wait()
}

// LoadFile adds a file or URL to the playlist.
func (c *clientWrapper) LoadFile(ctx context.Context, url string, placement Placement) (*LoadFileResult, error) {
	return c.impl.LoadFile(ctx, url, placement)
}

// GetPlaylist returns the current playlist.
func (c *clientWrapper) GetPlaylist(ctx context.Context) ([]PlaylistEntry, error) {
	return c.impl.GetPlaylist(ctx)
}

// PlaylistNext advances to the next playlist entry.
func (c *clientWrapper) PlaylistNext(ctx context.Context) error {
	return c.impl.PlaylistNext(ctx)
}

// OverlayAdd shows a raw BGRA image on top of the video.
func (c *clientWrapper) OverlayAdd(ctx context.Context, opts OverlayAddOptions) error {
	return c.impl.OverlayAdd(ctx, opts)
}

// OverlayRemove removes an overlay.
func (c *clientWrapper) OverlayRemove(ctx context.Context, id uint8) (json.RawMessage, error) {
	return c.impl.OverlayRemove(ctx, id)
}

func (c *clientWrapper) GetDurationMs(ctx context.Context) (float64, error) {
	return c.impl.GetDurationMs(ctx)
}

func (c *clientWrapper) GetTimePosMs(ctx context.Context) (float64, error) {
	return c.impl.GetTimePosMs(ctx)
}

func (c *clientWrapper) GetPaused(ctx context.Context) (bool, error) {
	return c.impl.GetPaused(ctx)
}

// CurrentFileInfo reads duration, position and pause state.
func (c *clientWrapper) CurrentFileInfo(ctx context.Context) (*FileInfo, error) {
	return c.impl.CurrentFileInfo(ctx)
}

// ObserveProperty subscribes to changes of a property.
func (c *clientWrapper) ObserveProperty(ctx context.Context, name string) (<-chan json.RawMessage, error) {
	return c.impl.ObserveProperty(ctx, name)
}

// Command sends an arbitrary mpv command.
func (c *clientWrapper) Command(ctx context.Context, args ...any) (json.RawMessage, error) {
	return c.impl.Command(ctx, args...)
}
