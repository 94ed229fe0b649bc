package client

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/mpv-ipc-go/internal/errors"
	"github.com/wagiedev/mpv-ipc-go/internal/protocol"
)

// Property names read by the typed getters.
const (
	propertyPlaylist = "playlist"
	propertyDuration = "duration/full"
	propertyTimePos  = "time-pos/full"
	propertyPause    = "pause"
)

// call encodes a command from its name and arguments and sends it.
func (c *Client) call(ctx context.Context, name string, args ...any) (json.RawMessage, error) {
	payload, err := json.Marshal(append([]any{name}, args...))
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", name, err)
	}

	return c.roundTrip(ctx, name, payload)
}

// getProperty reads a property and decodes it into T.
func getProperty[T any](ctx context.Context, c *Client, property string) (T, error) {
	var value T

	label := "get_property " + property

	payload, err := json.Marshal([]any{"get_property", property})
	if err != nil {
		return value, fmt.Errorf("marshal %s: %w", label, err)
	}

	data, err := c.roundTrip(ctx, label, payload)
	if err != nil {
		return value, err
	}

	return decode[T](label, data)
}

func decode[T any](name string, data json.RawMessage) (T, error) {
	var value T

	if err := json.Unmarshal(data, &value); err != nil {
		return value, &errors.InvalidResponseError{Command: name, Err: err}
	}

	return value, nil
}

// LoadFile adds a file or URL to the playlist at the given placement.
func (c *Client) LoadFile(ctx context.Context, url string, placement Placement) (*LoadFileResult, error) {
	args := append([]any{url}, placement.args()...)

	data, err := c.call(ctx, "loadfile", args...)
	if err != nil {
		return nil, err
	}

	reply, err := decode[struct {
		PlaylistEntryID *int64 `json:"playlist_entry_id"` //nolint:tagliatelle // mpv uses snake_case
	}]("loadfile", data)
	if err != nil {
		return nil, err
	}

	if reply.PlaylistEntryID == nil {
		return nil, &errors.InvalidResponseError{
			Command: "loadfile",
			Err:     stderrors.New("missing playlist_entry_id"),
		}
	}

	return &LoadFileResult{PlaylistEntryID: *reply.PlaylistEntryID}, nil
}

// GetPlaylist returns the current playlist.
func (c *Client) GetPlaylist(ctx context.Context) ([]PlaylistEntry, error) {
	return getProperty[[]PlaylistEntry](ctx, c, propertyPlaylist)
}

// PlaylistNext advances to the next playlist entry.
func (c *Client) PlaylistNext(ctx context.Context) error {
	_, err := c.call(ctx, "playlist-next")

	return err
}

// OverlayAdd shows a raw BGRA image on top of the video.
func (c *Client) OverlayAdd(ctx context.Context, opts OverlayAddOptions) error {
	_, err := c.call(ctx, "overlay-add", opts.args()...)

	return err
}

// OverlayRemove removes the overlay with the given id and returns mpv's reply payload.
func (c *Client) OverlayRemove(ctx context.Context, id uint8) (json.RawMessage, error) {
	return c.call(ctx, "overlay-remove", strconv.FormatUint(uint64(id), 10))
}

// GetDurationMs returns the duration/full property of the current file.
// mpv reports it in seconds, with fractional precision, despite the name.
func (c *Client) GetDurationMs(ctx context.Context) (float64, error) {
	return getProperty[float64](ctx, c, propertyDuration)
}

// GetTimePosMs returns the time-pos/full property of the current file.
// mpv reports it in seconds, with fractional precision, despite the name.
func (c *Client) GetTimePosMs(ctx context.Context) (float64, error) {
	return getProperty[float64](ctx, c, propertyTimePos)
}

// GetPaused reports whether playback is paused.
func (c *Client) GetPaused(ctx context.Context) (bool, error) {
	return getProperty[bool](ctx, c, propertyPause)
}

// CurrentFileInfo reads duration, position and pause state concurrently.
// The first failure cancels the remaining reads.
func (c *Client) CurrentFileInfo(ctx context.Context) (*FileInfo, error) {
	var info FileInfo

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := c.GetDurationMs(gctx)
		info.DurationMs = v

		return err
	})

	g.Go(func() error {
		v, err := c.GetTimePosMs(gctx)
		info.PositionMs = v

		return err
	})

	g.Go(func() error {
		v, err := c.GetPaused(gctx)
		info.IsPaused = v

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &info, nil
}

// ObserveProperty subscribes to changes of a property.
//
// Every change notification payload is delivered on the returned channel in
// arrival order; delivery never holds up the connection, so a slow receiver
// only grows the backlog. Observing the same property again replaces the
// earlier subscription once mpv accepts the new one: the old observer is
// released in mpv and its channel closed. If the new observe fails, the
// earlier subscription keeps working. The channel is also closed when the
// reactor stops. There is no way to unsubscribe.
func (c *Client) ObserveProperty(ctx context.Context, name string) (<-chan json.RawMessage, error) {
	if c.closed.Load() {
		return nil, errors.ErrClientClosed
	}

	sub := protocol.NewSubscription(name)
	reply := make(chan protocol.Result, 1)

	cmd := &protocol.ObserveProperty{
		Ctx:   ctx,
		Name:  name,
		Reply: reply,
		Data:  sub,
	}

	if err := c.core.enqueue(ctx, cmd); err != nil {
		sub.Close()

		return nil, err
	}

	if _, err := c.await(ctx, "observe_property "+name, reply); err != nil {
		sub.Close()

		return nil, err
	}

	return sub.C(), nil
}

// Command sends an arbitrary mpv command and returns the raw reply payload.
// The first argument is the command name.
func (c *Client) Command(ctx context.Context, args ...any) (json.RawMessage, error) {
	if len(args) == 0 {
		return nil, stderrors.New("empty command")
	}

	name := fmt.Sprint(args[0])

	payload, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", name, err)
	}

	return c.roundTrip(ctx, name, payload)
}
