package client

import (
	"fmt"
	"strconv"
)

// Placement selects where loadfile puts a new entry in the playlist.
type Placement struct {
	mode  string
	index uint64
}

// Placements supported by loadfile. The zero Placement behaves like Replace.
var (
	// Replace stops playback and plays the file immediately.
	Replace = Placement{mode: "replace"}
	// Append adds the file to the end of the playlist.
	Append = Placement{mode: "append"}
	// AppendPlay appends the file and starts playing it if nothing is playing.
	AppendPlay = Placement{mode: "append-play"}
	// InsertNext inserts the file right after the current entry.
	InsertNext = Placement{mode: "insert-next"}
	// InsertNextPlay inserts after the current entry and starts playing if idle.
	InsertNextPlay = Placement{mode: "insert-next-play"}
)

// InsertAt inserts the file at the given playlist index.
func InsertAt(index uint64) Placement {
	return Placement{mode: "insert-at", index: index}
}

// InsertAtPlay inserts the file at the given index and starts playing if idle.
func InsertAtPlay(index uint64) Placement {
	return Placement{mode: "insert-at-play", index: index}
}

// ParsePlacement maps an mpv loadfile keyword back to a Placement.
// The index is only used by insert-at and insert-at-play.
func ParsePlacement(keyword string, index uint64) (Placement, error) {
	switch keyword {
	case "", Replace.mode:
		return Replace, nil
	case Append.mode:
		return Append, nil
	case AppendPlay.mode:
		return AppendPlay, nil
	case InsertNext.mode:
		return InsertNext, nil
	case InsertNextPlay.mode:
		return InsertNextPlay, nil
	case "insert-at":
		return InsertAt(index), nil
	case "insert-at-play":
		return InsertAtPlay(index), nil
	default:
		return Placement{}, fmt.Errorf("unknown placement %q", keyword)
	}
}

// Keyword returns the loadfile flag mpv expects.
func (p Placement) Keyword() string {
	if p.mode == "" {
		return Replace.mode
	}

	return p.mode
}

// Index returns the target index of InsertAt and InsertAtPlay placements.
func (p Placement) Index() (uint64, bool) {
	return p.index, p.indexed()
}

func (p Placement) indexed() bool {
	return p.mode == "insert-at" || p.mode == "insert-at-play"
}

func (p Placement) String() string {
	if p.indexed() {
		return p.mode + " " + strconv.FormatUint(p.index, 10)
	}

	return p.Keyword()
}

// args renders the placement as loadfile arguments.
func (p Placement) args() []any {
	if p.indexed() {
		return []any{p.mode, strconv.FormatUint(p.index, 10)}
	}

	return []any{p.Keyword()}
}

// LoadFileResult is mpv's answer to loadfile.
type LoadFileResult struct {
	// PlaylistEntryID identifies the new entry for the lifetime of the player.
	PlaylistEntryID int64 `json:"playlist_entry_id"` //nolint:tagliatelle // mpv uses snake_case
}

// PlaylistEntry is one element of the playlist property.
type PlaylistEntry struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
	Current  bool   `json:"current,omitempty"`
	Playing  bool   `json:"playing,omitempty"`
}

// OverlayAddOptions describes a raw BGRA image shown on top of the video.
//
// File is a path mpv can open (or "&<fd>" for a file descriptor), Offset is
// the byte offset of the first pixel. The stride is always Width*4.
type OverlayAddOptions struct {
	ID     uint8
	X      int32
	Y      int32
	File   string
	Offset uint64
	Width  uint32
	Height uint32
}

// args renders the overlay-add arguments after the command name.
func (o OverlayAddOptions) args() []any {
	return []any{
		strconv.FormatUint(uint64(o.ID), 10),
		strconv.FormatInt(int64(o.X), 10),
		strconv.FormatInt(int64(o.Y), 10),
		o.File,
		strconv.FormatUint(o.Offset, 10),
		"bgra",
		strconv.FormatUint(uint64(o.Width), 10),
		strconv.FormatUint(uint64(o.Height), 10),
		strconv.FormatUint(uint64(o.Width)*4, 10),
	}
}

// FileInfo summarizes the state of the current file.
type FileInfo struct {
	// DurationMs and PositionMs carry mpv's values in seconds.
	DurationMs float64 `json:"duration_ms"` //nolint:tagliatelle // matches the HTTP API
	PositionMs float64 `json:"position_ms"` //nolint:tagliatelle // matches the HTTP API
	IsPaused   bool    `json:"is_paused"`   //nolint:tagliatelle // matches the HTTP API
}
