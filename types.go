package mpvipc

import (
	"github.com/wagiedev/mpv-ipc-go/internal/client"
	"github.com/wagiedev/mpv-ipc-go/internal/protocol"
)

// Placement selects where LoadFile puts a new playlist entry.
type Placement = client.Placement

// Placements supported by LoadFile.
var (
	Replace        = client.Replace
	Append         = client.Append
	AppendPlay     = client.AppendPlay
	InsertNext     = client.InsertNext
	InsertNextPlay = client.InsertNextPlay
)

// InsertAt inserts the file at the given playlist index.
func InsertAt(index uint64) Placement {
	return client.InsertAt(index)
}

// InsertAtPlay inserts the file at the given index and starts playing if idle.
func InsertAtPlay(index uint64) Placement {
	return client.InsertAtPlay(index)
}

// ParsePlacement maps a loadfile keyword such as "append-play" to a Placement.
func ParsePlacement(keyword string, index uint64) (Placement, error) {
	return client.ParsePlacement(keyword, index)
}

// LoadFileResult is mpv's answer to LoadFile.
type LoadFileResult = client.LoadFileResult

// PlaylistEntry is one element of the playlist.
type PlaylistEntry = client.PlaylistEntry

// OverlayAddOptions describes a raw BGRA image overlay.
type OverlayAddOptions = client.OverlayAddOptions

// FileInfo summarizes the state of the current file.
type FileInfo = client.FileInfo

// CloseReason tells why the connection ended.
type CloseReason = protocol.CloseReason

// Close reasons reported by Client.Wait.
const (
	Running        = protocol.Running
	ClosedByPeer   = protocol.ClosedByPeer
	ClosedByCaller = protocol.ClosedByCaller
	Failed         = protocol.Failed
)
