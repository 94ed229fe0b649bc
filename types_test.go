package mpvipc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlacements(t *testing.T) {
	tests := []struct {
		name      string
		placement Placement
		keyword   string
	}{
		{"replace", Replace, "replace"},
		{"append", Append, "append"},
		{"append play", AppendPlay, "append-play"},
		{"insert next", InsertNext, "insert-next"},
		{"insert next play", InsertNextPlay, "insert-next-play"},
		{"insert at", InsertAt(4), "insert-at"},
		{"insert at play", InsertAtPlay(4), "insert-at-play"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.keyword, tt.placement.Keyword())

			index, indexed := tt.placement.Index()

			parsed, err := ParsePlacement(tt.keyword, index)
			require.NoError(t, err)
			require.Equal(t, tt.placement, parsed)

			if indexed {
				require.Equal(t, uint64(4), index)
			}
		})
	}
}

func TestCloseReason_String(t *testing.T) {
	require.Equal(t, "running", Running.String())
	require.Equal(t, "closed by peer", ClosedByPeer.String())
	require.Equal(t, "closed by caller", ClosedByCaller.String())
	require.Equal(t, "failed", Failed.String())
}

func TestApplyOptions(t *testing.T) {
	options := applyOptions([]Option{
		WithEndpoint("/run/mpv.sock"),
		WithDialAttempts(3),
		WithQueueSize(8),
		WithLogger(NopLogger()),
	})

	require.Equal(t, "/run/mpv.sock", options.Endpoint)
	require.Equal(t, 3, options.DialAttempts)
	require.Equal(t, 8, options.QueueSize)
	require.NotNil(t, options.Logger)
	require.Zero(t, options.DialDelay)
	require.Nil(t, options.Conn)
}
