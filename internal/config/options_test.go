package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOptionsNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		in           *Options
		wantAttempts int
		wantDelay    time.Duration
		wantQueue    int
	}{
		{
			name:         "nil options get defaults",
			in:           nil,
			wantAttempts: DefaultDialAttempts,
			wantDelay:    DefaultDialDelay,
			wantQueue:    DefaultQueueSize,
		},
		{
			name:         "zero values get defaults",
			in:           &Options{},
			wantAttempts: DefaultDialAttempts,
			wantDelay:    DefaultDialDelay,
			wantQueue:    DefaultQueueSize,
		},
		{
			name:         "negative values get defaults",
			in:           &Options{DialAttempts: -1, DialDelay: -time.Second, QueueSize: -5},
			wantAttempts: DefaultDialAttempts,
			wantDelay:    DefaultDialDelay,
			wantQueue:    DefaultQueueSize,
		},
		{
			name:         "explicit values are kept",
			in:           &Options{DialAttempts: 3, DialDelay: 5 * time.Millisecond, QueueSize: 1},
			wantAttempts: 3,
			wantDelay:    5 * time.Millisecond,
			wantQueue:    1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := tc.in.Normalize()

			require.NotNil(t, got.Logger)
			require.Equal(t, tc.wantAttempts, got.DialAttempts)
			require.Equal(t, tc.wantDelay, got.DialDelay)
			require.Equal(t, tc.wantQueue, got.QueueSize)
		})
	}
}

func TestOptionsNormalize_KeepsEndpoint(t *testing.T) {
	t.Parallel()

	opts := (&Options{Endpoint: `\\.\pipe\mpv`}).Normalize()

	require.Equal(t, `\\.\pipe\mpv`, opts.Endpoint)
}
