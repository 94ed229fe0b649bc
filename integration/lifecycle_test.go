//go:build integration

package integration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mpvipc "github.com/wagiedev/mpv-ipc-go"
)

// TestLifecycle_PlayerQuits checks that quitting mpv ends the connection
// as closed by the peer and fails later calls.
func TestLifecycle_PlayerQuits(t *testing.T) {
	ctx := testContext(t)
	client := startPlayer(t).connect(t, ctx)

	// quit may or may not be answered before mpv hangs up.
	_, _ = client.Command(ctx, "quit")

	select {
	case <-client.Done():
	case <-time.After(10 * time.Second):
		t.Fatal("connection still open after quit")
	}

	reason, err := client.Wait()
	require.NoError(t, err)
	require.Equal(t, mpvipc.ClosedByPeer, reason)

	_, err = client.GetPaused(ctx)
	require.ErrorIs(t, err, mpvipc.ErrReactorStopped)
}

// TestLifecycle_ConcurrentClones checks that clones share the connection and
// that closing the last one ends it.
func TestLifecycle_ConcurrentClones(t *testing.T) {
	ctx := testContext(t)
	client := startPlayer(t).connect(t, ctx)

	const workers = 8

	errs := make(chan error, workers)

	for range workers {
		clone := client.Clone()

		go func() {
			defer clone.Close()

			_, err := clone.CurrentFileInfo(ctx)
			errs <- err
		}()
	}

	for range workers {
		// Nothing is loaded, so mpv reports the properties as unavailable.
		err := <-errs
		if err != nil {
			_, ok := errorsAsCommand(err)
			require.True(t, ok, "unexpected error: %v", err)
		}
	}

	require.NoError(t, client.Close())

	reason, err := client.Wait()
	require.NoError(t, err)
	require.Equal(t, mpvipc.ClosedByCaller, reason)
}
