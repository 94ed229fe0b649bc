//go:build integration

package integration

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mpvipc "github.com/wagiedev/mpv-ipc-go"
)

// player is a headless mpv process serving IPC on endpoint.
type player struct {
	cmd      *exec.Cmd
	endpoint string
}

// startPlayer launches mpv for one test, skipping the test when mpv is not
// installed. The process is killed during cleanup.
func startPlayer(t *testing.T) *player {
	t.Helper()

	bin, err := exec.LookPath("mpv")
	if err != nil {
		t.Skip("mpv not installed")
	}

	endpoint := filepath.Join(t.TempDir(), "mpv.sock")

	args := append(mpvipc.PlayerArgs(endpoint), "--no-config", "--no-terminal", "--vo=null", "--ao=null")
	cmd := exec.Command(bin, args...)
	require.NoError(t, cmd.Start())

	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
	})

	return &player{cmd: cmd, endpoint: endpoint}
}

// connect dials the player, retrying while it starts up.
func (p *player) connect(t *testing.T, ctx context.Context) mpvipc.Client {
	t.Helper()

	client, err := mpvipc.Connect(ctx,
		mpvipc.WithEndpoint(p.endpoint),
		mpvipc.WithDialAttempts(50),
		mpvipc.WithDialDelay(100*time.Millisecond),
	)
	require.NoError(t, err, "connect to mpv")

	t.Cleanup(func() { _ = client.Close() })

	return client
}

func testContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	return ctx
}
