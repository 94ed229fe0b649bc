package mpvipc

import (
	"context"

	"github.com/wagiedev/mpv-ipc-go/internal/config"
	"github.com/wagiedev/mpv-ipc-go/internal/transport"
)

// Conn is the connection the reactor reads from and writes to.
// Any net.Conn satisfies it. Inject one with WithConn.
type Conn = config.Conn

// EnvEndpoint names the environment variable that overrides DefaultEndpoint.
const EnvEndpoint = transport.EnvEndpoint

// DefaultEndpoint returns the endpoint used when WithEndpoint is not given.
func DefaultEndpoint() string {
	return transport.DefaultEndpoint()
}

// Dial opens an mpv IPC endpoint once, without retrying.
func Dial(ctx context.Context, endpoint string) (Conn, error) {
	return transport.Dial(ctx, endpoint)
}

// PlayerArgs returns the mpv command-line arguments that make a new player
// serve IPC on endpoint and stay idle between files.
func PlayerArgs(endpoint string) []string {
	return transport.PlayerArgs(endpoint)
}

// RemoveStaleSocket deletes a socket file left behind at endpoint by a
// player that did not exit cleanly. Call it before launching a new player.
func RemoveStaleSocket(endpoint string, opts ...Option) error {
	return transport.RemoveStaleSocket(applyOptions(opts).Normalize().Logger, endpoint)
}
