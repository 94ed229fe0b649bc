//go:build windows

package transport

import (
	"context"
	"log/slog"

	"github.com/Microsoft/go-winio"

	"github.com/wagiedev/mpv-ipc-go/internal/config"
)

const pipePrefix = `\\.\pipe\`

func dial(ctx context.Context, endpoint string) (config.Conn, error) {
	return winio.DialPipeContext(ctx, endpoint)
}

func platformEndpoint() string {
	return pipePrefix + appDir + "-mpv-socket"
}

// RemoveStaleSocket is a no-op on Windows; named pipes vanish with their server.
func RemoveStaleSocket(_ *slog.Logger, _ string) error {
	return nil
}
