//go:build !windows

package transport

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"

	"github.com/wagiedev/mpv-ipc-go/internal/config"
)

const socketName = "mpv-socket"

func dial(ctx context.Context, endpoint string) (config.Conn, error) {
	var d net.Dialer

	return d.DialContext(ctx, "unix", endpoint)
}

func platformEndpoint() string {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}

	return filepath.Join(dir, appDir, socketName)
}

// RemoveStaleSocket deletes a socket file left behind by a player that did
// not shut down cleanly, so a new player can bind the same path. The parent
// directory is created if missing.
func RemoveStaleSocket(log *slog.Logger, endpoint string) error {
	if err := os.MkdirAll(filepath.Dir(endpoint), 0o700); err != nil {
		return err
	}

	info, err := os.Lstat(endpoint)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}

	if info.Mode()&fs.ModeSocket == 0 {
		return &fs.PathError{Op: "remove", Path: endpoint, Err: stderrors.New("not a socket")}
	}

	log.Debug("Removing stale socket", "component", "transport", "endpoint", endpoint)

	return os.Remove(endpoint)
}
