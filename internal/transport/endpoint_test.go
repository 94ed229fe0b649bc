package transport

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultEndpoint(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv(EnvEndpoint, "/run/custom/mpv.sock")

		require.Equal(t, "/run/custom/mpv.sock", DefaultEndpoint())
	})

	t.Run("platform default", func(t *testing.T) {
		t.Setenv(EnvEndpoint, "")

		if runtime.GOOS == "windows" {
			require.Equal(t, `\\.\pipe\mpvipc-mpv-socket`, DefaultEndpoint())

			return
		}

		t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
		require.Equal(t, "/run/user/1000/mpvipc/mpv-socket", DefaultEndpoint())

		t.Setenv("XDG_RUNTIME_DIR", "")
		require.True(t, strings.HasSuffix(DefaultEndpoint(), "/mpvipc/mpv-socket"))
	})
}

func TestPlayerArgs(t *testing.T) {
	require.Equal(t, []string{
		"--input-ipc-server=/tmp/mpv.sock",
		"--force-window",
		"--idle",
		"--keep-open",
		"--keep-open-pause=no",
		"--ytdl-format=best*",
	}, PlayerArgs("/tmp/mpv.sock"))
}
