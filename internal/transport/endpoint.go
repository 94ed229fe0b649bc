package transport

import "os"

// EnvEndpoint overrides the default endpoint when set.
const EnvEndpoint = "MPVIPC_SOCKET_PATH"

const appDir = "mpvipc"

// DefaultEndpoint returns the endpoint used when none is configured.
//
// The MPVIPC_SOCKET_PATH environment variable wins. Otherwise Unix systems
// use $XDG_RUNTIME_DIR/mpvipc/mpv-socket (falling back to the temp dir) and
// Windows uses the named pipe \\.\pipe\mpvipc-mpv-socket.
func DefaultEndpoint() string {
	if ep := os.Getenv(EnvEndpoint); ep != "" {
		return ep
	}

	return platformEndpoint()
}

// PlayerArgs returns the arguments mpv should be started with so that it
// serves IPC on endpoint and stays open between files.
func PlayerArgs(endpoint string) []string {
	return []string{
		"--input-ipc-server=" + endpoint,
		"--force-window",
		"--idle",
		"--keep-open",
		"--keep-open-pause=no",
		"--ytdl-format=best*",
	}
}
