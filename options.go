package mpvipc

import (
	"log/slog"
	"time"

	"github.com/wagiedev/mpv-ipc-go/internal/config"
)

// Options configures how a Client connects to mpv.
type Options = config.Options

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to a fresh Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithEndpoint sets the socket path or pipe name mpv serves IPC on.
// If not set, DefaultEndpoint is used.
func WithEndpoint(endpoint string) Option {
	return func(o *Options) {
		o.Endpoint = endpoint
	}
}

// WithDialAttempts limits how often the endpoint is dialed while the
// player is starting up.
func WithDialAttempts(attempts int) Option {
	return func(o *Options) {
		o.DialAttempts = attempts
	}
}

// WithDialDelay sets the fixed delay between dial attempts.
func WithDialDelay(delay time.Duration) Option {
	return func(o *Options) {
		o.DialDelay = delay
	}
}

// WithQueueSize sets the capacity of the command queue shared by all handles.
// Senders wait while the queue is full.
func WithQueueSize(size int) Option {
	return func(o *Options) {
		o.QueueSize = size
	}
}

// WithConn injects an already open connection instead of dialing.
// The client takes ownership and closes it when the reactor stops.
func WithConn(conn Conn) Option {
	return func(o *Options) {
		o.Conn = conn
	}
}
