package config

import (
	"io"
	"log/slog"
	"time"
)

const (
	// DefaultDialAttempts is how many times the endpoint is dialed before giving up.
	DefaultDialAttempts = 10

	// DefaultDialDelay is the fixed delay between dial attempts.
	DefaultDialDelay = 100 * time.Millisecond

	// DefaultQueueSize is the capacity of the shared command queue.
	DefaultQueueSize = 64
)

// Options configures the connection to mpv and the reactor that owns it.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Endpoint is the Unix socket path or Windows pipe name mpv listens on.
	// It is passed to the transport verbatim.
	// If empty, the platform default endpoint is used.
	Endpoint string

	// DialAttempts limits how many times the endpoint is dialed while mpv
	// is still starting up. Values below 1 mean DefaultDialAttempts.
	DialAttempts int

	// DialDelay is the fixed delay between dial attempts.
	// Zero means DefaultDialDelay.
	DialDelay time.Duration

	// QueueSize is the capacity of the command queue shared by all client handles.
	// The queue is bounded: once it is full, senders wait for room until their
	// context ends or the reactor stops, and FIFO order across senders is kept.
	// Values below 1 mean DefaultQueueSize.
	QueueSize int

	// Conn injects an already open connection. When set, Endpoint and the
	// dial settings are ignored and the reactor takes ownership of Conn.
	Conn Conn `json:"-"`
}

// Normalize fills unset fields with their defaults and returns o.
// A nil receiver yields a fresh Options with defaults applied.
func (o *Options) Normalize() *Options {
	if o == nil {
		o = &Options{}
	}

	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if o.DialAttempts < 1 {
		o.DialAttempts = DefaultDialAttempts
	}

	if o.DialDelay <= 0 {
		o.DialDelay = DefaultDialDelay
	}

	if o.QueueSize < 1 {
		o.QueueSize = DefaultQueueSize
	}

	return o
}
