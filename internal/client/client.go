package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/wagiedev/mpv-ipc-go/internal/config"
	"github.com/wagiedev/mpv-ipc-go/internal/errors"
	"github.com/wagiedev/mpv-ipc-go/internal/protocol"
	"github.com/wagiedev/mpv-ipc-go/internal/transport"
)

// core is shared by every handle cloned from the same connection.
type core struct {
	log      *slog.Logger
	reactor  *protocol.Reactor
	shutdown context.CancelFunc

	// mu guards the command channel against sends after close. Senders hold
	// the read lock, the final release holds the write lock.
	mu       sync.RWMutex
	commands chan protocol.Command
	refs     int
	closed   bool
}

// Client is one handle onto an mpv connection.
//
// Handles are cheap; use Clone to give each goroutine or component its own.
// Every handle must be closed. Closing the last one shuts the reactor down.
// All methods are safe for concurrent use.
type Client struct {
	core   *core
	closed atomic.Bool
}

// Start connects to mpv and starts the reactor that owns the connection.
//
// The connection comes from options.Conn when set, otherwise the endpoint
// (or the platform default) is dialed with retries. The reactor runs until
// every handle is closed, mpv goes away or the connection fails; ctx only
// bounds the connection attempt.
func Start(ctx context.Context, options *config.Options) (*Client, error) {
	options = options.Normalize()
	log := options.Logger.With("component", "client")

	conn := options.Conn
	if conn != nil {
		log.Debug("Using injected connection")
	} else {
		endpoint := options.Endpoint
		if endpoint == "" {
			endpoint = transport.DefaultEndpoint()
		}

		var err error

		conn, err = transport.DialRetry(ctx, options.Logger, endpoint, options.DialAttempts, options.DialDelay)
		if err != nil {
			return nil, err
		}
	}

	commands := make(chan protocol.Command, options.QueueSize)
	reactor := protocol.NewReactor(options.Logger, conn, commands)

	// The reactor outlives ctx on purpose: ctx only covers connecting.
	runCtx, cancel := context.WithCancel(context.Background())

	co := &core{
		log:      log,
		reactor:  reactor,
		shutdown: cancel,
		commands: commands,
		refs:     1,
	}

	go func() {
		defer cancel()

		reason, err := reactor.Run(runCtx)
		if err != nil {
			log.Error("Reactor stopped with error", "reason", reason.String(), "error", err)

			return
		}

		log.Debug("Reactor stopped", "reason", reason.String())
	}()

	log.Info("Client started", "reactor_id", reactor.ID())

	return &Client{core: co}, nil
}

// acquire registers another handle. It fails once the queue is closed.
func (co *core) acquire() bool {
	co.mu.Lock()
	defer co.mu.Unlock()

	if co.closed {
		return false
	}

	co.refs++

	return true
}

// release drops one handle and closes the queue with the last one.
func (co *core) release() {
	co.mu.Lock()
	defer co.mu.Unlock()

	co.refs--

	if co.refs == 0 && !co.closed {
		co.closed = true
		close(co.commands)
		co.log.Debug("Last client handle closed")
	}
}

// enqueue hands a command to the reactor, waiting while the queue is full.
func (co *core) enqueue(ctx context.Context, cmd protocol.Command) error {
	co.mu.RLock()
	defer co.mu.RUnlock()

	if co.closed {
		return errors.ErrClientClosed
	}

	select {
	case co.commands <- cmd:
		return nil
	case <-co.reactor.Done():
		return co.stoppedErr()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stoppedErr describes a reactor that ended before answering.
func (co *core) stoppedErr() error {
	if err := co.reactor.Err(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrReactorStopped, err)
	}

	return errors.ErrReactorStopped
}

// Clone returns a new handle onto the same connection.
// Cloning a closed handle yields a closed handle.
func (c *Client) Clone() *Client {
	clone := &Client{core: c.core}

	if c.closed.Load() || !c.core.acquire() {
		clone.closed.Store(true)
	}

	return clone
}

// Close releases this handle. It is safe to call more than once.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.core.release()

	return nil
}

// Shutdown stops the reactor regardless of how many handles are open.
// Pending and later calls on every handle fail with ErrReactorStopped.
func (c *Client) Shutdown() {
	c.core.log.Debug("Shutting down reactor")
	c.core.shutdown()
}

// Done returns a channel that is closed when the reactor stops.
func (c *Client) Done() <-chan struct{} {
	return c.core.reactor.Done()
}

// Err returns the fatal error that stopped the reactor, if any.
func (c *Client) Err() error {
	return c.core.reactor.Err()
}

// Wait blocks until the reactor stops and reports why.
func (c *Client) Wait() (protocol.CloseReason, error) {
	<-c.core.reactor.Done()

	return c.core.reactor.Reason(), c.core.reactor.Err()
}

// roundTrip sends an encoded command and waits for mpv's reply.
func (c *Client) roundTrip(ctx context.Context, name string, payload json.RawMessage) (json.RawMessage, error) {
	if c.closed.Load() {
		return nil, errors.ErrClientClosed
	}

	reply := make(chan protocol.Result, 1)

	cmd := &protocol.WithResponse{
		Ctx:     ctx,
		Name:    name,
		Payload: payload,
		Reply:   reply,
	}

	if err := c.core.enqueue(ctx, cmd); err != nil {
		return nil, err
	}

	return c.await(ctx, name, reply)
}

// await waits for the reply to one command.
func (c *Client) await(ctx context.Context, name string, reply <-chan protocol.Result) (json.RawMessage, error) {
	select {
	case res := <-reply:
		return checkResult(name, res)

	case <-c.core.reactor.Done():
		// The reply may have been delivered just before the reactor stopped.
		select {
		case res := <-reply:
			return checkResult(name, res)
		default:
		}

		c.core.log.Debug("Reactor stopped during command", "command", name)

		return nil, c.core.stoppedErr()

	case <-ctx.Done():
		select {
		case res := <-reply:
			return checkResult(name, res)
		default:
		}

		c.core.log.Debug("Command cancelled", "command", name)

		return nil, ctx.Err()
	}
}

func checkResult(name string, res protocol.Result) (json.RawMessage, error) {
	if !res.OK() {
		return nil, &errors.CommandError{Command: name, Status: res.Status}
	}

	return res.Data, nil
}
