package protocol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/mpv-ipc-go/internal/config"
	ipcerrors "github.com/wagiedev/mpv-ipc-go/internal/errors"
	"github.com/wagiedev/mpv-ipc-go/internal/message"
)

// readBufferSize is the size of each raw read from the connection.
const readBufferSize = 4096

// CloseReason tells why a reactor stopped.
type CloseReason int

const (
	// Running means the reactor has not stopped yet.
	Running CloseReason = iota
	// ClosedByPeer means mpv closed its end of the connection.
	ClosedByPeer
	// ClosedByCaller means the command channel was closed or the run context ended.
	ClosedByCaller
	// Failed means a read or write on the connection failed.
	Failed
)

func (r CloseReason) String() string {
	switch r {
	case Running:
		return "running"
	case ClosedByPeer:
		return "closed by peer"
	case ClosedByCaller:
		return "closed by caller"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("CloseReason(%d)", int(r))
	}
}

// readResult is one raw read handed from the reader goroutine to the loop.
type readResult struct {
	data []byte
	err  error
}

// pendingRequest tracks an outgoing command awaiting its reply.
type pendingRequest struct {
	ctx   context.Context
	name  string
	reply chan<- Result

	// settle runs on the loop when the reply arrives, before delivery.
	// abandoned reports that the caller stopped waiting.
	settle func(result Result, abandoned bool)
}

// observer is one observe_property registration known to mpv.
type observer struct {
	id   int64
	name string
	sub  *Subscription
}

// Reactor is the single owner of an mpv IPC connection.
//
// The Reactor handles:
//   - Assigning request ids and writing command frames
//   - Framing and decoding everything mpv writes back
//   - Routing replies to the caller waiting on the matching request id
//   - Routing property-change events to the property's subscription
//
// Both tables live on the loop goroutine started by Run and are never
// touched from anywhere else, so they need no locks.
type Reactor struct {
	log      *slog.Logger
	id       string
	conn     config.Conn
	commands <-chan Command

	framer       message.Framer
	pending      map[int64]*pendingRequest
	requestID    int64
	tentativeEOF bool

	// observers holds every observer id mpv may still report changes for,
	// observed the confirmed observer id per property name. unobserve
	// collects ids to release once the current read has been routed.
	observers  map[int64]*observer
	observed   map[string]int64
	observerID int64
	unobserve  []int64

	reads         chan readResult
	stopReads     chan struct{}
	stopReadsOnce sync.Once
	closeConnOnce sync.Once
	started       atomic.Bool

	// Terminal state, published before done is closed.
	errMu    sync.RWMutex
	fatalErr error
	reason   CloseReason

	closeOnce sync.Once
	done      chan struct{}
}

// NewReactor creates a reactor for an open connection.
//
// The reactor takes ownership of conn and closes it when it stops. Commands
// are consumed from the given channel until it is closed.
func NewReactor(log *slog.Logger, conn config.Conn, commands <-chan Command) *Reactor {
	id := ulid.Make().String()

	return &Reactor{
		log:       log.With("component", "reactor", "reactor_id", id),
		id:        id,
		conn:      conn,
		commands:  commands,
		pending:   make(map[int64]*pendingRequest, 16),
		observers: make(map[int64]*observer, 4),
		observed:  make(map[string]int64, 4),
		reads:     make(chan readResult),
		stopReads: make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// ID returns the reactor instance id used in its log lines.
func (r *Reactor) ID() string {
	return r.id
}

// Done returns a channel that is closed when the reactor stops.
func (r *Reactor) Done() <-chan struct{} {
	return r.done
}

// Err returns the fatal error that stopped the reactor, if any.
func (r *Reactor) Err() error {
	r.errMu.RLock()
	defer r.errMu.RUnlock()

	return r.fatalErr
}

// Reason returns why the reactor stopped, or Running while it is active.
func (r *Reactor) Reason() CloseReason {
	r.errMu.RLock()
	defer r.errMu.RUnlock()

	return r.reason
}

// Run drives the reactor until mpv closes the connection, the command
// channel is closed, ctx is cancelled or a read or write fails.
//
// A clean stop returns ClosedByPeer or ClosedByCaller with a nil error.
// I/O failures return Failed with a *errors.TransportError. Run may only be
// called once.
func (r *Reactor) Run(ctx context.Context) (CloseReason, error) {
	if !r.started.CompareAndSwap(false, true) {
		return Running, errors.New("reactor already running")
	}

	r.log.Info("Reactor started")

	go r.readLoop()

	reason, err := r.loop(ctx)
	r.shutdown(reason, err)

	return reason, err
}

func (r *Reactor) loop(ctx context.Context) (CloseReason, error) {
	for {
		select {
		case res := <-r.reads:
			if reason, err := r.handleRead(res); reason != Running || err != nil {
				return reason, err
			}

		case cmd, ok := <-r.commands:
			if !ok {
				r.log.Debug("Command channel closed")

				return ClosedByCaller, nil
			}

			if err := r.handleCommand(cmd); err != nil {
				return Failed, err
			}

		case <-ctx.Done():
			r.log.Debug("Context cancelled in reactor loop")

			return ClosedByCaller, nil
		}
	}
}

// readLoop performs raw reads and hands every result to the loop.
// It stops after a fatal read error or once the loop has exited.
func (r *Reactor) readLoop() {
	defer r.log.Debug("Reactor read loop stopped")

	for {
		buf := make([]byte, readBufferSize)
		n, err := r.conn.Read(buf)

		select {
		case r.reads <- readResult{data: buf[:n], err: err}:
		case <-r.stopReads:
			return
		}

		if err != nil && !errors.Is(err, io.EOF) {
			return
		}
	}
}

// handleRead applies one read result. A zero reason with a nil error means
// the reactor keeps running.
func (r *Reactor) handleRead(res readResult) (CloseReason, error) {
	if len(res.data) > 0 {
		r.tentativeEOF = false

		for _, d := range r.framer.Insert(res.data) {
			r.route(d)
		}

		if err := r.flushUnobserve(); err != nil {
			return Failed, err
		}
	}

	switch {
	case res.err == nil && len(res.data) > 0:
		return Running, nil

	case res.err == nil || errors.Is(res.err, io.EOF):
		// Some pipe implementations report a spurious empty read, so only a
		// second one in a row is taken as the peer hanging up.
		if r.tentativeEOF {
			r.log.Info("Connection closed by mpv")

			return ClosedByPeer, nil
		}

		r.log.Debug("Empty read, waiting for confirmation")
		r.tentativeEOF = true

		return Running, nil

	default:
		r.log.Error("Failed to read from connection", "error", res.err)

		return Failed, &ipcerrors.TransportError{Op: "read", Err: res.err}
	}
}

// route dispatches one decoded line.
func (r *Reactor) route(d message.Decoded) {
	if d.Err != nil {
		r.log.Error("Failed to decode message", "error", d.Err)

		return
	}

	switch msg := d.Message.(type) {
	case *message.Response:
		r.resolve(msg.RequestID, Result{Data: msg.Data, Status: msg.Status})

	case *message.ResponseWithoutID:
		r.log.Warn("Received response without request id", "status", msg.Status)

	case *message.PropertyChange:
		r.notify(msg)

	case *message.Event:
		r.log.Info("Received event", "event", msg.Name)

	default:
		r.log.Warn("Unhandled message", "type", d.Message.MessageType())
	}
}

func (r *Reactor) handleCommand(cmd Command) error {
	switch c := cmd.(type) {
	case *WithResponse:
		return r.send(c.Ctx, c.Name, c.Payload, c.Reply)

	case *ObserveProperty:
		r.observerID++
		obs := &observer{id: r.observerID, name: c.Name, sub: c.Data}

		payload, err := json.Marshal([]any{"observe_property", obs.id, c.Name})
		if err != nil {
			return fmt.Errorf("marshal observe_property: %w", err)
		}

		// Changes are routed to the new observer right away; it replaces the
		// current one only once mpv has accepted it.
		r.observers[obs.id] = obs

		return r.sendSettled(c.Ctx, c.commandName(), payload, c.Reply, func(result Result, abandoned bool) {
			r.settleObserver(obs, result, abandoned)
		})

	default:
		r.log.Warn("Unknown command type", "type", fmt.Sprintf("%T", cmd))

		return nil
	}
}

// send registers the reply destination under a fresh id and writes the frame.
// A nil reply means nobody waits for the answer.
func (r *Reactor) send(
	ctx context.Context,
	name string,
	payload json.RawMessage,
	reply chan<- Result,
) error {
	return r.sendSettled(ctx, name, payload, reply, nil)
}

func (r *Reactor) sendSettled(
	ctx context.Context,
	name string,
	payload json.RawMessage,
	reply chan<- Result,
	settle func(Result, bool),
) error {
	id := r.register(ctx, name, reply)
	r.pending[id].settle = settle

	data, err := encodeFrame(payload, id)
	if err != nil {
		// Unreachable for payloads produced by json.Marshal.
		r.log.Error("Failed to encode command", "request_id", id, "error", err)
		r.resolve(id, Result{Data: json.RawMessage("null"), Status: err.Error()})

		return nil
	}

	r.log.Debug("Sending command", "request_id", id, "command", name)

	if _, err := r.conn.Write(data); err != nil {
		r.log.Error("Failed to write command", "request_id", id, "error", err)

		return &ipcerrors.TransportError{Op: "write", Err: err}
	}

	return nil
}

// nextRequestID returns the current id and advances the counter.
func (r *Reactor) nextRequestID() int64 {
	id := r.requestID
	r.requestID++

	return id
}

// register stores a reply destination under a newly allocated id.
func (r *Reactor) register(ctx context.Context, name string, reply chan<- Result) int64 {
	id := r.nextRequestID()
	r.pending[id] = &pendingRequest{ctx: ctx, name: name, reply: reply}

	return id
}

// resolve hands a reply to the caller waiting on id. Unknown ids are logged
// and dropped.
func (r *Reactor) resolve(id int64, result Result) {
	pending, ok := r.pending[id]
	if !ok {
		r.log.Warn("No pending request for response", "request_id", id, "status", result.Status)

		return
	}

	delete(r.pending, id)

	abandoned := pending.ctx != nil && pending.ctx.Err() != nil

	if pending.settle != nil {
		pending.settle(result, abandoned)
	}

	if pending.reply == nil {
		r.log.Debug("Reply without waiter", "request_id", id, "command", pending.name, "status", result.Status)

		return
	}

	if abandoned {
		r.log.Debug("Caller abandoned request", "request_id", id, "command", pending.name)

		return
	}

	select {
	case pending.reply <- result:
	default:
		r.log.Warn("Reply destination full, dropping response", "request_id", id)
	}
}

// settleObserver applies mpv's answer to an observe_property. An accepted
// observer replaces the previous one for its property, which is closed and
// released. A rejected or abandoned observer is dropped and the previous one
// stays in place.
func (r *Reactor) settleObserver(obs *observer, result Result, abandoned bool) {
	if !result.OK() || abandoned {
		r.log.Debug("Property observer not installed",
			"property", obs.name, "id", obs.id, "status", result.Status, "abandoned", abandoned)
		r.dropObserver(obs.id)

		if result.OK() {
			r.unobserve = append(r.unobserve, obs.id)
		}

		return
	}

	if prevID, ok := r.observed[obs.name]; ok {
		r.log.Debug("Replacing property observer", "property", obs.name, "previous_id", prevID, "id", obs.id)
		r.dropObserver(prevID)
		r.unobserve = append(r.unobserve, prevID)
	}

	r.observed[obs.name] = obs.id
}

func (r *Reactor) dropObserver(id int64) {
	if obs, ok := r.observers[id]; ok {
		delete(r.observers, id)
		obs.sub.Close()
	}
}

// flushUnobserve sends unobserve_property for every released observer id.
func (r *Reactor) flushUnobserve() error {
	ids := r.unobserve
	r.unobserve = nil

	for _, id := range ids {
		payload, err := json.Marshal([]any{"unobserve_property", id})
		if err != nil {
			return fmt.Errorf("marshal unobserve_property: %w", err)
		}

		if err := r.send(context.Background(), "unobserve_property", payload, nil); err != nil {
			return err
		}
	}

	return nil
}

// notify hands a property change to the observer it was reported for.
// Changes for released or unknown observer ids are dropped.
func (r *Reactor) notify(change *message.PropertyChange) {
	obs, ok := r.observers[change.ID]
	if !ok {
		r.log.Warn("Property change for unobserved property", "property", change.Name, "id", change.ID)

		return
	}

	if !obs.sub.push(change.Data) {
		r.log.Debug("Subscription closed, dropping change", "property", change.Name, "id", change.ID)
	}
}

// shutdown publishes the terminal state and releases every resource.
func (r *Reactor) shutdown(reason CloseReason, err error) {
	r.errMu.Lock()
	r.reason = reason
	r.fatalErr = err
	r.errMu.Unlock()

	r.stopReadsOnce.Do(func() { close(r.stopReads) })
	r.closeConnOnce.Do(func() {
		if cerr := r.conn.Close(); cerr != nil {
			r.log.Debug("Failed to close connection", "error", cerr)
		}
	})

	for id := range r.observers {
		r.dropObserver(id)
	}

	clear(r.observed)

	if n := len(r.pending); n > 0 {
		r.log.Debug("Reactor stopped with unanswered requests", "pending", n)
	}

	r.log.Info("Reactor stopped", "reason", reason.String())

	r.closeOnce.Do(func() { close(r.done) })
}
