// Package mpvtest provides an in-memory stand-in for mpv's JSON IPC server.
//
// A Player serves one end of a net.Pipe the way mpv serves its socket: it
// reads newline-terminated command frames, records them and answers through
// a Handler. Tests hand the other end to the code under test.
package mpvtest

import (
	"bufio"
	"encoding/json"
	"net"
	"strings"
	"sync"
	"time"
)

// Received is one command frame read by the Player.
type Received struct {
	RequestID int64           `json:"request_id"` //nolint:tagliatelle // mpv uses snake_case
	Command   json.RawMessage `json:"command"`
	Async     bool            `json:"async"`
}

// Args decodes the command array.
func (r Received) Args() []any {
	var args []any

	_ = json.Unmarshal(r.Command, &args)

	return args
}

// Key returns the command name, followed by the property for get_property.
func (r Received) Key() string {
	return Key(r.Args())
}

// Key builds the lookup key used by Static for a decoded command.
func Key(args []any) string {
	if len(args) == 0 {
		return ""
	}

	name, _ := args[0].(string)
	if name == "get_property" && len(args) > 1 {
		prop, _ := args[1].(string)

		return name + " " + prop
	}

	return name
}

// Reply is the Player's answer to one command.
type Reply struct {
	// Data is sent as the "data" field. Nil omits the field.
	Data any
	// Error is the status text. Empty means "success".
	Error string
	// Drop suppresses the reply entirely.
	Drop bool
}

// Handler decides how the Player answers a command.
type Handler func(args []any) Reply

// Static answers commands from a table keyed by Key. Unknown commands get
// mpv's "invalid parameter" error.
func Static(replies map[string]Reply) Handler {
	return func(args []any) Reply {
		if reply, ok := replies[Key(args)]; ok {
			return reply
		}

		return Reply{Error: "invalid parameter"}
	}
}

// Player is a fake mpv IPC server.
//
// Writes go through a queue drained by their own goroutine so that reading
// commands never waits on the client reading replies; net.Pipe has no
// buffering of its own.
type Player struct {
	conn     net.Conn
	handler  Handler
	received chan Received
	outbox   chan []byte
	done     chan struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

// New starts a Player and returns it together with the client end of the
// connection.
func New(handler Handler) (*Player, net.Conn) {
	server, client := net.Pipe()

	p := &Player{
		conn:     server,
		handler:  handler,
		received: make(chan Received, 256),
		outbox:   make(chan []byte, 1024),
		done:     make(chan struct{}),
		closed:   make(chan struct{}),
	}

	go p.serve()
	go p.write()

	return p, client
}

func (p *Player) serve() {
	defer close(p.done)

	scanner := bufio.NewScanner(p.conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var frame Received
		if err := json.Unmarshal([]byte(line), &frame); err != nil {
			continue
		}

		select {
		case p.received <- frame:
		default:
		}

		reply := Reply{}
		if p.handler != nil {
			reply = p.handler(frame.Args())
		}

		if reply.Drop {
			continue
		}

		if err := p.reply(frame.RequestID, reply); err != nil {
			return
		}
	}
}

func (p *Player) reply(requestID int64, reply Reply) error {
	status := reply.Error
	if status == "" {
		status = "success"
	}

	msg := map[string]any{
		"request_id": requestID,
		"error":      status,
	}

	if reply.Data != nil {
		msg["data"] = reply.Data
	}

	return p.Send(msg)
}

// Send writes one JSON line to the client.
func (p *Player) Send(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.SendRaw(append(data, '\n'))
}

// SendRaw queues raw bytes for the client.
func (p *Player) SendRaw(data []byte) error {
	select {
	case <-p.closed:
		return net.ErrClosed
	default:
	}

	select {
	case p.outbox <- data:
		return nil
	case <-p.closed:
		return net.ErrClosed
	}
}

func (p *Player) write() {
	for {
		select {
		case data := <-p.outbox:
			if _, err := p.conn.Write(data); err != nil {
				return
			}
		case <-p.closed:
			return
		}
	}
}

// PropertyChange emits a property-change event.
func (p *Player) PropertyChange(id int64, name string, data any) error {
	return p.Send(map[string]any{
		"event": "property-change",
		"id":    id,
		"name":  name,
		"data":  data,
	})
}

// Next returns the next received command, or false after timeout.
func (p *Player) Next(timeout time.Duration) (Received, bool) {
	select {
	case r := <-p.received:
		return r, true
	case <-time.After(timeout):
		return Received{}, false
	}
}

// Close hangs up, as mpv does when it exits.
func (p *Player) Close() error {
	p.closeOnce.Do(func() { close(p.closed) })

	return p.conn.Close()
}

// Done is closed once the Player stops serving.
func (p *Player) Done() <-chan struct{} {
	return p.done
}
