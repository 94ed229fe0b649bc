package protocol

import (
	"context"
	"encoding/json"

	"github.com/wagiedev/mpv-ipc-go/internal/message"
)

// Result is the outcome of one command as reported by mpv.
type Result struct {
	// Data is the raw reply payload, JSON null when mpv sent none.
	Data json.RawMessage

	// Status is "success" or the error text returned by mpv.
	Status string
}

// OK reports whether mpv accepted the command.
func (r Result) OK() bool {
	return r.Status == message.StatusSuccess
}

// Command is a unit of work handed to the reactor through its command channel.
//
// The two variants are *WithResponse and *ObserveProperty.
type Command interface {
	commandName() string
}

// WithResponse asks the reactor to send a command and deliver mpv's reply.
//
// Reply must have capacity for one value; the reactor never blocks on it.
type WithResponse struct {
	// Ctx belongs to the waiting caller. It is only consulted to notice that
	// nobody is listening anymore when the reply arrives.
	Ctx context.Context

	// Payload is the JSON array sent as the "command" field.
	Payload json.RawMessage

	// Name labels the command in logs.
	Name string

	Reply chan<- Result
}

func (c *WithResponse) commandName() string { return c.Name }

// ObserveProperty asks the reactor to subscribe to changes of a property.
//
// Once mpv accepts the observer, Data replaces any subscription previously
// registered for Name. The observe request itself is acknowledged on Reply
// like any other command.
type ObserveProperty struct {
	Ctx   context.Context
	Name  string
	Reply chan<- Result
	Data  *Subscription
}

func (c *ObserveProperty) commandName() string { return "observe_property" }

// frame is the envelope written to mpv for every command.
//
// Wire format:
//
//	{"command":["loadfile","https://example.com/a.mkv","append-play"],"request_id":0,"async":true}
type frame struct {
	Command   json.RawMessage `json:"command"`
	RequestID int64           `json:"request_id"` //nolint:tagliatelle // mpv uses snake_case
	Async     bool            `json:"async"`
}

// encodeFrame renders a command envelope terminated by the line separator.
func encodeFrame(payload json.RawMessage, requestID int64) ([]byte, error) {
	data, err := json.Marshal(frame{Command: payload, RequestID: requestID, Async: true})
	if err != nil {
		return nil, err
	}

	return append(data, message.LineSeparator), nil
}
