package message

import "encoding/json"

const (
	// LineSeparator terminates every protocol line in both directions.
	LineSeparator = '\n'

	// StatusSuccess is the "error" value mpv uses for successful replies.
	StatusSuccess = "success"

	// EventPropertyChange is the event name of observed property updates.
	EventPropertyChange = "property-change"
)

// Message represents one decoded protocol line.
// Use a type switch to determine the concrete type.
type Message interface {
	MessageType() string
}

// Compile-time verification that all message types implement Message.
var (
	_ Message = (*Response)(nil)
	_ Message = (*ResponseWithoutID)(nil)
	_ Message = (*PropertyChange)(nil)
	_ Message = (*Event)(nil)
)

// Response is a reply correlated to a request by its id.
//
// Wire format:
//
//	{"request_id": 3, "error": "success", "data": {...}}
type Response struct {
	RequestID int64
	// Data is the reply payload, JSON null when mpv sent none.
	Data json.RawMessage
	// Status is "success" or the failure message.
	Status string
}

// MessageType implements Message.
func (m *Response) MessageType() string { return "response" }

// OK reports whether mpv answered with a success status.
func (m *Response) OK() bool { return m.Status == StatusSuccess }

// ResponseWithoutID is a reply mpv produced without a correlation id.
// Commands sent by this package are always tagged, so these are unexpected.
type ResponseWithoutID struct {
	Data   json.RawMessage
	Status string
}

// MessageType implements Message.
func (m *ResponseWithoutID) MessageType() string { return "response_without_id" }

// OK reports whether mpv answered with a success status.
func (m *ResponseWithoutID) OK() bool { return m.Status == StatusSuccess }

// PropertyChange is the notification for a property registered with observe_property.
//
// Wire format:
//
//	{"event": "property-change", "id": 1, "name": "playlist", "data": [...]}
type PropertyChange struct {
	// ID is the observer id passed to observe_property.
	ID   int64
	Name string
	// Data is the new value, JSON null when the property is unavailable.
	Data json.RawMessage
}

// MessageType implements Message.
func (m *PropertyChange) MessageType() string { return "property_change" }

// Event is any other spontaneous notification (file-loaded, end-file, idle...).
type Event struct {
	Name string
	// Fields holds every key of the line except "event".
	Fields map[string]json.RawMessage
}

// MessageType implements Message.
func (m *Event) MessageType() string { return "event" }
