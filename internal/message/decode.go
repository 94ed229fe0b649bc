package message

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/wagiedev/mpv-ipc-go/internal/errors"
)

var jsonNull = json.RawMessage("null")

// Decode classifies one protocol line.
//
// A line with a string "error" field is a reply; it is a *Response when it
// carries an integer "request_id" and a *ResponseWithoutID when the id is
// missing or null. Otherwise a line with a string "event" field is a
// *PropertyChange or an *Event. Anything else is a *errors.DecodeError.
func Decode(line []byte) (Message, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(line, &raw); err != nil {
		return nil, &errors.DecodeError{RawData: string(line), Err: err}
	}

	if status, ok := stringField(raw, "error"); ok {
		return decodeResponse(line, raw, status)
	}

	if name, ok := stringField(raw, "event"); ok {
		return decodeEvent(line, raw, name)
	}

	return nil, &errors.DecodeError{
		RawData: string(line),
		Err:     fmt.Errorf("unrecognized message shape: neither reply nor event"),
	}
}

func decodeResponse(line []byte, raw map[string]json.RawMessage, status string) (Message, error) {
	data := payload(raw)

	idField, ok := raw["request_id"]
	if !ok || isNull(idField) {
		return &ResponseWithoutID{Data: data, Status: status}, nil
	}

	var requestID int64
	if err := json.Unmarshal(idField, &requestID); err != nil {
		return nil, &errors.DecodeError{
			RawData: string(line),
			Err:     fmt.Errorf("invalid request_id: %w", err),
		}
	}

	return &Response{RequestID: requestID, Data: data, Status: status}, nil
}

func decodeEvent(line []byte, raw map[string]json.RawMessage, name string) (Message, error) {
	if name != EventPropertyChange {
		delete(raw, "event")

		return &Event{Name: name, Fields: raw}, nil
	}

	property, ok := stringField(raw, "name")
	if !ok {
		return nil, &errors.DecodeError{
			RawData: string(line),
			Err:     fmt.Errorf("property-change event without name"),
		}
	}

	var id int64

	if idField, ok := raw["id"]; ok && !isNull(idField) {
		if err := json.Unmarshal(idField, &id); err != nil {
			return nil, &errors.DecodeError{
				RawData: string(line),
				Err:     fmt.Errorf("invalid observer id: %w", err),
			}
		}
	}

	return &PropertyChange{ID: id, Name: property, Data: payload(raw)}, nil
}

// stringField reports the value of key when it is present and a JSON string.
func stringField(raw map[string]json.RawMessage, key string) (string, bool) {
	field, ok := raw[key]
	if !ok {
		return "", false
	}

	var s *string
	if err := json.Unmarshal(field, &s); err != nil || s == nil {
		return "", false
	}

	return *s, true
}

// payload returns the "data" field, or JSON null when it is absent.
func payload(raw map[string]json.RawMessage) json.RawMessage {
	data, ok := raw["data"]
	if !ok || len(data) == 0 {
		return jsonNull
	}

	return data
}

func isNull(field json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(field), jsonNull)
}
