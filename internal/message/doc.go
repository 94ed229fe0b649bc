// Package message decodes mpv's JSON IPC protocol.
//
// mpv writes one JSON object per line. Each line is either a reply to a
// command (carrying an "error" status and, when the command was tagged, the
// "request_id" it answers) or a spontaneous event. The Framer turns an
// arbitrary stream of byte chunks into complete lines and decodes each one
// into a Message:
//
//	var f message.Framer
//
//	for _, d := range f.Insert(chunk) {
//	    if d.Err != nil {
//	        // malformed line, the stream continues
//	        continue
//	    }
//
//	    switch m := d.Message.(type) {
//	    case *message.Response:
//	    case *message.PropertyChange:
//	    }
//	}
package message
