package message

import "bytes"

// Decoded is the outcome of decoding one complete line.
// Exactly one of Message and Err is set.
type Decoded struct {
	Message Message
	Err     error
}

// Framer accumulates raw bytes and yields decoded messages for every
// complete line. The zero value is ready to use. A Framer is not safe for
// concurrent use; it belongs to the goroutine reading the connection.
type Framer struct {
	line []byte
}

// Insert feeds one chunk read from the connection.
//
// Bytes up to the last separator in chunk complete the buffered line(s);
// every complete line is decoded independently so one malformed line does
// not affect its neighbours. Bytes after the last separator are kept for
// the next call. Whitespace-only lines are skipped.
func (f *Framer) Insert(chunk []byte) []Decoded {
	i := bytes.LastIndexByte(chunk, LineSeparator)
	if i < 0 {
		f.line = append(f.line, chunk...)

		return nil
	}

	f.line = append(f.line, chunk[:i]...)

	var decoded []Decoded

	for line := range bytes.SplitSeq(f.line, []byte{LineSeparator}) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		msg, err := Decode(line)
		decoded = append(decoded, Decoded{Message: msg, Err: err})
	}

	f.line = append(f.line[:0], chunk[i+1:]...)

	return decoded
}

// Buffered returns the number of bytes waiting for a line separator.
func (f *Framer) Buffered() int {
	return len(f.line)
}
