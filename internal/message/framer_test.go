package message

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// summarize reduces decoded messages to comparable strings.
func summarize(t *testing.T, decoded []Decoded) []string {
	t.Helper()

	out := make([]string, 0, len(decoded))

	for _, d := range decoded {
		if d.Err != nil {
			out = append(out, "error")

			continue
		}

		switch m := d.Message.(type) {
		case *Response:
			out = append(out, "response:"+m.Status+":"+string(m.Data))
		case *ResponseWithoutID:
			out = append(out, "response_without_id:"+m.Status)
		case *PropertyChange:
			out = append(out, "property:"+m.Name+":"+string(m.Data))
		case *Event:
			out = append(out, "event:"+m.Name)
		default:
			t.Fatalf("unexpected message type %T", m)
		}
	}

	return out
}

func TestFramer_MultipleLines(t *testing.T) {
	var f Framer

	decoded := f.Insert([]byte(`{"request_id":1,"error":"success"}
            {"request_id":2,"error":"success"}
            {"request_id":3,"error":"error message"}
            {"request_id":4,"error":"test"}`))

	require.Len(t, decoded, 3)

	for i, d := range decoded {
		require.NoError(t, d.Err)

		resp, ok := d.Message.(*Response)
		require.True(t, ok)
		require.Equal(t, int64(i+1), resp.RequestID)
	}

	require.True(t, decoded[0].Message.(*Response).OK())
	require.True(t, decoded[1].Message.(*Response).OK())
	require.False(t, decoded[2].Message.(*Response).OK())

	decoded = f.Insert([]byte("\n"))
	require.Len(t, decoded, 1)

	resp, ok := decoded[0].Message.(*Response)
	require.True(t, ok)
	require.Equal(t, int64(4), resp.RequestID)
	require.Equal(t, "test", resp.Status)
	require.Zero(t, f.Buffered())
}

func TestFramer_NoSeparatorBuffersEverything(t *testing.T) {
	var f Framer

	require.Empty(t, f.Insert([]byte(`{"request_id":1,`)))
	require.Empty(t, f.Insert([]byte(`"error":"success"}`)))
	require.Equal(t, len(`{"request_id":1,"error":"success"}`), f.Buffered())

	decoded := f.Insert([]byte("\n"))
	require.Equal(t, []string{"response:success:null"}, summarize(t, decoded))
}

func TestFramer_MalformedLineDoesNotStopStream(t *testing.T) {
	var f Framer

	decoded := f.Insert([]byte("{\"request_id\":1,\"error\":\"success\"}\nnot json\n{\"event\":\"idle\"}\n"))

	require.Equal(t, []string{"response:success:null", "error", "event:idle"}, summarize(t, decoded))
}

func TestFramer_SkipsBlankLines(t *testing.T) {
	var f Framer

	decoded := f.Insert([]byte("\n\n{\"event\":\"idle\"}\n  \n\n"))

	require.Equal(t, []string{"event:idle"}, summarize(t, decoded))
}

func TestFramer_EmbeddedEscapedNewlines(t *testing.T) {
	payload, err := json.Marshal(map[string]any{
		"request_id": 9,
		"error":      "success",
		"data":       "Line 1\nLine 2",
	})
	require.NoError(t, err)

	var f Framer

	decoded := f.Insert(append(payload, '\n'))
	require.Len(t, decoded, 1)
	require.NoError(t, decoded[0].Err)

	var s string
	require.NoError(t, json.Unmarshal(decoded[0].Message.(*Response).Data, &s))
	require.Equal(t, "Line 1\nLine 2", s)
}

// TestFramer_ChunkBoundaryIndependence feeds the same stream split at every
// possible pair of boundaries and expects the same messages every time.
func TestFramer_ChunkBoundaryIndependence(t *testing.T) {
	stream := strings.Join([]string{
		`{"request_id":0,"error":"success","data":{"playlist_entry_id":7}}`,
		`{"event":"property-change","id":1,"name":"playlist","data":[{"filename":"a.mkv","id":1}]}`,
		`garbage`,
		`{"request_id":1,"error":"property unavailable"}`,
		`{"error":"success"}`,
		`{"event":"file-loaded"}`,
	}, "\n") + "\n"

	var whole Framer

	want := summarize(t, whole.Insert([]byte(stream)))
	require.Len(t, want, 6)

	for i := 0; i <= len(stream); i++ {
		for j := i; j <= len(stream); j += 7 {
			var f Framer

			var got []Decoded

			got = append(got, f.Insert([]byte(stream[:i]))...)
			got = append(got, f.Insert([]byte(stream[i:j]))...)
			got = append(got, f.Insert([]byte(stream[j:]))...)

			require.Equal(t, want, summarize(t, got), "split at %d/%d", i, j)
			require.Zero(t, f.Buffered())
		}
	}
}

func TestFramer_ByteAtATime(t *testing.T) {
	stream := "{\"request_id\":3,\"error\":\"success\",\"data\":false}\n{\"event\":\"idle\"}\n"

	var f Framer

	var got []Decoded

	for i := range len(stream) {
		got = append(got, f.Insert([]byte{stream[i]})...)
	}

	require.Equal(t, []string{"response:success:false", "event:idle"}, summarize(t, got))
}
