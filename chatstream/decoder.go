package chatstream

import (
	"bytes"
	"strings"
)

// Decoder turns a raw byte stream into discrete textual frames. Feed is called
// once per network chunk; frames are returned in arrival order. Buffering is
// byte-oriented, so a multi-byte character split across chunk boundaries is
// reassembled before any frame is converted to text.
type Decoder interface {
	// Feed consumes the next chunk and returns the frames it completed.
	Feed(chunk []byte) ([]string, error)

	// Done reports whether the decoder has structurally recognized the end of
	// the stream. Event-stream decoders never do; termination is frame-level.
	Done() bool
}

// EventStreamDecoder recognizes blank-line-delimited Server-Sent-Events and
// emits the payload of each "data:" field. Other fields (event:, id:, retry:,
// comments) are ignored.
type EventStreamDecoder struct {
	buf []byte
}

// NewEventStreamDecoder returns a decoder for SSE-framed response bodies.
func NewEventStreamDecoder() *EventStreamDecoder {
	return &EventStreamDecoder{}
}

var eventDelimiters = [][]byte{
	[]byte("\r\n\r\n"),
	[]byte("\n\n"),
	[]byte("\r\r"),
}

// Feed appends chunk to the internal buffer and emits one frame per complete
// event found. Partial events stay buffered until the delimiter arrives.
func (d *EventStreamDecoder) Feed(chunk []byte) ([]string, error) {
	d.buf = append(d.buf, chunk...)

	var frames []string
	for {
		idx, dlen := nextEventDelimiter(d.buf)
		if idx < 0 {
			break
		}
		event := d.buf[:idx]
		d.buf = d.buf[idx+dlen:]

		if payload, ok := eventData(event); ok {
			frames = append(frames, payload)
		}
	}
	return frames, nil
}

// Done always reports false: SSE termination is signaled inside a frame.
func (d *EventStreamDecoder) Done() bool { return false }

// nextEventDelimiter finds the earliest blank-line delimiter in buf.
func nextEventDelimiter(buf []byte) (idx, length int) {
	idx = -1
	for _, delim := range eventDelimiters {
		if i := bytes.Index(buf, delim); i >= 0 && (idx < 0 || i < idx) {
			idx = i
			length = len(delim)
		}
	}
	return idx, length
}

// eventData extracts the event's data payload. Multiple data lines are joined
// with newlines per the SSE convention. Events without a data field (comments,
// heartbeats) report ok=false.
func eventData(event []byte) (string, bool) {
	var parts []string
	for _, line := range strings.Split(string(event), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimPrefix(line, "data:")
		payload = strings.TrimPrefix(payload, " ")
		parts = append(parts, payload)
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}
