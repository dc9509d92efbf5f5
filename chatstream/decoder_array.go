package chatstream

import (
	"bytes"
	"encoding/json"
)

// GrowingArrayDecoder recovers elements from a response body that is one
// slowly-growing JSON array with no per-chunk framing (the Gemini streaming
// shape). It accumulates raw bytes and, on each chunk, normalizes the
// buffer's surrounding brackets so the fragment is parseable as a complete
// array, emitting whichever elements are now complete.
type GrowingArrayDecoder struct {
	buf  []byte
	done bool
}

// NewGrowingArrayDecoder returns a decoder for growing-JSON-array bodies.
func NewGrowingArrayDecoder() *GrowingArrayDecoder {
	return &GrowingArrayDecoder{}
}

// Feed accumulates chunk and attempts to parse the buffer as an array
// fragment. An incomplete fragment is retained for the next chunk. A fragment
// that carries the closing bracket but still fails to decode is a hard
// ParseError. A chunk that is only the closing bracket terminates the stream
// without emitting a frame. Text that is recognizably not an array fragment
// is returned verbatim as a single frame.
func (d *GrowingArrayDecoder) Feed(chunk []byte) ([]string, error) {
	d.buf = append(d.buf, chunk...)

	trimmed := bytes.TrimSpace(d.buf)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case '[', ',', '{':
	case ']':
		// The server sent the array close as its own chunk after every
		// element was already consumed. Consume it; there is no frame.
		d.buf = nil
		d.done = true
		return nil, nil
	default:
		// Stray non-JSON leading text; hand it back untouched.
		frame := string(trimmed)
		d.buf = nil
		return []string{frame}, nil
	}

	inner := trimmed
	if inner[0] == '[' || inner[0] == ',' {
		inner = inner[1:]
	}
	closed := false
	if n := len(inner); n > 0 && inner[n-1] == ']' {
		inner = inner[:n-1]
		closed = true
	}

	candidate := make([]byte, 0, len(inner)+2)
	candidate = append(candidate, '[')
	candidate = append(candidate, inner...)
	candidate = append(candidate, ']')

	var elements []json.RawMessage
	if err := json.Unmarshal(candidate, &elements); err != nil {
		if closed {
			return nil, newParseError("growing-array fragment is closed but undecodable", err)
		}
		// Still incomplete; wait for more bytes.
		return nil, nil
	}

	d.buf = nil
	if closed {
		d.done = true
	}

	frames := make([]string, 0, len(elements))
	for _, el := range elements {
		frames = append(frames, string(el))
	}
	return frames, nil
}

// Done reports whether the array's closing bracket has been consumed.
func (d *GrowingArrayDecoder) Done() bool { return d.done }
