package chatstream

import (
	"errors"
	"reflect"
	"testing"
)

func TestGrowingArrayDecoderIncrementalElements(t *testing.T) {
	d := NewGrowingArrayDecoder()

	// The bracket alone yields nothing; it must not be parsed as complete JSON.
	frames := feedAll(t, d, "[")
	if len(frames) != 0 {
		t.Fatalf("bracket-only chunk emitted frames: %v", frames)
	}

	frames = feedAll(t, d, `{"n":1}`)
	if want := []string{`{"n":1}`}; !reflect.DeepEqual(frames, want) {
		t.Fatalf("after second chunk frames = %v, want %v", frames, want)
	}

	frames = feedAll(t, d, `,{"n":2}]`)
	if want := []string{`{"n":2}`}; !reflect.DeepEqual(frames, want) {
		t.Fatalf("after third chunk frames = %v, want %v", frames, want)
	}
	if !d.Done() {
		t.Error("decoder did not report termination after the array closed")
	}
}

func TestGrowingArrayDecoderDefersIncompleteElement(t *testing.T) {
	d := NewGrowingArrayDecoder()

	frames := feedAll(t, d, `[{"text":"par`)
	if len(frames) != 0 {
		t.Fatalf("incomplete element emitted frames: %v", frames)
	}
	frames = feedAll(t, d, `tial"}`)
	if want := []string{`{"text":"partial"}`}; !reflect.DeepEqual(frames, want) {
		t.Errorf("frames = %v, want %v", frames, want)
	}
}

func TestGrowingArrayDecoderMultipleElementsInOneChunk(t *testing.T) {
	d := NewGrowingArrayDecoder()
	frames := feedAll(t, d, `[{"n":1},{"n":2},{"n":3}]`)
	want := []string{`{"n":1}`, `{"n":2}`, `{"n":3}`}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("frames = %v, want %v", frames, want)
	}
	if !d.Done() {
		t.Error("decoder did not report termination")
	}
}

func TestGrowingArrayDecoderStandaloneClosingBracket(t *testing.T) {
	d := NewGrowingArrayDecoder()

	frames := feedAll(t, d, `[{"n":1}`)
	if want := []string{`{"n":1}`}; !reflect.DeepEqual(frames, want) {
		t.Fatalf("first chunk frames = %v, want %v", frames, want)
	}
	frames = feedAll(t, d, `,{"n":2}`)
	if want := []string{`{"n":2}`}; !reflect.DeepEqual(frames, want) {
		t.Fatalf("second chunk frames = %v, want %v", frames, want)
	}

	// The closing bracket arrives alone, after the buffer was drained; it is
	// the array close, not payload, and must not come back as a frame.
	frames = feedAll(t, d, `]`)
	if len(frames) != 0 {
		t.Errorf("closing-bracket chunk emitted frames: %v", frames)
	}
	if !d.Done() {
		t.Error("decoder did not report termination after the standalone close")
	}
}

func TestGrowingArrayDecoderStrayTextVerbatim(t *testing.T) {
	d := NewGrowingArrayDecoder()
	frames, err := d.Feed([]byte("upstream proxy error"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"upstream proxy error"}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("frames = %v, want %v", frames, want)
	}
}

func TestGrowingArrayDecoderClosedButUndecodable(t *testing.T) {
	d := NewGrowingArrayDecoder()
	_, err := d.Feed([]byte(`[{"broken":]`))
	if err == nil {
		t.Fatal("expected a hard error for a closed, undecodable fragment")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error type = %T, want *ParseError", err)
	}
}

func TestGrowingArrayDecoderMultiByteRuneSplit(t *testing.T) {
	d := NewGrowingArrayDecoder()

	full := []byte(`[{"text":"你好"}]`)
	// Split inside 你's UTF-8 encoding.
	cut := len(`[{"text":"`) + 1

	frames := feedAll(t, d, string(full[:cut]))
	if len(frames) != 0 {
		t.Fatalf("split rune emitted frames early: %v", frames)
	}
	frames = feedAll(t, d, string(full[cut:]))
	want := []string{`{"text":"你好"}`}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("frames = %v, want %v", frames, want)
	}
}
