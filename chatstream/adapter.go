package chatstream

// WireRequest is the fully-resolved HTTP request an adapter builds from the
// canonical conversation history. All requests are POSTs.
type WireRequest struct {
	URL     string
	Headers map[string]string
	Body    []byte
}

// FrameResult is the vendor-specific interpretation of one decoded frame.
type FrameResult struct {
	// Delta is the incremental text fragment carried by the frame, if any.
	Delta string

	// Done reports the vendor's terminal signal for the current call.
	Done bool

	// Err is set when the frame carries an embedded vendor error. The stream
	// terminates for this call.
	Err error
}

// Adapter is the interface every vendor backend must implement. It knows how
// to build a request from canonical history and how to interpret one decoded
// frame; it never touches the session's state.
type Adapter interface {
	// Name returns the engine identifier (e.g. "chatgpt", "ernie", "gemini").
	Name() string

	// Defaults returns the engine's built-in connection settings.
	Defaults() VendorConfig

	// BuildRequest constructs the wire request for the given history. It
	// returns a ConfigurationError when a required credential is missing.
	BuildRequest(cfg VendorConfig, history []Message) (*WireRequest, error)

	// ParseFrame interprets one decoded frame. A frame that cannot be decoded
	// as valid structured data yields a ParseError.
	ParseFrame(frame string) (FrameResult, error)

	// ParseErrorBody turns a non-success HTTP response body into a
	// TransportError using the vendor's error shape.
	ParseErrorBody(status int, body []byte) error

	// NewDecoder returns a fresh frame decoder for one streaming call.
	NewDecoder() Decoder
}
