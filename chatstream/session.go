package chatstream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxErrorBody caps how much of a non-success response body is read for the
// vendor error message.
const maxErrorBody = 1 << 20

// Session owns one conversation with one backend. It drives the full call
// lifecycle: append user turn, open a placeholder assistant turn, issue the
// streaming HTTP call through its adapter, pump the body through the matching
// decoder, apply each delta to the placeholder, and finalize.
//
// A session supports at most one in-flight call; Send while Requesting or
// Streaming returns a SessionBusyError. The messages slice is mutated only by
// the session itself.
type Session struct {
	id         string
	adapter    Adapter
	overrides  VendorConfig
	settings   Settings
	hooks      Hooks
	notify     Notifier
	httpClient *http.Client
	logger     *slog.Logger

	mu       sync.Mutex
	messages []Message
	status   Status
	cancel   context.CancelFunc
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSeedHistory sets the initial conversation history, typically a system
// prompt template plus a priming exchange.
func WithSeedHistory(seed []Message) SessionOption {
	return func(s *Session) {
		s.messages = append(s.messages[:0], seed...)
	}
}

// WithConfig supplies caller overrides for endpoint, key and model. They take
// precedence over persisted settings and built-in defaults.
func WithConfig(cfg VendorConfig) SessionOption {
	return func(s *Session) { s.overrides = cfg }
}

// WithHooks sets the caller's observer hooks.
func WithHooks(hooks Hooks) SessionOption {
	return func(s *Session) { s.hooks = hooks }
}

// WithSettings attaches a persisted-settings reader consulted for any field
// the caller did not override.
func WithSettings(settings Settings) SessionOption {
	return func(s *Session) { s.settings = settings }
}

// WithNotifier sets the toast/notification sink.
func WithNotifier(notify Notifier) SessionOption {
	return func(s *Session) { s.notify = notify }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) SessionOption {
	return func(s *Session) { s.httpClient = client }
}

// WithLogger sets a structured logger for request lifecycle events.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// NewSession creates a session bound to one adapter.
func NewSession(adapter Adapter, opts ...SessionOption) *Session {
	s := &Session{
		id:         uuid.New().String(),
		adapter:    adapter,
		httpClient: &http.Client{Timeout: 0}, // streaming; cancellation via context
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		status:     StatusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Engine returns the identifier of the backend this session talks to.
func (s *Session) Engine() string { return s.adapter.Name() }

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Messages returns a copy of the conversation history.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := make([]Message, len(s.messages))
	copy(h, s.messages)
	return h
}

// Send appends a user turn (when content is non-empty), opens a placeholder
// assistant turn, and streams the backend's reply into it. It blocks until the
// call completes, fails, or is aborted. Cancellation is not an error.
func (s *Session) Send(ctx context.Context, content string) error {
	return s.send(ctx, content, false)
}

// send is the shared entry point for Send and Refresh. The busy check, the
// optional drop of the last turn and the placeholder setup happen in one
// critical section so a concurrent call cannot interleave between them.
func (s *Session) send(ctx context.Context, content string, dropLast bool) error {
	s.mu.Lock()
	if s.status == StatusRequesting || s.status == StatusStreaming {
		s.mu.Unlock()
		return &SessionBusyError{StreamError{Message: "a call is already in flight"}}
	}
	if dropLast {
		if n := len(s.messages); n > 0 {
			s.messages = s.messages[:n-1]
		}
	}
	if content != "" {
		s.messages = append(s.messages, UserMessage(content))
	}
	s.messages = append(s.messages, AssistantMessage(""))
	s.status = StatusRequesting

	// Previous calls may have tripped the token; every call gets a fresh one
	// so the session stays reusable after an abort.
	callCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	history := make([]Message, len(s.messages)-1)
	copy(history, s.messages[:len(s.messages)-1])
	s.mu.Unlock()
	defer cancel()

	s.hooks.beforeRequest()

	cfg := s.resolveConfig()
	wire, err := s.adapter.BuildRequest(cfg, history)
	if err != nil {
		// Configuration errors short-circuit before any network I/O.
		return s.fail(err)
	}

	s.logger.Debug("issuing streaming call",
		"session", s.id, "engine", s.adapter.Name(), "url", wire.URL, "turns", len(history))

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, wire.URL, bytes.NewReader(wire.Body))
	if err != nil {
		return s.fail(&TransportError{StreamError: StreamError{Message: "building request", Cause: err}, Engine: s.adapter.Name()})
	}
	for k, v := range wire.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		if callCtx.Err() != nil {
			return s.aborted()
		}
		return s.fail(&TransportError{StreamError: StreamError{Message: "request failed", Cause: err}, Engine: s.adapter.Name()})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return s.fail(s.adapter.ParseErrorBody(resp.StatusCode, body))
	}

	s.setStatus(StatusStreaming)
	err = s.pump(callCtx, resp.Body)
	s.logger.Debug("streaming call finished",
		"session", s.id, "engine", s.adapter.Name(), "elapsed", time.Since(start), "status", string(s.Status()))
	return err
}

// pump reads the response body chunk by chunk, decodes frames and applies
// deltas to the placeholder turn in strict arrival order.
func (s *Session) pump(ctx context.Context, body io.Reader) error {
	decoder := s.adapter.NewDecoder()
	var cumulative strings.Builder
	buf := make([]byte, 4096)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			frames, err := decoder.Feed(buf[:n])
			if err != nil {
				return s.fail(err)
			}
			for _, frame := range frames {
				result, err := s.adapter.ParseFrame(frame)
				if err != nil {
					return s.fail(err)
				}
				if result.Err != nil {
					return s.fail(result.Err)
				}
				if result.Delta != "" {
					s.applyDelta(result.Delta)
					cumulative.WriteString(result.Delta)
					s.hooks.generating(cumulative.String())
				}
				if result.Done {
					return s.finish()
				}
			}
			if decoder.Done() {
				return s.finish()
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				// Stream closed without an explicit terminal frame; the
				// accumulated text stands as the final reply.
				return s.finish()
			}
			if ctx.Err() != nil {
				return s.aborted()
			}
			return s.fail(&TransportError{StreamError: StreamError{Message: "reading stream", Cause: readErr}, Engine: s.adapter.Name()})
		}
	}
}

// Refresh drops the last assistant turn (complete, partial, or never started)
// and replays the remaining history to regenerate a reply.
func (s *Session) Refresh(ctx context.Context) error {
	return s.send(ctx, "", true)
}

// Abort trips the cancellation token. Deltas already applied to the
// placeholder are left as-is; no completion or error hook fires for the
// aborted call.
func (s *Session) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// Clear aborts any in-flight call, resets the history to empty and fires the
// clear hook. The session object stays usable.
func (s *Session) Clear() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.messages = nil
	s.status = StatusIdle
	s.mu.Unlock()
	s.hooks.clear()
}

// resolveConfig merges caller overrides over persisted settings over the
// engine's built-in defaults.
func (s *Session) resolveConfig() VendorConfig {
	cfg := s.adapter.Defaults()
	if s.settings != nil {
		prefix := "engines." + s.adapter.Name() + "."
		cfg = cfg.merge(VendorConfig{
			Endpoint: s.settings.Get(prefix+"endpoint", ""),
			APIKey:   s.settings.Get(prefix+"api_key", ""),
			Model:    s.settings.Get(prefix+"model", ""),
		})
	}
	return cfg.merge(s.overrides)
}

// applyDelta appends delta text to the placeholder assistant turn. The
// placeholder may have vanished if Clear raced the stream; the delta is then
// dropped.
func (s *Session) applyDelta(delta string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.messages)
	if n == 0 || s.messages[n-1].Role != RoleAssistant {
		return
	}
	s.messages[n-1].Content += delta
}

func (s *Session) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// finish marks the call complete and fires the complete hook with the
// placeholder's final content.
func (s *Session) finish() error {
	s.mu.Lock()
	s.status = StatusComplete
	var final string
	if n := len(s.messages); n > 0 && s.messages[n-1].Role == RoleAssistant {
		final = s.messages[n-1].Content
	}
	s.mu.Unlock()
	s.hooks.complete(final)
	return nil
}

// aborted records a cancellation. It fires no hooks: cancellation is not an
// error, and partial text already rendered stays in place.
func (s *Session) aborted() error {
	s.mu.Lock()
	if s.status == StatusRequesting || s.status == StatusStreaming {
		s.status = StatusAborted
	}
	s.mu.Unlock()
	s.logger.Debug("call aborted", "session", s.id, "engine", s.adapter.Name())
	return nil
}

// fail records the error, marks the placeholder turn, and surfaces the
// message to both the notifier and the error hook. The placeholder's partial
// content is not rolled back.
func (s *Session) fail(err error) error {
	s.mu.Lock()
	s.status = StatusError
	if n := len(s.messages); n > 0 && s.messages[n-1].Role == RoleAssistant {
		s.messages[n-1].IsError = true
	}
	s.mu.Unlock()

	message := err.Error()
	s.logger.Warn("call failed", "session", s.id, "engine", s.adapter.Name(), "error", message)
	if s.notify != nil {
		s.notify(NotifyError, message)
	}
	s.hooks.error(message)
	return err
}
