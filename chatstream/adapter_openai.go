package chatstream

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// doneSentinel is the literal terminal frame of OpenAI-compatible streams.
const doneSentinel = "[DONE]"

// OpenAICompatAdapter speaks the OpenAI chat-completions wire format. It
// covers the default backend and its look-alikes (DeepSeek, Moonshot, ChatGLM
// and other /chat/completions clones); each engine gets its own instance with
// its own name and defaults.
type OpenAICompatAdapter struct {
	name     string
	defaults VendorConfig
}

// NewOpenAICompatAdapter creates an adapter for an OpenAI-compatible engine.
func NewOpenAICompatAdapter(name string, defaults VendorConfig) *OpenAICompatAdapter {
	return &OpenAICompatAdapter{name: name, defaults: defaults}
}

func (a *OpenAICompatAdapter) Name() string           { return a.name }
func (a *OpenAICompatAdapter) Defaults() VendorConfig { return a.defaults }

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string                  `json:"model"`
	Messages []chatCompletionMessage `json:"messages"`
	Stream   bool                    `json:"stream"`
}

// BuildRequest produces POST <endpoint>/chat/completions with a bearer token.
func (a *OpenAICompatAdapter) BuildRequest(cfg VendorConfig, history []Message) (*WireRequest, error) {
	if cfg.APIKey == "" {
		return nil, newConfigurationError("%s: API key is not configured", a.name)
	}

	msgs := make([]chatCompletionMessage, len(history))
	for i, m := range history {
		msgs[i] = chatCompletionMessage{Role: string(m.Role), Content: m.Content}
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model:    cfg.Model,
		Messages: msgs,
		Stream:   true,
	})
	if err != nil {
		return nil, err
	}

	return &WireRequest{
		URL: strings.TrimRight(cfg.Endpoint, "/") + "/chat/completions",
		Headers: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + cfg.APIKey,
		},
		Body: body,
	}, nil
}

// ParseFrame extracts choices[0].delta.content. The literal [DONE] frame is
// the terminal signal; a frame-level error field terminates the stream too.
func (a *OpenAICompatAdapter) ParseFrame(frame string) (FrameResult, error) {
	if strings.TrimSpace(frame) == doneSentinel {
		return FrameResult{Done: true}, nil
	}
	if !gjson.Valid(frame) {
		return FrameResult{}, newParseError(a.name+": undecodable stream frame", nil)
	}

	root := gjson.Parse(frame)
	if errField := root.Get("error"); errField.Exists() {
		return FrameResult{Done: true, Err: newVendorStreamError(a.name, vendorErrorMessage(errField))}, nil
	}

	return FrameResult{Delta: root.Get("choices.0.delta.content").String()}, nil
}

// ParseErrorBody reads the {error: {message}} shape of a non-success response.
func (a *OpenAICompatAdapter) ParseErrorBody(status int, body []byte) error {
	message := gjson.GetBytes(body, "error.message").String()
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return newTransportError(a.name, status, message)
}

func (a *OpenAICompatAdapter) NewDecoder() Decoder { return NewEventStreamDecoder() }

// vendorErrorMessage extracts a human-readable message from a vendor error
// object, falling back to the raw JSON when no message field exists.
func vendorErrorMessage(errField gjson.Result) string {
	if msg := errField.Get("message").String(); msg != "" {
		return msg
	}
	return errField.String()
}
