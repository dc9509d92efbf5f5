package chatstream

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// ErnieAdapter speaks the Baidu ERNIE wire format. The backend has no
// system-role concept and no [DONE] sentinel: system messages are rewritten to
// user messages before the request is built, and termination is the per-frame
// is_end flag.
type ErnieAdapter struct {
	defaults VendorConfig
}

// NewErnieAdapter creates the ERNIE adapter.
func NewErnieAdapter(defaults VendorConfig) *ErnieAdapter {
	return &ErnieAdapter{defaults: defaults}
}

func (a *ErnieAdapter) Name() string           { return "ernie" }
func (a *ErnieAdapter) Defaults() VendorConfig { return a.defaults }

type ernieRequest struct {
	Messages []chatCompletionMessage `json:"messages"`
	Stream   bool                    `json:"stream"`
}

// BuildRequest produces POST <endpoint>?access_token=<token>. The access
// token is the only authentication; there is no auth header.
func (a *ErnieAdapter) BuildRequest(cfg VendorConfig, history []Message) (*WireRequest, error) {
	if cfg.APIKey == "" {
		return nil, newConfigurationError("ernie: access token is not configured")
	}

	msgs := make([]chatCompletionMessage, len(history))
	for i, m := range history {
		role := m.Role
		if role == RoleSystem {
			role = RoleUser
		}
		msgs[i] = chatCompletionMessage{Role: string(role), Content: m.Content}
	}

	body, err := json.Marshal(ernieRequest{Messages: msgs, Stream: true})
	if err != nil {
		return nil, err
	}

	return &WireRequest{
		URL: strings.TrimRight(cfg.Endpoint, "?") + "?access_token=" + url.QueryEscape(cfg.APIKey),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: body,
	}, nil
}

// ParseFrame extracts the result field; is_end marks the terminal frame.
// A malformed streamed frame carries an inline error object.
func (a *ErnieAdapter) ParseFrame(frame string) (FrameResult, error) {
	if !gjson.Valid(frame) {
		return FrameResult{}, newParseError("ernie: undecodable stream frame", nil)
	}

	root := gjson.Parse(frame)
	if errField := root.Get("error"); errField.Exists() {
		return FrameResult{Done: true, Err: newVendorStreamError("ernie", vendorErrorMessage(errField))}, nil
	}

	return FrameResult{
		Delta: root.Get("result").String(),
		Done:  root.Get("is_end").Bool(),
	}, nil
}

// ParseErrorBody reads the {error: {message}} shape of a non-success response.
func (a *ErnieAdapter) ParseErrorBody(status int, body []byte) error {
	message := gjson.GetBytes(body, "error.message").String()
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return newTransportError("ernie", status, message)
}

func (a *ErnieAdapter) NewDecoder() Decoder { return NewEventStreamDecoder() }
