package chatstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
)

// GeminiAdapter speaks the Google Gemini streamGenerateContent wire format.
// History is transposed into contents/parts with the assistant role renamed to
// "model", and the response body is one growing JSON array rather than SSE
// frames; termination is structural (the array closes).
type GeminiAdapter struct {
	defaults VendorConfig
}

// NewGeminiAdapter creates the Gemini adapter.
func NewGeminiAdapter(defaults VendorConfig) *GeminiAdapter {
	return &GeminiAdapter{defaults: defaults}
}

func (a *GeminiAdapter) Name() string           { return "gemini" }
func (a *GeminiAdapter) Defaults() VendorConfig { return a.defaults }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// BuildRequest produces POST <endpoint>/models/<model>:streamGenerateContent
// with the API key as a query parameter.
func (a *GeminiAdapter) BuildRequest(cfg VendorConfig, history []Message) (*WireRequest, error) {
	if cfg.APIKey == "" {
		return nil, newConfigurationError("gemini: API key is not configured")
	}

	contents := make([]geminiContent, len(history))
	for i, m := range history {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		contents[i] = geminiContent{Role: role, Parts: []geminiPart{{Text: m.Content}}}
	}

	body, err := json.Marshal(geminiRequest{Contents: contents})
	if err != nil {
		return nil, err
	}

	return &WireRequest{
		URL: fmt.Sprintf("%s/models/%s:streamGenerateContent?key=%s",
			strings.TrimRight(cfg.Endpoint, "/"), cfg.Model, url.QueryEscape(cfg.APIKey)),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: body,
	}, nil
}

// ParseFrame extracts candidates[0].content.parts[0].text. There is no
// frame-level terminal signal; the decoder reports structural termination.
func (a *GeminiAdapter) ParseFrame(frame string) (FrameResult, error) {
	if !gjson.Valid(frame) {
		return FrameResult{}, newParseError("gemini: undecodable stream frame", nil)
	}

	root := gjson.Parse(frame)
	if errField := root.Get("error"); errField.Exists() {
		return FrameResult{Done: true, Err: newVendorStreamError("gemini", vendorErrorMessage(errField))}, nil
	}

	return FrameResult{Delta: root.Get("candidates.0.content.parts.0.text").String()}, nil
}

// ParseErrorBody reads a non-success response whose body is an array whose
// first element may carry {error: {message}}.
func (a *GeminiAdapter) ParseErrorBody(status int, body []byte) error {
	message := gjson.GetBytes(body, "0.error.message").String()
	if message == "" {
		message = gjson.GetBytes(body, "error.message").String()
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return newTransportError("gemini", status, message)
}

func (a *GeminiAdapter) NewDecoder() Decoder { return NewGrowingArrayDecoder() }
