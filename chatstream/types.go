package chatstream

// Role identifies who produced a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is the fundamental unit of conversation. Insertion order is the
// conversation order and is replayed verbatim on every request.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}

// SystemMessage creates a system Message.
func SystemMessage(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

// UserMessage creates a user Message.
func UserMessage(text string) Message {
	return Message{Role: RoleUser, Content: text}
}

// AssistantMessage creates an assistant Message.
func AssistantMessage(text string) Message {
	return Message{Role: RoleAssistant, Content: text}
}

// Status represents the current lifecycle state of a session.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusRequesting Status = "requesting"
	StatusStreaming  Status = "streaming"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
	StatusAborted    Status = "aborted"
)

// VendorConfig holds the per-backend connection settings. Fields left empty
// fall through to the persisted setting and then the engine's built-in default.
type VendorConfig struct {
	Endpoint string `json:"endpoint,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	Model    string `json:"model,omitempty"`
}

// merge returns cfg with any non-empty field of overlay taking precedence.
func (cfg VendorConfig) merge(overlay VendorConfig) VendorConfig {
	if overlay.Endpoint != "" {
		cfg.Endpoint = overlay.Endpoint
	}
	if overlay.APIKey != "" {
		cfg.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		cfg.Model = overlay.Model
	}
	return cfg
}

// Settings reads persisted configuration values. Get returns def when the key
// has no stored value. Implementations live outside this package; the settings
// package provides a viper-backed one.
type Settings interface {
	Get(key, def string) string
}

// Notification kinds passed to a Notifier.
const (
	NotifyError = "error"
	NotifyInfo  = "info"
)

// Notifier delivers a one-line, human-readable notification to the host
// application's toast sink. A nil Notifier is valid and discards everything.
type Notifier func(kind, message string)

// Hooks is the caller-facing observer contract. Every field is optional; nil
// hooks are skipped.
type Hooks struct {
	// OnBeforeRequest fires after the user turn and placeholder have been
	// appended, before any network activity.
	OnBeforeRequest func()

	// OnGenerating fires for every delta with the cumulative text accumulated
	// during the current call (not the full placeholder history).
	OnGenerating func(cumulative string)

	// OnComplete fires exactly once per successful call with the placeholder's
	// final content.
	OnComplete func(final string)

	// OnError fires for configuration, transport, vendor-stream and parse
	// errors. Cancellation never fires it.
	OnError func(message string)

	// OnClear fires after Clear resets the history.
	OnClear func()
}

func (h Hooks) beforeRequest() {
	if h.OnBeforeRequest != nil {
		h.OnBeforeRequest()
	}
}

func (h Hooks) generating(cumulative string) {
	if h.OnGenerating != nil {
		h.OnGenerating(cumulative)
	}
}

func (h Hooks) complete(final string) {
	if h.OnComplete != nil {
		h.OnComplete(final)
	}
}

func (h Hooks) error(message string) {
	if h.OnError != nil {
		h.OnError(message)
	}
}

func (h Hooks) clear() {
	if h.OnClear != nil {
		h.OnClear()
	}
}
