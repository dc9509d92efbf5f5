package chatstream

import (
	"errors"
	"strings"
	"testing"
)

func TestStreamErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &StreamError{Message: "wrapper", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("expected StreamError to unwrap to its cause")
	}
}

func TestTransportErrorMessage(t *testing.T) {
	err := newTransportError("chatgpt", 429, "rate limit exceeded")
	msg := err.Error()
	if !strings.Contains(msg, "chatgpt") || !strings.Contains(msg, "429") {
		t.Errorf("message %q lacks engine or status", msg)
	}
}

func TestVendorStreamErrorMessage(t *testing.T) {
	err := newVendorStreamError("gemini", "safety block")
	if got := err.Error(); got != "[gemini] safety block" {
		t.Errorf("message = %q", got)
	}
}

func TestErrorTypesAreDistinguishable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		as   func(error) bool
	}{
		{"configuration", newConfigurationError("no key"), func(e error) bool {
			var target *ConfigurationError
			return errors.As(e, &target)
		}},
		{"transport", newTransportError("x", 500, "boom"), func(e error) bool {
			var target *TransportError
			return errors.As(e, &target)
		}},
		{"vendor stream", newVendorStreamError("x", "boom"), func(e error) bool {
			var target *VendorStreamError
			return errors.As(e, &target)
		}},
		{"parse", newParseError("boom", nil), func(e error) bool {
			var target *ParseError
			return errors.As(e, &target)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.as(tt.err) {
				t.Errorf("errors.As failed for %T", tt.err)
			}
		})
	}
}
