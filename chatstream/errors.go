package chatstream

import "fmt"

// StreamError is the base error type for all chatstream errors.
type StreamError struct {
	Message string
	Cause   error
}

func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}

// ConfigurationError indicates a required credential or endpoint is missing.
// It is raised before any network call is made.
type ConfigurationError struct{ StreamError }

// TransportError indicates a network failure or a non-success HTTP status.
// For HTTP failures Message carries the vendor's parsed error text.
type TransportError struct {
	StreamError
	Engine     string
	StatusCode int
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%s] %s (status=%d)", e.Engine, e.Message, e.StatusCode)
	}
	return e.StreamError.Error()
}

// VendorStreamError is an error object embedded inside an otherwise-successful
// stream. It terminates delta processing for the current call.
type VendorStreamError struct {
	StreamError
	Engine string
}

func (e *VendorStreamError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Engine, e.StreamError.Error())
}

// ParseError indicates a frame that cannot be decoded as valid structured
// data. It is fatal for the current call and is never retried.
type ParseError struct{ StreamError }

// SessionBusyError is returned by Send while a previous call on the same
// session is still in flight.
type SessionBusyError struct{ StreamError }

func newConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{StreamError{Message: fmt.Sprintf(format, args...)}}
}

func newTransportError(engine string, status int, message string) *TransportError {
	return &TransportError{
		StreamError: StreamError{Message: message},
		Engine:      engine,
		StatusCode:  status,
	}
}

func newVendorStreamError(engine, message string) *VendorStreamError {
	return &VendorStreamError{
		StreamError: StreamError{Message: message},
		Engine:      engine,
	}
}

func newParseError(message string, cause error) *ParseError {
	return &ParseError{StreamError{Message: message, Cause: cause}}
}
