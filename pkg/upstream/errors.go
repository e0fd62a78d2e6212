package upstream

import (
	"errors"
	"fmt"
)

// Error reports a failed call against an external data provider. Single-item
// fetches propagate it to the caller; batch operations catch it per item and
// drop the item from the result set.
type Error struct {
	Provider string
	Status   int
	Message  string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: http status %d: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Errorf builds an Error with a formatted message.
func Errorf(provider string, status int, format string, args ...any) *Error {
	return &Error{Provider: provider, Status: status, Message: fmt.Sprintf(format, args...)}
}

// IsUpstream reports whether err (or anything it wraps) is a provider failure.
func IsUpstream(err error) bool {
	var target *Error
	return errors.As(err, &target)
}

// ConfigError reports an unusable adapter configuration: an unknown provider
// name, or a required credential that is absent. It is fatal for the request
// and never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "adapter config: " + e.Reason
}

// ConfigErrorf builds a ConfigError with a formatted reason.
func ConfigErrorf(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// IsConfig reports whether err is a configuration failure.
func IsConfig(err error) bool {
	var target *ConfigError
	return errors.As(err, &target)
}
