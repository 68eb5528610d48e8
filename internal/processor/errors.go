package processor

import (
	"errors"
	"fmt"
)

// ErrNoModuleName is returned when the module identifier option is missing
// or empty after sanitization.
var ErrNoModuleName = errors.New("no module name")

// ConfigError reports a bad processor option.
type ConfigError struct {
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("option %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NotImplementedError is returned when a service declaration does not
// implement an interface it is registered for.
type NotImplementedError struct {
	Implementation string
	Interface      string
	Abstract       bool
}

func (e *NotImplementedError) Error() string {
	if e.Abstract {
		return fmt.Sprintf("%s is abstract and cannot be registered for %s", e.Implementation, e.Interface)
	}
	return fmt.Sprintf("%s does not implement the interface %s it is registered for", e.Implementation, e.Interface)
}
