package settings

import (
	"errors"
	"fmt"
)

// Sentinel causes of ConfigurationError
var (
	ErrTemplateMismatch = errors.New("settings name a different template")
	ErrCardinality      = errors.New("ports do not match the template")
	ErrUnknownProtein   = errors.New("unknown protein")
	ErrRoleMismatch     = errors.New("protein has the wrong role")
	ErrSignalResponse   = errors.New("protein lacks the required signal response")
	ErrSharedProtein    = errors.New("protein bound to more than one port")
	ErrTiming           = errors.New("invalid timing diagram")
)

// ConfigurationError reports settings that disagree with their template or
// catalog. It is fatal; no partial result accompanies it.
type ConfigurationError struct {
	Name   string // settings name
	Port   string // offending port or edge, if any
	Detail string
	Cause  error
}

func (e *ConfigurationError) Error() string {
	msg := "configuration " + e.Name
	if e.Port != "" {
		msg += ": port " + e.Port
	}
	msg += fmt.Sprintf(": %v", e.Cause)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is this error's cause.
func (e *ConfigurationError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// Errorf builds a ConfigurationError
func Errorf(name, port string, cause error, format string, args ...any) error {
	return &ConfigurationError{Name: name, Port: port, Cause: cause, Detail: fmt.Sprintf(format, args...)}
}
