package biopart

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDevice is returned when device text does not follow |name[...],{...}|
	ErrMalformedDevice = errors.New("malformed device text")
	// ErrUnknownPart is returned when device text names a part the resolver lacks
	ErrUnknownPart = errors.New("unknown part")
)

// ParseError describes a failure to parse device text
type ParseError struct {
	Input  string
	Kind   Kind   // set for unknown parts
	Name   string // offending part name, if any
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("parse device: %s %q: %v", e.Kind, e.Name, e.Cause)
	}
	return fmt.Sprintf("parse device: %s: %v", e.Reason, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
