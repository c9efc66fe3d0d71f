package template

import (
	"errors"
	"fmt"
)

// Sentinel causes of MalformedTemplateError
var (
	ErrInvalidDocument   = errors.New("invalid template document")
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrUnknownVertex     = errors.New("unknown vertex")
	ErrUnknownEdge       = errors.New("unknown edge")
	ErrUnknownSubnetwork = errors.New("unknown subnetwork")
	ErrUnknownPort       = errors.New("unknown port")
	ErrDuplicateID       = errors.New("duplicate id")
	ErrMixedRegulation   = errors.New("regulated and unregulated inputs on one vertex")
	ErrMultipleOutputs   = errors.New("vertex drives more than one edge")
	ErrRecursiveTemplate = errors.New("recursive template reference")
	ErrDanglingPort      = errors.New("sub-template port neither connected nor exported")
	ErrAmbiguousPort     = errors.New("port must name exactly one of edge or network port")
	ErrPortReused        = errors.New("sub-template port used twice")
)

// MalformedTemplateError reports a template that cannot be built, naming the
// offending element
type MalformedTemplateError struct {
	Template string // template id
	Element  string // vertex, edge, port or subnetwork id
	Detail   string
	Cause    error
}

func (e *MalformedTemplateError) Error() string {
	msg := "template " + e.Template
	if e.Element != "" {
		msg += fmt.Sprintf(": %s", e.Element)
	}
	msg += fmt.Sprintf(": %v", e.Cause)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *MalformedTemplateError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is this error's cause.
func (e *MalformedTemplateError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func malformed(tmpl, element string, cause error, detail string) error {
	return &MalformedTemplateError{Template: tmpl, Element: element, Cause: cause, Detail: detail}
}
