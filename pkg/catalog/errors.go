package catalog

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-genenet/pkg/biopart"
)

// Common sentinel errors
var (
	ErrDuplicatePart     = errors.New("duplicate part")
	ErrDanglingReference = errors.New("reference to a part not in the catalog")
	ErrInvalidPart       = errors.New("invalid part")
	ErrCorruptSnapshot   = errors.New("corrupt catalog snapshot")
)

// StoreError provides structured error information for catalog operations.
type StoreError struct {
	Op      string       // Operation that failed (e.g., "build", "load", "snapshot")
	Kind    biopart.Kind // Part kind, when HasKind is set
	HasKind bool
	Name    string // Part name (if applicable)
	Path    string // File involved (if applicable)
	Cause   error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	subject := ""
	if e.HasKind {
		subject = " " + e.Kind.String()
	}
	if e.Name != "" {
		subject += fmt.Sprintf(" %q", e.Name)
	}
	if e.Path != "" {
		subject += " (" + e.Path + ")"
	}
	return fmt.Sprintf("%s%s: %v", e.Op, subject, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *StoreError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building StoreErrors.
type ErrorBuilder struct {
	err StoreError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: StoreError{Op: op}}
}

// Part sets the kind and name of the offending part.
func (b *ErrorBuilder) Part(kind biopart.Kind, name string) *ErrorBuilder {
	b.err.Kind = kind
	b.err.HasKind = true
	b.err.Name = name
	return b
}

// Path sets the file involved.
func (b *ErrorBuilder) Path(path string) *ErrorBuilder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Causef sets the cause to a sentinel wrapped with detail.
func (b *ErrorBuilder) Causef(sentinel error, format string, args ...any) *ErrorBuilder {
	b.err.Cause = fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
	return b
}

// Build returns the constructed StoreError.
func (b *ErrorBuilder) Build() *StoreError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}
