package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAttribute matches every *MissingAttributeError.
	ErrMissingAttribute = errors.New("missing attribute")
	// ErrTypeMismatch matches every *TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidDeclaration is returned for malformed attribute declarations.
	ErrInvalidDeclaration = errors.New("invalid declaration")
	// ErrSealed is returned when declaring on a builder that was already built.
	ErrSealed = errors.New("schema is sealed")
	// ErrUnknownType is returned when a type name cannot be resolved.
	ErrUnknownType = errors.New("unknown type")
)

// MissingAttributeError reports a required attribute absent from the input.
type MissingAttributeError struct {
	Type     string // owning value type
	Name     string // attribute name
	Expected string // rendered candidate types
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("%s: expected %s to be %s but was absent", e.Type, e.Name, e.Expected)
}

func (e *MissingAttributeError) Is(target error) bool {
	return target == ErrMissingAttribute
}

// TypeMismatchError reports a present value that no candidate type could take.
type TypeMismatchError struct {
	Type     string // owning value type
	Name     string // attribute name
	Expected string // rendered candidate types
	Actual   string // runtime type name of Value
	Value    any    // The value that failed coercion
	// Cause is the last strategy error, kept for diagnostics only.
	Cause error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s to be %s but was %s", e.Type, e.Name, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// AggregateError represents multiple attribute failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d attribute errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// AttributeErrors returns all failures if err is an AggregateError.
// Otherwise returns nil.
func AttributeErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
