package strata

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrDuplicateType is returned when a catalog already holds a type with the same name.
	ErrDuplicateType = errors.New("type already defined")

	// ErrIncomparable is returned by Compare for objects of different types
	// or attribute values that have no ordering.
	ErrIncomparable = errors.New("not comparable")

	// ErrUnsupportedInput is returned by NewFrom for inputs that are neither
	// string-keyed maps nor structs.
	ErrUnsupportedInput = errors.New("unsupported input")
)
