package scl

import (
	"errors"
	"strings"
)

// Engine errors. Every error returned by the adapter and resolver layers
// wraps exactly one of these.
var (
	ErrStructuralMismatch = errors.New("no relation between parent and child")
	ErrNotFound           = errors.New("not found")
	ErrTemplateResolution = errors.New("template resolution failed")
	ErrNotUpdatable       = errors.New("attribute not updatable")
	ErrUnsupported        = errors.New("unsupported operation")
	ErrInvalid            = errors.New("invalid argument")
	ErrAlreadyExists      = errors.New("already exists")
)

// LookupError reports a named entity that does not exist.
type LookupError struct {
	// What describes the searched entity (e.g. "IED name", "logical device in device").
	What string

	// Names are the searched names, outermost first.
	Names []string
}

// NewLookupError creates a LookupError.
func NewLookupError(what string, names ...string) *LookupError {
	return &LookupError{What: what, Names: names}
}

func (e *LookupError) Error() string {
	return "unknown " + e.What + " (" + strings.Join(e.Names, ",") + ")"
}

// Unwrap returns ErrNotFound.
func (e *LookupError) Unwrap() error {
	return ErrNotFound
}
