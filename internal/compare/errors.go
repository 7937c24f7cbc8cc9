package compare

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStrategy indicates a strategy name or value that is not supported
	ErrUnknownStrategy = errors.New("unknown comparison strategy")
	// ErrNoEntropySource indicates the random strategy has nothing to draw from
	ErrNoEntropySource = errors.New("no entropy source available")
	// ErrNonIntegerResult indicates a comparison callback returned something other than an integer
	ErrNonIntegerResult = errors.New("expected integer result")
	// ErrNotOrdered indicates a strategy that only reports match or mismatch
	// was asked to order elements
	ErrNotOrdered = errors.New("comparison strategy does not define an order")
)

// ParseError reports a value that cannot be read as the number or version
// a strategy expects
type ParseError struct {
	Value string
	Kind  string
	Err   error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("expected %s but got %q", e.Kind, e.Value)
}

// Unwrap returns the underlying parse failure
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(kind, value string, err error) *ParseError {
	return &ParseError{
		Value: value,
		Kind:  kind,
		Err:   err,
	}
}

// CallbackError reports a failed or malformed custom comparator invocation
type CallbackError struct {
	Left  string
	Right string
	Err   error
}

// Error implements the error interface
func (e *CallbackError) Error() string {
	return fmt.Sprintf("%v (while evaluating custom comparator on %q and %q)", e.Err, e.Left, e.Right)
}

// Unwrap returns the callback's own error
func (e *CallbackError) Unwrap() error {
	return e.Err
}

// NewCallbackError creates a new CallbackError
func NewCallbackError(left, right string, err error) *CallbackError {
	return &CallbackError{
		Left:  left,
		Right: right,
		Err:   err,
	}
}
