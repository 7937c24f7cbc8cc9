package extract

import "fmt"

// ExtractionError reports an index that does not fit the structure of a
// composite value, or a value that cannot be parsed as a composite.
type ExtractionError struct {
	Value string
	Index IndexSpec
	Depth int
	Err   error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot extract index %q (level %d) from %q: %v", e.Index.String(), e.Depth, e.Value, e.Err)
}

// Unwrap returns the underlying cause
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError
func NewExtractionError(value string, index IndexSpec, depth int, err error) *ExtractionError {
	return &ExtractionError{
		Value: value,
		Index: index,
		Depth: depth,
		Err:   err,
	}
}
