package extract

import (
	"fmt"
	"strconv"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// Index addresses one element of a composite value, either from the start
// or relative to its last element ("end", "end-1").
type Index struct {
	FromEnd bool
	Offset  int
}

// String returns the index in its textual form
func (i Index) String() string {
	switch {
	case !i.FromEnd:
		return strconv.Itoa(i.Offset)
	case i.Offset == 0:
		return "end"
	default:
		return fmt.Sprintf("end-%d", i.Offset)
	}
}

// resolve returns the absolute position inside a composite of length n
func (i Index) resolve(n int) int {
	if i.FromEnd {
		return n - 1 - i.Offset
	}
	return i.Offset
}

// IndexSpec is a path of indices; each index descends one level into a
// nested composite value. A nil IndexSpec means "compare whole values".
type IndexSpec []Index

// String returns the spec in the form accepted by ParseIndexSpec
func (s IndexSpec) String() string {
	parts := make([]string, len(s))
	for i, idx := range s {
		parts[i] = idx.String()
	}
	return strings.Join(parts, " ")
}

// ParseIndexSpec parses a whitespace separated list of indices such as
// "1", "end" or "0 end-2".
func ParseIndexSpec(spec string) (IndexSpec, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty index specification")
	}

	out := make(IndexSpec, 0, len(fields))
	for _, f := range fields {
		idx, err := parseIndex(f)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}

func parseIndex(s string) (Index, error) {
	if s == "end" {
		return Index{FromEnd: true}, nil
	}
	if rest, ok := strings.CutPrefix(s, "end-"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return Index{}, fmt.Errorf("bad index %q: must be integer?[+-]integer? or end?[+-]integer?", s)
		}
		return Index{FromEnd: true, Offset: n}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Index{}, fmt.Errorf("bad index %q: must be integer?[+-]integer? or end?[+-]integer?", s)
	}
	return Index{Offset: n}, nil
}

// Options controls a single extraction
type Options struct {
	Index IndexSpec
	// LeftOnly applies Index to the left operand only; the right operand is
	// passed through untouched (search: element vs. literal pattern).
	LeftOnly bool
	// Pattern marks the right operand as a pattern, which is never indexed.
	Pattern bool
}

// Extractor reduces two raw elements to the values actually compared.
// Implementations must be pure functions of their inputs.
type Extractor interface {
	Extract(left, right string, opts Options) (string, string, error)
}

// ListExtractor treats composite values as lists of shell-style words:
// whitespace separated, with single quotes, double quotes and backslash
// escapes grouping words.
type ListExtractor struct{}

// NewListExtractor creates the default extractor
func NewListExtractor() *ListExtractor {
	return &ListExtractor{}
}

// Extract implements Extractor
func (e *ListExtractor) Extract(left, right string, opts Options) (string, string, error) {
	if len(opts.Index) == 0 {
		return left, right, nil
	}

	l, err := e.element(left, opts.Index)
	if err != nil {
		return "", "", err
	}

	if opts.LeftOnly || opts.Pattern {
		return l, right, nil
	}

	r, err := e.element(right, opts.Index)
	if err != nil {
		return "", "", err
	}
	return l, r, nil
}

// element walks spec into value one nesting level per index
func (e *ListExtractor) element(value string, spec IndexSpec) (string, error) {
	current := value
	for depth, idx := range spec {
		words, err := shellquote.Split(current)
		if err != nil {
			return "", NewExtractionError(value, spec, depth, err)
		}

		pos := idx.resolve(len(words))
		if pos < 0 || pos >= len(words) {
			return "", NewExtractionError(value, spec, depth,
				fmt.Errorf("element %s missing from sublist %q", idx, current))
		}
		current = words[pos]
	}
	return current, nil
}
