package filter

import (
	"fmt"
	"regexp"

	"github.com/gobwas/glob"
)

// ElementFilter decides whether an input element takes part in the sort
type ElementFilter interface {
	Matches(element string) bool
}

// RegexFilter filters elements based on a regex pattern
type RegexFilter struct {
	pattern *regexp.Regexp
	invert  bool // if true, exclude matches instead of include
}

// NewRegexFilter creates a new regex filter
func NewRegexFilter(pattern string, invert bool) (*RegexFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile regex pattern: %w", err)
	}

	return &RegexFilter{
		pattern: re,
		invert:  invert,
	}, nil
}

// Matches returns true if the element matches the filter criteria
func (f *RegexFilter) Matches(element string) bool {
	matches := f.pattern.MatchString(element)
	if f.invert {
		return !matches
	}
	return matches
}

// GlobFilter filters elements with a glob pattern ("*", "?", "[...]")
type GlobFilter struct {
	pattern glob.Glob
	invert  bool
}

// NewGlobFilter creates a new glob filter
func NewGlobFilter(pattern string, invert bool) (*GlobFilter, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile glob pattern: %w", err)
	}

	return &GlobFilter{
		pattern: g,
		invert:  invert,
	}, nil
}

// Matches returns true if the element matches the filter criteria
func (f *GlobFilter) Matches(element string) bool {
	return f.pattern.Match(element) != f.invert
}

// CompositeFilter combines multiple filters
type CompositeFilter struct {
	filters []ElementFilter
}

// NewCompositeFilter creates a new composite filter
func NewCompositeFilter(filters ...ElementFilter) *CompositeFilter {
	return &CompositeFilter{
		filters: filters,
	}
}

// Matches returns true if all filters match (AND logic)
func (f *CompositeFilter) Matches(element string) bool {
	for _, filter := range f.filters {
		if !filter.Matches(element) {
			return false
		}
	}
	return true
}

// FilterElements returns the elements accepted by filter, in input order
func FilterElements(elements []string, filter ElementFilter) []string {
	if filter == nil {
		return elements
	}

	var filtered []string
	for _, e := range elements {
		if filter.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// AlwaysMatchFilter is a filter that always matches
type AlwaysMatchFilter struct{}

// Matches always returns true
func (f *AlwaysMatchFilter) Matches(element string) bool {
	return true
}
