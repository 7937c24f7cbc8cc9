package policy

import "fmt"

// CountPolicy keeps the first or the last X elements of a sorted result
type CountPolicy struct {
	count   int
	total   int
	fromEnd bool
}

// NewHeadPolicy keeps the first count elements
func NewHeadPolicy(count int) *CountPolicy {
	return &CountPolicy{count: count}
}

// NewTailPolicy keeps the last count elements of a result holding total
// elements
func NewTailPolicy(count, total int) *CountPolicy {
	return &CountPolicy{
		count:   count,
		total:   total,
		fromEnd: true,
	}
}

// ShouldKeep returns true if pos falls inside the kept window
func (p *CountPolicy) ShouldKeep(pos int, _ string) bool {
	if p.fromEnd {
		return pos >= p.total-p.count
	}
	return pos < p.count
}

// Name returns the policy name
func (p *CountPolicy) Name() string {
	if p.fromEnd {
		return fmt.Sprintf("tail(%d)", p.count)
	}
	return fmt.Sprintf("head(%d)", p.count)
}
