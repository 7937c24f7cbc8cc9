package compare

import (
	"fmt"
	"regexp"
)

// RegexpMismatch is the fixed result the regexp strategy reports when the
// pattern does not match. Only its non-zero-ness is meaningful.
const RegexpMismatch = 1

// PatternSide selects which operand holds the pattern
type PatternSide int

const (
	// PatternLeft matches the right operand against the left one
	PatternLeft PatternSide = iota
	// PatternRight matches the left operand against the right one
	PatternRight
)

// RegexpComparer is not an order: Compare is zero when the subject matches
// the pattern and RegexpMismatch otherwise. The subject side is the one
// subject to Index extraction.
type RegexpComparer struct {
	base
	side     PatternSide
	compiled map[string]*regexp.Regexp
}

// NewRegexp creates a new regexp comparer
func NewRegexp(cfg Config, side PatternSide) *RegexpComparer {
	return &RegexpComparer{
		base:     newBase(cfg),
		side:     side,
		compiled: make(map[string]*regexp.Regexp),
	}
}

func (c *RegexpComparer) pattern(expr string) (*regexp.Regexp, error) {
	if re, ok := c.compiled[expr]; ok {
		return re, nil
	}

	src := expr
	if c.cfg.NoCase {
		src = "(?i)" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("couldn't compile regular expression pattern: %w", err)
	}
	c.compiled[expr] = re
	return re, nil
}

func (c *RegexpComparer) match(left, right string) (bool, string, error) {
	subject, expr := left, right
	if c.side == PatternLeft {
		subject, expr = right, left
	}

	subject, expr, err := c.extractPattern(subject, expr)
	if err != nil {
		return false, "", err
	}
	re, err := c.pattern(expr)
	if err != nil {
		return false, "", err
	}
	return re.MatchString(subject), subject, nil
}

// Compare implements Comparer
func (c *RegexpComparer) Compare(left, right string) (int, error) {
	matched, subject, err := c.match(left, right)
	if err != nil {
		return 0, err
	}

	result := RegexpMismatch
	if matched {
		result = 0
	}
	c.track(subject, result)
	return result, nil
}

// Equal implements Equaler
func (c *RegexpComparer) Equal(left, right string) (bool, error) {
	matched, _, err := c.match(left, right)
	return matched, err
}

// Hash implements Equaler. A match relation admits no finer hash than a
// constant.
func (c *RegexpComparer) Hash(value string) (uint64, error) {
	return 0, nil
}
