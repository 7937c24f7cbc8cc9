package compare

import (
	"cmp"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var errNotANumber = errors.New("floating-point value is Not a Number")

// IntegerComparer parses both sides as 64-bit signed integers. Decimal
// (leading zeros allowed), 0x, 0o and 0b forms are accepted; surrounding
// whitespace is ignored.
type IntegerComparer struct {
	base
}

// NewInteger creates a new integer comparer
func NewInteger(cfg Config) *IntegerComparer {
	return &IntegerComparer{base: newBase(cfg)}
}

// ParseInteger parses s the way the integer strategy does. Parsing is
// locale invariant.
func ParseInteger(s string) (int64, error) {
	v, err := parseIntLiteral(s)
	if err != nil {
		return 0, NewParseError("integer", s, err)
	}
	return v, nil
}

func parseIntLiteral(s string) (int64, error) {
	s = strings.TrimSpace(s)

	signPart := ""
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		signPart, s = s[:1], s[1:]
	}

	base := 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			s = s[2:]
		}
	}
	return strconv.ParseInt(signPart+s, base, 64)
}

func (c *IntegerComparer) parse(left, right string) (int64, int64, error) {
	l, r, err := c.extract(left, right)
	if err != nil {
		return 0, 0, err
	}
	lv, err := ParseInteger(l)
	if err != nil {
		return 0, 0, err
	}
	rv, err := ParseInteger(r)
	if err != nil {
		return 0, 0, err
	}
	return lv, rv, nil
}

// Compare implements Comparer
func (c *IntegerComparer) Compare(left, right string) (int, error) {
	l, r, err := c.parse(left, right)
	if err != nil {
		return 0, err
	}

	result := cmp.Compare(l, r)
	c.track(strconv.FormatInt(l, 10), result)
	return c.direct(result), nil
}

// Equal implements Equaler
func (c *IntegerComparer) Equal(left, right string) (bool, error) {
	l, r, err := c.parse(left, right)
	if err != nil {
		return false, err
	}
	return l == r, nil
}

// Hash implements Equaler
func (c *IntegerComparer) Hash(value string) (uint64, error) {
	s, err := c.extractOne(value)
	if err != nil {
		return 0, err
	}
	v, err := ParseInteger(s)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64String(strconv.FormatInt(v, 10)), nil
}

// RealComparer parses both sides as float64. NaN is rejected since it has
// no place in a total order.
type RealComparer struct {
	base
}

// NewReal creates a new real comparer
func NewReal(cfg Config) *RealComparer {
	return &RealComparer{base: newBase(cfg)}
}

// ParseReal parses s the way the real strategy does. Parsing is locale
// invariant.
func ParseReal(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, NewParseError("floating-point number", s, err)
	}
	if math.IsNaN(v) {
		return 0, NewParseError("floating-point number", s, errNotANumber)
	}
	// -0 and 0 compare equal and must hash alike
	if v == 0 {
		v = 0
	}
	return v, nil
}

func (c *RealComparer) parse(left, right string) (float64, float64, error) {
	l, r, err := c.extract(left, right)
	if err != nil {
		return 0, 0, err
	}
	lv, err := ParseReal(l)
	if err != nil {
		return 0, 0, err
	}
	rv, err := ParseReal(r)
	if err != nil {
		return 0, 0, err
	}
	return lv, rv, nil
}

// Compare implements Comparer
func (c *RealComparer) Compare(left, right string) (int, error) {
	l, r, err := c.parse(left, right)
	if err != nil {
		return 0, err
	}

	result := cmp.Compare(l, r)
	c.track(strconv.FormatFloat(l, 'g', -1, 64), result)
	return c.direct(result), nil
}

// Equal implements Equaler
func (c *RealComparer) Equal(left, right string) (bool, error) {
	l, r, err := c.parse(left, right)
	if err != nil {
		return false, err
	}
	return l == r, nil
}

// Hash implements Equaler
func (c *RealComparer) Hash(value string) (uint64, error) {
	s, err := c.extractOne(value)
	if err != nil {
		return 0, err
	}
	v, err := ParseReal(s)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64String(strconv.FormatFloat(v, 'g', -1, 64)), nil
}
