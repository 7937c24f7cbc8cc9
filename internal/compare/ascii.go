package compare

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// AsciiComparer orders values by code point, optionally after case folding
type AsciiComparer struct {
	base
}

// NewAscii creates a new ascii comparer
func NewAscii(cfg Config) *AsciiComparer {
	return &AsciiComparer{base: newBase(cfg)}
}

func (c *AsciiComparer) normalize(s string) string {
	if c.cfg.NoCase {
		return fold(s)
	}
	return s
}

// Compare implements Comparer
func (c *AsciiComparer) Compare(left, right string) (int, error) {
	l, r, err := c.extract(left, right)
	if err != nil {
		return 0, err
	}

	// UTF-8 byte order is code point order
	result := strings.Compare(c.normalize(l), c.normalize(r))
	c.track(l, result)
	return c.direct(result), nil
}

// Equal implements Equaler
func (c *AsciiComparer) Equal(left, right string) (bool, error) {
	l, r, err := c.extract(left, right)
	if err != nil {
		return false, err
	}
	return c.normalize(l) == c.normalize(r), nil
}

// Hash implements Equaler
func (c *AsciiComparer) Hash(value string) (uint64, error) {
	v, err := c.extractOne(value)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64String(c.normalize(v)), nil
}
