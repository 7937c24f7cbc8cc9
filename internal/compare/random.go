package compare

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// EntropySource fills buf with random bytes. It cannot fail.
type EntropySource interface {
	Fill(buf []byte)
}

// EntropyFunc adapts a function to EntropySource
type EntropyFunc func(buf []byte)

// Fill implements EntropySource
func (f EntropyFunc) Fill(buf []byte) { f(buf) }

type pairKey struct {
	lo, hi string
}

// RandomComparer orders distinct values by coin toss. Every decision is
// remembered for the comparator's lifetime, so the order it produces is
// arbitrary but consistent, and antisymmetric: Compare(b, a) is always
// -Compare(a, b).
type RandomComparer struct {
	base
	source    EntropySource
	fallback  io.Reader
	threeWay  bool
	decisions map[pairKey]int
	draws     int
}

// RandomOption configures a RandomComparer
type RandomOption func(*RandomComparer)

// RandomWithSource sets the preferred entropy source
func RandomWithSource(src EntropySource) RandomOption {
	return func(c *RandomComparer) { c.source = src }
}

// RandomWithFallback replaces the crypto/rand fallback reader
func RandomWithFallback(r io.Reader) RandomOption {
	return func(c *RandomComparer) { c.fallback = r }
}

// RandomWithoutFallback removes the fallback reader
func RandomWithoutFallback() RandomOption {
	return func(c *RandomComparer) { c.fallback = nil }
}

// RandomThreeWay maps draws onto -1, 0 and 1 instead of -1 and 1. Distinct
// values may then compare equal, which breaks unique sorting; it exists for
// compatibility with the historical behavior.
func RandomThreeWay() RandomOption {
	return func(c *RandomComparer) { c.threeWay = true }
}

// NewRandom creates a new random comparer
func NewRandom(cfg Config, opts ...RandomOption) *RandomComparer {
	c := &RandomComparer{
		base:      newBase(cfg),
		fallback:  rand.Reader,
		decisions: make(map[pairKey]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Draws returns how many times entropy was consumed
func (c *RandomComparer) Draws() int {
	return c.draws
}

func (c *RandomComparer) draw() (byte, error) {
	var buf [1]byte
	switch {
	case c.source != nil:
		c.source.Fill(buf[:])
	case c.fallback != nil:
		if _, err := io.ReadFull(c.fallback, buf[:]); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrNoEntropySource, err)
		}
	default:
		return 0, ErrNoEntropySource
	}
	c.draws++
	return buf[0], nil
}

func (c *RandomComparer) decide(b byte) int {
	if c.threeWay {
		return [3]int{-1, 0, 1}[b%3]
	}
	if b&1 == 0 {
		return -1
	}
	return 1
}

// Compare implements Comparer
func (c *RandomComparer) Compare(left, right string) (int, error) {
	l, r, err := c.extract(left, right)
	if err != nil {
		return 0, err
	}

	if l == r {
		c.track(l, 0)
		return 0, nil
	}

	key, orient := pairKey{lo: l, hi: r}, 1
	if r < l {
		key, orient = pairKey{lo: r, hi: l}, -1
	}

	decision, ok := c.decisions[key]
	if !ok {
		b, err := c.draw()
		if err != nil {
			return 0, err
		}
		decision = c.decide(b)
		c.decisions[key] = decision
	}

	result := orient * decision
	c.track(l, result)
	return result, nil
}

// Equal implements Equaler
func (c *RandomComparer) Equal(left, right string) (bool, error) {
	result, err := c.Compare(left, right)
	if err != nil {
		return false, err
	}
	return result == 0, nil
}

// Hash implements Equaler. In three-way mode distinct values may be equal,
// so the hash degrades to a constant.
func (c *RandomComparer) Hash(value string) (uint64, error) {
	if c.threeWay {
		return 0, nil
	}
	v, err := c.extractOne(value)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64String(v), nil
}
