// Package pair compares and hashes two-member tuples by a selectable
// member of each side.
package pair

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// Mode selects which member of each side takes part in a comparison
type Mode int

const (
	// LeftXRightX compares left.X with right.X
	LeftXRightX Mode = iota
	// LeftXRightY compares left.X with right.Y
	LeftXRightY
	// LeftYRightX compares left.Y with right.X
	LeftYRightX
	// LeftYRightY compares left.Y with right.Y
	LeftYRightY
)

// ErrInvalidMode indicates a Mode outside the defined set
var ErrInvalidMode = errors.New("invalid pair comparison mode")

// Valid reports whether m is one of the defined modes
func (m Mode) Valid() bool {
	return m >= LeftXRightX && m <= LeftYRightY
}

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case LeftXRightX:
		return "LeftXRightX"
	case LeftXRightY:
		return "LeftXRightY"
	case LeftYRightX:
		return "LeftYRightX"
	case LeftYRightY:
		return "LeftYRightY"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Pair is a tuple of two members of the same type
type Pair[T any] struct {
	X T
	Y T
}

// AnyPair is a tuple of two independently typed members
type AnyPair[T1, T2 any] struct {
	X T1
	Y T2
}

// Comparer orders *Pair[T] values; nil sorts before any pair
type Comparer[T any] struct {
	mode Mode
	cmp  func(a, b T) int
	hash func(v T) uint64
}

// NewComparer creates a comparer using the natural order of T
func NewComparer[T constraints.Ordered](mode Mode) (*Comparer[T], error) {
	return NewComparerFunc(mode, cmp.Compare[T], nil)
}

// NewComparerFunc creates a comparer with a caller supplied member order and
// hash. A nil hash falls back to a hash of the member's printed form.
func NewComparerFunc[T any](mode Mode, cmpFn func(a, b T) int, hash func(v T) uint64) (*Comparer[T], error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	if cmpFn == nil {
		return nil, fmt.Errorf("member comparer is required")
	}
	if hash == nil {
		hash = defaultHash[T]
	}
	return &Comparer[T]{mode: mode, cmp: cmpFn, hash: hash}, nil
}

// Compare orders left and right by the members mode selects
func (c *Comparer[T]) Compare(left, right *Pair[T]) int {
	if r, ok := compareNil(left, right); ok {
		return r
	}

	switch c.mode {
	case LeftXRightX:
		return c.cmp(left.X, right.X)
	case LeftXRightY:
		return c.cmp(left.X, right.Y)
	case LeftYRightX:
		return c.cmp(left.Y, right.X)
	default:
		return c.cmp(left.Y, right.Y)
	}
}

// Equal reports whether Compare is zero
func (c *Comparer[T]) Equal(left, right *Pair[T]) bool {
	return c.Compare(left, right) == 0
}

// Hash hashes the member mode selects for same-side modes, and both
// members in mode order for cross-side modes
func (c *Comparer[T]) Hash(p *Pair[T]) uint64 {
	if p == nil {
		return 0
	}

	switch c.mode {
	case LeftXRightX:
		return c.hash(p.X)
	case LeftXRightY:
		return mix(c.hash(p.X), c.hash(p.Y))
	case LeftYRightX:
		return mix(c.hash(p.Y), c.hash(p.X))
	default:
		return c.hash(p.Y)
	}
}

// AnyComparer orders *AnyPair[T1, T2] values. Cross-side modes convert the
// right operand to the type of the left one before comparing.
type AnyComparer[T1, T2 any] struct {
	mode  Mode
	cmpX  func(a, b T1) int
	cmpY  func(a, b T2) int
	hashX func(v T1) uint64
	hashY func(v T2) uint64
	toX   func(v T2) (T1, error)
	toY   func(v T1) (T2, error)
	// throwOnError returns conversion failures; otherwise the target
	// type's zero value is compared instead
	throwOnError bool
}

// NewAnyComparer creates a comparer for member types with a natural order
// and a defined conversion between them
func NewAnyComparer[T1, T2 Coercible](mode Mode, throwOnError bool) (*AnyComparer[T1, T2], error) {
	c, err := NewAnyComparerFunc[T1, T2](mode, cmp.Compare[T1], cmp.Compare[T2], throwOnError)
	if err != nil {
		return nil, err
	}
	c.toX = Coerce[T1, T2]
	c.toY = Coerce[T2, T1]
	return c, nil
}

// NewAnyComparerFunc creates a comparer with caller supplied member orders.
// No conversion exists between arbitrary types, so cross-side modes report
// ErrNotCoercible (or compare zero values when throwOnError is false).
func NewAnyComparerFunc[T1, T2 any](mode Mode, cmpX func(a, b T1) int, cmpY func(a, b T2) int, throwOnError bool) (*AnyComparer[T1, T2], error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	if cmpX == nil || cmpY == nil {
		return nil, fmt.Errorf("member comparers are required")
	}
	return &AnyComparer[T1, T2]{
		mode:         mode,
		cmpX:         cmpX,
		cmpY:         cmpY,
		hashX:        defaultHash[T1],
		hashY:        defaultHash[T2],
		throwOnError: throwOnError,
	}, nil
}

// Compare orders left and right by the members mode selects
func (c *AnyComparer[T1, T2]) Compare(left, right *AnyPair[T1, T2]) (int, error) {
	if r, ok := compareNil(left, right); ok {
		return r, nil
	}

	switch c.mode {
	case LeftXRightX:
		return c.cmpX(left.X, right.X), nil
	case LeftXRightY:
		y, err := convert(c.toX, right.Y, c.throwOnError)
		if err != nil {
			return 0, err
		}
		return c.cmpX(left.X, y), nil
	case LeftYRightX:
		x, err := convert(c.toY, right.X, c.throwOnError)
		if err != nil {
			return 0, err
		}
		return c.cmpY(left.Y, x), nil
	default:
		return c.cmpY(left.Y, right.Y), nil
	}
}

// Equal reports whether Compare is zero
func (c *AnyComparer[T1, T2]) Equal(left, right *AnyPair[T1, T2]) (bool, error) {
	r, err := c.Compare(left, right)
	if err != nil {
		return false, err
	}
	return r == 0, nil
}

// Hash hashes the member mode selects for same-side modes, and both
// members in mode order for cross-side modes
func (c *AnyComparer[T1, T2]) Hash(p *AnyPair[T1, T2]) uint64 {
	if p == nil {
		return 0
	}

	switch c.mode {
	case LeftXRightX:
		return c.hashX(p.X)
	case LeftXRightY:
		return mix(c.hashX(p.X), c.hashY(p.Y))
	case LeftYRightX:
		return mix(c.hashY(p.Y), c.hashX(p.X))
	default:
		return c.hashY(p.Y)
	}
}

func convert[From, To any](fn func(From) (To, error), v From, throwOnError bool) (To, error) {
	var zero To
	if fn == nil {
		if throwOnError {
			return zero, NewCoercionError(v, fmt.Sprintf("%T", zero), ErrNotCoercible)
		}
		return zero, nil
	}

	out, err := fn(v)
	if err != nil {
		if throwOnError {
			return zero, err
		}
		return zero, nil
	}
	return out, nil
}

func compareNil[P any](left, right *P) (int, bool) {
	switch {
	case left == nil && right == nil:
		return 0, true
	case left == nil:
		return -1, true
	case right == nil:
		return 1, true
	default:
		return 0, false
	}
}

// mix combines two hashes order-sensitively
func mix(a, b uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], a)
	binary.LittleEndian.PutUint64(buf[8:], b)
	return xxhash.Sum64(buf[:])
}

func defaultHash[T any](v T) uint64 {
	switch x := any(v).(type) {
	case string:
		return xxhash.Sum64String(x)
	case int:
		return hashNumber(x)
	case int8:
		return hashNumber(x)
	case int16:
		return hashNumber(x)
	case int32:
		return hashNumber(x)
	case int64:
		return hashNumber(x)
	case uint:
		return hashNumber(x)
	case uint8:
		return hashNumber(x)
	case uint16:
		return hashNumber(x)
	case uint32:
		return hashNumber(x)
	case uint64:
		return hashNumber(x)
	case float32:
		return hashNumber(x)
	case float64:
		return hashNumber(x)
	default:
		return xxhash.Sum64String(fmt.Sprint(v))
	}
}

// hashNumber hashes numbers by value so that equal values of different
// widths hash alike
func hashNumber[N constraints.Integer | constraints.Float](n N) uint64 {
	f := float64(n)
	if f == 0 {
		f = 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	return xxhash.Sum64(buf[:])
}
