package pair

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cast"
)

var (
	// ErrNotCoercible indicates member types that have no conversion between them
	ErrNotCoercible = errors.New("types are not mutually convertible")
	// ErrOutOfRange indicates a value that does not fit the target type
	ErrOutOfRange = errors.New("value out of range")
	// ErrLossyConversion indicates a fractional value converted to an integer type
	ErrLossyConversion = errors.New("value has a fractional part")
)

// Coercible is the closed set of member types that cross-side comparisons
// convert between: numbers to numbers, and numbers to and from strings.
type Coercible interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 |
		string
}

// CoercionError reports a value that could not be converted to the type of
// the member it is compared with
type CoercionError struct {
	Value  any
	Target string
	Err    error
}

// Error implements the error interface
func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot convert %v (%T) to %s: %v", e.Value, e.Value, e.Target, e.Err)
}

// Unwrap returns the underlying conversion failure
func (e *CoercionError) Unwrap() error {
	return e.Err
}

// NewCoercionError creates a new CoercionError
func NewCoercionError(value any, target string, err error) *CoercionError {
	return &CoercionError{
		Value:  value,
		Target: target,
		Err:    err,
	}
}

// Coerce converts v to T. Integers are range checked against T and
// floating point values convert to integers only when they are whole, so a
// conversion either preserves the value or fails with a CoercionError.
func Coerce[T, S Coercible](v S) (T, error) {
	var zero T

	out, err := coerce(any(v), any(zero))
	if err != nil {
		return zero, NewCoercionError(v, fmt.Sprintf("%T", zero), err)
	}
	return out.(T), nil
}

func coerce(v, target any) (any, error) {
	switch target.(type) {
	case string:
		return cast.ToStringE(v)
	case float64:
		return cast.ToFloat64E(v)
	case float32:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, err
		}
		if !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
			return nil, ErrOutOfRange
		}
		return float32(f), nil
	}

	mag, neg, err := integral(v)
	if err != nil {
		return nil, err
	}

	switch target.(type) {
	case int:
		i, err := toSigned(mag, neg, strconv.IntSize)
		return int(i), err
	case int8:
		i, err := toSigned(mag, neg, 8)
		return int8(i), err
	case int16:
		i, err := toSigned(mag, neg, 16)
		return int16(i), err
	case int32:
		i, err := toSigned(mag, neg, 32)
		return int32(i), err
	case int64:
		return toSigned(mag, neg, 64)
	case uint:
		u, err := toUnsigned(mag, neg, strconv.IntSize)
		return uint(u), err
	case uint8:
		u, err := toUnsigned(mag, neg, 8)
		return uint8(u), err
	case uint16:
		u, err := toUnsigned(mag, neg, 16)
		return uint16(u), err
	case uint32:
		u, err := toUnsigned(mag, neg, 32)
		return uint32(u), err
	case uint64:
		return toUnsigned(mag, neg, 64)
	default:
		return nil, ErrNotCoercible
	}
}

// integral returns v as a sign and magnitude
func integral(v any) (uint64, bool, error) {
	switch v.(type) {
	case int, int8, int16, int32, int64:
		i, err := cast.ToInt64E(v)
		if err != nil {
			return 0, false, err
		}
		return fromInt64(i)
	case uint, uint8, uint16, uint32, uint64:
		u, err := cast.ToUint64E(v)
		return u, false, err
	case float32, float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return 0, false, err
		}
		return fromFloat64(f)
	case string:
		i, err := cast.ToInt64E(v)
		if err != nil {
			return 0, false, err
		}
		return fromInt64(i)
	default:
		return 0, false, ErrNotCoercible
	}
}

func fromInt64(i int64) (uint64, bool, error) {
	if i < 0 {
		// -(i+1) cannot overflow at math.MinInt64
		return uint64(-(i + 1)) + 1, true, nil
	}
	return uint64(i), false, nil
}

func fromFloat64(f float64) (uint64, bool, error) {
	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, false, ErrLossyConversion
	}
	neg := f < 0
	a := math.Abs(f)
	if a >= 1<<64 {
		return 0, false, ErrOutOfRange
	}
	return uint64(a), neg, nil
}

func toSigned(mag uint64, neg bool, bits int) (int64, error) {
	limit := uint64(1) << (bits - 1)
	if neg {
		if mag > limit {
			return 0, ErrOutOfRange
		}
		return -int64(mag-1) - 1, nil
	}
	if mag >= limit {
		return 0, ErrOutOfRange
	}
	return int64(mag), nil
}

func toUnsigned(mag uint64, neg bool, bits int) (uint64, error) {
	if neg || (bits < 64 && mag >= uint64(1)<<bits) {
		return 0, ErrOutOfRange
	}
	return mag, nil
}
