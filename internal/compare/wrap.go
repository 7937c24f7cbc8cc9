package compare

// NullableComparer lifts a Comparer to optional values: nil sorts before
// any value and two nils are equal.
type NullableComparer struct {
	Comparer
}

// Nullable wraps c
func Nullable(c Comparer) *NullableComparer {
	return &NullableComparer{Comparer: c}
}

// CompareNullable compares optional values
func (n *NullableComparer) CompareNullable(left, right *string) (int, error) {
	switch {
	case left == nil && right == nil:
		return 0, nil
	case left == nil:
		return -1, nil
	case right == nil:
		return 1, nil
	}
	return n.Compare(*left, *right)
}

// EqualNullable reports equality of optional values
func (n *NullableComparer) EqualNullable(left, right *string) (bool, error) {
	if left == nil || right == nil {
		return left == nil && right == nil, nil
	}
	return n.Equal(*left, *right)
}

type reversed struct {
	Comparer
}

// Reverse returns a comparer ordering opposite to c
func Reverse(c Comparer) Comparer {
	if r, ok := c.(reversed); ok {
		return r.Comparer
	}
	return reversed{Comparer: c}
}

func (r reversed) Compare(left, right string) (int, error) {
	result, err := r.Comparer.Compare(left, right)
	return -result, err
}
