package sort

import "github.com/ataraskov/lsort/internal/compare"

// Search returns the index of the first element equal to pattern under eq,
// or -1. Elements are passed as the left operand, pattern as the right.
func Search(elements []string, pattern string, eq compare.Equaler) (int, error) {
	for i, e := range elements {
		ok, err := eq.Equal(e, pattern)
		if err != nil {
			return -1, err
		}
		if ok {
			return i, nil
		}
	}
	return -1, nil
}

// SearchAll returns the indices of every element equal to pattern under eq
func SearchAll(elements []string, pattern string, eq compare.Equaler) ([]int, error) {
	var matches []int
	for i, e := range elements {
		ok, err := eq.Equal(e, pattern)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, i)
		}
	}
	return matches, nil
}
