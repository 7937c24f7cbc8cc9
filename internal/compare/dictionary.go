package compare

import (
	"strings"
	"unicode"

	"github.com/cespare/xxhash/v2"
)

// DictionaryComparer implements natural order: runs of decimal digits
// compare by magnitude, letters compare case-insensitively with case and
// leading zeros used only to break ties. NoCase has no effect.
type DictionaryComparer struct {
	base
}

// NewDictionary creates a new dictionary comparer
func NewDictionary(cfg Config) *DictionaryComparer {
	return &DictionaryComparer{base: newBase(cfg)}
}

// Compare implements Comparer
func (c *DictionaryComparer) Compare(left, right string) (int, error) {
	l, r, err := c.extract(left, right)
	if err != nil {
		return 0, err
	}

	result := DictionaryCompare(l, r)
	c.track(l, result)
	return c.direct(result), nil
}

// Equal implements Equaler
func (c *DictionaryComparer) Equal(left, right string) (bool, error) {
	l, r, err := c.extract(left, right)
	if err != nil {
		return false, err
	}
	return l == r, nil
}

// Hash implements Equaler
func (c *DictionaryComparer) Hash(value string) (uint64, error) {
	v, err := c.extractOne(value)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64String(v), nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// DictionaryCompare compares two strings in natural order and returns -1,
// 0 or 1. It returns 0 only for identical strings: when neither digit
// magnitudes, case-folded letters, leading zeros nor letter case tell the
// values apart, code point order decides.
func DictionaryCompare(left, right string) int {
	l, r := []rune(left), []rune(right)
	i, j := 0, 0
	secondary := 0

	at := func(s []rune, k int) rune {
		if k < len(s) {
			return s[k]
		}
		return 0
	}

	for {
		lc, rc := at(l, i), at(r, j)

		if isDigit(lc) && isDigit(rc) {
			// leading zeros only break ties; a lone zero is kept as the run
			zeros := 0
			for at(r, j) == '0' && isDigit(at(r, j+1)) {
				j++
				zeros--
			}
			for at(l, i) == '0' && isDigit(at(l, i+1)) {
				i++
				zeros++
			}
			if secondary == 0 {
				secondary = zeros
			}

			// longer run wins, otherwise the first differing digit
			diff := 0
			for {
				if diff == 0 {
					diff = int(at(l, i)) - int(at(r, j))
				}
				i++
				j++
				if !isDigit(at(r, j)) {
					if isDigit(at(l, i)) {
						return 1
					}
					if diff != 0 {
						return sign(diff)
					}
					break
				} else if !isDigit(at(l, i)) {
					return -1
				}
			}
			continue
		}

		if i >= len(l) || j >= len(r) {
			// shorter side first
			if diff := int(lc) - int(rc); diff != 0 {
				return sign(diff)
			}
			break
		}

		ll, rl := unicode.ToLower(lc), unicode.ToLower(rc)
		if diff := int(ll) - int(rl); diff != 0 {
			return sign(diff)
		}
		if secondary == 0 {
			switch {
			case unicode.IsUpper(lc) && unicode.IsLower(rc):
				secondary = -1
			case unicode.IsUpper(rc) && unicode.IsLower(lc):
				secondary = 1
			}
		}
		i++
		j++
	}

	if secondary != 0 {
		return sign(secondary)
	}
	return strings.Compare(left, right)
}
