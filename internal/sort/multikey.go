package sort

import (
	"encoding/binary"

	"github.com/ataraskov/lsort/internal/compare"
	"github.com/cespare/xxhash/v2"
)

// MultiKey orders by each key in turn; later keys only break ties. While a
// non-final key runs the shared tracker is one level down, so duplicates
// are recorded only when every key agrees.
type MultiKey struct {
	keys    []compare.Comparer
	tracker *compare.Tracker
}

// NewMultiKey creates a compound comparer. tracker may be nil.
func NewMultiKey(tracker *compare.Tracker, keys ...compare.Comparer) *MultiKey {
	return &MultiKey{
		keys:    keys,
		tracker: tracker,
	}
}

func (m *MultiKey) compareKey(i int, left, right string) (int, error) {
	last := i == len(m.keys)-1
	if !last && m.tracker != nil {
		m.tracker.Enter()
		defer m.tracker.Leave()
	}
	return m.keys[i].Compare(left, right)
}

// Compare implements compare.Comparer
func (m *MultiKey) Compare(left, right string) (int, error) {
	for i := range m.keys {
		result, err := m.compareKey(i, left, right)
		if err != nil {
			return 0, err
		}
		if result != 0 {
			return result, nil
		}
	}
	return 0, nil
}

// Equal implements compare.Equaler
func (m *MultiKey) Equal(left, right string) (bool, error) {
	for _, k := range m.keys {
		eq, err := k.Equal(left, right)
		if err != nil || !eq {
			return false, err
		}
	}
	return true, nil
}

// Hash implements compare.Equaler
func (m *MultiKey) Hash(value string) (uint64, error) {
	d := xxhash.New()
	var buf [8]byte
	for _, k := range m.keys {
		h, err := k.Hash(value)
		if err != nil {
			return 0, err
		}
		binary.LittleEndian.PutUint64(buf[:], h)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64(), nil
}
