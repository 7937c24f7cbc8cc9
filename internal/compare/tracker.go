package compare

import (
	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
)

// KeyHasher defines the equality used to key a Tracker
type KeyHasher interface {
	Equal(a, b string) bool
	Hash(s string) uint64
}

// ExactHasher compares keys byte for byte
type ExactHasher struct{}

// Equal implements KeyHasher
func (ExactHasher) Equal(a, b string) bool { return a == b }

// Hash implements KeyHasher
func (ExactHasher) Hash(s string) uint64 { return xxhash.Sum64String(s) }

// FoldHasher compares keys after Unicode case folding
type FoldHasher struct{}

// Equal implements KeyHasher
func (FoldHasher) Equal(a, b string) bool { return fold(a) == fold(b) }

// Hash implements KeyHasher
func (FoldHasher) Hash(s string) uint64 { return xxhash.Sum64String(fold(s)) }

func fold(s string) string {
	return cases.Fold().String(s)
}

type trackedKey struct {
	value string
	count int
}

// Tracker counts, per compared value, how many comparisons reported it
// equal to another value. Comparisons made while Level is above zero are
// ignored, so in a compound sort only the final key records duplicates.
//
// One Tracker is owned by the sort orchestrator and handed to every
// comparator taking part in the sort.
type Tracker struct {
	hasher  KeyHasher
	level   int
	buckets map[uint64][]*trackedKey
}

// NewTracker creates a tracker keyed through h; nil means ExactHasher
func NewTracker(h KeyHasher) *Tracker {
	if h == nil {
		h = ExactHasher{}
	}
	return &Tracker{
		hasher:  h,
		buckets: make(map[uint64][]*trackedKey),
	}
}

// Level returns the current nesting depth
func (t *Tracker) Level() int { return t.level }

// Enter descends one level; comparisons are not recorded until the
// matching Leave
func (t *Tracker) Enter() { t.level++ }

// Leave undoes one Enter
func (t *Tracker) Leave() {
	if t.level > 0 {
		t.level--
	}
}

// Record notes the outcome of comparing value against another element
func (t *Tracker) Record(value string, result int) {
	if t.level > 0 || result != 0 {
		return
	}
	if k := t.lookup(value); k != nil {
		k.count++
		return
	}
	h := t.hasher.Hash(value)
	t.buckets[h] = append(t.buckets[h], &trackedKey{value: value, count: 1})
}

// Count returns how many equal comparisons were recorded for value
func (t *Tracker) Count(value string) int {
	if k := t.lookup(value); k != nil {
		return k.count
	}
	return 0
}

// Duplicates returns the number of distinct values seen as duplicates
func (t *Tracker) Duplicates() int {
	n := 0
	for _, bucket := range t.buckets {
		n += len(bucket)
	}
	return n
}

// Reset forgets everything recorded so far
func (t *Tracker) Reset() {
	t.level = 0
	clear(t.buckets)
}

func (t *Tracker) lookup(value string) *trackedKey {
	for _, k := range t.buckets[t.hasher.Hash(value)] {
		if t.hasher.Equal(k.value, value) {
			return k
		}
	}
	return nil
}
