// Package pathcmp orders filesystem-path-like strings either as whole
// strings under a locale's collation or segment by segment with a
// configurable depth order.
package pathcmp

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ataraskov/lsort/internal/compare"
	"github.com/ataraskov/lsort/internal/extract"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultSeparators split segments when Config.Separators is empty
const DefaultSeparators = `/\`

// ErrInvalidMode indicates a Mode outside the defined set
var ErrInvalidMode = errors.New("invalid path comparison mode")

// Mode selects how paths are ordered
type Mode int

const (
	// ModeString collates whole strings
	ModeString Mode = iota
	// ModeShallowFirst compares segment by segment; a path sorts before
	// the paths nested below it, and nil before everything
	ModeShallowFirst
	// ModeDeepestFirst compares segment by segment; nested paths sort
	// before their parents, and nil after everything
	ModeDeepestFirst
)

var modeNames = map[Mode]string{
	ModeString:       "string",
	ModeShallowFirst: "shallow",
	ModeDeepestFirst: "deepest",
}

// String returns the mode name
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the mode with the given name
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, name)
}

// Config holds path comparison settings
type Config struct {
	Mode       Mode
	Locale     language.Tag
	NoCase     bool
	Separators string
	// Index selects the path inside composite elements; nil compares whole
	// elements
	Index extract.IndexSpec
	// LeftOnly applies Index to the left operand only
	LeftOnly bool
	// Extractor defaults to a list extractor
	Extractor extract.Extractor
	// Tracker records paths that compare equal; nil disables tracking
	Tracker *compare.Tracker
}

// Comparator orders paths. It is safe for concurrent use unless a Tracker
// is configured.
type Comparator struct {
	cfg       Config
	extractor extract.Extractor
	collators sync.Pool
}

// New creates a new path comparator
func New(cfg Config) (*Comparator, error) {
	if _, ok := modeNames[cfg.Mode]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMode, cfg.Mode)
	}
	if cfg.Separators == "" {
		cfg.Separators = DefaultSeparators
	}

	c := &Comparator{cfg: cfg, extractor: cfg.Extractor}
	if c.extractor == nil {
		c.extractor = extract.NewListExtractor()
	}
	opts := []collate.Option{}
	if cfg.NoCase {
		opts = append(opts, collate.IgnoreCase)
	}
	c.collators.New = func() any {
		return collate.New(cfg.Locale, opts...)
	}
	return c, nil
}

// Mode returns the comparator's mode
func (c *Comparator) Mode() Mode {
	return c.cfg.Mode
}

// Segments splits path on the configured separators, dropping empty
// segments
func (c *Comparator) Segments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return strings.ContainsRune(c.cfg.Separators, r)
	})
}

// normalize is the form equality is decided on
func (c *Comparator) normalize(s string) string {
	if c.cfg.NoCase {
		return cases.Fold().String(s)
	}
	return s
}

// collate compares under the locale, falling back to the normalized bytes
// so that only equal-normalized strings compare equal
func (c *Comparator) collate(a, b string) int {
	col := c.collators.Get().(*collate.Collator)
	result := col.CompareString(a, b)
	c.collators.Put(col)

	if result != 0 {
		return result
	}
	return strings.Compare(c.normalize(a), c.normalize(b))
}

func (c *Comparator) extract(left, right string) (string, string, error) {
	return c.extractor.Extract(left, right, extract.Options{
		Index:    c.cfg.Index,
		LeftOnly: c.cfg.LeftOnly,
	})
}

// Compare implements compare.Comparer; it fails only when Index does not
// fit an element
func (c *Comparator) Compare(left, right string) (int, error) {
	l, r, err := c.extract(left, right)
	if err != nil {
		return 0, err
	}

	result := c.comparePaths(l, r)
	if c.cfg.Tracker != nil {
		c.cfg.Tracker.Record(l, result)
	}
	return result, nil
}

func (c *Comparator) comparePaths(l, r string) int {
	if c.cfg.Mode == ModeString {
		return c.collate(l, r)
	}
	return c.compareSegments(c.Segments(l), c.Segments(r))
}

func (c *Comparator) compareSegments(l, r []string) int {
	for i := 0; i < len(l) && i < len(r); i++ {
		if result := c.collate(l[i], r[i]); result != 0 {
			return result
		}
	}

	depth := 0
	switch {
	case len(l) < len(r):
		depth = -1
	case len(l) > len(r):
		depth = 1
	}
	if c.cfg.Mode == ModeDeepestFirst {
		return -depth
	}
	return depth
}

// CompareOptional compares paths that may be absent
func (c *Comparator) CompareOptional(left, right *string) (int, error) {
	nilFirst := -1
	if c.cfg.Mode == ModeDeepestFirst {
		nilFirst = 1
	}

	switch {
	case left == nil && right == nil:
		return 0, nil
	case left == nil:
		return nilFirst, nil
	case right == nil:
		return -nilFirst, nil
	}
	return c.Compare(*left, *right)
}

// Equal implements compare.Equaler
func (c *Comparator) Equal(left, right string) (bool, error) {
	l, r, err := c.extract(left, right)
	if err != nil {
		return false, err
	}
	return c.comparePaths(l, r) == 0, nil
}

// Hash implements compare.Equaler. Segment modes mix the segment count
// into a hash of the zero-terminated normalized segments; string mode
// hashes the normalized string alone.
func (c *Comparator) Hash(value string) (uint64, error) {
	v, _, err := c.extractor.Extract(value, value, extract.Options{Index: c.cfg.Index, LeftOnly: true})
	if err != nil {
		return 0, err
	}

	if c.cfg.Mode == ModeString {
		return xxhash.Sum64String(c.normalize(v)), nil
	}

	h := xxhash.New()
	segments := c.Segments(v)
	for _, s := range segments {
		_, _ = h.WriteString(c.normalize(s))
		_, _ = h.Write([]byte{0})
	}
	return uint64(len(segments)) ^ h.Sum64(), nil
}

// Cache memoizes one Comparator per mode for a fixed base configuration.
// It is built once at sort setup and passed to whoever needs comparators.
type Cache struct {
	base Config

	mu     sync.Mutex
	byMode map[Mode]*Comparator
}

// NewCache creates a cache; base.Mode is ignored
func NewCache(base Config) *Cache {
	return &Cache{
		base:   base,
		byMode: make(map[Mode]*Comparator),
	}
}

// Get returns the comparator for mode, creating it on first use
func (c *Cache) Get(mode Mode) (*Comparator, error) {
	c.mu.Lock()
	cmp, ok := c.byMode[mode]
	c.mu.Unlock()
	if ok {
		return cmp, nil
	}

	cfg := c.base
	cfg.Mode = mode
	created, err := New(cfg)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cmp, ok := c.byMode[mode]; ok {
		return cmp, nil
	}
	c.byMode[mode] = created
	return created, nil
}

// Len returns the number of cached comparators
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byMode)
}
