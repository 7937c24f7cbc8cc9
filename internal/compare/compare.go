// Package compare implements the interchangeable string comparison
// strategies behind lsort: ascii, dictionary, integer, real, version,
// regexp, command and random ordering, plus equality-only identity and
// glob matching.
//
// Comparators are built once per sort with an immutable Config and are not
// safe for concurrent use: the random decision cache and the duplicate
// tracker are mutated on every call.
package compare

import (
	"fmt"
	"strings"

	"github.com/ataraskov/lsort/internal/extract"
	"golang.org/x/text/language"
)

// Equaler reports equality and a hash consistent with it:
// Equal(a, b) implies Hash(a) == Hash(b).
type Equaler interface {
	Equal(left, right string) (bool, error)
	Hash(value string) (uint64, error)
}

// Comparer is a total order over strings usable by a sort algorithm.
// Equal(a, b) is always Compare(a, b) == 0.
type Comparer interface {
	Equaler
	// Compare returns a negative number when left sorts before right,
	// zero when they are equal and a positive number otherwise.
	Compare(left, right string) (int, error)
}

// Config holds the settings shared by every call a comparator makes
// during one sort
type Config struct {
	// Decreasing reverses the order (ascending by default)
	Decreasing bool
	// Index selects a sub-element of composite values; nil compares whole values
	Index extract.IndexSpec
	// LeftOnly applies Index to the left operand only
	LeftOnly bool
	// NoCase compares case-insensitively where the strategy supports it
	NoCase bool
	// Unique enables duplicate tracking
	Unique bool
	// Locale drives locale-aware collation; language.Und means root collation.
	// Integer and Real ignore it: numbers always use '.' as the decimal
	// separator and accept no grouping, whatever the locale.
	Locale language.Tag
	// Extractor reduces raw elements to compared values; defaults to a list extractor
	Extractor extract.Extractor
	// Tracker is shared by all comparators of a compound sort. When nil and
	// Unique is set, each comparator creates its own on first use.
	Tracker *Tracker
}

// Strategy selects a comparison algorithm
type Strategy int

const (
	// Ascii compares code points
	Ascii Strategy = iota
	// Dictionary compares digit runs numerically
	Dictionary
	// Integer parses both sides as 64-bit signed integers
	Integer
	// Real parses both sides as floating point numbers
	Real
	// Version compares semantic versions
	Version
	// Regexp reports whether one side matches the other as a pattern
	Regexp
	// Command delegates to an external callback
	Command
	// Random produces an arbitrary but self-consistent order
	Random
)

var strategyNames = map[Strategy]string{
	Ascii:      "ascii",
	Dictionary: "dictionary",
	Integer:    "integer",
	Real:       "real",
	Version:    "version",
	Regexp:     "regexp",
	Command:    "command",
	Random:     "random",
}

// String returns the strategy name
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Ordered reports whether the strategy is a total order suitable for
// sorting. Regexp only tells matches from mismatches.
func (s Strategy) Ordered() bool {
	return s != Regexp
}

// ParseStrategy returns the strategy with the given name
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

type options struct {
	callback    Callback
	entropy     EntropySource
	noFallback  bool
	threeWay    bool
	stripPrefix string
	patternSide PatternSide
}

// Option configures strategy specific behavior for New
type Option func(*options)

// WithCallback sets the callback used by the Command strategy
func WithCallback(cb Callback) Option { return func(o *options) { o.callback = cb } }

// WithEntropySource sets the preferred entropy source of the Random strategy
func WithEntropySource(src EntropySource) Option { return func(o *options) { o.entropy = src } }

// WithoutSystemEntropy disables the crypto/rand fallback of the Random strategy
func WithoutSystemEntropy() Option { return func(o *options) { o.noFallback = true } }

// WithThreeWayRandom keeps the legacy mapping where a random draw may
// declare two distinct values equal
func WithThreeWayRandom() Option { return func(o *options) { o.threeWay = true } }

// WithStripPrefix sets the regex removed from values before version parsing
func WithStripPrefix(pattern string) Option { return func(o *options) { o.stripPrefix = pattern } }

// WithPatternSide selects which operand the Regexp strategy treats as the pattern
func WithPatternSide(side PatternSide) Option { return func(o *options) { o.patternSide = side } }

// New creates a comparator for the given strategy
func New(strategy Strategy, cfg Config, opts ...Option) (Comparer, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch strategy {
	case Ascii:
		return NewAscii(cfg), nil
	case Dictionary:
		return NewDictionary(cfg), nil
	case Integer:
		return NewInteger(cfg), nil
	case Real:
		return NewReal(cfg), nil
	case Version:
		return NewVersion(cfg, o.stripPrefix)
	case Regexp:
		return NewRegexp(cfg, o.patternSide), nil
	case Command:
		if o.callback == nil {
			return nil, fmt.Errorf("command strategy requires a callback")
		}
		return NewCommand(cfg, o.callback), nil
	case Random:
		var ropts []RandomOption
		if o.entropy != nil {
			ropts = append(ropts, RandomWithSource(o.entropy))
		}
		if o.noFallback {
			ropts = append(ropts, RandomWithoutFallback())
		}
		if o.threeWay {
			ropts = append(ropts, RandomThreeWay())
		}
		return NewRandom(cfg, ropts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategy)
	}
}

// base carries the behavior every strategy shares: extraction, direction
// and duplicate tracking.
type base struct {
	cfg       Config
	extractor extract.Extractor
	tracker   *Tracker
}

func newBase(cfg Config) base {
	b := base{
		cfg:       cfg,
		extractor: cfg.Extractor,
		tracker:   cfg.Tracker,
	}
	if b.extractor == nil {
		b.extractor = extract.NewListExtractor()
	}
	return b
}

// Tracker returns the duplicate tracker, or nil if nothing was tracked yet
func (b *base) Tracker() *Tracker {
	return b.tracker
}

func (b *base) extract(left, right string) (string, string, error) {
	return b.extractor.Extract(left, right, extract.Options{
		Index:    b.cfg.Index,
		LeftOnly: b.cfg.LeftOnly,
	})
}

func (b *base) extractPattern(value, pattern string) (string, string, error) {
	return b.extractor.Extract(value, pattern, extract.Options{
		Index:    b.cfg.Index,
		LeftOnly: b.cfg.LeftOnly,
		Pattern:  true,
	})
}

// extractOne reduces a single value, as needed for hashing
func (b *base) extractOne(value string) (string, error) {
	v, _, err := b.extractor.Extract(value, value, extract.Options{
		Index:    b.cfg.Index,
		LeftOnly: true,
	})
	return v, err
}

func (b *base) direct(result int) int {
	if b.cfg.Decreasing {
		return -result
	}
	return result
}

func (b *base) track(value string, result int) {
	if !b.cfg.Unique {
		return
	}
	if b.tracker == nil {
		var h KeyHasher = ExactHasher{}
		if b.cfg.NoCase {
			h = FoldHasher{}
		}
		b.tracker = NewTracker(h)
	}
	b.tracker.Record(value, result)
}

// sign maps any integer to -1, 0 or 1
func sign[T int | int64](v T) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
