package pathcmp

import (
	"slices"
	"sync"
	"testing"

	"github.com/ataraskov/lsort/internal/compare"
	"github.com/ataraskov/lsort/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func mustNew(t *testing.T, cfg Config) *Comparator {
	t.Helper()
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

func sortPaths(t *testing.T, c *Comparator, paths []string) []string {
	t.Helper()
	out := slices.Clone(paths)
	slices.SortStableFunc(out, func(a, b string) int {
		r, err := c.Compare(a, b)
		require.NoError(t, err)
		return r
	})
	return out
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Deepest")
	require.NoError(t, err)
	assert.Equal(t, ModeDeepestFirst, m)

	_, err = ParseMode("sideways")
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = New(Config{Mode: Mode(9)})
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestSegments(t *testing.T) {
	c := mustNew(t, Config{Mode: ModeShallowFirst})
	assert.Equal(t, []string{"usr", "local", "bin"}, c.Segments("/usr//local\\bin/"))
	assert.Empty(t, c.Segments("///"))

	custom := mustNew(t, Config{Mode: ModeShallowFirst, Separators: ":"})
	assert.Equal(t, []string{"a/b", "c"}, custom.Segments("a/b:c"))
}

func TestShallowFirst(t *testing.T) {
	c := mustNew(t, Config{Mode: ModeShallowFirst})

	got := sortPaths(t, c, []string{"b", "a/b/c", "a/b", "a", "", "a/c"})
	assert.Equal(t, []string{"", "a", "a/b", "a/b/c", "a/c", "b"}, got)
}

func TestDeepestFirst(t *testing.T) {
	c := mustNew(t, Config{Mode: ModeDeepestFirst})

	got := sortPaths(t, c, []string{"b", "a/b/c", "a/b", "a", "", "a/c"})
	assert.Equal(t, []string{"a/b/c", "a/b", "a/c", "a", "b", ""}, got)
}

func TestCompareOptional(t *testing.T) {
	p := func(s string) *string { return &s }
	optional := func(c *Comparator, l, r *string) int {
		t.Helper()
		result, err := c.CompareOptional(l, r)
		require.NoError(t, err)
		return result
	}

	shallow := mustNew(t, Config{Mode: ModeShallowFirst})
	assert.Equal(t, 0, optional(shallow, nil, nil))
	assert.Equal(t, -1, optional(shallow, nil, p("a")))
	assert.Equal(t, 1, optional(shallow, p("a"), nil))
	assert.Equal(t, -1, optional(shallow, p("a"), p("a/b")))

	deepest := mustNew(t, Config{Mode: ModeDeepestFirst})
	assert.Equal(t, 1, optional(deepest, nil, p("a")))
	assert.Equal(t, -1, optional(deepest, p("a"), nil))
	assert.Equal(t, 1, optional(deepest, p("a"), p("a/b")))
}

func TestIndex(t *testing.T) {
	c := mustNew(t, Config{Mode: ModeShallowFirst, Index: extract.IndexSpec{{Offset: 1}}})

	got := sortPaths(t, c, []string{"x b/c", "y a", "z a/b"})
	assert.Equal(t, []string{"y a", "z a/b", "x b/c"}, got)

	eq, err := c.Equal("x a/b", "y a//b")
	require.NoError(t, err)
	assert.True(t, eq)

	h1, err := c.Hash("x a/b")
	require.NoError(t, err)
	h2, err := c.Hash("y a//b")
	require.NoError(t, err)
	assert.Equal(t, h1, h2)

	_, err = c.Compare("x a", "lonely")
	var extractErr *extract.ExtractionError
	assert.ErrorAs(t, err, &extractErr)

	_, err = c.Hash("lonely")
	assert.ErrorAs(t, err, &extractErr)

	_, err = c.CompareOptional(new(string), new(string))
	assert.ErrorAs(t, err, &extractErr)
}

func TestTracker(t *testing.T) {
	tracker := compare.NewTracker(nil)
	c := mustNew(t, Config{Mode: ModeShallowFirst, Tracker: tracker})

	_, err := c.Compare("a/b", "a//b/")
	require.NoError(t, err)
	_, err = c.Compare("a", "b")
	require.NoError(t, err)

	assert.Equal(t, 1, tracker.Count("a/b"))
	assert.Equal(t, 0, tracker.Count("a"))
	assert.Equal(t, 1, tracker.Duplicates())

	// Equal never records
	_, err = c.Equal("a/b", "a/b")
	require.NoError(t, err)
	assert.Equal(t, 1, tracker.Count("a/b"))
}

func TestStringMode(t *testing.T) {
	c := mustNew(t, Config{Mode: ModeString, Locale: language.English})

	r, err := c.Compare("a/b", "a/b")
	require.NoError(t, err)
	assert.Equal(t, 0, r)

	// plain collation ignores structure
	r, err = c.Compare("a//b", "a/b")
	require.NoError(t, err)
	assert.NotEqual(t, 0, r)

	r, err = c.Compare("apple", "Banana")
	require.NoError(t, err)
	assert.Equal(t, -1, r, "collation is not code point order")
}

func TestNoCase(t *testing.T) {
	c := mustNew(t, Config{Mode: ModeShallowFirst, NoCase: true})

	eq, err := c.Equal("/Usr/Bin", "usr/bin")
	require.NoError(t, err)
	assert.True(t, eq)

	h1, _ := c.Hash("/Usr/Bin")
	h2, _ := c.Hash("usr/bin")
	assert.Equal(t, h1, h2)
}

func TestHashConsistentWithEqual(t *testing.T) {
	paths := []string{"a/b", "a//b", "/a/b/", "a/B", "a", "", "/", "b/a", "a/b/c"}

	for _, mode := range []Mode{ModeString, ModeShallowFirst, ModeDeepestFirst} {
		c := mustNew(t, Config{Mode: mode})
		for _, a := range paths {
			for _, b := range paths {
				eq, err := c.Equal(a, b)
				require.NoError(t, err)
				if !eq {
					continue
				}
				ha, _ := c.Hash(a)
				hb, _ := c.Hash(b)
				assert.Equal(t, ha, hb, "%s: %q vs %q", mode, a, b)
			}
		}
	}
}

func TestHashIncludesDepth(t *testing.T) {
	segmented := mustNew(t, Config{Mode: ModeShallowFirst})
	plain := mustNew(t, Config{Mode: ModeString})

	hs, _ := segmented.Hash("a")
	hp, _ := plain.Hash("a")
	assert.NotEqual(t, hs, hp)
}

func TestCache(t *testing.T) {
	cache := NewCache(Config{Locale: language.German})

	first, err := cache.Get(ModeDeepestFirst)
	require.NoError(t, err)
	again, err := cache.Get(ModeDeepestFirst)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, ModeDeepestFirst, first.Mode())

	_, err = cache.Get(Mode(42))
	assert.ErrorIs(t, err, ErrInvalidMode)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_Concurrent(t *testing.T) {
	cache := NewCache(Config{})
	results := make([]*Comparator, 32)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := cache.Get(Mode(i % 3))
			if err == nil {
				_, _ = c.Compare("x/y", "x")
			}
			results[i] = c
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 3, cache.Len())
	for i, c := range results {
		assert.Same(t, results[i%3], c)
	}
}
