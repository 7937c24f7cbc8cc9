package sort

import (
	"errors"
	"strings"
	"testing"

	"github.com/ataraskov/lsort/internal/compare"
	"github.com/ataraskov/lsort/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSorter_Strategies(t *testing.T) {
	input := []string{"file10.txt", "File2.txt", "file2.txt", "file1.txt"}

	tests := []struct {
		name string
		cmp  compare.Comparer
		want []string
	}{
		{
			name: "ascii",
			cmp:  compare.NewAscii(compare.Config{}),
			want: []string{"File2.txt", "file1.txt", "file10.txt", "file2.txt"},
		},
		{
			name: "dictionary",
			cmp:  compare.NewDictionary(compare.Config{}),
			want: []string{"file1.txt", "File2.txt", "file2.txt", "file10.txt"},
		},
		{
			name: "dictionary decreasing",
			cmp:  compare.NewDictionary(compare.Config{Decreasing: true}),
			want: []string{"file10.txt", "file2.txt", "File2.txt", "file1.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSorter(Config{Comparer: tt.cmp}).Sort(input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "file10.txt", input[0], "input is not modified")
}

func TestSorter_AbortsOnError(t *testing.T) {
	s := NewSorter(Config{Comparer: compare.NewInteger(compare.Config{})})

	got, err := s.Sort([]string{"3", "1", "abc", "2"})
	var parseErr *compare.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "abc", parseErr.Value)
	assert.Nil(t, got)
}

func TestSorter_CallbackErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	cmp := compare.NewCommand(compare.Config{}, compare.CallbackFunc(func(args [2]string) (string, error) {
		calls++
		return "", boom
	}))

	_, err := NewSorter(Config{Comparer: cmp}).Sort([]string{"a", "b", "c", "d"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "no comparisons after the first failure")
}

func TestSorter_Unique(t *testing.T) {
	tracker := compare.NewTracker(compare.FoldHasher{})
	cmp := compare.NewAscii(compare.Config{NoCase: true, Unique: true, Tracker: tracker})

	got, err := NewSorter(Config{Comparer: cmp, Unique: true, Tracker: tracker}).
		Sort([]string{"b", "A", "a", "c", "B", "a"})
	require.NoError(t, err)

	// last of each equal run survives
	assert.Equal(t, []string{"a", "B", "c"}, got)
	assert.Equal(t, 2, tracker.Duplicates())
	assert.Positive(t, tracker.Count("a"))
}

func TestSorter_UniqueInteger(t *testing.T) {
	cmp := compare.NewInteger(compare.Config{Unique: true})

	got, err := NewSorter(Config{Comparer: cmp, Unique: true}).Sort([]string{"10", "2", "0x2", "02", "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "02", "10"}, got)
	assert.Equal(t, 1, cmp.Tracker().Duplicates())
}

func TestSorter_RandomShuffleIsConsistent(t *testing.T) {
	input := strings.Fields("a b c d e f g h i j k l m n o p")
	cmp := compare.NewRandom(compare.Config{})

	got, err := NewSorter(Config{Comparer: cmp, Unique: true}).Sort(input)
	require.NoError(t, err)
	assert.ElementsMatch(t, input, got, "two-way random never drops distinct values")
}

func TestSorter_RandomThreeWayDropsDistinctValues(t *testing.T) {
	// every draw maps to "equal"
	src := compare.EntropyFunc(func(buf []byte) {
		for i := range buf {
			buf[i] = 1
		}
	})
	cmp := compare.NewRandom(compare.Config{}, compare.RandomWithSource(src), compare.RandomThreeWay())

	got, err := NewSorter(Config{Comparer: cmp, Unique: true}).Sort([]string{"x", "y", "z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, got)
}

func TestSorter_Index(t *testing.T) {
	cmp := compare.NewInteger(compare.Config{Index: extract.IndexSpec{{Offset: 1}}})

	got, err := NewSorter(Config{Comparer: cmp}).Sort([]string{"c 30", "a 5", "b 100"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a 5", "c 30", "b 100"}, got)

	_, err = NewSorter(Config{Comparer: cmp}).Sort([]string{"c 30", "a"})
	var extractErr *extract.ExtractionError
	assert.True(t, errors.As(err, &extractErr))
}

func TestMultiKey(t *testing.T) {
	tracker := compare.NewTracker(nil)
	byName := compare.NewAscii(compare.Config{Index: extract.IndexSpec{{Offset: 0}}, Unique: true, Tracker: tracker})
	byAge := compare.NewInteger(compare.Config{Index: extract.IndexSpec{{Offset: 1}}, Unique: true, Tracker: tracker})
	mk := NewMultiKey(tracker, byName, byAge)

	input := []string{"bob 30", "alice 40", "bob 25", "alice 40", "bob 030"}
	got, err := NewSorter(Config{Comparer: mk, Unique: true, Tracker: tracker}).Sort(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice 40", "bob 25", "bob 030"}, got)

	// "bob" ties on the first key are not duplicates by themselves
	assert.Equal(t, 0, tracker.Count("bob"))
	assert.Positive(t, tracker.Count("40"))
	assert.Positive(t, tracker.Count("30"))
	assert.Equal(t, 0, tracker.Level())
}

func TestMultiKey_EqualAndHash(t *testing.T) {
	mk := NewMultiKey(nil,
		compare.NewAscii(compare.Config{NoCase: true}),
		compare.NewDictionary(compare.Config{}),
	)

	eq, err := mk.Equal("abc", "abc")
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = mk.Equal("ABC", "abc")
	require.NoError(t, err)
	assert.False(t, eq)

	r, err := mk.Compare("ABC", "abc")
	require.NoError(t, err)
	assert.Equal(t, -1, r, "second key breaks the tie")

	h1, _ := mk.Hash("abc")
	h2, _ := mk.Hash("abc")
	assert.Equal(t, h1, h2)

	_, err = NewMultiKey(nil, compare.NewInteger(compare.Config{})).Hash("x")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	elements := []string{"alpha 1", "beta 2", "gamma 3", "beta 4"}

	glob := compare.NewMatch(compare.Config{})
	idx, err := Search(elements, "b*", glob)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	all, err := SearchAll(elements, "b*", glob)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, all)

	re := compare.NewRegexp(compare.Config{Index: extract.IndexSpec{{Offset: 1}}}, compare.PatternRight)
	all, err = SearchAll(elements, "^[34]$", re)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, all)

	exact := compare.NewInteger(compare.Config{Index: extract.IndexSpec{{Offset: 1}}, LeftOnly: true})
	idx, err = Search(elements, "0x3", exact)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	idx, err = Search(elements, "zeta", compare.NewAscii(compare.Config{}))
	require.NoError(t, err)
	assert.Equal(t, -1, idx)

	_, err = SearchAll(elements, "x", compare.NewInteger(compare.Config{}))
	assert.Error(t, err)
}
