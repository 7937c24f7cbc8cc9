package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndexSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    IndexSpec
		wantErr bool
	}{
		{in: "1", want: IndexSpec{{Offset: 1}}},
		{in: "end", want: IndexSpec{{FromEnd: true}}},
		{in: "end-2", want: IndexSpec{{FromEnd: true, Offset: 2}}},
		{in: "0 end", want: IndexSpec{{Offset: 0}, {FromEnd: true}}},
		{in: "", wantErr: true},
		{in: "x", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "end-x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseIndexSpec(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestListExtractor_NoIndexPassesThrough(t *testing.T) {
	l, r, err := NewListExtractor().Extract("a b", `"unbalanced`, Options{})
	require.NoError(t, err)
	assert.Equal(t, "a b", l)
	assert.Equal(t, `"unbalanced`, r)
}

func TestListExtractor_Index(t *testing.T) {
	e := NewListExtractor()

	l, r, err := e.Extract("apple 3", "pear 10", Options{Index: IndexSpec{{Offset: 1}}})
	require.NoError(t, err)
	assert.Equal(t, "3", l)
	assert.Equal(t, "10", r)

	l, r, err = e.Extract("a 'x y' c", "b 'p q' d", Options{Index: IndexSpec{{Offset: 1}, {FromEnd: true}}})
	require.NoError(t, err)
	assert.Equal(t, "y", l)
	assert.Equal(t, "q", r)
}

func TestListExtractor_LeftOnlyAndPattern(t *testing.T) {
	e := NewListExtractor()
	spec := IndexSpec{{Offset: 0}}

	l, r, err := e.Extract("key value", "k*", Options{Index: spec, LeftOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "key", l)
	assert.Equal(t, "k*", r)

	l, r, err = e.Extract("key value", "[a-z]+ x", Options{Index: spec, Pattern: true})
	require.NoError(t, err)
	assert.Equal(t, "key", l)
	assert.Equal(t, "[a-z]+ x", r)
}

func TestListExtractor_Errors(t *testing.T) {
	e := NewListExtractor()

	_, _, err := e.Extract("a b", "c", Options{Index: IndexSpec{{Offset: 1}}})
	var extractErr *ExtractionError
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, "c", extractErr.Value)
	assert.Equal(t, 0, extractErr.Depth)

	_, _, err = e.Extract(`a "b`, "c d", Options{Index: IndexSpec{{Offset: 0}}})
	require.True(t, errors.As(err, &extractErr))
	assert.Equal(t, `a "b`, extractErr.Value)

	_, _, err = e.Extract("a", "b", Options{Index: IndexSpec{{FromEnd: true, Offset: 3}}})
	assert.Error(t, err)
}

func TestListExtractor_Pure(t *testing.T) {
	e := NewListExtractor()
	opts := Options{Index: IndexSpec{{Offset: 1}}}

	for i := 0; i < 3; i++ {
		l, r, err := e.Extract("x 1", "y 2", opts)
		require.NoError(t, err)
		assert.Equal(t, "1", l)
		assert.Equal(t, "2", r)
	}
}
