package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ataraskov/lsort/internal/compare"
	"github.com/ataraskov/lsort/internal/extract"
	sortpkg "github.com/ataraskov/lsort/internal/sort"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	sortMethod, indexSpecs, noCase = "ascii", nil, false
	locale, command, stripPrefix, pathOrder = "", "", "", "shallow"
	threeWayRandom, unique, decreasing = false, false, false
	head, tail = 0, 0
	matchPattern, excludePattern, matchGlob, excludeGlob = "", "", "", ""
	verbose, configFile = false, ""
	searchGlob, searchRegexp, searchFirst, searchIndex = false, false, false, false
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"ascii", "b\nB\na\n", nil, "B\na\nb\n"},
		{"dictionary", "x10\nx9\nX9\n", []string{"-m", "dictionary"}, "X9\nx9\nx10\n"},
		{"integer decreasing", "5\n-3\n0x10\n", []string{"-m", "integer", "-r"}, "0x10\n5\n-3\n"},
		{"unique nocase", "a\nA\nb\n", []string{"-u", "-f"}, "A\nb\n"},
		{"index", "x 3\ny 1\nz 2\n", []string{"-m", "integer", "-k", "1"}, "y 1\nz 2\nx 3\n"},
		{"two keys", "b 2\na 2\nc 1\n", []string{"-m", "dictionary", "-k", "1", "-k", "0"}, "c 1\na 2\nb 2\n"},
		{"exclude and head", "c\nb\ntmp\na\n", []string{"--exclude", "^tmp", "--head", "2"}, "a\nb\n"},
		{"path deepest", "a\na/b\nb\n", []string{"-m", "path", "--path-order", "deepest"}, "a/b\na\nb\n"},
		{"path index", "x b/c\ny a\nz a/b\n", []string{"-m", "path", "-k", "1"}, "y a\nz a/b\nx b/c\n"},
		{"path index decreasing", "x b/c\ny a\n", []string{"-m", "path", "-k", "end", "-r"}, "x b/c\ny a\n"},
		{"path two keys", "q a\np a\nr /b\n", []string{"-m", "path", "-k", "1", "-k", "0"}, "p a\nq a\nr /b\n"},
		{"path unique index", "x a/b\ny a//b\nz c\n", []string{"-m", "path", "-k", "1", "-u"}, "y a//b\nz c\n"},
		{"glob filters", "a.go\na_test.go\nb.txt\nc.go\n", []string{"--match-glob", "*.go", "--exclude-glob", "*_test.go"}, "a.go\nc.go\n"},
		{"version", "v1.10.0\nv1.2.0\n1.9.1\n", []string{"-m", "version"}, "v1.2.0\n1.9.1\nv1.10.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRootCommand_Errors(t *testing.T) {
	_, err := execute(t, "1\nx\n", "-m", "integer")
	var parseErr *compare.ParseError
	assert.ErrorAs(t, err, &parseErr)

	_, err = execute(t, "a\n", "-m", "regexp")
	assert.ErrorIs(t, err, compare.ErrNotOrdered)

	_, err = execute(t, "a\n", "-m", "bogus")
	assert.ErrorIs(t, err, compare.ErrUnknownStrategy)

	_, err = execute(t, "a\n", "-m", "command")
	assert.Error(t, err)

	_, err = execute(t, "a\n", "-k", "end+")
	assert.Error(t, err)

	_, err = execute(t, "a\n", "--locale", "not a locale!")
	assert.Error(t, err)

	_, err = execute(t, "a\n", "-m", "path", "-k", "not-an-index")
	assert.Error(t, err)

	_, err = execute(t, "x a\nlonely\n", "-m", "path", "-k", "1")
	var extractErr *extract.ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}

func TestPathComparer_RecordsDuplicates(t *testing.T) {
	resetFlags()
	sortMethod, unique = "path", true
	indexSpecs = []string{"1"}

	tracker := newTracker()
	c, err := buildComparer(context.Background(), comparerOptions{unique: true, tracker: tracker})
	require.NoError(t, err)

	r, err := c.Compare("x a/b", "y a//b")
	require.NoError(t, err)
	assert.Equal(t, 0, r)
	assert.Equal(t, 1, tracker.Duplicates())
}

func TestSearchCommand(t *testing.T) {
	input := "alpha 1\nbeta 2\ngamma 3\nbeta 4\n"

	out, err := execute(t, input, "search", "--glob", "b*")
	require.NoError(t, err)
	assert.Equal(t, "beta 2\nbeta 4\n", out)

	out, err = execute(t, input, "search", "-m", "integer", "-k", "1", "--show-index", "0x3")
	require.NoError(t, err)
	assert.Equal(t, "2\tgamma 3\n", out)

	out, err = execute(t, input, "search", "-e", "-k", "0", "--first", "^(beta|gamma)$")
	require.NoError(t, err)
	assert.Equal(t, "beta 2\n", out)

	_, err = execute(t, input, "search", "delta")
	assert.Error(t, err)
}

func TestBuildComparer_MultiKeySharesTracker(t *testing.T) {
	resetFlags()
	indexSpecs = []string{"0", "1"}
	unique, noCase = true, true

	tracker := newTracker()
	c, err := buildComparer(context.Background(), comparerOptions{unique: true, tracker: tracker})
	require.NoError(t, err)
	require.IsType(t, &sortpkg.MultiKey{}, c)

	r, err := c.Compare("A 1", "a 1")
	require.NoError(t, err)
	assert.Equal(t, 0, r)
	assert.Equal(t, 1, tracker.Count("1"))
	assert.Equal(t, 0, tracker.Count("a"))
}
