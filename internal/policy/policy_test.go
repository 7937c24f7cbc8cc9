package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountPolicy(t *testing.T) {
	sorted := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name   string
		policy SelectionPolicy
		want   []string
	}{
		{"head", NewHeadPolicy(2), []string{"a", "b"}},
		{"head larger than input", NewHeadPolicy(10), sorted},
		{"head zero", NewHeadPolicy(0), nil},
		{"tail", NewTailPolicy(2, len(sorted)), []string{"d", "e"}},
		{"tail larger than input", NewTailPolicy(9, len(sorted)), sorted},
		{"nil policy", nil, sorted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(sorted, tt.policy))
		})
	}
}

func TestCompositePolicy(t *testing.T) {
	sorted := []string{"a", "b", "c", "d", "e"}
	head, tail := NewHeadPolicy(2), NewTailPolicy(1, len(sorted))

	or := NewCompositePolicy(PolicyModeOR, head, tail)
	assert.Equal(t, []string{"a", "b", "e"}, Apply(sorted, or))
	assert.Equal(t, "head(2) OR tail(1)", or.Name())

	and := NewCompositePolicy(PolicyModeAND, NewHeadPolicy(3), NewTailPolicy(3, len(sorted)))
	assert.Equal(t, []string{"c"}, Apply(sorted, and))
	assert.Equal(t, "head(3) AND tail(3)", and.Name())

	assert.Equal(t, sorted, Apply(sorted, NewCompositePolicy(PolicyModeAND)))
	assert.Empty(t, Apply(sorted, NewCompositePolicy(PolicyMode(7), head)))
}
