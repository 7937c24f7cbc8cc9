package compare

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/gobwas/glob"
)

// MatchEqualer reports whether a value matches a glob pattern given as the
// right operand: "*" matches any run, "?" any single character, "[...]"
// a character class and "\x" a literal x.
type MatchEqualer struct {
	base
	compiled map[string]glob.Glob
}

// NewMatch creates a new glob match equaler
func NewMatch(cfg Config) *MatchEqualer {
	return &MatchEqualer{
		base:     newBase(cfg),
		compiled: make(map[string]glob.Glob),
	}
}

func (m *MatchEqualer) pattern(expr string) (glob.Glob, error) {
	if g, ok := m.compiled[expr]; ok {
		return g, nil
	}

	src := expr
	if m.cfg.NoCase {
		src = strings.ToLower(src)
	}
	g, err := glob.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("invalid match pattern %q: %w", expr, err)
	}
	m.compiled[expr] = g
	return g, nil
}

// Equal implements Equaler
func (m *MatchEqualer) Equal(value, pattern string) (bool, error) {
	v, p, err := m.extractPattern(value, pattern)
	if err != nil {
		return false, err
	}
	g, err := m.pattern(p)
	if err != nil {
		return false, err
	}
	if m.cfg.NoCase {
		v = strings.ToLower(v)
	}
	return g.Match(v), nil
}

// Hash implements Equaler. Any value may match a pattern, so every value
// hashes alike.
func (m *MatchEqualer) Hash(value string) (uint64, error) {
	return 0, nil
}

// IdentityEqualer treats two strings as equal only when they share the
// same backing storage. Strings of length zero are all identical.
type IdentityEqualer struct{}

// NewIdentity creates a new identity equaler
func NewIdentity() *IdentityEqualer {
	return &IdentityEqualer{}
}

// Equal implements Equaler
func (IdentityEqualer) Equal(left, right string) (bool, error) {
	if len(left) != len(right) {
		return false, nil
	}
	if len(left) == 0 {
		return true, nil
	}
	return unsafe.StringData(left) == unsafe.StringData(right), nil
}

// Hash implements Equaler
func (IdentityEqualer) Hash(value string) (uint64, error) {
	if len(value) == 0 {
		return 0, nil
	}
	return uint64(uintptr(unsafe.Pointer(unsafe.StringData(value)))) ^ uint64(len(value)), nil
}
