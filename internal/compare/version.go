package compare

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/mod/semver"
)

// VersionComparer orders values as semantic versions
type VersionComparer struct {
	base
	stripPrefixPattern *regexp.Regexp // optional: strip custom prefix before parsing
}

// NewVersion creates a new version comparer
func NewVersion(cfg Config, stripPrefixPattern string) (*VersionComparer, error) {
	c := &VersionComparer{base: newBase(cfg)}

	if stripPrefixPattern != "" {
		re, err := regexp.Compile(stripPrefixPattern)
		if err != nil {
			return nil, fmt.Errorf("failed to compile strip-prefix pattern: %w", err)
		}
		c.stripPrefixPattern = re
	}

	return c, nil
}

// stripPrefix removes custom prefix if pattern is set
func (c *VersionComparer) stripPrefix(v string) string {
	if c.stripPrefixPattern != nil {
		return c.stripPrefixPattern.ReplaceAllString(v, "")
	}
	return v
}

// normalizeVersion adds "v" prefix if missing
func normalizeVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// canonical returns the canonical semantic version of s
func (c *VersionComparer) canonical(s string) (string, error) {
	// First strip custom prefix (e.g., "develop-" from "develop-1.2.3")
	v := normalizeVersion(c.stripPrefix(strings.TrimSpace(s)))
	if !semver.IsValid(v) {
		return "", NewParseError("semantic version", s, nil)
	}
	return semver.Canonical(v), nil
}

func (c *VersionComparer) parse(left, right string) (string, string, error) {
	l, r, err := c.extract(left, right)
	if err != nil {
		return "", "", err
	}
	lv, err := c.canonical(l)
	if err != nil {
		return "", "", err
	}
	rv, err := c.canonical(r)
	if err != nil {
		return "", "", err
	}
	return lv, rv, nil
}

// Compare implements Comparer
func (c *VersionComparer) Compare(left, right string) (int, error) {
	l, r, err := c.parse(left, right)
	if err != nil {
		return 0, err
	}

	result := semver.Compare(l, r)
	c.track(l, result)
	return c.direct(result), nil
}

// Equal implements Equaler
func (c *VersionComparer) Equal(left, right string) (bool, error) {
	l, r, err := c.parse(left, right)
	if err != nil {
		return false, err
	}
	return semver.Compare(l, r) == 0, nil
}

// Hash implements Equaler
func (c *VersionComparer) Hash(value string) (uint64, error) {
	s, err := c.extractOne(value)
	if err != nil {
		return 0, err
	}
	v, err := c.canonical(s)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64String(v), nil
}
