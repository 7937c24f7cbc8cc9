package policy

import (
	"slices"
	"strings"
)

// PolicyMode defines how multiple policies are combined
type PolicyMode int

const (
	// PolicyModeOR keeps an element if ANY policy keeps it (--head with --tail)
	PolicyModeOR PolicyMode = iota
	// PolicyModeAND keeps an element only if ALL policies keep it
	PolicyModeAND
)

// CompositePolicy combines multiple selection policies
type CompositePolicy struct {
	policies []SelectionPolicy
	mode     PolicyMode
}

// NewCompositePolicy creates a new composite policy
func NewCompositePolicy(mode PolicyMode, policies ...SelectionPolicy) *CompositePolicy {
	return &CompositePolicy{
		policies: policies,
		mode:     mode,
	}
}

// ShouldKeep returns true based on the policy mode. An empty composite
// keeps everything.
func (p *CompositePolicy) ShouldKeep(pos int, element string) bool {
	if len(p.policies) == 0 {
		return true
	}

	keeps := func(sp SelectionPolicy) bool { return sp.ShouldKeep(pos, element) }
	switch p.mode {
	case PolicyModeOR:
		return slices.ContainsFunc(p.policies, keeps)
	case PolicyModeAND:
		return !slices.ContainsFunc(p.policies, func(sp SelectionPolicy) bool { return !keeps(sp) })
	default:
		return false
	}
}

// Name returns the policy name
func (p *CompositePolicy) Name() string {
	names := make([]string, 0, len(p.policies))
	for _, sp := range p.policies {
		names = append(names, sp.Name())
	}

	sep := " OR "
	if p.mode == PolicyModeAND {
		sep = " AND "
	}
	return strings.Join(names, sep)
}
