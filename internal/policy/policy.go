package policy

// SelectionPolicy decides which elements of a sorted result are printed
type SelectionPolicy interface {
	// ShouldKeep returns true if the element at position pos should be kept
	ShouldKeep(pos int, element string) bool
	// Name returns the name of the policy
	Name() string
}

// Apply returns the elements kept by p, in order. A nil policy keeps all.
func Apply(sorted []string, p SelectionPolicy) []string {
	if p == nil {
		return sorted
	}

	var kept []string
	for i, e := range sorted {
		if p.ShouldKeep(i, e) {
			kept = append(kept, e)
		}
	}
	return kept
}
