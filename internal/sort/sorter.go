package sort

import (
	"log/slog"
	"slices"

	"github.com/ataraskov/lsort/internal/compare"
)

// Sorter defines the interface for sorting elements
type Sorter interface {
	// Sort returns the elements in the desired order; the input is not modified
	Sort(elements []string) ([]string, error)
}

// Config holds the configuration for a ComparatorSorter
type Config struct {
	Comparer compare.Comparer
	// Unique drops all but the last element of each run of equal elements
	Unique bool
	// Tracker, when set, is the duplicate tracker shared by the comparers
	Tracker *compare.Tracker
	Logger  *slog.Logger
}

// ComparatorSorter sorts with a compare.Comparer and aborts on the first
// comparison error
type ComparatorSorter struct {
	cmp     compare.Comparer
	unique  bool
	tracker *compare.Tracker
	logger  *slog.Logger
}

// NewSorter creates a new comparator sorter
func NewSorter(cfg Config) *ComparatorSorter {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &ComparatorSorter{
		cmp:     cfg.Comparer,
		unique:  cfg.Unique,
		tracker: cfg.Tracker,
		logger:  cfg.Logger,
	}
}

// Sort implements Sorter. The sort is stable.
func (s *ComparatorSorter) Sort(elements []string) ([]string, error) {
	sorted := slices.Clone(elements)

	// slices cannot be interrupted; once a comparison fails the remaining
	// calls report equality and the error is returned afterwards
	var sortErr error
	slices.SortStableFunc(sorted, func(a, b string) int {
		if sortErr != nil {
			return 0
		}
		result, err := s.cmp.Compare(a, b)
		if err != nil {
			sortErr = err
			return 0
		}
		return result
	})
	if sortErr != nil {
		return nil, sortErr
	}
	s.logger.Debug("Sorted elements", "count", len(sorted))

	if !s.unique {
		return sorted, nil
	}

	out := sorted[:0:0]
	for i, e := range sorted {
		if i+1 < len(sorted) {
			result, err := s.cmp.Compare(e, sorted[i+1])
			if err != nil {
				return nil, err
			}
			if result == 0 {
				continue
			}
		}
		out = append(out, e)
	}

	s.logger.Debug("Removed duplicates", "removed", len(sorted)-len(out))
	if s.tracker != nil {
		s.logger.Debug("Duplicate values", "distinct", s.tracker.Duplicates())
	}
	return out, nil
}
