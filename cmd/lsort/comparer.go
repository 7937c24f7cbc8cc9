package main

import (
	"context"
	"fmt"

	"github.com/ataraskov/lsort/internal/compare"
	"github.com/ataraskov/lsort/internal/extract"
	"github.com/ataraskov/lsort/internal/pathcmp"
	"github.com/ataraskov/lsort/internal/runner"
	sortpkg "github.com/ataraskov/lsort/internal/sort"
	"golang.org/x/text/language"
)

// pathMethod selects the path comparator, which lives outside the
// compare strategy set
const pathMethod = "path"

type comparerOptions struct {
	decreasing bool
	unique     bool
	// leftOnly indexes only the element side (search against a literal)
	leftOnly bool
	// unordered allows strategies that cannot sort
	unordered bool
	tracker   *compare.Tracker
}

func parseLocale() (language.Tag, error) {
	if locale == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return tag, nil
}

func parseIndexSpecs() ([]extract.IndexSpec, error) {
	if len(indexSpecs) == 0 {
		return []extract.IndexSpec{nil}, nil
	}

	specs := make([]extract.IndexSpec, 0, len(indexSpecs))
	for _, s := range indexSpecs {
		spec, err := extract.ParseIndexSpec(s)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %w", err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// buildComparer turns the comparison flags into one comparer; several
// --index keys become a multi-key comparer sharing o.tracker
func buildComparer(ctx context.Context, o comparerOptions) (compare.Comparer, error) {
	tag, err := parseLocale()
	if err != nil {
		return nil, err
	}

	if sortMethod == pathMethod {
		return buildPathComparer(tag, o)
	}

	strategy, err := compare.ParseStrategy(sortMethod)
	if err != nil {
		return nil, fmt.Errorf("invalid sort method: %w", err)
	}
	if !strategy.Ordered() && !o.unordered {
		return nil, fmt.Errorf("%w: %s", compare.ErrNotOrdered, strategy)
	}

	opts := []compare.Option{compare.WithStripPrefix(stripPrefix)}
	if threeWayRandom {
		opts = append(opts, compare.WithThreeWayRandom())
	}
	if strategy == compare.Command {
		if command == "" {
			return nil, fmt.Errorf("--command is required with sort method %s", strategy)
		}
		cb, err := runner.NewExecCallback(ctx, command)
		if err != nil {
			return nil, err
		}
		opts = append(opts, compare.WithCallback(cb))
	}

	specs, err := parseIndexSpecs()
	if err != nil {
		return nil, err
	}

	keys := make([]compare.Comparer, 0, len(specs))
	for _, spec := range specs {
		c, err := compare.New(strategy, compare.Config{
			Decreasing: o.decreasing,
			Index:      spec,
			LeftOnly:   o.leftOnly,
			NoCase:     noCase,
			Unique:     o.unique,
			Locale:     tag,
			Tracker:    o.tracker,
		}, opts...)
		if err != nil {
			return nil, err
		}
		keys = append(keys, c)
	}

	if len(keys) == 1 {
		return keys[0], nil
	}
	return sortpkg.NewMultiKey(o.tracker, keys...), nil
}

// buildPathComparer builds one path comparator per --index key. Each key
// has its own cache since the cache is keyed by mode only.
func buildPathComparer(tag language.Tag, o comparerOptions) (compare.Comparer, error) {
	mode, err := pathcmp.ParseMode(pathOrder)
	if err != nil {
		return nil, err
	}

	specs, err := parseIndexSpecs()
	if err != nil {
		return nil, err
	}

	keys := make([]compare.Comparer, 0, len(specs))
	for _, spec := range specs {
		cache := pathcmp.NewCache(pathcmp.Config{
			Locale:   tag,
			NoCase:   noCase,
			Index:    spec,
			LeftOnly: o.leftOnly,
			Tracker:  o.tracker,
		})
		c, err := cache.Get(mode)
		if err != nil {
			return nil, err
		}

		if o.decreasing {
			keys = append(keys, compare.Reverse(c))
		} else {
			keys = append(keys, c)
		}
	}

	if len(keys) == 1 {
		return keys[0], nil
	}
	return sortpkg.NewMultiKey(o.tracker, keys...), nil
}
