package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/ataraskov/lsort/internal/compare"
	"github.com/ataraskov/lsort/internal/filter"
	"github.com/ataraskov/lsort/internal/policy"
	sortpkg "github.com/ataraskov/lsort/internal/sort"
	"github.com/sourcegraph/conc/iter"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// StdinName is the input name that selects standard input
const StdinName = "-"

// Runner orchestrates one lsort invocation: read, filter, sort, select
type Runner struct {
	fs      afero.Fs
	inputs  []string
	stdin   io.Reader
	filter  filter.ElementFilter
	sorter  sortpkg.Sorter
	tracker *compare.Tracker
	head    int
	tail    int
	logger  *slog.Logger
	verbose bool
}

// Config holds the configuration for the runner
type Config struct {
	Fs afero.Fs
	// Inputs lists the files to read; empty means standard input
	Inputs  []string
	Stdin   io.Reader
	Filter  filter.ElementFilter
	Sorter  sortpkg.Sorter
	Tracker *compare.Tracker
	// Head and Tail limit the printed result; zero disables the limit
	Head    int
	Tail    int
	Logger  *slog.Logger
	Verbose bool
}

// NewRunner creates a new runner instance
func NewRunner(cfg Config) *Runner {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}

	return &Runner{
		fs:      cfg.Fs,
		inputs:  cfg.Inputs,
		stdin:   cfg.Stdin,
		filter:  cfg.Filter,
		sorter:  cfg.Sorter,
		tracker: cfg.Tracker,
		head:    cfg.Head,
		tail:    cfg.Tail,
		logger:  cfg.Logger,
		verbose: cfg.Verbose,
	}
}

// Result contains the results of a sort run
type Result struct {
	Total    int
	Filtered int
	Sorted   int
	Output   []string
	// Duplicates is the number of distinct values the tracker saw compare
	// equal to another value
	Duplicates int
}

// Run reads the inputs and returns them filtered, sorted and selected
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	// Step 1: Read all elements
	elements, err := r.readInputs(ctx)
	if err != nil {
		return nil, err
	}
	result.Total = len(elements)
	r.logger.Info("Read elements", "count", result.Total, "inputs", len(r.inputs))

	// Step 2: Apply filters
	elements = r.applyFilter(elements)
	result.Filtered = len(elements)

	if len(elements) == 0 {
		r.logger.Info("No elements to sort")
		return result, nil
	}

	// Step 3: Sort elements
	if r.sorter != nil {
		sorted, err := r.sorter.Sort(elements)
		if err != nil {
			return nil, fmt.Errorf("sort failed: %w", err)
		}
		elements = sorted
	}
	result.Sorted = len(elements)
	if r.tracker != nil {
		result.Duplicates = r.tracker.Duplicates()
	}

	// Step 4: Select what gets printed
	sel := r.selection(len(elements))
	if sel != nil {
		r.logger.Debug("Applying selection", "policy", sel.Name())
	}
	result.Output = policy.Apply(elements, sel)

	if r.verbose {
		r.logger.Info("Sort analysis",
			"total", result.Total,
			"filtered", result.Filtered,
			"sorted", result.Sorted,
			"printed", len(result.Output),
			"duplicates", result.Duplicates)
	}

	return result, nil
}

// SearchResult contains the matches of a search run
type SearchResult struct {
	Total   int
	Indices []int
	Matches []string
}

// Search reads and filters the inputs, then returns every element equal to
// pattern under eq. Indices refer to the filtered element list.
func (r *Runner) Search(ctx context.Context, pattern string, eq compare.Equaler) (*SearchResult, error) {
	elements, err := r.readInputs(ctx)
	if err != nil {
		return nil, err
	}
	elements = r.applyFilter(elements)

	indices, err := sortpkg.SearchAll(elements, pattern, eq)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	result := &SearchResult{
		Total:   len(elements),
		Indices: indices,
	}
	for _, i := range indices {
		result.Matches = append(result.Matches, elements[i])
	}
	r.logger.Debug("Searched elements", "pattern", pattern, "matches", len(indices))
	return result, nil
}

func (r *Runner) applyFilter(elements []string) []string {
	if r.filter == nil {
		return elements
	}
	filtered := filter.FilterElements(elements, r.filter)
	r.logger.Info("Applied filters", "matched", len(filtered), "total", len(elements))
	return filtered
}

func (r *Runner) selection(total int) policy.SelectionPolicy {
	var policies []policy.SelectionPolicy
	if r.head > 0 {
		policies = append(policies, policy.NewHeadPolicy(r.head))
	}
	if r.tail > 0 {
		policies = append(policies, policy.NewTailPolicy(r.tail, total))
	}

	switch len(policies) {
	case 0:
		return nil
	case 1:
		return policies[0]
	default:
		return policy.NewCompositePolicy(policy.PolicyModeOR, policies...)
	}
}

// readInputs reads every input concurrently and concatenates the elements
// in input order
func (r *Runner) readInputs(ctx context.Context) ([]string, error) {
	inputs := r.inputs
	if len(inputs) == 0 {
		inputs = []string{StdinName}
	}

	perInput, err := iter.MapErr(inputs, func(name *string) ([]string, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return r.readInput(*name)
	})
	if err != nil {
		return nil, err
	}
	return slices.Concat(perInput...), nil
}

func (r *Runner) readInput(name string) (elements []string, err error) {
	if name == StdinName {
		if r.stdin == nil {
			return nil, nil
		}
		return readLines(r.stdin, name)
	}

	f, err := r.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))

	r.logger.Debug("Reading input", "file", name)
	return readLines(f, name)
}

// readLines returns one element per line; a trailing newline does not
// produce an empty element
func readLines(rd io.Reader, name string) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return lines, nil
}
