package main

import (
	"context"
	"fmt"

	"github.com/ataraskov/lsort/internal/compare"
	"github.com/ataraskov/lsort/internal/runner"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	searchGlob   bool
	searchRegexp bool
	searchFirst  bool
	searchIndex  bool
)

var searchCmd = &cobra.Command{
	Use:   "search pattern [file...]",
	Short: "Print the elements equal to, or matching, a pattern",
	Long: `Search elements read from files or standard input. By default an element
matches when the selected sort method compares it equal to the pattern; with
--glob or --regexp the pattern is matched instead. --index selects the part of
each element that is compared.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchGlob, "glob", "g", false, "Treat the pattern as a glob")
	searchCmd.Flags().BoolVarP(&searchRegexp, "regexp", "e", false, "Treat the pattern as a regular expression")
	searchCmd.Flags().BoolVar(&searchFirst, "first", false, "Stop after the first match")
	searchCmd.Flags().BoolVar(&searchIndex, "show-index", false, "Prefix matches with their position")
	searchCmd.MarkFlagsMutuallyExclusive("glob", "regexp")
}

func buildEqualer(ctx context.Context) (compare.Equaler, error) {
	if !searchGlob && !searchRegexp {
		return buildComparer(ctx, comparerOptions{leftOnly: true, unordered: true})
	}

	specs, err := parseIndexSpecs()
	if err != nil {
		return nil, err
	}
	if len(specs) > 1 {
		return nil, fmt.Errorf("pattern search accepts a single --index")
	}

	cfg := compare.Config{Index: specs[0], NoCase: noCase}
	if searchGlob {
		return compare.NewMatch(cfg), nil
	}
	return compare.NewRegexp(cfg, compare.PatternRight), nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	applyDefaults(cmd)
	logger := newLogger(cmd.ErrOrStderr())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	elementFilter, err := buildFilter(logger)
	if err != nil {
		return err
	}

	eq, err := buildEqualer(ctx)
	if err != nil {
		return err
	}

	pattern := args[0]
	r := runner.NewRunner(runner.Config{
		Fs:      afero.NewOsFs(),
		Inputs:  args[1:],
		Stdin:   cmd.InOrStdin(),
		Filter:  elementFilter,
		Logger:  logger,
		Verbose: verbose,
	})

	result, err := r.Search(ctx, pattern, eq)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, e := range result.Matches {
		if searchIndex {
			fmt.Fprintf(out, "%d\t%s\n", result.Indices[i], e)
		} else {
			fmt.Fprintln(out, e)
		}
		if searchFirst {
			break
		}
	}

	logger.Info("Search finished",
		"pattern", pattern,
		"searched", humanize.Comma(int64(result.Total)),
		"matches", humanize.Comma(int64(len(result.Matches))))

	if len(result.Matches) == 0 {
		return fmt.Errorf("no element matches %q", pattern)
	}
	return nil
}
